package engine

import "testing"

func TestGeneratePersona(t *testing.T) {
	tests := []struct {
		name      string
		wealth    int64
		happiness int
		literacy  int
		want      string
	}{
		{"rich and happy", 150000, 90, 10, PersonaGuru},
		{"rich and joyless", 150000, 20, 10, PersonaMiser},
		{"broke but smiling", 5000, 90, 10, PersonaCarefree},
		{"scholar", 50000, 50, 85, PersonaBuffett},
		{"steady hand", 50000, 50, 60, PersonaBalanced},
		{"default", 50000, 50, 10, PersonaFOMO},
		{"rich middling happiness falls through to literacy", 150000, 60, 55, PersonaBalanced},
		{"boundary wealth not above threshold", 100000, 90, 0, PersonaFOMO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeneratePersona(tt.wealth, tt.happiness, tt.literacy); got != tt.want {
				t.Errorf("GeneratePersona(%d, %d, %d) = %q, want %q",
					tt.wealth, tt.happiness, tt.literacy, got, tt.want)
			}
		})
	}
}

func TestGeneratePersonaPure(t *testing.T) {
	for i := 0; i < 5; i++ {
		if got := GeneratePersona(120000, 85, 0); got != PersonaGuru {
			t.Fatalf("call %d returned %q, want stable %q", i, got, PersonaGuru)
		}
	}
}
