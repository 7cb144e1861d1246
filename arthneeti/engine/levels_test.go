package engine

import (
	"testing"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

func TestComputeLevel(t *testing.T) {
	tests := []struct {
		name     string
		month    int
		literacy int
		want     int
	}{
		{"fresh start", 1, 0, 1},
		{"month three still tier one", 3, 10, 1},
		{"month threshold reaches tier two", 4, 0, 2},
		{"literacy threshold reaches tier two", 1, 20, 2},
		{"either threshold is enough", 2, 45, 3},
		{"month seven reaches tier three", 7, 0, 3},
		{"month ten reaches tier four", 10, 0, 4},
		{"literacy seventy reaches tier four", 1, 70, 4},
		{"both maxed", 12, 100, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeLevel(tt.month, tt.literacy); got != tt.want {
				t.Errorf("computeLevel(%d, %d) = %d, want %d", tt.month, tt.literacy, got, tt.want)
			}
		})
	}
}

func TestComputeLevelMonotonic(t *testing.T) {
	prev := 0
	for month := 1; month <= 12; month++ {
		got := computeLevel(month, 0)
		if got < prev {
			t.Fatalf("level dropped from %d to %d at month %d", prev, got, month)
		}
		prev = got
	}
}

func TestRefreshLevelRatchet(t *testing.T) {
	sess := &models.GameSession{CurrentMonth: 5, FinancialLiteracy: 0, Level: 1}
	if !refreshLevel(sess) {
		t.Fatal("expected level change at month 5")
	}
	if sess.Level != 2 {
		t.Fatalf("Level = %d, want 2", sess.Level)
	}

	// Stored level never goes down even if inputs regress.
	sess.CurrentMonth = 1
	if refreshLevel(sess) {
		t.Fatal("refreshLevel reported a change on regressed inputs")
	}
	if sess.Level != 2 {
		t.Fatalf("Level = %d after regression, want 2", sess.Level)
	}
}

func TestLevelSpecFallback(t *testing.T) {
	if got := levelSpec(99).Tier; got != 1 {
		t.Errorf("levelSpec(99).Tier = %d, want 1", got)
	}
	if got := levelSpec(3).MaxDifficulty; got != 4 {
		t.Errorf("levelSpec(3).MaxDifficulty = %d, want 4", got)
	}
}
