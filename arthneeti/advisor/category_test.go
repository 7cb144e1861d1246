package advisor

import "testing"

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"saving keyword", "How much should I save every month?", CategorySaving},
		{"investing keyword", "Should I buy gold or a mutual fund?", CategoryInvesting},
		{"debt keyword", "My EMI is eating my salary, what do I do about the loan?", CategoryDebt},
		{"budget keyword", "My rent and expenses are too high", CategoryBudgeting},
		{"scam keyword", "Someone promised guaranteed double returns", CategoryScams},
		{"hindi debt keyword", "mera karz bahut zyada hai", CategoryDebt},
		{"nothing matches", "what is the weather like", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, confidence := DetectCategory(tt.question)
			if got != tt.want {
				t.Errorf("DetectCategory(%q) = %q, want %q", tt.question, got, tt.want)
			}
			if confidence <= 0 || confidence > 1 {
				t.Errorf("confidence %v outside (0,1]", confidence)
			}
		})
	}
}

func TestDetectCategoryFuzzy(t *testing.T) {
	// A misspelled keyword should still land through the fuzzy pass.
	got, _ := DetectCategory("how do i invst my money")
	if got != CategoryInvesting {
		t.Errorf("DetectCategory misspelled = %q, want %q", got, CategoryInvesting)
	}
}
