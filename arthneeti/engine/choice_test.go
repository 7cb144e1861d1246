package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

func seedCard(t *testing.T, env *testEnv, card *models.ScenarioCard, choices ...*models.Choice) (*models.ScenarioCard, []*models.Choice) {
	t.Helper()
	if card.Category == "" {
		card.Category = models.CategoryWants
	}
	card.IsActive = true
	if card.Difficulty == 0 {
		card.Difficulty = 1
	}
	if err := env.cards.Create(context.Background(), card, choices); err != nil {
		t.Fatalf("seedCard: %v", err)
	}
	return card, choices
}

func TestProcessChoiceAppliesDeltas(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := env.seedSession(&models.GameSession{
		UserID: "u", CurrentMonth: 1, Wealth: 25000, Happiness: 100, CreditScore: 700, IsActive: true,
	})
	card, choices := seedCard(t, env,
		&models.ScenarioCard{Title: "Weekend trip"},
		&models.Choice{Text: "Go", WealthImpact: -3000, HappinessImpact: 10, CreditImpact: -5, LiteracyImpact: 2, Feedback: "Worth it?"},
	)

	result, err := env.svc.ProcessChoice(context.Background(), sess.ID, "u", card.ID, choices[0].ID)
	if err != nil {
		t.Fatalf("ProcessChoice: %v", err)
	}
	if sess.Wealth != 22000 {
		t.Errorf("Wealth = %d, want 22000", sess.Wealth)
	}
	if sess.Happiness != 100 {
		t.Errorf("Happiness = %d, want clamped 100", sess.Happiness)
	}
	if sess.CreditScore != 695 {
		t.Errorf("CreditScore = %d, want 695", sess.CreditScore)
	}
	if sess.FinancialLiteracy != 2 {
		t.Errorf("FinancialLiteracy = %d, want 2", sess.FinancialLiteracy)
	}
	if !strings.Contains(result.Feedback, "Worth it?") {
		t.Errorf("Feedback %q missing choice feedback", result.Feedback)
	}
	if result.GameOver {
		t.Error("unexpected game over")
	}
}

func TestProcessChoiceClamps(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := env.seedSession(&models.GameSession{
		UserID: "u", CurrentMonth: 1, Wealth: 25000, Happiness: 3, CreditScore: 310, IsActive: true,
	})
	card, choices := seedCard(t, env,
		&models.ScenarioCard{Title: "Disaster"},
		&models.Choice{Text: "Endure", HappinessImpact: -50, CreditImpact: -50},
	)

	result, err := env.svc.ProcessChoice(context.Background(), sess.ID, "u", card.ID, choices[0].ID)
	if err != nil {
		t.Fatalf("ProcessChoice: %v", err)
	}
	if sess.Happiness != 0 {
		t.Errorf("Happiness = %d, want clamp at 0", sess.Happiness)
	}
	if sess.CreditScore != models.CreditMin {
		t.Errorf("CreditScore = %d, want clamp at %d", sess.CreditScore, models.CreditMin)
	}
	// Happiness hitting zero terminates the run.
	if !result.GameOver || result.Reason != models.ReasonBurnout {
		t.Errorf("GameOver=%v Reason=%q, want burnout", result.GameOver, result.Reason)
	}
	if result.Persona == "" {
		t.Error("terminal result missing persona")
	}
	if sess.IsActive {
		t.Error("session still active after termination")
	}
}

func TestProcessChoiceAddsAndCancelsExpenses(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := env.seedSession(&models.GameSession{
		UserID: "u", CurrentMonth: 2, Wealth: 25000, Happiness: 80, CreditScore: 700, IsActive: true,
	})
	card, choices := seedCard(t, env,
		&models.ScenarioCard{Title: "Gym membership"},
		&models.Choice{Text: "Sign up", AddExpenseName: "Gym", AddExpenseAmount: 1500},
		&models.Choice{Text: "Quit gym", CancelExpenseName: "Gym"},
	)

	if _, err := env.svc.ProcessChoice(context.Background(), sess.ID, "u", card.ID, choices[0].ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	active, _ := env.expenses.Active(context.Background(), sess.ID)
	if len(active) != 1 || active[0].Name != "Gym" || active[0].Amount != 1500 {
		t.Fatalf("active expenses = %+v, want one Gym at 1500", active)
	}
	if active[0].Category != models.ExpenseLifestyle {
		t.Errorf("Category = %q, want %q", active[0].Category, models.ExpenseLifestyle)
	}

	if _, err := env.svc.ProcessChoice(context.Background(), sess.ID, "u", card.ID, choices[1].ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	active, _ = env.expenses.Active(context.Background(), sess.ID)
	if len(active) != 0 {
		t.Fatalf("expense not cancelled: %+v", active)
	}
}

func TestProcessChoiceMonthBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MarketMode = ModeLive
	env := newTestEnv(cfg, 9)
	sess := env.seedSession(&models.GameSession{
		UserID: "u", CurrentMonth: 1, Wealth: 500000, Happiness: 80, CreditScore: 700, IsActive: true,
	})
	card, choices := seedCard(t, env,
		&models.ScenarioCard{Title: "Coffee"},
		&models.Choice{Text: "Buy", WealthImpact: -100},
	)

	for turn := 1; turn <= cfg.CardsPerMonth; turn++ {
		result, err := env.svc.ProcessChoice(context.Background(), sess.ID, "u", card.ID, choices[0].ID)
		if err != nil {
			t.Fatalf("turn %d: %v", turn, err)
		}
		wantMonth := 1
		if turn == cfg.CardsPerMonth {
			wantMonth = 2
		}
		if sess.CurrentMonth != wantMonth {
			t.Fatalf("turn %d: CurrentMonth = %d, want %d", turn, sess.CurrentMonth, wantMonth)
		}
		if turn == cfg.CardsPerMonth && !strings.Contains(result.Feedback, "--- Month 2 ---") {
			t.Errorf("month boundary feedback missing report: %q", result.Feedback)
		}
	}
}

func TestProcessChoiceBankruptcyBeforeBoundary(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := env.seedSession(&models.GameSession{
		UserID: "u", CurrentMonth: 1, Wealth: 1000, Happiness: 80, CreditScore: 700, IsActive: true,
	})
	card, choices := seedCard(t, env,
		&models.ScenarioCard{Title: "Bad bet"},
		&models.Choice{Text: "All in", WealthImpact: -5000},
	)

	result, err := env.svc.ProcessChoice(context.Background(), sess.ID, "u", card.ID, choices[0].ID)
	if err != nil {
		t.Fatalf("ProcessChoice: %v", err)
	}
	if !result.GameOver || result.Reason != models.ReasonBankruptcy {
		t.Fatalf("GameOver=%v Reason=%q, want bankruptcy", result.GameOver, result.Reason)
	}
	if len(env.history.rows) != 1 {
		t.Fatalf("history rows = %d, want 1", len(env.history.rows))
	}
	if env.history.rows[0].Reason != models.ReasonBankruptcy {
		t.Errorf("history reason = %q", env.history.rows[0].Reason)
	}
}

func TestProcessChoiceRejectsMismatchedChoice(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := env.seedSession(&models.GameSession{
		UserID: "u", CurrentMonth: 1, Wealth: 25000, Happiness: 80, CreditScore: 700, IsActive: true,
	})
	cardA, _ := seedCard(t, env, &models.ScenarioCard{Title: "A"}, &models.Choice{Text: "a"})
	_, choicesB := seedCard(t, env, &models.ScenarioCard{Title: "B"}, &models.Choice{Text: "b"})

	if _, err := env.svc.ProcessChoice(context.Background(), sess.ID, "u", cardA.ID, choicesB[0].ID); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestProcessSkipPenalties(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		wantHappiness int
		wantCredit    int
	}{
		{"default skip", models.CategoryWants, 75, 695},
		{"emergency skip", models.CategoryEmergency, 65, 680},
		{"needs skip", models.CategoryNeeds, 65, 680},
		{"investment skip", models.CategoryInvestment, 80, 690},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(DefaultConfig(), 1)
			sess := env.seedSession(&models.GameSession{
				UserID: "u", CurrentMonth: 1, Wealth: 25000, Happiness: 80, CreditScore: 700, IsActive: true,
			})
			card, _ := seedCard(t, env, &models.ScenarioCard{Title: "x", Category: tt.category}, &models.Choice{Text: "y"})

			result, err := env.svc.ProcessSkip(context.Background(), sess.ID, "u", card.ID)
			if err != nil {
				t.Fatalf("ProcessSkip: %v", err)
			}
			if sess.Happiness != tt.wantHappiness {
				t.Errorf("Happiness = %d, want %d", sess.Happiness, tt.wantHappiness)
			}
			if sess.CreditScore != tt.wantCredit {
				t.Errorf("CreditScore = %d, want %d", sess.CreditScore, tt.wantCredit)
			}
			if result.GameOver {
				t.Error("unexpected game over")
			}
			// Skips count as seen for deck exclusion.
			seen, _ := env.choiceLog.SeenCardIDs(context.Background(), sess.ID)
			if len(seen) != 1 || seen[0] != card.ID {
				t.Errorf("seen = %v, want [%d]", seen, card.ID)
			}
		})
	}
}

func TestOwnershipAndLifecycleGuards(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := env.seedSession(&models.GameSession{
		UserID: "owner", CurrentMonth: 1, Wealth: 25000, Happiness: 80, CreditScore: 700, IsActive: true,
	})
	card, choices := seedCard(t, env, &models.ScenarioCard{Title: "x"}, &models.Choice{Text: "y"})

	if _, err := env.svc.ProcessChoice(context.Background(), sess.ID, "intruder", card.ID, choices[0].ID); err != ErrNotOwner {
		t.Errorf("foreign user err = %v, want ErrNotOwner", err)
	}
	if _, err := env.svc.ProcessChoice(context.Background(), 999, "owner", card.ID, choices[0].ID); err != ErrNotFound {
		t.Errorf("missing session err = %v, want ErrNotFound", err)
	}

	sess.IsActive = false
	if _, err := env.svc.ProcessChoice(context.Background(), sess.ID, "owner", card.ID, choices[0].ID); err != ErrInactive {
		t.Errorf("inactive session err = %v, want ErrInactive", err)
	}
}
