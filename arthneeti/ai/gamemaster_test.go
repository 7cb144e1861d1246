package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return s.reply, s.err
}

const validReply = `Here you go:
{
  "title": "Cousin's Wedding Gift",
  "description": "Your cousin is getting married and the family expects a generous gift.",
  "choices": [
    {"text": "Gift ₹5000 cash", "wealth_impact": -5000, "happiness_impact": 8, "feedback": "Family ties matter."},
    {"text": "Give a thoughtful ₹1000 present", "wealth_impact": -1000, "happiness_impact": 3,
     "literacy_impact": 2, "is_recommended": true}
  ]
}
Hope that works!`

func TestGenerateParsesModelReply(t *testing.T) {
	gm := NewGameMaster(&stubCompleter{reply: validReply}, nil)
	profile := &models.PlayerProfile{UserID: "u", CareerStage: models.StageFresher}

	card, choices, err := gm.Generate(context.Background(), profile, 25000, 2, models.CategorySocial)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if card.Title != "Cousin's Wedding Gift" {
		t.Errorf("Title = %q", card.Title)
	}
	if card.Category != models.CategorySocial {
		t.Errorf("Category = %q, want %q", card.Category, models.CategorySocial)
	}
	if len(choices) != 2 {
		t.Fatalf("choices = %d, want 2", len(choices))
	}
	if choices[0].WealthImpact != -5000 {
		t.Errorf("WealthImpact = %d, want -5000", choices[0].WealthImpact)
	}
	if !choices[1].IsRecommended {
		t.Error("recommended flag lost")
	}
}

func TestGenerateRejectsMalformedReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no JSON at all", "Sorry, I cannot help with that."},
		{"broken JSON", `{"title": "x", "description": }`},
		{"missing title", `{"title": "", "description": "d", "choices": [{"text": "a"}, {"text": "b"}]}`},
		{"one choice only", `{"title": "t", "description": "d", "choices": [{"text": "a"}]}`},
		{"five choices", `{"title": "t", "description": "d", "choices": [
			{"text": "a"}, {"text": "b"}, {"text": "c"}, {"text": "d"}, {"text": "e"}]}`},
		{"blank choice text", `{"title": "t", "description": "d", "choices": [{"text": "a"}, {"text": "  "}]}`},
	}
	profile := &models.PlayerProfile{UserID: "u", CareerStage: models.StageFresher}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gm := NewGameMaster(&stubCompleter{reply: tt.reply}, nil)
			if _, _, err := gm.Generate(context.Background(), profile, 25000, 2, models.CategoryWants); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGeneratePropagatesModelErrors(t *testing.T) {
	gm := NewGameMaster(&stubCompleter{err: errors.New("rate limited")}, nil)
	profile := &models.PlayerProfile{UserID: "u", CareerStage: models.StageProfessional}
	if _, _, err := gm.Generate(context.Background(), profile, 100000, 5, models.CategoryWants); err == nil {
		t.Error("expected error")
	}
}

func TestNarrate(t *testing.T) {
	n := NewNarrator(&stubCompleter{reply: "  # Report\nWell played.  "})
	report, err := n.Narrate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Narrate: %v", err)
	}
	if report != "# Report\nWell played." {
		t.Errorf("report = %q", report)
	}

	n = NewNarrator(&stubCompleter{reply: "   "})
	if _, err := n.Narrate(context.Background(), "prompt"); err == nil {
		t.Error("expected error on blank report")
	}
}
