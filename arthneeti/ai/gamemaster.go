package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// Completer is the model surface the game master and narrator need.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GameMaster generates scenario cards tailored to a player's career
// stage and current situation.
type GameMaster struct {
	completer Completer
	log       *slog.Logger
}

func NewGameMaster(completer Completer, log *slog.Logger) *GameMaster {
	if log == nil {
		log = slog.Default()
	}
	return &GameMaster{completer: completer, log: log}
}

const gameMasterSystemPrompt = `You are the game master of an Indian personal-finance simulation.
You invent one realistic financial scenario for the player and 2-4 choices for it.
Respond with ONLY a JSON object, no prose, in this shape:
{
  "title": "...",
  "description": "...",
  "choices": [
    {"text": "...", "wealth_impact": -2000, "happiness_impact": 5,
     "credit_impact": 0, "literacy_impact": 2, "feedback": "...",
     "is_recommended": false}
  ]
}
Amounts are in rupees. Impacts must be plausible for the player's wealth.
Exactly one choice may set is_recommended true.`

var stageContexts = map[string]string{
	models.StageStudentFunded:   "a college student living on a family allowance",
	models.StageStudentPartTime: "a student juggling classes and freelance gigs",
	models.StageFresher:         "a fresher in their first job",
	models.StageProfessional:    "an established professional with a solid salary",
	models.StageBusinessOwner:   "a small business owner with variable income",
	models.StageRetired:         "a retiree living on pension and interest",
}

type generatedChoice struct {
	Text            string `json:"text"`
	WealthImpact    int64  `json:"wealth_impact"`
	HappinessImpact int    `json:"happiness_impact"`
	CreditImpact    int    `json:"credit_impact"`
	LiteracyImpact  int    `json:"literacy_impact"`
	Feedback        string `json:"feedback"`
	IsRecommended   bool   `json:"is_recommended"`
}

type generatedCard struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Choices     []generatedChoice `json:"choices"`
}

// Generate asks the model for one scenario. The response is validated
// before anything reaches the deck; a malformed reply is an error, not
// a broken card.
func (g *GameMaster) Generate(ctx context.Context, profile *models.PlayerProfile, wealth int64, month int, category string) (*models.ScenarioCard, []*models.Choice, error) {
	stage := stageContexts[profile.CareerStage]
	if stage == "" {
		stage = stageContexts[models.StageFresher]
	}

	prompt := fmt.Sprintf(
		"Player: %s. Current wealth: ₹%d. Game month: %d of 12.\nScenario category: %s.\nInvent the scenario.",
		stage, wealth, month, category)

	raw, err := g.completer.Complete(ctx, gameMasterSystemPrompt, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario completion failed: %w", err)
	}

	parsed, err := parseGeneratedCard(raw)
	if err != nil {
		return nil, nil, err
	}

	card := &models.ScenarioCard{
		Title:       parsed.Title,
		Description: parsed.Description,
		Category:    category,
	}
	choices := make([]*models.Choice, 0, len(parsed.Choices))
	for _, gc := range parsed.Choices {
		choices = append(choices, &models.Choice{
			Text:            gc.Text,
			WealthImpact:    gc.WealthImpact,
			HappinessImpact: gc.HappinessImpact,
			CreditImpact:    gc.CreditImpact,
			LiteracyImpact:  gc.LiteracyImpact,
			Feedback:        gc.Feedback,
			IsRecommended:   gc.IsRecommended,
		})
	}
	return card, choices, nil
}

// parseGeneratedCard tolerates models that wrap their JSON in code
// fences or chatter, then validates the card shape.
func parseGeneratedCard(raw string) (*generatedCard, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var card generatedCard
	if err := json.Unmarshal([]byte(raw[start:end+1]), &card); err != nil {
		return nil, fmt.Errorf("malformed scenario JSON: %w", err)
	}

	if strings.TrimSpace(card.Title) == "" || strings.TrimSpace(card.Description) == "" {
		return nil, fmt.Errorf("scenario missing title or description")
	}
	if len(card.Choices) < 2 || len(card.Choices) > 4 {
		return nil, fmt.Errorf("scenario has %d choices, want 2-4", len(card.Choices))
	}
	for i, choice := range card.Choices {
		if strings.TrimSpace(choice.Text) == "" {
			return nil, fmt.Errorf("choice %d has no text", i+1)
		}
	}
	return &card, nil
}
