package engine

import (
	"context"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// CardFilter narrows the scenario deck. Zero values disable a clause.
type CardFilter struct {
	MaxDifficulty    int
	MaxMonth         int
	Categories       []string
	ExcludeIDs       []int64
	IncludeGenerated bool
}

// Stores the engine consumes. The bun repositories implement these;
// tests substitute in-memory fakes.
type SessionStore interface {
	Get(ctx context.Context, id int64) (*models.GameSession, error)
	Create(ctx context.Context, session *models.GameSession) error
	Update(ctx context.Context, session *models.GameSession) error
}

type CardStore interface {
	Get(ctx context.Context, id int64) (*models.ScenarioCard, error)
	Filter(ctx context.Context, filter CardFilter) ([]*models.ScenarioCard, error)
	Create(ctx context.Context, card *models.ScenarioCard, choices []*models.Choice) error
	Choices(ctx context.Context, cardID int64) ([]*models.Choice, error)
	GetChoice(ctx context.Context, id int64) (*models.Choice, error)
}

type ChoiceLogStore interface {
	Create(ctx context.Context, log *models.PlayerChoice) error
	Count(ctx context.Context, sessionID int64) (int, error)
	SeenCardIDs(ctx context.Context, sessionID int64) ([]int64, error)
}

type ExpenseStore interface {
	Active(ctx context.Context, sessionID int64) ([]*models.RecurringExpense, error)
	Create(ctx context.Context, expense *models.RecurringExpense) error
	Update(ctx context.Context, expense *models.RecurringExpense) error
}

type IncomeStore interface {
	BySession(ctx context.Context, sessionID int64) ([]*models.IncomeSource, error)
	Create(ctx context.Context, source *models.IncomeSource) error
}

type MarketStore interface {
	SaveTrajectory(ctx context.Context, rows []*models.MarketHistory) error
	PricesAt(ctx context.Context, sessionID int64, month int) (map[string]int64, error)
}

type ContractStore interface {
	Create(ctx context.Context, contract *models.FuturesContract) error
}

type HistoryStore interface {
	Create(ctx context.Context, history *models.GameHistory) error
}

type ProfileStore interface {
	Get(ctx context.Context, userID string) (*models.PlayerProfile, error)
	Save(ctx context.Context, profile *models.PlayerProfile) error
}

// Optional AI collaborators. Every one of them may be nil or fail; the
// engine substitutes deterministic content and carries on.
type ScenarioGenerator interface {
	Generate(ctx context.Context, profile *models.PlayerProfile, wealth int64, month int, category string) (*models.ScenarioCard, []*models.Choice, error)
}

type ReportWriter interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

type ReportArchiver interface {
	Put(ctx context.Context, sessionID int64, report string) error
}

// TurnResult is returned by ProcessChoice.
type TurnResult struct {
	Session  *models.GameSession
	Feedback string
	GameOver bool
	Reason   string
	Persona  string
	Chatbot  *ChatbotMessage
}

// SkipResult is returned by ProcessSkip.
type SkipResult struct {
	Session  *models.GameSession
	Message  string
	GameOver bool
	Reason   string
	Persona  string
}

// MonthResult is returned by AdvanceMonth.
type MonthResult struct {
	Report   string
	GameOver bool
	Reason   string
	Chatbot  *ChatbotMessage
}

// LifelineHint is the advisory payload from UseLifeline.
type LifelineHint struct {
	Choice    *models.Choice
	Remaining int
}
