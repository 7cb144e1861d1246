package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// Service is the game engine: it orchestrates session lifecycle, choice
// resolution, month advancement, the market, trading and termination.
// It is single-threaded per session; distinct sessions are independent.
type Service struct {
	cfg Config

	sessions  SessionStore
	cards     CardStore
	choiceLog ChoiceLogStore
	expenses  ExpenseStore
	incomes   IncomeStore
	market    MarketStore
	contracts ContractStore
	history   HistoryStore
	profiles  ProfileStore

	gen      ScenarioGenerator
	reporter ReportWriter
	archive  ReportArchiver

	rng *rand.Rand
	log *slog.Logger
}

// Stores bundles the persistence dependencies of the engine.
type Stores struct {
	Sessions  SessionStore
	Cards     CardStore
	ChoiceLog ChoiceLogStore
	Expenses  ExpenseStore
	Incomes   IncomeStore
	Market    MarketStore
	Contracts ContractStore
	History   HistoryStore
	Profiles  ProfileStore
}

// Collaborators bundles the optional AI-backed dependencies. Any field
// may be nil; the engine then uses its deterministic fallback.
type Collaborators struct {
	Generator ScenarioGenerator
	Reporter  ReportWriter
	Archiver  ReportArchiver
}

func NewService(cfg Config, stores Stores, collab Collaborators, rng *rand.Rand, log *slog.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		sessions:  stores.Sessions,
		cards:     stores.Cards,
		choiceLog: stores.ChoiceLog,
		expenses:  stores.Expenses,
		incomes:   stores.Incomes,
		market:    stores.Market,
		contracts: stores.Contracts,
		history:   stores.History,
		profiles:  stores.Profiles,
		gen:       collab.Generator,
		reporter:  collab.Reporter,
		archive:   collab.Archiver,
		rng:       rng,
		log:       log,
	}
}

// StartNewSession creates a fresh playthrough for a user. The career
// stage on the user's profile shapes starting cash, credit and income;
// the full market trajectory is generated up front and only month 1 is
// revealed.
func (s *Service) StartNewSession(ctx context.Context, userID string) (*models.GameSession, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player profile: %w", err)
	}
	if profile == nil {
		// First run for this user
		profile = &models.PlayerProfile{UserID: userID, CareerStage: models.StageFresher}
		if err := s.profiles.Save(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create player profile: %w", err)
		}
	}

	start, ok := stageStarts[profile.CareerStage]
	if !ok {
		start = stageStarts[models.StageFresher]
	}
	wealth := start.Wealth
	credit := start.Credit
	if wealth == 0 {
		wealth = s.cfg.StartingWealth
	}
	if credit == 0 {
		credit = s.cfg.StartingCredit
	}

	sess := &models.GameSession{
		UserID:            userID,
		CurrentMonth:      s.cfg.StartMonth,
		Wealth:            wealth,
		Happiness:         s.cfg.StartingHappiness,
		CreditScore:       credit,
		FinancialLiteracy: 0,
		Lifelines:         s.cfg.StartingLifelines,
		IsActive:          true,
		MarketPrices:      make(map[string]int64),
		MarketTrends:      make(map[string]int),
		Portfolio:         make(map[string]float64),
		FundNAVs:          make(map[string]float64),
		FundHoldings:      make(map[string]models.FundHolding),
	}
	sess.Level = computeLevel(sess.CurrentMonth, sess.FinancialLiteracy)

	for sector := range Sectors {
		sess.SetTrend(sector, 0)
	}
	for code, fund := range MutualFunds {
		sess.FundNAVs[code] = fund.StartNAV
	}

	trajectory := generateTrajectory(s.rng.Int63(), s.cfg.GameDurationMonths+1)
	for sector, prices := range trajectory {
		sess.SetPrice(sector, prices[0])
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	rows := make([]*models.MarketHistory, 0, len(trajectory)*s.cfg.GameDurationMonths)
	for sector, prices := range trajectory {
		for i, price := range prices {
			rows = append(rows, &models.MarketHistory{
				SessionID: sess.ID,
				Sector:    sector,
				Month:     s.cfg.StartMonth + i,
				Price:     price,
			})
		}
	}
	if err := s.market.SaveTrajectory(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to save market trajectory: %w", err)
	}

	for _, exp := range defaultExpenses {
		if err := s.expenses.Create(ctx, &models.RecurringExpense{
			SessionID:     sess.ID,
			Name:          exp.Name,
			Amount:        exp.Amount,
			Category:      exp.Category,
			IsEssential:   exp.Essential,
			InflationRate: exp.Inflation,
			StartMonth:    sess.CurrentMonth,
		}); err != nil {
			return nil, fmt.Errorf("failed to seed expense %q: %w", exp.Name, err)
		}
	}

	for _, inc := range start.Incomes {
		if err := s.incomes.Create(ctx, &models.IncomeSource{
			SessionID:   sess.ID,
			Name:        inc.Name,
			Amount:      inc.Amount,
			Type:        inc.Type,
			Variability: inc.Variability,
		}); err != nil {
			return nil, fmt.Errorf("failed to seed income %q: %w", inc.Name, err)
		}
	}

	s.log.Info("Session started",
		slog.String("type", "engine"),
		slog.String("operation", "start_session"),
		slog.String("session_id", fmt.Sprintf("%d", sess.ID)),
		slog.String("career_stage", profile.CareerStage),
		slog.Int64("wealth", sess.Wealth))

	return sess, nil
}

// GetNextCard picks the next scenario. With a fixed probability the AI
// game master is asked first; otherwise the deck is filtered to the
// session's tier and the filters are progressively relaxed when empty.
// A nil card with a nil error means the deck is exhausted.
func (s *Service) GetNextCard(ctx context.Context, sessionID int64, userID string) (*models.ScenarioCard, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	refreshLevel(sess)
	spec := levelSpec(sess.Level)

	if s.gen != nil && s.rng.Float64() < s.cfg.AIGenerationChance {
		if card := s.generateCard(ctx, sess, spec); card != nil {
			if err := s.sessions.Update(ctx, sess); err != nil {
				return nil, fmt.Errorf("failed to persist level refresh: %w", err)
			}
			return card, nil
		}
	}

	seen, err := s.choiceLog.SeenCardIDs(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen cards: %w", err)
	}

	filters := []CardFilter{
		{MaxDifficulty: spec.MaxDifficulty, MaxMonth: sess.CurrentMonth, Categories: spec.Categories, ExcludeIDs: seen},
		{MaxDifficulty: spec.MaxDifficulty, MaxMonth: sess.CurrentMonth, ExcludeIDs: seen},
		{MaxDifficulty: spec.MaxDifficulty, MaxMonth: sess.CurrentMonth},
	}

	for _, filter := range filters {
		candidates, err := s.cards.Filter(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to query deck: %w", err)
		}
		if len(candidates) == 0 {
			continue
		}
		// Uniform pick over the candidate pool
		card := candidates[s.rng.Intn(len(candidates))]
		if len(card.Choices) == 0 {
			card.Choices, err = s.cards.Choices(ctx, card.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to load choices: %w", err)
			}
		}
		if err := s.sessions.Update(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist level refresh: %w", err)
		}
		return card, nil
	}

	return nil, nil
}

// generateCard asks the AI game master for a scenario; failures are
// logged and swallowed so the deck path can take over.
func (s *Service) generateCard(ctx context.Context, sess *models.GameSession, spec LevelSpec) *models.ScenarioCard {
	profile, err := s.profiles.Get(ctx, sess.UserID)
	if err != nil || profile == nil {
		return nil
	}

	categories := spec.Categories
	if categories == nil {
		categories = []string{
			models.CategoryNeeds, models.CategoryWants, models.CategoryEmergency,
			models.CategoryInvestment, models.CategorySocial, models.CategoryTrap,
			models.CategoryNews, models.CategoryQuiz,
		}
	}
	category := categories[s.rng.Intn(len(categories))]

	card, choices, err := s.gen.Generate(ctx, profile, sess.Wealth, sess.CurrentMonth, category)
	if err != nil || card == nil {
		if err != nil {
			s.log.Warn("Scenario generation failed, using deck",
				slog.String("type", "ai"),
				slog.Any("error", err))
		}
		return nil
	}

	card.IsGenerated = true
	card.IsActive = true
	card.Difficulty = 3
	card.MinMonth = sess.CurrentMonth
	if err := s.cards.Create(ctx, card, choices); err != nil {
		s.log.Warn("Failed to persist generated card",
			slog.String("type", "ai"),
			slog.Any("error", err))
		return nil
	}
	card.Choices = choices
	return card
}

// UseLifeline spends one hint and returns the recommended choice, or
// the highest-happiness choice when none is flagged. Advisory only.
func (s *Service) UseLifeline(ctx context.Context, sessionID int64, userID string, cardID int64) (*LifelineHint, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Lifelines <= 0 {
		return nil, reject(CodeNoLifelines, "no lifelines remaining")
	}

	choices, err := s.cards.Choices(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load choices: %w", err)
	}
	if len(choices) == 0 {
		return nil, ErrNotFound
	}

	hint := choices[0]
	for _, c := range choices {
		if c.IsRecommended {
			hint = c
			break
		}
		if c.HappinessImpact > hint.HappinessImpact {
			hint = c
		}
	}

	sess.Lifelines--
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &LifelineHint{Choice: hint, Remaining: sess.Lifelines}, nil
}

// loadOwnedSession fetches an active session and verifies ownership.
func (s *Service) loadOwnedSession(ctx context.Context, sessionID int64, userID string) (*models.GameSession, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	if sess.UserID != userID {
		return nil, ErrNotOwner
	}
	if !sess.IsActive {
		return nil, ErrInactive
	}
	return sess, nil
}

// checkGameOver evaluates terminal conditions with fixed precedence:
// bankruptcy, then burnout, then completion.
func (s *Service) checkGameOver(sess *models.GameSession) (bool, string) {
	if sess.Wealth <= 0 {
		return true, models.ReasonBankruptcy
	}
	if sess.Happiness <= 0 {
		return true, models.ReasonBurnout
	}
	if sess.CurrentMonth > s.cfg.GameDurationMonths {
		return true, models.ReasonCompleted
	}
	return false, ""
}
