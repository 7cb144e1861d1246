package engine

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// In-memory stores backing the engine tests. They mimic the bun
// repositories' observable behavior: autoincrement ids, copy-free
// pointer semantics, nil for missing rows.

type fakeSessions struct {
	nextID   int64
	sessions map[int64]*models.GameSession
	updates  int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{nextID: 1, sessions: make(map[int64]*models.GameSession)}
}

func (f *fakeSessions) Get(_ context.Context, id int64) (*models.GameSession, error) {
	return f.sessions[id], nil
}

func (f *fakeSessions) Create(_ context.Context, sess *models.GameSession) error {
	sess.ID = f.nextID
	f.nextID++
	f.sessions[sess.ID] = sess
	return nil
}

func (f *fakeSessions) Update(_ context.Context, sess *models.GameSession) error {
	f.sessions[sess.ID] = sess
	f.updates++
	return nil
}

type fakeCards struct {
	nextID  int64
	cards   map[int64]*models.ScenarioCard
	choices map[int64]*models.Choice
}

func newFakeCards() *fakeCards {
	return &fakeCards{nextID: 1, cards: make(map[int64]*models.ScenarioCard), choices: make(map[int64]*models.Choice)}
}

func (f *fakeCards) Get(_ context.Context, id int64) (*models.ScenarioCard, error) {
	return f.cards[id], nil
}

func (f *fakeCards) Filter(_ context.Context, filter CardFilter) ([]*models.ScenarioCard, error) {
	excluded := make(map[int64]bool, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = true
	}
	allowed := map[string]bool{}
	for _, c := range filter.Categories {
		allowed[c] = true
	}
	var out []*models.ScenarioCard
	for _, card := range f.cards {
		if !card.IsActive || excluded[card.ID] {
			continue
		}
		if card.IsGenerated && !filter.IncludeGenerated {
			continue
		}
		if filter.MaxDifficulty > 0 && card.Difficulty > filter.MaxDifficulty {
			continue
		}
		if filter.MaxMonth > 0 && card.MinMonth > filter.MaxMonth {
			continue
		}
		if len(filter.Categories) > 0 && !allowed[card.Category] {
			continue
		}
		out = append(out, card)
	}
	return out, nil
}

func (f *fakeCards) Create(_ context.Context, card *models.ScenarioCard, choices []*models.Choice) error {
	card.ID = f.nextID
	f.nextID++
	f.cards[card.ID] = card
	for _, ch := range choices {
		ch.ID = f.nextID
		f.nextID++
		ch.CardID = card.ID
		f.choices[ch.ID] = ch
	}
	return nil
}

func (f *fakeCards) Choices(_ context.Context, cardID int64) ([]*models.Choice, error) {
	var out []*models.Choice
	for _, ch := range f.choices {
		if ch.CardID == cardID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeCards) GetChoice(_ context.Context, id int64) (*models.Choice, error) {
	return f.choices[id], nil
}

type fakeChoiceLog struct {
	rows []*models.PlayerChoice
}

func (f *fakeChoiceLog) Create(_ context.Context, row *models.PlayerChoice) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeChoiceLog) Count(_ context.Context, sessionID int64) (int, error) {
	n := 0
	for _, row := range f.rows {
		if row.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (f *fakeChoiceLog) SeenCardIDs(_ context.Context, sessionID int64) ([]int64, error) {
	var out []int64
	for _, row := range f.rows {
		if row.SessionID == sessionID {
			out = append(out, row.CardID)
		}
	}
	return out, nil
}

type fakeExpenses struct {
	nextID int64
	rows   []*models.RecurringExpense
}

func (f *fakeExpenses) Active(_ context.Context, sessionID int64) ([]*models.RecurringExpense, error) {
	var out []*models.RecurringExpense
	for _, row := range f.rows {
		if row.SessionID == sessionID && !row.IsCancelled {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeExpenses) Create(_ context.Context, row *models.RecurringExpense) error {
	f.nextID++
	row.ID = f.nextID
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeExpenses) Update(_ context.Context, _ *models.RecurringExpense) error {
	return nil
}

type fakeIncomes struct {
	nextID int64
	rows   []*models.IncomeSource
}

func (f *fakeIncomes) BySession(_ context.Context, sessionID int64) ([]*models.IncomeSource, error) {
	var out []*models.IncomeSource
	for _, row := range f.rows {
		if row.SessionID == sessionID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeIncomes) Create(_ context.Context, row *models.IncomeSource) error {
	f.nextID++
	row.ID = f.nextID
	f.rows = append(f.rows, row)
	return nil
}

type fakeMarket struct {
	rows []*models.MarketHistory
}

func (f *fakeMarket) SaveTrajectory(_ context.Context, rows []*models.MarketHistory) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeMarket) PricesAt(_ context.Context, sessionID int64, month int) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, row := range f.rows {
		if row.SessionID == sessionID && row.Month == month {
			out[row.Sector] = row.Price
		}
	}
	return out, nil
}

type fakeContracts struct {
	rows []*models.FuturesContract
}

func (f *fakeContracts) Create(_ context.Context, row *models.FuturesContract) error {
	f.rows = append(f.rows, row)
	return nil
}

type fakeHistory struct {
	rows []*models.GameHistory
}

func (f *fakeHistory) Create(_ context.Context, row *models.GameHistory) error {
	f.rows = append(f.rows, row)
	return nil
}

type fakeProfiles struct {
	profiles map[string]*models.PlayerProfile
	getErr   error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]*models.PlayerProfile)}
}

// Get mirrors the repository contract: a missing profile is nil, nil.
func (f *fakeProfiles) Get(_ context.Context, userID string) (*models.PlayerProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, nil
}

func (f *fakeProfiles) Save(_ context.Context, p *models.PlayerProfile) error {
	f.profiles[p.UserID] = p
	return nil
}

// testEnv bundles a service and its fakes for direct inspection.
type testEnv struct {
	svc       *Service
	sessions  *fakeSessions
	cards     *fakeCards
	choiceLog *fakeChoiceLog
	expenses  *fakeExpenses
	incomes   *fakeIncomes
	market    *fakeMarket
	contracts *fakeContracts
	history   *fakeHistory
	profiles  *fakeProfiles
}

func newTestEnv(cfg Config, seed int64) *testEnv {
	env := &testEnv{
		sessions:  newFakeSessions(),
		cards:     newFakeCards(),
		choiceLog: &fakeChoiceLog{},
		expenses:  &fakeExpenses{},
		incomes:   &fakeIncomes{},
		market:    &fakeMarket{},
		contracts: &fakeContracts{},
		history:   &fakeHistory{},
		profiles:  newFakeProfiles(),
	}
	env.svc = NewService(cfg, Stores{
		Sessions:  env.sessions,
		Cards:     env.cards,
		ChoiceLog: env.choiceLog,
		Expenses:  env.expenses,
		Incomes:   env.incomes,
		Market:    env.market,
		Contracts: env.contracts,
		History:   env.history,
		Profiles:  env.profiles,
	}, Collaborators{}, rand.New(rand.NewSource(seed)), slog.Default())
	return env
}

// seedSession installs a ready-to-play session without going through
// StartNewSession, so tests control every field.
func (env *testEnv) seedSession(sess *models.GameSession) *models.GameSession {
	if sess.MarketPrices == nil {
		sess.MarketPrices = map[string]int64{}
		for sector, params := range Sectors {
			sess.MarketPrices[sector] = params.BasePrice
		}
	}
	if sess.MarketTrends == nil {
		sess.MarketTrends = map[string]int{}
	}
	if sess.Portfolio == nil {
		sess.Portfolio = map[string]float64{}
	}
	if sess.FundNAVs == nil {
		sess.FundNAVs = map[string]float64{}
		for code, fund := range MutualFunds {
			sess.FundNAVs[code] = fund.StartNAV
		}
	}
	if sess.FundHoldings == nil {
		sess.FundHoldings = map[string]models.FundHolding{}
	}
	if sess.Level == 0 {
		sess.Level = computeLevel(sess.CurrentMonth, sess.FinancialLiteracy)
	}
	_ = env.sessions.Create(context.Background(), sess)
	return sess
}
