package arthneeti

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/arthneeti/game-engine/arthneeti/advisor"
	"github.com/arthneeti/game-engine/arthneeti/ai"
	"github.com/arthneeti/game-engine/arthneeti/database"
	"github.com/arthneeti/game-engine/arthneeti/database/repositories"
	"github.com/arthneeti/game-engine/arthneeti/engine"
	"github.com/arthneeti/game-engine/arthneeti/services"
)

// App wires the database, repositories, engine and AI collaborators
// together. Callers (the CLI, a future HTTP layer) talk to App.Engine
// and App.Advisor.
type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB          *database.DB
	Sessions    repositories.SessionRepository
	Cards       repositories.CardRepository
	Profiles    repositories.ProfileRepository
	History     repositories.HistoryRepository
	ReportStore *services.ReportStore

	Engine  *engine.Service
	Advisor *advisor.Advisor
}

func New(cfg Config, version, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// Setup connects to Postgres, ensures the schema and builds the engine
// with its repositories and optional AI collaborators.
func (a *App) Setup(ctx context.Context) error {
	db, err := database.New(ctx, a.Cfg.DB)
	if err != nil {
		return err
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return err
	}
	a.DB = db

	bunDB := db.BunDB()
	a.Sessions = repositories.NewSessionRepository(bunDB)
	a.Cards = repositories.NewCardRepository(bunDB)
	a.Profiles = repositories.NewProfileRepository(bunDB)
	a.History = repositories.NewHistoryRepository(bunDB)

	stores := engine.Stores{
		Sessions:  a.Sessions,
		Cards:     a.Cards,
		ChoiceLog: repositories.NewChoiceLogRepository(bunDB),
		Expenses:  repositories.NewExpenseRepository(bunDB),
		Incomes:   repositories.NewIncomeRepository(bunDB),
		Market:    repositories.NewMarketRepository(bunDB),
		Contracts: repositories.NewContractRepository(bunDB),
		History:   a.History,
		Profiles:  a.Profiles,
	}

	var collab engine.Collaborators
	if a.Cfg.AI.APIKey != "" {
		client := ai.NewGroqClient(a.Cfg.AI.APIKey, a.Cfg.AI.BaseURL, a.Cfg.AI.Model)
		collab.Generator = ai.NewGameMaster(client, slog.Default())
		collab.Reporter = ai.NewNarrator(client)
		a.Advisor = advisor.New(client, slog.Default())
	} else {
		slog.Info("No AI key configured, running with deterministic content only",
			slog.String("type", "ai"))
		a.Advisor = advisor.New(nil, slog.Default())
	}

	if a.Cfg.Spaces.Key != "" {
		store, err := services.NewReportStore(
			a.Cfg.Spaces.Key,
			a.Cfg.Spaces.Secret,
			a.Cfg.Spaces.Region,
			a.Cfg.Spaces.Bucket,
			a.Cfg.Spaces.ReportRoot,
		)
		if err != nil {
			db.Close()
			return err
		}
		a.ReportStore = store
		collab.Archiver = store
	}

	engineCfg := engine.DefaultConfig()
	if a.Cfg.Game.MarketMode != "" {
		engineCfg.MarketMode = engine.MarketMode(a.Cfg.Game.MarketMode)
	}

	var rng *rand.Rand
	if a.Cfg.Game.Seed != 0 {
		rng = rand.New(rand.NewSource(a.Cfg.Game.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a.Engine = engine.NewService(engineCfg, stores, collab, rng, slog.Default())
	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
