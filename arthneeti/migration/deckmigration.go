package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
	"github.com/arthneeti/game-engine/arthneeti/database/repositories"
)

// DeckMigrator imports legacy scenario decks into Postgres, either from
// the old Mongo deployment or from an exported JSON file.
type DeckMigrator struct {
	pgDB      *bun.DB
	mongoURI  string
	mongoName string
	collName  string
	batchSize int
	log       *slog.Logger

	stats DeckStats
}

// DeckStats summarizes one import run.
type DeckStats struct {
	Read       int
	Imported   int
	Duplicates int
	Invalid    int
	Elapsed    time.Duration
}

func NewDeckMigrator(pgDB *bun.DB, mongoURI, mongoName string, log *slog.Logger) *DeckMigrator {
	if log == nil {
		log = slog.Default()
	}
	return &DeckMigrator{
		pgDB:      pgDB,
		mongoURI:  mongoURI,
		mongoName: mongoName,
		collName:  "scenario_cards",
		batchSize: config.DefaultBatchSize,
		log:       log,
	}
}

// legacyCard mirrors the document shape of the old deployment.
type legacyCard struct {
	Title         string         `bson:"title" json:"title"`
	TitleHi       string         `bson:"title_hi" json:"title_hi"`
	TitleMr       string         `bson:"title_mr" json:"title_mr"`
	Description   string         `bson:"description" json:"description"`
	DescriptionHi string         `bson:"description_hi" json:"description_hi"`
	DescriptionMr string         `bson:"description_mr" json:"description_mr"`
	Category      string         `bson:"category" json:"category"`
	Difficulty    int            `bson:"difficulty" json:"difficulty"`
	MinMonth      int            `bson:"min_month" json:"min_month"`
	Choices       []legacyChoice `bson:"choices" json:"choices"`
}

type legacyChoice struct {
	Text             string `bson:"text" json:"text"`
	WealthImpact     int64  `bson:"wealth_impact" json:"wealth_impact"`
	HappinessImpact  int    `bson:"happiness_impact" json:"happiness_impact"`
	CreditImpact     int    `bson:"credit_impact" json:"credit_impact"`
	LiteracyImpact   int    `bson:"literacy_impact" json:"literacy_impact"`
	Feedback         string `bson:"feedback" json:"feedback"`
	IsRecommended    bool   `bson:"is_recommended" json:"is_recommended"`
	AddExpenseName   string `bson:"add_expense_name" json:"add_expense_name"`
	AddExpenseAmount int64  `bson:"add_expense_amount" json:"add_expense_amount"`
	CancelExpense    string `bson:"cancel_expense" json:"cancel_expense"`
}

// MigrateFromMongo streams the legacy collection and imports it.
func (m *DeckMigrator) MigrateFromMongo(ctx context.Context) (*DeckStats, error) {
	ctx, cancel := context.WithTimeout(ctx, config.MigrationTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	defer client.Disconnect(ctx)

	cursor, err := client.Database(m.mongoName).Collection(m.collName).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", m.collName, err)
	}
	defer cursor.Close(ctx)

	var legacy []legacyCard
	for cursor.Next(ctx) {
		var card legacyCard
		if err := cursor.Decode(&card); err != nil {
			m.log.Warn("Skipping undecodable legacy card",
				slog.String("type", "db"),
				slog.Any("error", err))
			m.stats.Invalid++
			continue
		}
		legacy = append(legacy, card)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor failed: %w", err)
	}

	return m.importLegacy(ctx, legacy)
}

// MigrateFromJSON imports a deck exported as a JSON array.
func (m *DeckMigrator) MigrateFromJSON(ctx context.Context, path string) (*DeckStats, error) {
	ctx, cancel := context.WithTimeout(ctx, config.MigrationTimeout)
	defer cancel()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var legacy []legacyCard
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return m.importLegacy(ctx, legacy)
}

func (m *DeckMigrator) importLegacy(ctx context.Context, legacy []legacyCard) (*DeckStats, error) {
	start := time.Now()
	m.stats.Read = len(legacy)

	cardRepo := repositories.NewCardRepository(m.pgDB)
	existing, err := cardRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing deck: %w", err)
	}
	existingTitles := make([]string, 0, len(existing))
	for _, card := range existing {
		existingTitles = append(existingTitles, strings.ToLower(card.Title))
	}

	var batch []*models.ScenarioCard
	for _, lc := range legacy {
		card, ok := m.convert(lc)
		if !ok {
			m.stats.Invalid++
			continue
		}
		// Legacy decks accumulated near-duplicate cards with slightly
		// different titles; fuzzy matching catches those too.
		if isDuplicateTitle(card.Title, existingTitles) {
			m.stats.Duplicates++
			continue
		}
		existingTitles = append(existingTitles, strings.ToLower(card.Title))
		batch = append(batch, card)
	}

	created, err := cardRepo.BulkCreate(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to import deck: %w", err)
	}
	m.stats.Imported = created
	m.stats.Elapsed = time.Since(start)

	m.log.Info("Deck migration finished",
		slog.String("type", "db"),
		slog.Int("read", m.stats.Read),
		slog.Int("imported", m.stats.Imported),
		slog.Int("duplicates", m.stats.Duplicates),
		slog.Int("invalid", m.stats.Invalid),
		slog.Duration("elapsed", m.stats.Elapsed))

	return &m.stats, nil
}

func (m *DeckMigrator) convert(lc legacyCard) (*models.ScenarioCard, bool) {
	if strings.TrimSpace(lc.Title) == "" || len(lc.Choices) < 2 {
		return nil, false
	}
	if !validCategory(lc.Category) {
		return nil, false
	}

	difficulty := lc.Difficulty
	if difficulty < 1 || difficulty > 5 {
		difficulty = 1
	}
	minMonth := lc.MinMonth
	if minMonth < 1 {
		minMonth = 1
	}

	card := &models.ScenarioCard{
		Title:         lc.Title,
		TitleHi:       lc.TitleHi,
		TitleMr:       lc.TitleMr,
		Description:   lc.Description,
		DescriptionHi: lc.DescriptionHi,
		DescriptionMr: lc.DescriptionMr,
		Category:      lc.Category,
		Difficulty:    difficulty,
		MinMonth:      minMonth,
		IsActive:      true,
	}
	for _, lch := range lc.Choices {
		card.Choices = append(card.Choices, &models.Choice{
			Text:              lch.Text,
			WealthImpact:      lch.WealthImpact,
			HappinessImpact:   lch.HappinessImpact,
			CreditImpact:      lch.CreditImpact,
			LiteracyImpact:    lch.LiteracyImpact,
			Feedback:          lch.Feedback,
			IsRecommended:     lch.IsRecommended,
			AddExpenseName:    lch.AddExpenseName,
			AddExpenseAmount:  lch.AddExpenseAmount,
			CancelExpenseName: lch.CancelExpense,
		})
	}
	return card, true
}

func validCategory(category string) bool {
	switch category {
	case models.CategoryNeeds, models.CategoryWants, models.CategoryEmergency,
		models.CategoryInvestment, models.CategorySocial, models.CategoryTrap,
		models.CategoryNews, models.CategoryQuiz:
		return true
	}
	return false
}

func isDuplicateTitle(title string, existing []string) bool {
	title = strings.ToLower(title)
	for _, t := range existing {
		if t == title || fuzzy.RankMatchNormalized(title, t) == 0 {
			return true
		}
	}
	return false
}
