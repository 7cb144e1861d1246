package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/uptrace/bun"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
	"github.com/arthneeti/game-engine/arthneeti/engine"
)

type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.ScenarioCard, error)
	Filter(ctx context.Context, filter engine.CardFilter) ([]*models.ScenarioCard, error)
	Create(ctx context.Context, card *models.ScenarioCard, choices []*models.Choice) error
	Choices(ctx context.Context, cardID int64) ([]*models.Choice, error)
	GetChoice(ctx context.Context, id int64) (*models.Choice, error)
	GetAll(ctx context.Context) ([]*models.ScenarioCard, error)
	SearchByTitle(ctx context.Context, query string, limit int) ([]*models.ScenarioCard, error)
	BulkCreate(ctx context.Context, cards []*models.ScenarioCard) (int, error)
	Count(ctx context.Context) (int64, error)
}

type cachedDeck struct {
	cards    []*models.ScenarioCard
	cachedAt time.Time
}

type cardRepository struct {
	db    *bun.DB
	cache *lru.Cache
}

func NewCardRepository(db *bun.DB) CardRepository {
	cache, _ := lru.New(config.DeckCacheSize)
	return &cardRepository{db: db, cache: cache}
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.ScenarioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	card := new(models.ScenarioCard)
	err := r.db.NewSelect().
		Model(card).
		Relation("Choices").
		Where("sc.id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

func filterCacheKey(f engine.CardFilter) string {
	ids := make([]string, len(f.ExcludeIDs))
	for i, id := range f.ExcludeIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("filter:d=%d:m=%d:cat=%s:gen=%v:ex=%s",
		f.MaxDifficulty, f.MaxMonth, strings.Join(f.Categories, ","),
		f.IncludeGenerated, strings.Join(ids, ","))
}

func (r *cardRepository) Filter(ctx context.Context, filter engine.CardFilter) ([]*models.ScenarioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	cacheKey := filterCacheKey(filter)
	if cached, ok := r.cache.Get(cacheKey); ok {
		entry := cached.(cachedDeck)
		if time.Since(entry.cachedAt) < config.CacheExpiration {
			return entry.cards, nil
		}
		r.cache.Remove(cacheKey)
	}

	query := r.db.NewSelect().
		Model((*models.ScenarioCard)(nil)).
		Relation("Choices").
		Where("sc.is_active = true")

	if !filter.IncludeGenerated {
		query = query.Where("sc.is_generated = false")
	}
	if filter.MaxDifficulty > 0 {
		query = query.Where("sc.difficulty <= ?", filter.MaxDifficulty)
	}
	if filter.MaxMonth > 0 {
		query = query.Where("sc.min_month <= ?", filter.MaxMonth)
	}
	if len(filter.Categories) > 0 {
		query = query.Where("sc.category IN (?)", bun.In(filter.Categories))
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("sc.id NOT IN (?)", bun.In(filter.ExcludeIDs))
	}

	var cards []*models.ScenarioCard
	if err := query.Order("sc.id ASC").Scan(ctx, &cards); err != nil {
		return nil, err
	}

	r.cache.Add(cacheKey, cachedDeck{cards: cards, cachedAt: time.Now()})
	return cards, nil
}

// Create inserts a card and its choices in one transaction so a card
// can never exist without answers.
func (r *cardRepository) Create(ctx context.Context, card *models.ScenarioCard, choices []*models.Choice) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()
	if _, err := tx.NewInsert().Model(card).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}

	for _, choice := range choices {
		choice.CardID = card.ID
	}
	if len(choices) > 0 {
		if _, err := tx.NewInsert().Model(&choices).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert choices: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Deck membership changed; cached filter results are stale.
	r.cache.Purge()
	return nil
}

func (r *cardRepository) Choices(ctx context.Context, cardID int64) ([]*models.Choice, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var choices []*models.Choice
	err := r.db.NewSelect().
		Model(&choices).
		Where("card_id = ?", cardID).
		Order("id ASC").
		Scan(ctx)

	return choices, err
}

func (r *cardRepository) GetChoice(ctx context.Context, id int64) (*models.Choice, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	choice := new(models.Choice)
	err := r.db.NewSelect().
		Model(choice).
		Where("id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return choice, nil
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.ScenarioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var cards []*models.ScenarioCard
	err := r.db.NewSelect().
		Model(&cards).
		Relation("Choices").
		Order("sc.id ASC").
		Scan(ctx)

	return cards, err
}

// SearchByTitle does a broad LIKE pull and ranks the results with fuzzy
// matching, so partial and misspelled queries still land.
func (r *cardRepository) SearchByTitle(ctx context.Context, query string, limit int) ([]*models.ScenarioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SearchTimeout)
	defer cancel()

	var cards []*models.ScenarioCard
	err := r.db.NewSelect().
		Model(&cards).
		Where("sc.is_active = true").
		Order("sc.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var exact, fuzzyHits []*models.ScenarioCard
	for _, card := range cards {
		title := strings.ToLower(card.Title)
		switch {
		case strings.Contains(title, query):
			exact = append(exact, card)
		case fuzzy.Match(query, title):
			fuzzyHits = append(fuzzyHits, card)
		}
	}

	results := append(exact, fuzzyHits...)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// BulkCreate batch-inserts cards that already carry their choices,
// skipping titles that exist. Used by the deck importer and seeder.
func (r *cardRepository) BulkCreate(ctx context.Context, cards []*models.ScenarioCard) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SeedTimeout)
	defer cancel()

	if len(cards) == 0 {
		return 0, nil
	}

	created := 0
	for i := 0; i < len(cards); i += config.DefaultBatchSize {
		end := i + config.DefaultBatchSize
		if end > len(cards) {
			end = len(cards)
		}
		for _, card := range cards[i:end] {
			exists, err := r.db.NewSelect().
				Model((*models.ScenarioCard)(nil)).
				Where("title = ?", card.Title).
				Exists(ctx)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}
			choices := card.Choices
			card.Choices = nil
			if err := r.Create(ctx, card, choices); err != nil {
				return created, err
			}
			card.Choices = choices
			created++
		}
	}

	r.cache.Purge()
	return created, nil
}

func (r *cardRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	n, err := r.db.NewSelect().
		Model((*models.ScenarioCard)(nil)).
		Count(ctx)
	return int64(n), err
}
