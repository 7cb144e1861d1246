package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

type MarketRepository interface {
	SaveTrajectory(ctx context.Context, rows []*models.MarketHistory) error
	PricesAt(ctx context.Context, sessionID int64, month int) (map[string]int64, error)
	SectorHistory(ctx context.Context, sessionID int64, sector string) ([]*models.MarketHistory, error)
}

type marketRepository struct {
	db *bun.DB
}

func NewMarketRepository(db *bun.DB) MarketRepository {
	return &marketRepository{db: db}
}

// SaveTrajectory inserts a whole pre-generated horizon in batches.
func (r *marketRepository) SaveTrajectory(ctx context.Context, rows []*models.MarketHistory) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	if len(rows) == 0 {
		return nil
	}

	for i := 0; i < len(rows); i += config.DefaultBatchSize {
		end := i + config.DefaultBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[i:end]
		if _, err := r.db.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *marketRepository) PricesAt(ctx context.Context, sessionID int64, month int) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var rows []*models.MarketHistory
	err := r.db.NewSelect().
		Model(&rows).
		Where("session_id = ?", sessionID).
		Where("month = ?", month).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]int64, len(rows))
	for _, row := range rows {
		prices[row.Sector] = row.Price
	}
	return prices, nil
}

func (r *marketRepository) SectorHistory(ctx context.Context, sessionID int64, sector string) ([]*models.MarketHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var rows []*models.MarketHistory
	err := r.db.NewSelect().
		Model(&rows).
		Where("session_id = ?", sessionID).
		Where("sector = ?", sector).
		Order("month ASC").
		Scan(ctx)

	return rows, err
}
