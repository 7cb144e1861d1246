package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

type HistoryRepository interface {
	Create(ctx context.Context, history *models.GameHistory) error
	ByUser(ctx context.Context, userID string, limit int) ([]*models.GameHistory, error)
	TopByWealth(ctx context.Context, limit int) ([]*models.GameHistory, error)
}

type historyRepository struct {
	db *bun.DB
}

func NewHistoryRepository(db *bun.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, history *models.GameHistory) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	history.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(history).
		Returning("id").
		Exec(ctx)

	return err
}

func (r *historyRepository) ByUser(ctx context.Context, userID string, limit int) ([]*models.GameHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var rows []*models.GameHistory
	query := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Scan(ctx)

	return rows, err
}

// TopByWealth is the all-time leaderboard, total net worth at game over.
func (r *historyRepository) TopByWealth(ctx context.Context, limit int) ([]*models.GameHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var rows []*models.GameHistory
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("final_wealth + portfolio_value DESC").
		Limit(limit).
		Scan(ctx)

	return rows, err
}
