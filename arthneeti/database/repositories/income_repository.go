package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

type IncomeRepository interface {
	BySession(ctx context.Context, sessionID int64) ([]*models.IncomeSource, error)
	Create(ctx context.Context, source *models.IncomeSource) error
}

type incomeRepository struct {
	db *bun.DB
}

func NewIncomeRepository(db *bun.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) BySession(ctx context.Context, sessionID int64) ([]*models.IncomeSource, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var sources []*models.IncomeSource
	err := r.db.NewSelect().
		Model(&sources).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Scan(ctx)

	return sources, err
}

func (r *incomeRepository) Create(ctx context.Context, source *models.IncomeSource) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewInsert().
		Model(source).
		Returning("id").
		Exec(ctx)

	return err
}
