package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

type ChoiceLogRepository interface {
	Create(ctx context.Context, log *models.PlayerChoice) error
	Count(ctx context.Context, sessionID int64) (int, error)
	SeenCardIDs(ctx context.Context, sessionID int64) ([]int64, error)
}

type choiceLogRepository struct {
	db *bun.DB
}

func NewChoiceLogRepository(db *bun.DB) ChoiceLogRepository {
	return &choiceLogRepository{db: db}
}

func (r *choiceLogRepository) Create(ctx context.Context, log *models.PlayerChoice) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	if log.ChosenAt.IsZero() {
		log.ChosenAt = time.Now()
	}

	_, err := r.db.NewInsert().
		Model(log).
		Returning("id").
		Exec(ctx)

	return err
}

func (r *choiceLogRepository) Count(ctx context.Context, sessionID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	return r.db.NewSelect().
		Model((*models.PlayerChoice)(nil)).
		Where("session_id = ?", sessionID).
		Count(ctx)
}

func (r *choiceLogRepository) SeenCardIDs(ctx context.Context, sessionID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var ids []int64
	err := r.db.NewSelect().
		Model((*models.PlayerChoice)(nil)).
		Column("card_id").
		Where("session_id = ?", sessionID).
		Scan(ctx, &ids)

	return ids, err
}
