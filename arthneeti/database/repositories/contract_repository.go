package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *models.FuturesContract) error
	BySession(ctx context.Context, sessionID int64) ([]*models.FuturesContract, error)
}

type contractRepository struct {
	db *bun.DB
}

func NewContractRepository(db *bun.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, contract *models.FuturesContract) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	contract.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(contract).
		Returning("id").
		Exec(ctx)

	return err
}

func (r *contractRepository) BySession(ctx context.Context, sessionID int64) ([]*models.FuturesContract, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var contracts []*models.FuturesContract
	err := r.db.NewSelect().
		Model(&contracts).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Scan(ctx)

	return contracts, err
}
