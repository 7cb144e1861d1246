package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

type ExpenseRepository interface {
	Active(ctx context.Context, sessionID int64) ([]*models.RecurringExpense, error)
	Create(ctx context.Context, expense *models.RecurringExpense) error
	Update(ctx context.Context, expense *models.RecurringExpense) error
}

type expenseRepository struct {
	db *bun.DB
}

func NewExpenseRepository(db *bun.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Active(ctx context.Context, sessionID int64) ([]*models.RecurringExpense, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var expenses []*models.RecurringExpense
	err := r.db.NewSelect().
		Model(&expenses).
		Where("session_id = ?", sessionID).
		Where("is_cancelled = false").
		Order("id ASC").
		Scan(ctx)

	return expenses, err
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.RecurringExpense) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewInsert().
		Model(expense).
		Returning("id").
		Exec(ctx)

	return err
}

func (r *expenseRepository) Update(ctx context.Context, expense *models.RecurringExpense) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewUpdate().
		Model(expense).
		WherePK().
		Exec(ctx)

	return err
}
