package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

type SessionRepository interface {
	Get(ctx context.Context, id int64) (*models.GameSession, error)
	Create(ctx context.Context, session *models.GameSession) error
	Update(ctx context.Context, session *models.GameSession) error
	GetActiveByUser(ctx context.Context, userID string) (*models.GameSession, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type sessionRepository struct {
	db *bun.DB
}

func NewSessionRepository(db *bun.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.GameSession, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	session := new(models.GameSession)
	err := r.db.NewSelect().
		Model(session).
		Where("id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(session).
		Returning("id").
		Exec(ctx)

	return err
}

func (r *sessionRepository) Update(ctx context.Context, session *models.GameSession) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	session.UpdatedAt = time.Now()

	_, err := r.db.NewUpdate().
		Model(session).
		WherePK().
		Exec(ctx)

	return err
}

// GetActiveByUser returns the user's live session, or nil when every run
// has terminated. A user has at most one active session.
func (r *sessionRepository) GetActiveByUser(ctx context.Context, userID string) (*models.GameSession, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	session := new(models.GameSession)
	err := r.db.NewSelect().
		Model(session).
		Where("user_id = ?", userID).
		Where("is_active = true").
		Order("id DESC").
		Limit(1).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	return r.db.NewSelect().
		Model((*models.GameSession)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
}
