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

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.PlayerProfile, error)
	Save(ctx context.Context, profile *models.PlayerProfile) error
}

type profileRepository struct {
	db *bun.DB
}

func NewProfileRepository(db *bun.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.PlayerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	profile := new(models.PlayerProfile)
	err := r.db.NewSelect().
		Model(profile).
		Where("user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		// No profile yet is not a failure; callers create one on demand.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Save upserts on the user id so first-time players and returning ones
// go through the same path.
func (r *profileRepository) Save(ctx context.Context, profile *models.PlayerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(profile).
		On("CONFLICT (user_id) DO UPDATE").
		Set("career_stage = EXCLUDED.career_stage").
		Set("risk_appetite = EXCLUDED.risk_appetite").
		Set("responsibility_level = EXCLUDED.responsibility_level").
		Set("highest_wealth = EXCLUDED.highest_wealth").
		Set("highest_score = EXCLUDED.highest_score").
		Set("best_credit = EXCLUDED.best_credit").
		Set("best_happiness = EXCLUDED.best_happiness").
		Set("stock_profit = EXCLUDED.stock_profit").
		Set("total_games = EXCLUDED.total_games").
		Set("badges = EXCLUDED.badges").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}
