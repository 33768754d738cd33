package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skipjar/skipjar/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, userID string) (*model.User, error)
	SaveProgress(ctx context.Context, user *model.User, now time.Time) error
	Leaderboard(ctx context.Context, limit int) ([]*model.User, error)
}

type userRepository struct {
	db   sqlx.ExtContext
	lock bool
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, name, display_name, image, currency, is_public, xp, level, current_streak, longest_streak, version, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.DisplayName,
		user.Image,
		user.Currency,
		user.IsPublic,
		user.XP,
		user.Level,
		user.CurrentStreak,
		user.LongestStreak,
		user.Version,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

func (r *userRepository) ByID(ctx context.Context, userID string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1` + forUpdate(r.db, r.lock)

	err := sqlx.GetContext(ctx, r.db, user, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SaveProgress is a version-checked write of the gamification fields.
func (r *userRepository) SaveProgress(ctx context.Context, user *model.User, now time.Time) error {
	query := `UPDATE users
	          SET xp = $1, level = $2, current_streak = $3, longest_streak = $4, version = version + 1, updated_at = $5
	          WHERE id = $6 AND version = $7`

	result, err := r.db.ExecContext(ctx, query,
		user.XP,
		user.Level,
		user.CurrentStreak,
		user.LongestStreak,
		now,
		user.ID,
		user.Version,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrVersionConflict
	}

	user.Version++
	user.UpdatedAt = now
	return nil
}

func (r *userRepository) Leaderboard(ctx context.Context, limit int) ([]*model.User, error) {
	var users []*model.User
	query := `SELECT * FROM users WHERE is_public = $1 ORDER BY xp DESC, created_at ASC LIMIT $2`

	err := sqlx.SelectContext(ctx, r.db, &users, query, true, limit)
	if err != nil {
		return nil, err
	}

	return users, nil
}
