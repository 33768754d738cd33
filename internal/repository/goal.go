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
	ErrGoalNotFound = errors.New("goal not found")
	// ErrVersionConflict means the row changed since it was read.
	ErrVersionConflict = errors.New("record was modified concurrently")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, ownerID, goalID string) (*model.Goal, error)
	Active(ctx context.Context, ownerID string) (*model.Goal, bool, error)
	SaveFunding(ctx context.Context, goal *model.Goal, now time.Time) error
}

type goalRepository struct {
	db   sqlx.ExtContext
	lock bool
}

func NewGoalRepository(db sqlx.ExtContext) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, owner_id, name, image_url, price, saved_amount, status, version, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.OwnerID,
		goal.Name,
		goal.ImageURL,
		goal.Price,
		goal.SavedAmount,
		goal.Status,
		goal.Version,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, ownerID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND owner_id = $2` + forUpdate(r.db, r.lock)

	err := sqlx.GetContext(ctx, r.db, goal, query, goalID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Active returns the owner's oldest goal in the active state.
func (r *goalRepository) Active(ctx context.Context, ownerID string) (*model.Goal, bool, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE owner_id = $1 AND status = $2
	          ORDER BY created_at ASC, id ASC LIMIT 1` + forUpdate(r.db, r.lock)

	err := sqlx.GetContext(ctx, r.db, goal, query, ownerID, model.GoalStatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return goal, true, nil
}

// SaveFunding writes saved amount and status if the goal's version is
// unchanged since it was read, then bumps the version.
func (r *goalRepository) SaveFunding(ctx context.Context, goal *model.Goal, now time.Time) error {
	query := `UPDATE goals
	          SET saved_amount = $1, status = $2, version = version + 1, updated_at = $3
	          WHERE id = $4 AND version = $5`

	result, err := r.db.ExecContext(ctx, query, goal.SavedAmount, goal.Status, now, goal.ID, goal.Version)
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

	goal.Version++
	goal.UpdatedAt = now
	return nil
}
