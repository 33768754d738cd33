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
	ErrHabitNotFound = errors.New("habit not found")
	// ErrSkipAlreadyClaimed means another writer recorded a skip for the
	// habit after it was read.
	ErrSkipAlreadyClaimed = errors.New("skip already claimed for this habit")
)

type HabitRepository interface {
	Create(ctx context.Context, habit *model.Habit) error
	ByID(ctx context.Context, habitID string) (*model.Habit, error)
	ClaimSkipDay(ctx context.Context, habit *model.Habit, today model.Date, streak int, now time.Time) error
}

type habitRepository struct {
	db   sqlx.ExtContext
	lock bool
}

func NewHabitRepository(db sqlx.ExtContext) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(ctx context.Context, habit *model.Habit) error {
	query := `INSERT INTO habits (id, owner_id, name, category, frequency, cost_per_occurrence, streak, last_skipped_on, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		habit.ID,
		habit.OwnerID,
		habit.Name,
		habit.Category,
		habit.Frequency,
		habit.CostPerOccurrence,
		habit.Streak,
		habit.LastSkippedOn,
		habit.IsActive,
		habit.CreatedAt,
		habit.UpdatedAt,
	)

	return err
}

func (r *habitRepository) ByID(ctx context.Context, habitID string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1` + forUpdate(r.db, r.lock)

	err := sqlx.GetContext(ctx, r.db, habit, query, habitID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	return habit, nil
}

// ClaimSkipDay records today's skip only if the habit still carries the
// last-skip day it was read with and that day is not today. Concurrent
// callers racing on the same habit see exactly one success; the rest get
// ErrSkipAlreadyClaimed.
func (r *habitRepository) ClaimSkipDay(ctx context.Context, habit *model.Habit, today model.Date, streak int, now time.Time) error {
	previous := ""
	if habit.LastSkippedOn != nil {
		previous = *habit.LastSkippedOn
	}
	day := today.String()

	query := `UPDATE habits
	          SET streak = $1, last_skipped_on = $2, updated_at = $3
	          WHERE id = $4 AND COALESCE(last_skipped_on, '') = $5 AND COALESCE(last_skipped_on, '') <> $2`

	result, err := r.db.ExecContext(ctx, query, streak, day, now, habit.ID, previous)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSkipAlreadyClaimed
	}

	habit.Streak = streak
	habit.LastSkippedOn = &day
	habit.UpdatedAt = now
	return nil
}
