package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skipjar/skipjar/internal/model"
)

// LedgerTx is the view of storage a skip-log sees inside one transaction.
type LedgerTx interface {
	HabitByID(ctx context.Context, habitID string) (*model.Habit, error)
	ClaimSkipDay(ctx context.Context, habit *model.Habit, today model.Date, streak int, now time.Time) error
	GoalByID(ctx context.Context, ownerID, goalID string) (*model.Goal, error)
	ActiveGoal(ctx context.Context, ownerID string) (*model.Goal, bool, error)
	SaveGoalFunding(ctx context.Context, goal *model.Goal, now time.Time) error
	AppendTransaction(ctx context.Context, txn *model.Transaction) error
	UserByID(ctx context.Context, userID string) (*model.User, error)
	SaveUserProgress(ctx context.Context, user *model.User, now time.Time) error
}

// Store is the persistent document store behind the ledger. RunInTx commits
// every write made through tx, or none of them.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error

	CreateUser(ctx context.Context, user *model.User) error
	CreateHabit(ctx context.Context, habit *model.Habit) error
	CreateGoal(ctx context.Context, goal *model.Goal) error

	HabitByID(ctx context.Context, habitID string) (*model.Habit, error)
	GoalByID(ctx context.Context, ownerID, goalID string) (*model.Goal, error)
	UserByID(ctx context.Context, userID string) (*model.User, error)
	Leaderboard(ctx context.Context, limit int) ([]*model.User, error)
	TransactionsSince(ctx context.Context, since time.Time, limit int) ([]*model.Transaction, error)

	Ping(ctx context.Context) error
	Close() error
}

var _ Store = (*SQLStore)(nil)

// SQLStore implements Store on sqlx (SQLite or Postgres).
type SQLStore struct {
	db *sqlx.DB
	*repositories
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, repositories: newRepositories(db, false)}
}

func (s *SQLStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		rbErr := tx.Rollback()
		if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Warn("failed to roll back transaction", "error", rbErr)
		}
	}()

	err = fn(ctx, newRepositories(tx, true))
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.users.Create(ctx, user)
}

func (s *SQLStore) CreateHabit(ctx context.Context, habit *model.Habit) error {
	return s.habits.Create(ctx, habit)
}

func (s *SQLStore) CreateGoal(ctx context.Context, goal *model.Goal) error {
	return s.goals.Create(ctx, goal)
}

func (s *SQLStore) Leaderboard(ctx context.Context, limit int) ([]*model.User, error) {
	return s.users.Leaderboard(ctx, limit)
}

func (s *SQLStore) TransactionsSince(ctx context.Context, since time.Time, limit int) ([]*model.Transaction, error) {
	return s.transactions.Since(ctx, since, limit)
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// repositories binds the per-entity repositories to one executor, either
// the pool or an open transaction.
type repositories struct {
	habits       *habitRepository
	goals        *goalRepository
	users        *userRepository
	transactions *transactionRepository
}

func newRepositories(db sqlx.ExtContext, lock bool) *repositories {
	return &repositories{
		habits:       &habitRepository{db: db, lock: lock},
		goals:        &goalRepository{db: db, lock: lock},
		users:        &userRepository{db: db, lock: lock},
		transactions: &transactionRepository{db: db},
	}
}

func (r *repositories) HabitByID(ctx context.Context, habitID string) (*model.Habit, error) {
	return r.habits.ByID(ctx, habitID)
}

func (r *repositories) ClaimSkipDay(ctx context.Context, habit *model.Habit, today model.Date, streak int, now time.Time) error {
	return r.habits.ClaimSkipDay(ctx, habit, today, streak, now)
}

func (r *repositories) GoalByID(ctx context.Context, ownerID, goalID string) (*model.Goal, error) {
	return r.goals.ByID(ctx, ownerID, goalID)
}

func (r *repositories) ActiveGoal(ctx context.Context, ownerID string) (*model.Goal, bool, error) {
	return r.goals.Active(ctx, ownerID)
}

func (r *repositories) SaveGoalFunding(ctx context.Context, goal *model.Goal, now time.Time) error {
	return r.goals.SaveFunding(ctx, goal, now)
}

func (r *repositories) AppendTransaction(ctx context.Context, txn *model.Transaction) error {
	return r.transactions.Append(ctx, txn)
}

func (r *repositories) UserByID(ctx context.Context, userID string) (*model.User, error) {
	return r.users.ByID(ctx, userID)
}

func (r *repositories) SaveUserProgress(ctx context.Context, user *model.User, now time.Time) error {
	return r.users.SaveProgress(ctx, user, now)
}

// forUpdate adds row locking on Postgres so concurrent skip-logs queue on
// the row instead of failing the version check. SQLite serializes writers
// through _txlock=immediate instead.
func forUpdate(db sqlx.ExtContext, lock bool) string {
	if lock && db.DriverName() == "pgx" {
		return " FOR UPDATE"
	}
	return ""
}
