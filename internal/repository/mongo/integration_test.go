package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skipjar/skipjar/internal/model"
	"github.com/skipjar/skipjar/internal/repository"
	"github.com/skipjar/skipjar/internal/testutil"
)

// Set MONGO_TEST_URI to a replica set to run these tests.
// Example: MONGO_TEST_URI="mongodb://localhost:27017/?replicaSet=rs0"
func openTestStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set, skipping MongoDB integration test")
	}

	ctx := context.Background()
	store, err := Connect(ctx, uri, fmt.Sprintf("skipjar_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = store.db.Drop(context.Background())
		_ = store.Close()
	})

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestMongoStore_ClaimAndFund(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	today := model.DateOf(now, time.UTC)

	user := testutil.SeedUser(t, store, 0)
	habit := testutil.SeedHabit(t, store, user.ID, 150)
	goal := testutil.SeedGoal(t, store, user.ID, 300, 0)

	err := store.RunInTx(ctx, func(ctx context.Context, tx repository.LedgerTx) error {
		h, err := tx.HabitByID(ctx, habit.ID)
		if err != nil {
			return err
		}
		if err := tx.ClaimSkipDay(ctx, h, today, 1, now); err != nil {
			return err
		}
		g, ok, err := tx.ActiveGoal(ctx, user.ID)
		if err != nil || !ok {
			return fmt.Errorf("active goal: ok=%v err=%v", ok, err)
		}
		g.SavedAmount = g.SavedAmount.Add(h.CostPerOccurrence)
		if err := tx.SaveGoalFunding(ctx, g, now); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, &model.Transaction{
			ID:          "txn-1",
			UserID:      user.ID,
			HabitID:     h.ID,
			GoalID:      g.ID,
			AmountSaved: h.CostPerOccurrence,
			Timestamp:   now,
		})
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}

	stored, err := store.GoalByID(ctx, user.ID, goal.ID)
	if err != nil {
		t.Fatalf("GoalByID: %v", err)
	}
	if !stored.SavedAmount.Equal(decimal.NewFromInt(150)) || stored.Version != 1 {
		t.Errorf("goal saved=%s version=%d", stored.SavedAmount, stored.Version)
	}

	h, _ := store.HabitByID(ctx, habit.ID)
	err = store.ClaimSkipDay(ctx, h, today, 2, now)
	if !errors.Is(err, repository.ErrSkipAlreadyClaimed) {
		t.Errorf("second claim: err = %v", err)
	}

	txns, err := store.TransactionsSince(ctx, now.Add(-time.Hour), 10)
	if err != nil || len(txns) != 1 {
		t.Fatalf("TransactionsSince: %d, %v", len(txns), err)
	}
}

func TestMongoStore_RollbackOnError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	habit := testutil.SeedHabit(t, store, "owner-1", 100)
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(ctx context.Context, tx repository.LedgerTx) error {
		h, err := tx.HabitByID(ctx, habit.ID)
		if err != nil {
			return err
		}
		if err := tx.ClaimSkipDay(ctx, h, model.DateOf(now, time.UTC), 1, now); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunInTx err = %v", err)
	}

	stored, _ := store.HabitByID(ctx, habit.ID)
	if stored.LastSkippedOn != nil {
		t.Errorf("claim survived rollback: %v", *stored.LastSkippedOn)
	}
}

func TestMongoStore_VersionConflict(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	seeded := testutil.SeedGoal(t, store, "owner-1", 500, 0)

	a, _ := store.GoalByID(ctx, "owner-1", seeded.ID)
	b, _ := store.GoalByID(ctx, "owner-1", seeded.ID)

	a.SavedAmount = decimal.NewFromInt(10)
	if err := store.SaveGoalFunding(ctx, a, now); err != nil {
		t.Fatalf("first save: %v", err)
	}
	b.SavedAmount = decimal.NewFromInt(10)
	if err := store.SaveGoalFunding(ctx, b, now); !errors.Is(err, repository.ErrVersionConflict) {
		t.Errorf("stale save: err = %v", err)
	}
}
