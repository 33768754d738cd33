package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skipjar/skipjar/internal/ledger"
	"github.com/skipjar/skipjar/internal/metrics"
	"github.com/skipjar/skipjar/internal/model"
	"github.com/skipjar/skipjar/internal/repository"
)

// maxSkipLogAttempts bounds how often a transaction is re-run after losing
// a version check to a concurrent skip-log.
const maxSkipLogAttempts = 5

type SkipLogRequest struct {
	HabitID string
	Goal    ledger.GoalTarget
	Actor   ledger.Actor
}

type UserUpdate struct {
	XPEarned      int64
	XP            int64
	Level         int
	CurrentStreak int
	LongestStreak int
	LeveledUp     bool
}

type SkipLogResult struct {
	Transaction     *model.Transaction
	NewSavedAmount  decimal.Decimal
	ProgressPercent float64
	Unlocked        bool
	JustUnlocked    bool
	Streak          int
	UserUpdate      *UserUpdate
}

// Notifier is told about milestones after a skip-log has committed.
type Notifier interface {
	NotifyCelebration(ctx context.Context, c Celebration) error
}

type SkipLogService struct {
	store    repository.Store
	calendar ledger.Calendar
	notifier Notifier
}

func NewSkipLogService(store repository.Store, calendar ledger.Calendar, notifier Notifier) *SkipLogService {
	return &SkipLogService{
		store:    store,
		calendar: calendar,
		notifier: notifier,
	}
}

// LogSkip records one skip of a habit. The habit claim, goal funding,
// transaction record and user progress commit together or not at all.
func (s *SkipLogService) LogSkip(ctx context.Context, req SkipLogRequest) (*SkipLogResult, error) {
	start := time.Now()
	defer func() {
		metrics.SkipLogDuration.Observe(time.Since(start).Seconds())
	}()

	now := s.calendar.Now()
	today := model.DateOf(now, s.calendar.Location)

	var (
		result      *SkipLogResult
		celebration *Celebration
		err         error
	)
	for attempt := 1; ; attempt++ {
		result, celebration, err = s.apply(ctx, req, now, today)
		if !errors.Is(err, repository.ErrVersionConflict) || attempt == maxSkipLogAttempts {
			break
		}
		metrics.VersionConflicts.Inc()
		slog.Debug("skip-log lost version check, retrying", "habit_id", req.HabitID, "attempt", attempt)
	}

	if err != nil {
		err = classifySkipLogError(err)
		s.logFailure(req, err)
		return nil, err
	}

	metrics.SkipLogs.WithLabelValues(metrics.OutcomeLogged).Inc()
	metrics.AmountSaved.Add(result.Transaction.AmountSaved.InexactFloat64())
	if result.JustUnlocked {
		metrics.GoalsUnlocked.Inc()
	}
	slog.Info("skip logged",
		"habit_id", result.Transaction.HabitID,
		"goal_id", result.Transaction.GoalID,
		"transaction_id", result.Transaction.ID,
		"amount", result.Transaction.AmountSaved.StringFixed(2),
		"streak", result.Streak,
		"unlocked", result.Unlocked,
	)

	if celebration != nil && s.notifier != nil {
		err := s.notifier.NotifyCelebration(ctx, *celebration)
		if err != nil {
			slog.Warn("failed to send celebration", "error", err, "user_id", celebration.User.ID)
		}
	}

	return result, nil
}

// apply runs one attempt inside a store transaction. Anything it returns
// other than nil rolls the whole attempt back.
func (s *SkipLogService) apply(ctx context.Context, req SkipLogRequest, now time.Time, today model.Date) (*SkipLogResult, *Celebration, error) {
	var (
		result      *SkipLogResult
		celebration *Celebration
	)

	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.LedgerTx) error {
		// The store may run this more than once.
		result, celebration = nil, nil

		habit, err := tx.HabitByID(ctx, req.HabitID)
		if err != nil {
			return err
		}

		last, err := habit.LastSkip()
		if err != nil {
			return fmt.Errorf("habit %s has invalid last skip: %w", habit.ID, err)
		}
		if ledger.CheckSkip(last, today) == ledger.AlreadyLogged {
			return ErrAlreadyLogged
		}

		streak := ledger.NextStreak(last, habit.Streak, today)
		err = tx.ClaimSkipDay(ctx, habit, today, streak, now)
		if errors.Is(err, repository.ErrSkipAlreadyClaimed) {
			return ErrAlreadyLogged
		}
		if err != nil {
			return fmt.Errorf("failed to claim skip day: %w", err)
		}

		resolution, err := ledger.ResolveGoal(ctx, tx, habit.OwnerID, req.Goal)
		if err != nil {
			return err
		}
		var goal *model.Goal
		switch r := resolution.(type) {
		case ledger.Resolved:
			goal = r.Goal
		case ledger.NoneActive:
			return ErrNoActiveGoal
		default:
			return fmt.Errorf("unexpected goal resolution %T", resolution)
		}

		funded, funding, err := ledger.Fund(*goal, habit.CostPerOccurrence)
		if err != nil {
			return fmt.Errorf("failed to fund goal %s: %w", goal.ID, err)
		}
		err = tx.SaveGoalFunding(ctx, &funded, now)
		if err != nil {
			return fmt.Errorf("failed to save goal funding: %w", err)
		}

		txn := &model.Transaction{
			ID:          uuid.New().String(),
			UserID:      habit.OwnerID,
			HabitID:     habit.ID,
			GoalID:      funded.ID,
			AmountSaved: habit.CostPerOccurrence,
			Timestamp:   now.UTC(),
		}
		err = tx.AppendTransaction(ctx, txn)
		if err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		result = &SkipLogResult{
			Transaction:     txn,
			NewSavedAmount:  funding.NewSavedAmount,
			ProgressPercent: funding.ProgressPercent,
			Unlocked:        funding.Unlocked,
			JustUnlocked:    funding.JustUnlocked,
			Streak:          streak,
		}

		actor, ok := req.Actor.(ledger.IdentifiedActor)
		if !ok {
			return nil
		}

		user, err := tx.UserByID(ctx, actor.UserID)
		if errors.Is(err, repository.ErrUserNotFound) {
			slog.Debug("no user record for actor, skipping progress", "user_id", actor.UserID)
			return nil
		}
		if err != nil {
			return err
		}

		leveled := ledger.Level(ledger.Standing{
			XP:            user.XP,
			CurrentStreak: user.CurrentStreak,
			LongestStreak: user.LongestStreak,
		}, habit.CostPerOccurrence, streak)

		user.XP = leveled.XP
		user.Level = leveled.Level
		user.CurrentStreak = leveled.CurrentStreak
		user.LongestStreak = leveled.LongestStreak
		err = tx.SaveUserProgress(ctx, user, now)
		if err != nil {
			return fmt.Errorf("failed to save user progress: %w", err)
		}

		result.UserUpdate = &UserUpdate{
			XPEarned:      leveled.XPEarned,
			XP:            leveled.XP,
			Level:         leveled.Level,
			CurrentStreak: leveled.CurrentStreak,
			LongestStreak: leveled.LongestStreak,
			LeveledUp:     leveled.LeveledUp,
		}

		if funding.JustUnlocked || leveled.LeveledUp {
			celebration = &Celebration{
				User:         user,
				Goal:         &funded,
				GoalUnlocked: funding.JustUnlocked,
				LeveledUp:    leveled.LeveledUp,
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return result, celebration, nil
}

func classifySkipLogError(err error) error {
	switch {
	case errors.Is(err, ErrAlreadyLogged), errors.Is(err, ErrNoActiveGoal):
		return err
	case errors.Is(err, repository.ErrHabitNotFound):
		return ErrHabitNotFound
	case errors.Is(err, repository.ErrGoalNotFound):
		return ErrGoalNotFound
	default:
		return &PersistenceError{Op: "log skip", Err: err}
	}
}

func (s *SkipLogService) logFailure(req SkipLogRequest, err error) {
	switch {
	case errors.Is(err, ErrAlreadyLogged):
		metrics.SkipLogs.WithLabelValues(metrics.OutcomeAlreadyLogged).Inc()
		slog.Info("skip already logged today", "habit_id", req.HabitID)
	case errors.Is(err, ErrNoActiveGoal):
		metrics.SkipLogs.WithLabelValues(metrics.OutcomeNoActiveGoal).Inc()
		slog.Warn("skip-log without active goal", "habit_id", req.HabitID)
	case errors.Is(err, ErrHabitNotFound), errors.Is(err, ErrGoalNotFound):
		metrics.SkipLogs.WithLabelValues(metrics.OutcomeNotFound).Inc()
		slog.Warn("skip-log target not found", "error", err, "habit_id", req.HabitID)
	default:
		metrics.SkipLogs.WithLabelValues(metrics.OutcomeError).Inc()
		slog.Error("failed to log skip", "error", err, "habit_id", req.HabitID)
	}
}
