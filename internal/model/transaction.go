package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of one accepted skip-log event.
type Transaction struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"userId"`
	HabitID     string          `db:"habit_id" json:"habitId"`
	GoalID      string          `db:"goal_id" json:"goalId"`
	AmountSaved decimal.Decimal `db:"amount_saved" json:"amountSaved"`
	Timestamp   time.Time       `db:"logged_at" json:"timestamp"`
}
