package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/skipjar/skipjar/internal/model"
)

var (
	ErrNonPositiveAmount = errors.New("funding amount must be positive")
	ErrNonPositivePrice  = errors.New("goal price must be positive")
)

var hundred = decimal.NewFromInt(100)

type FundingResult struct {
	NewSavedAmount  decimal.Decimal
	ProgressPercent float64
	// Unlocked reports the goal's state after funding; JustUnlocked is true
	// only for the call that crossed the price.
	Unlocked     bool
	JustUnlocked bool
}

// Fund adds amount to the goal's savings. Savings beyond the price are kept;
// only the progress percentage is capped at 100. A redeemed goal never
// returns to another status.
func Fund(goal model.Goal, amount decimal.Decimal) (model.Goal, FundingResult, error) {
	if !amount.IsPositive() {
		return goal, FundingResult{}, ErrNonPositiveAmount
	}
	if !goal.Price.IsPositive() {
		return goal, FundingResult{}, ErrNonPositivePrice
	}

	wasRedeemed := goal.IsRedeemed()
	goal.SavedAmount = goal.SavedAmount.Add(amount)
	if !wasRedeemed && goal.SavedAmount.GreaterThanOrEqual(goal.Price) {
		goal.Status = model.GoalStatusRedeemed
	}

	return goal, FundingResult{
		NewSavedAmount:  goal.SavedAmount,
		ProgressPercent: ProgressPercent(goal.SavedAmount, goal.Price),
		Unlocked:        goal.IsRedeemed(),
		JustUnlocked:    !wasRedeemed && goal.IsRedeemed(),
	}, nil
}

// ProgressPercent is min(100, 100*saved/price), truncated to two places so
// only a funded goal reads 100.
func ProgressPercent(saved, price decimal.Decimal) float64 {
	if !price.IsPositive() {
		return 0
	}
	pct := saved.Mul(hundred).Div(price)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return pct.Truncate(2).InexactFloat64()
}
