package ledger

import (
	"github.com/shopspring/decimal"
)

const (
	// CurrencyPerXP is how much funded currency earns one XP point.
	CurrencyPerXP = 10
	XPPerLevel    = 100
)

// Standing is a user's gamification state before a skip is applied.
type Standing struct {
	XP            int64
	CurrentStreak int
	LongestStreak int
}

type LevelingResult struct {
	XPEarned      int64
	XP            int64
	Level         int
	LeveledUp     bool
	CurrentStreak int
	LongestStreak int
}

func LevelFor(xp int64) int {
	return int(xp/XPPerLevel) + 1
}

// XPFor truncates: amounts under CurrencyPerXP earn nothing.
func XPFor(amount decimal.Decimal) int64 {
	if !amount.IsPositive() {
		return 0
	}
	return amount.Div(decimal.NewFromInt(CurrencyPerXP)).Floor().IntPart()
}

// Level applies one funded skip to a standing.
func Level(s Standing, amount decimal.Decimal, newStreak int) LevelingResult {
	earned := XPFor(amount)
	xp := s.XP + earned
	level := LevelFor(xp)
	return LevelingResult{
		XPEarned:      earned,
		XP:            xp,
		Level:         level,
		LeveledUp:     level > LevelFor(s.XP),
		CurrentStreak: max(s.CurrentStreak, newStreak),
		LongestStreak: max(s.LongestStreak, newStreak),
	}
}
