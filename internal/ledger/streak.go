package ledger

import (
	"fmt"

	"github.com/skipjar/skipjar/internal/model"
)

// NextStreak extends the streak when the previous skip was yesterday and
// restarts it at 1 otherwise. Same-day skips are rejected by CheckSkip first.
func NextStreak(last model.LastSkip, current int, today model.Date) int {
	switch l := last.(type) {
	case model.NeverSkipped:
		return 1
	case model.SkippedOn:
		if l.Date.AddDays(1) == today {
			return current + 1
		}
		return 1
	default:
		panic(fmt.Sprintf("ledger: unhandled last skip %T", last))
	}
}
