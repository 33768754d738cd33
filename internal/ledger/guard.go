package ledger

import (
	"fmt"

	"github.com/skipjar/skipjar/internal/model"
)

type GuardDecision int

const (
	Allowed GuardDecision = iota
	AlreadyLogged
)

func (d GuardDecision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case AlreadyLogged:
		return "already_logged"
	}
	return fmt.Sprintf("GuardDecision(%d)", int(d))
}

// CheckSkip allows at most one skip per habit per calendar day. The decision
// is advisory: stores must repeat the comparison in the conditional write
// that records today's skip.
func CheckSkip(last model.LastSkip, today model.Date) GuardDecision {
	switch l := last.(type) {
	case model.NeverSkipped:
		return Allowed
	case model.SkippedOn:
		if l.Date == today {
			return AlreadyLogged
		}
		return Allowed
	default:
		panic(fmt.Sprintf("ledger: unhandled last skip %T", last))
	}
}
