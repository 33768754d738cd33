package ledger

import (
	"time"

	"github.com/skipjar/skipjar/internal/model"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Calendar turns clock readings into ledger days. All day comparisons use a
// single configured location, not the actor's local zone.
type Calendar struct {
	Clock    Clock
	Location *time.Location
}

func NewCalendar(clock Clock, loc *time.Location) Calendar {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Clock: clock, Location: loc}
}

func (c Calendar) Now() time.Time {
	return c.Clock.Now()
}

func (c Calendar) Today() model.Date {
	return model.DateOf(c.Clock.Now(), c.Location)
}
