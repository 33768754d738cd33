package ledger

import (
	"testing"
	"time"

	"github.com/skipjar/skipjar/internal/model"
)

var today = model.Date{Year: 2026, Month: time.March, Day: 1}

func TestCheckSkip(t *testing.T) {
	tests := []struct {
		name string
		last model.LastSkip
		want GuardDecision
	}{
		{"never skipped", model.NeverSkipped{}, Allowed},
		{"skipped today", model.SkippedOn{Date: today}, AlreadyLogged},
		{"skipped yesterday", model.SkippedOn{Date: today.AddDays(-1)}, Allowed},
		{"skipped last year", model.SkippedOn{Date: today.AddDays(-365)}, Allowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckSkip(tt.last, today); got != tt.want {
				t.Errorf("CheckSkip() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalendarToday_UsesConfiguredLocation(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 20:00 UTC is already the next day in Kolkata (+05:30).
	clock := fixedClock(time.Date(2026, time.February, 28, 20, 0, 0, 0, time.UTC))

	if got := NewCalendar(clock, time.UTC).Today(); got != (model.Date{Year: 2026, Month: time.February, Day: 28}) {
		t.Errorf("UTC today = %v", got)
	}
	if got := NewCalendar(clock, kolkata).Today(); got != today {
		t.Errorf("Kolkata today = %v, want %v", got, today)
	}
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }
