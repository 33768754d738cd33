package ledger

import (
	"testing"

	"github.com/skipjar/skipjar/internal/model"
)

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name    string
		last    model.LastSkip
		current int
		want    int
	}{
		{"first skip", model.NeverSkipped{}, 0, 1},
		{"yesterday extends", model.SkippedOn{Date: today.AddDays(-1)}, 5, 6},
		{"two day gap resets", model.SkippedOn{Date: today.AddDays(-2)}, 5, 1},
		{"three day gap resets", model.SkippedOn{Date: today.AddDays(-3)}, 5, 1},
		{"stale streak without prior date", model.NeverSkipped{}, 9, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStreak(tt.last, tt.current, today); got != tt.want {
				t.Errorf("NextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextStreak_AcrossMonthBoundary(t *testing.T) {
	// today is March 1st; February 28th 2026 is yesterday.
	last := model.SkippedOn{Date: model.Date{Year: 2026, Month: 2, Day: 28}}
	if got := NextStreak(last, 3, today); got != 4 {
		t.Errorf("NextStreak() = %d, want 4", got)
	}
}
