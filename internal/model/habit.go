package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	HabitCategoryFood      = "food"
	HabitCategoryTransport = "transport"
	HabitCategoryDigital   = "digital"
	HabitCategorySmoking   = "smoking"
	HabitCategoryOther     = "other"

	HabitFrequencyDaily   = "daily"
	HabitFrequencyWeekly  = "weekly"
	HabitFrequencyMonthly = "monthly"
)

type Habit struct {
	ID                string          `db:"id" json:"id"`
	OwnerID           string          `db:"owner_id" json:"ownerId"`
	Name              string          `db:"name" json:"name"`
	Category          string          `db:"category" json:"category"`
	Frequency         string          `db:"frequency" json:"frequency"`
	CostPerOccurrence decimal.Decimal `db:"cost_per_occurrence" json:"costPerOccurrence"`
	Streak            int             `db:"streak" json:"streak"`
	LastSkippedOn     *string         `db:"last_skipped_on" json:"lastSkippedOn,omitempty"` // YYYY-MM-DD
	IsActive          bool            `db:"is_active" json:"isActive"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}

// LastSkip decodes the stored last-skip day into its tagged form.
func (h *Habit) LastSkip() (LastSkip, error) {
	if h.LastSkippedOn == nil || *h.LastSkippedOn == "" {
		return NeverSkipped{}, nil
	}
	d, err := ParseDate(*h.LastSkippedOn)
	if err != nil {
		return nil, err
	}
	return SkippedOn{Date: d}, nil
}

// LastSkip is either NeverSkipped or SkippedOn.
type LastSkip interface {
	lastSkip()
}

type NeverSkipped struct{}

type SkippedOn struct {
	Date Date
}

func (NeverSkipped) lastSkip() {}
func (SkippedOn) lastSkip()    {}
