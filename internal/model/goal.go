package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalStatusLocked   GoalStatus = "locked"
	GoalStatusActive   GoalStatus = "active"
	GoalStatusRedeemed GoalStatus = "redeemed"
)

// Goal is a reward the owner saves toward. Version guards concurrent funding.
type Goal struct {
	ID          string          `db:"id" json:"id"`
	OwnerID     string          `db:"owner_id" json:"ownerId"`
	Name        string          `db:"name" json:"name"`
	ImageURL    *string         `db:"image_url" json:"imageUrl,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	SavedAmount decimal.Decimal `db:"saved_amount" json:"savedAmount"`
	Status      GoalStatus      `db:"status" json:"status"`
	Version     int64           `db:"version" json:"-"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

func (g *Goal) IsRedeemed() bool {
	return g.Status == GoalStatusRedeemed
}
