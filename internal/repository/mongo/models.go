package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/skipjar/skipjar/internal/model"
)

// ==================== Habit ====================

type habitDoc struct {
	ID                string          `bson:"_id"`
	OwnerID           string          `bson:"owner_id"`
	Name              string          `bson:"name"`
	Category          string          `bson:"category"`
	Frequency         string          `bson:"frequency"`
	CostPerOccurrence bson.Decimal128 `bson:"cost_per_occurrence"`
	Streak            int             `bson:"streak"`
	LastSkippedOn     *string         `bson:"last_skipped_on"`
	IsActive          bool            `bson:"is_active"`
	CreatedAt         time.Time       `bson:"created_at"`
	UpdatedAt         time.Time       `bson:"updated_at"`
}

func toHabitDoc(h *model.Habit) (*habitDoc, error) {
	cost, err := toDecimal128(h.CostPerOccurrence)
	if err != nil {
		return nil, err
	}
	return &habitDoc{
		ID:                h.ID,
		OwnerID:           h.OwnerID,
		Name:              h.Name,
		Category:          h.Category,
		Frequency:         h.Frequency,
		CostPerOccurrence: cost,
		Streak:            h.Streak,
		LastSkippedOn:     h.LastSkippedOn,
		IsActive:          h.IsActive,
		CreatedAt:         h.CreatedAt.UTC(),
		UpdatedAt:         h.UpdatedAt.UTC(),
	}, nil
}

func fromHabitDoc(d *habitDoc) (*model.Habit, error) {
	cost, err := fromDecimal128(d.CostPerOccurrence)
	if err != nil {
		return nil, err
	}
	return &model.Habit{
		ID:                d.ID,
		OwnerID:           d.OwnerID,
		Name:              d.Name,
		Category:          d.Category,
		Frequency:         d.Frequency,
		CostPerOccurrence: cost,
		Streak:            d.Streak,
		LastSkippedOn:     d.LastSkippedOn,
		IsActive:          d.IsActive,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

// ==================== Goal ====================

type goalDoc struct {
	ID          string          `bson:"_id"`
	OwnerID     string          `bson:"owner_id"`
	Name        string          `bson:"name"`
	ImageURL    *string         `bson:"image_url,omitempty"`
	Price       bson.Decimal128 `bson:"price"`
	SavedAmount bson.Decimal128 `bson:"saved_amount"`
	Status      string          `bson:"status"`
	Version     int64           `bson:"version"`
	CreatedAt   time.Time       `bson:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at"`
}

func toGoalDoc(g *model.Goal) (*goalDoc, error) {
	price, err := toDecimal128(g.Price)
	if err != nil {
		return nil, err
	}
	saved, err := toDecimal128(g.SavedAmount)
	if err != nil {
		return nil, err
	}
	return &goalDoc{
		ID:          g.ID,
		OwnerID:     g.OwnerID,
		Name:        g.Name,
		ImageURL:    g.ImageURL,
		Price:       price,
		SavedAmount: saved,
		Status:      string(g.Status),
		Version:     g.Version,
		CreatedAt:   g.CreatedAt.UTC(),
		UpdatedAt:   g.UpdatedAt.UTC(),
	}, nil
}

func fromGoalDoc(d *goalDoc) (*model.Goal, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	saved, err := fromDecimal128(d.SavedAmount)
	if err != nil {
		return nil, err
	}
	return &model.Goal{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		ImageURL:    d.ImageURL,
		Price:       price,
		SavedAmount: saved,
		Status:      model.GoalStatus(d.Status),
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// ==================== User ====================

type userDoc struct {
	ID            string    `bson:"_id"`
	Email         *string   `bson:"email,omitempty"`
	Name          *string   `bson:"name,omitempty"`
	DisplayName   *string   `bson:"display_name,omitempty"`
	Image         *string   `bson:"image,omitempty"`
	Currency      string    `bson:"currency"`
	IsPublic      bool      `bson:"is_public"`
	XP            int64     `bson:"xp"`
	Level         int       `bson:"level"`
	CurrentStreak int       `bson:"current_streak"`
	LongestStreak int       `bson:"longest_streak"`
	Version       int64     `bson:"version"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toUserDoc(u *model.User) *userDoc {
	return &userDoc{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		DisplayName:   u.DisplayName,
		Image:         u.Image,
		Currency:      u.Currency,
		IsPublic:      u.IsPublic,
		XP:            u.XP,
		Level:         u.Level,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
		Version:       u.Version,
		CreatedAt:     u.CreatedAt.UTC(),
		UpdatedAt:     u.UpdatedAt.UTC(),
	}
}

func fromUserDoc(d *userDoc) *model.User {
	return &model.User{
		ID:            d.ID,
		Email:         d.Email,
		Name:          d.Name,
		DisplayName:   d.DisplayName,
		Image:         d.Image,
		Currency:      d.Currency,
		IsPublic:      d.IsPublic,
		XP:            d.XP,
		Level:         d.Level,
		CurrentStreak: d.CurrentStreak,
		LongestStreak: d.LongestStreak,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ==================== Transaction ====================

type transactionDoc struct {
	ID          string          `bson:"_id"`
	UserID      string          `bson:"user_id"`
	HabitID     string          `bson:"habit_id"`
	GoalID      string          `bson:"goal_id"`
	AmountSaved bson.Decimal128 `bson:"amount_saved"`
	LoggedAt    time.Time       `bson:"logged_at"`
}

func toTransactionDoc(t *model.Transaction) (*transactionDoc, error) {
	amount, err := toDecimal128(t.AmountSaved)
	if err != nil {
		return nil, err
	}
	return &transactionDoc{
		ID:          t.ID,
		UserID:      t.UserID,
		HabitID:     t.HabitID,
		GoalID:      t.GoalID,
		AmountSaved: amount,
		LoggedAt:    t.Timestamp.UTC(),
	}, nil
}

func fromTransactionDoc(d *transactionDoc) (*model.Transaction, error) {
	amount, err := fromDecimal128(d.AmountSaved)
	if err != nil {
		return nil, err
	}
	return &model.Transaction{
		ID:          d.ID,
		UserID:      d.UserID,
		HabitID:     d.HabitID,
		GoalID:      d.GoalID,
		AmountSaved: amount,
		Timestamp:   d.LoggedAt,
	}, nil
}

// ==================== Money ====================

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	v, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return bson.Decimal128{}, fmt.Errorf("skipjar/mongo: encode amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v bson.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("skipjar/mongo: decode amount %s: %w", v, err)
	}
	return d, nil
}
