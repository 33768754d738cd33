package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skipjar/skipjar/internal/model"
	"github.com/skipjar/skipjar/internal/repository"
)

var fixtureTime = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func SeedUser(t *testing.T, store repository.Store, xp int64) *model.User {
	t.Helper()

	user := &model.User{
		ID:        uuid.New().String(),
		Currency:  "INR",
		IsPublic:  true,
		XP:        xp,
		Level:     int(xp/100) + 1,
		CreatedAt: fixtureTime,
		UpdatedAt: fixtureTime,
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func SeedHabit(t *testing.T, store repository.Store, ownerID string, cost int64) *model.Habit {
	t.Helper()

	habit := &model.Habit{
		ID:                uuid.New().String(),
		OwnerID:           ownerID,
		Name:              "Coffee",
		Category:          model.HabitCategoryFood,
		Frequency:         model.HabitFrequencyDaily,
		CostPerOccurrence: decimal.NewFromInt(cost),
		IsActive:          true,
		CreatedAt:         fixtureTime,
		UpdatedAt:         fixtureTime,
	}
	if err := store.CreateHabit(context.Background(), habit); err != nil {
		t.Fatalf("seed habit: %v", err)
	}
	return habit
}

func SeedGoal(t *testing.T, store repository.Store, ownerID string, price, saved int64) *model.Goal {
	t.Helper()

	goal := &model.Goal{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        "Headphones",
		Price:       decimal.NewFromInt(price),
		SavedAmount: decimal.NewFromInt(saved),
		Status:      model.GoalStatusActive,
		CreatedAt:   fixtureTime,
		UpdatedAt:   fixtureTime,
	}
	if err := store.CreateGoal(context.Background(), goal); err != nil {
		t.Fatalf("seed goal: %v", err)
	}
	return goal
}
