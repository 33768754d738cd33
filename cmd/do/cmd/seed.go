package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skipjar/skipjar/internal/app"
	"github.com/skipjar/skipjar/internal/config"
	"github.com/skipjar/skipjar/internal/model"
	"github.com/skipjar/skipjar/internal/validation"
	"github.com/spf13/cobra"
)

func SeedCmd() *cobra.Command {
	var (
		email string
		name  string
		cost  string
		price string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo user with one habit and one goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateEmail(email); err != nil {
				return err
			}
			if err := validation.ValidateDisplayName(name); err != nil {
				return err
			}
			costAmount, err := positiveAmount("cost", cost)
			if err != nil {
				return err
			}
			priceAmount, err := positiveAmount("price", price)
			if err != nil {
				return err
			}

			cfg := config.Load()
			store, err := app.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			now := time.Now().UTC()

			user := &model.User{
				ID:          uuid.New().String(),
				Email:       &email,
				Name:        &name,
				DisplayName: &name,
				Currency:    "INR",
				IsPublic:    true,
				Level:       1,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			err = store.CreateUser(ctx, user)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			habit := &model.Habit{
				ID:                uuid.New().String(),
				OwnerID:           user.ID,
				Name:              "Morning coffee",
				Category:          model.HabitCategoryFood,
				Frequency:         model.HabitFrequencyDaily,
				CostPerOccurrence: costAmount,
				IsActive:          true,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			err = store.CreateHabit(ctx, habit)
			if err != nil {
				return fmt.Errorf("failed to create habit: %w", err)
			}

			goal := &model.Goal{
				ID:          uuid.New().String(),
				OwnerID:     user.ID,
				Name:        "Noise-cancelling headphones",
				Price:       priceAmount,
				SavedAmount: decimal.Zero,
				Status:      model.GoalStatusActive,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			err = store.CreateGoal(ctx, goal)
			if err != nil {
				return fmt.Errorf("failed to create goal: %w", err)
			}

			fmt.Printf("User:  %s\nHabit: %s\nGoal:  %s\n", user.ID, habit.ID, goal.ID)
			fmt.Printf("\ncurl -X POST localhost:%s/skip-log -d '{\"habitId\":\"%s\",\"userId\":\"%s\"}'\n", cfg.Port, habit.ID, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "demo@example.com", "demo user email")
	cmd.Flags().StringVar(&name, "name", "Demo Saver", "demo user display name")
	cmd.Flags().StringVar(&cost, "cost", "150", "habit cost per occurrence")
	cmd.Flags().StringVar(&price, "price", "3000", "goal price")
	return cmd
}

func positiveAmount(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--%s: %w", flag, err)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("--%s must be positive", flag)
	}
	return d.Round(2), nil
}
