package service

import (
	"context"
	"fmt"

	"github.com/skipjar/skipjar/internal/repository"
)

const leaderboardSize = 10

type LeaderboardEntry struct {
	Rank          int
	UserID        string
	DisplayName   string
	Image         *string
	Level         int
	XP            int64
	CurrentStreak int
}

type LeaderboardService struct {
	store repository.Store
}

func NewLeaderboardService(store repository.Store) *LeaderboardService {
	return &LeaderboardService{store: store}
}

// Top returns the highest-XP public users.
func (s *LeaderboardService) Top(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := s.store.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, &PersistenceError{Op: "load leaderboard", Err: fmt.Errorf("failed to list users: %w", err)}
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:          i + 1,
			UserID:        u.ID,
			DisplayName:   u.PublicName(),
			Image:         u.Image,
			Level:         u.Level,
			XP:            u.XP,
			CurrentStreak: u.CurrentStreak,
		})
	}

	return entries, nil
}
