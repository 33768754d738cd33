package model

import (
	"time"
)

type User struct {
	ID            string    `db:"id"`
	Email         *string   `db:"email"`
	Name          *string   `db:"name"`
	DisplayName   *string   `db:"display_name"`
	Image         *string   `db:"image"`
	Currency      string    `db:"currency"`
	IsPublic      bool      `db:"is_public"`
	XP            int64     `db:"xp"`
	Level         int       `db:"level"`
	CurrentStreak int       `db:"current_streak"`
	LongestStreak int       `db:"longest_streak"`
	Version       int64     `db:"version"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// PublicName is the name shown on the leaderboard.
func (u *User) PublicName() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return "Anonymous Saver"
}
