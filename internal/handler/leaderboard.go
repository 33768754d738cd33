package handler

import (
	"net/http"

	"github.com/skipjar/skipjar/internal/service"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

type leaderboardEntry struct {
	Rank          int     `json:"rank"`
	ID            string  `json:"id"`
	DisplayName   string  `json:"displayName"`
	Image         *string `json:"image"`
	Level         int     `json:"level"`
	XP            int64   `json:"xp"`
	CurrentStreak int     `json:"currentStreak"`
}

type leaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []leaderboardEntry `json:"leaderboard"`
}

// Leaderboard handles GET /leaderboard.
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.Top(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	resp := leaderboardResponse{
		Success:     true,
		Leaderboard: make([]leaderboardEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Leaderboard = append(resp.Leaderboard, leaderboardEntry{
			Rank:          e.Rank,
			ID:            e.UserID,
			DisplayName:   e.DisplayName,
			Image:         e.Image,
			Level:         e.Level,
			XP:            e.XP,
			CurrentStreak: e.CurrentStreak,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
