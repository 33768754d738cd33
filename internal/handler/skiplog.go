package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/skipjar/skipjar/internal/ctxkeys"
	"github.com/skipjar/skipjar/internal/ledger"
	"github.com/skipjar/skipjar/internal/service"
	"github.com/skipjar/skipjar/internal/validation"
)

const maxBodyBytes = 1 << 20

type SkipLogHandler struct {
	skipLogService *service.SkipLogService
	// tokenOnly ignores the body userId; set when bearer tokens are in use.
	tokenOnly bool
}

func NewSkipLogHandler(skipLogService *service.SkipLogService, tokenOnly bool) *SkipLogHandler {
	return &SkipLogHandler{
		skipLogService: skipLogService,
		tokenOnly:      tokenOnly,
	}
}

type transactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	HabitID     string    `json:"habitId"`
	GoalID      string    `json:"goalId"`
	AmountSaved float64   `json:"amountSaved"`
	Timestamp   time.Time `json:"timestamp"`
}

type userUpdateResponse struct {
	XP            int64 `json:"xp"`
	Level         int   `json:"level"`
	CurrentStreak int   `json:"currentStreak"`
	LeveledUp     bool  `json:"leveledUp"`
}

type skipLogResponse struct {
	Success        bool                `json:"success"`
	Transaction    transactionResponse `json:"transaction"`
	NewSavedAmount float64             `json:"newSavedAmount"`
	Progress       float64             `json:"progress"`
	IsUnlocked     bool                `json:"isUnlocked"`
	Streak         int                 `json:"streak"`
	UserUpdate     *userUpdateResponse `json:"userUpdate,omitempty"`
}

// LogSkip handles POST /skip-log.
func (h *SkipLogHandler) LogSkip(w http.ResponseWriter, r *http.Request) {
	var in validation.SkipLogInput
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	err = validation.ValidateSkipLog(in)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Details: verr.Details})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := service.SkipLogRequest{
		HabitID: *in.HabitID,
		Goal:    ledger.DefaultActiveGoal{},
		Actor:   h.actorFor(r, in),
	}
	if in.GoalID != nil {
		req.Goal = ledger.ExplicitGoal{ID: *in.GoalID}
	}

	result, err := h.skipLogService.LogSkip(r.Context(), req)
	if err != nil {
		writeSkipLogError(w, err)
		return
	}

	resp := skipLogResponse{
		Success: true,
		Transaction: transactionResponse{
			ID:          result.Transaction.ID,
			UserID:      result.Transaction.UserID,
			HabitID:     result.Transaction.HabitID,
			GoalID:      result.Transaction.GoalID,
			AmountSaved: result.Transaction.AmountSaved.InexactFloat64(),
			Timestamp:   result.Transaction.Timestamp,
		},
		NewSavedAmount: result.NewSavedAmount.InexactFloat64(),
		Progress:       result.ProgressPercent,
		IsUnlocked:     result.Unlocked,
		Streak:         result.Streak,
	}
	if u := result.UserUpdate; u != nil {
		resp.UserUpdate = &userUpdateResponse{
			XP:            u.XP,
			Level:         u.Level,
			CurrentStreak: u.CurrentStreak,
			LeveledUp:     u.LeveledUp,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// actorFor prefers the verified token identity over the body's userId. With
// tokens enabled an unauthenticated request is anonymous.
func (h *SkipLogHandler) actorFor(r *http.Request, in validation.SkipLogInput) ledger.Actor {
	if id := ctxkeys.ActorID(r.Context()); id != "" {
		return ledger.IdentifiedActor{UserID: id}
	}
	if in.UserID != nil && !h.tokenOnly {
		return ledger.IdentifiedActor{UserID: *in.UserID}
	}
	return ledger.AnonymousActor{}
}

func writeSkipLogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyLogged):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:          "Already skipped today! Come back tomorrow.",
			AlreadySkipped: true,
		})
	case errors.Is(err, service.ErrHabitNotFound):
		writeError(w, http.StatusNotFound, "Habit not found")
	case errors.Is(err, service.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "Goal not found")
	case errors.Is(err, service.ErrNoActiveGoal):
		writeError(w, http.StatusNotFound, "No active goal found")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to log skip")
	}
}
