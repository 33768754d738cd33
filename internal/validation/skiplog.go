package validation

import (
	"fmt"
	"sort"
	"strings"
)

const maxIDLength = 128

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Details[field]))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// SkipLogInput is the decoded body of a skip-log request. Optional ids are
// pointers so an explicit empty string can be told apart from an omitted field.
type SkipLogInput struct {
	HabitID *string `json:"habitId"`
	GoalID  *string `json:"goalId"`
	UserID  *string `json:"userId"`
}

// ValidateSkipLog checks ids are present where required and well-formed.
func ValidateSkipLog(in SkipLogInput) error {
	details := map[string]string{}

	if in.HabitID == nil || strings.TrimSpace(*in.HabitID) == "" {
		details["habitId"] = "habitId is required"
	} else if err := validateID(*in.HabitID); err != "" {
		details["habitId"] = err
	}

	if in.GoalID != nil {
		if strings.TrimSpace(*in.GoalID) == "" {
			details["goalId"] = "goalId must not be empty when provided"
		} else if err := validateID(*in.GoalID); err != "" {
			details["goalId"] = err
		}
	}

	if in.UserID != nil {
		if strings.TrimSpace(*in.UserID) == "" {
			details["userId"] = "userId must not be empty when provided"
		} else if err := validateID(*in.UserID); err != "" {
			details["userId"] = err
		}
	}

	if len(details) > 0 {
		return &ValidationError{Message: "Invalid input", Details: details}
	}
	return nil
}

func validateID(id string) string {
	if len(id) > maxIDLength {
		return fmt.Sprintf("id is too long (max %d characters)", maxIDLength)
	}
	if strings.ContainsAny(id, " \t\r\n") {
		return "id must not contain whitespace"
	}
	return ""
}
