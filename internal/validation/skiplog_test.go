package validation

import (
	"errors"
	"strings"
	"testing"
)

func ptr(s string) *string { return &s }

func TestValidateSkipLog(t *testing.T) {
	tests := []struct {
		name       string
		in         SkipLogInput
		wantFields []string
	}{
		{"habit only", SkipLogInput{HabitID: ptr("h1")}, nil},
		{"all fields", SkipLogInput{HabitID: ptr("h1"), GoalID: ptr("g1"), UserID: ptr("u1")}, nil},
		{"missing habit", SkipLogInput{}, []string{"habitId"}},
		{"blank habit", SkipLogInput{HabitID: ptr("  ")}, []string{"habitId"}},
		{"empty goal", SkipLogInput{HabitID: ptr("h1"), GoalID: ptr("")}, []string{"goalId"}},
		{"long user", SkipLogInput{HabitID: ptr("h1"), UserID: ptr(strings.Repeat("u", 200))}, []string{"userId"}},
		{"spaced goal", SkipLogInput{HabitID: ptr("h1"), GoalID: ptr("g 1")}, []string{"goalId"}},
		{"several", SkipLogInput{GoalID: ptr("")}, []string{"habitId", "goalId"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSkipLog(tt.in)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if len(verr.Details) != len(tt.wantFields) {
				t.Errorf("details = %v, want fields %v", verr.Details, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if _, ok := verr.Details[f]; !ok {
					t.Errorf("missing detail for %s in %v", f, verr.Details)
				}
			}
		})
	}
}
