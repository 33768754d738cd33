package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"demo@example.com", true},
		{"", false},
		{"not-an-email", false},
		{"Demo <demo@example.com>", false},
		{strings.Repeat("a", 250) + "@x.io", false},
	}
	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateEmail(%q) error = %v, want ok=%v", tt.email, err, tt.ok)
		}
	}
}

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"Demo Saver", true},
		{"Zoë", true},
		{"   ", false},
		{" padded", false},
		{strings.Repeat("x", 51), false},
	}
	for _, tt := range tests {
		err := ValidateDisplayName(tt.name)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateDisplayName(%q) error = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}
