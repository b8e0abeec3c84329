package validation_test

import (
	"testing"
	"time"

	"github.com/fundscope/fundscope-backend/internal/validation"
)

func TestValidateTicker(t *testing.T) {
	valid := []string{"A", "AAPL", "BRK.B", "ARKK", "X-1", "ABCDEFGHIJ"}
	for _, ticker := range valid {
		if err := validation.ValidateTicker(ticker); err != nil {
			t.Errorf("Expected %q to be valid, got %v", ticker, err)
		}
	}

	invalid := []string{"", "aapl", "1AAPL", ".AAPL", "TOOLONGTICKER", "BAD TICKER"}
	for _, ticker := range invalid {
		if err := validation.ValidateTicker(ticker); err == nil {
			t.Errorf("Expected %q to be rejected", ticker)
		}
	}
}

func TestValidateUUID(t *testing.T) {
	if err := validation.ValidateUUID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("Expected valid UUID to pass, got %v", err)
	}
	if err := validation.ValidateUUID("not-a-uuid"); err == nil {
		t.Error("Expected malformed UUID to be rejected")
	}
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	if err := validation.ValidateDateRange(start, end); err != nil {
		t.Errorf("Expected valid range to pass, got %v", err)
	}
	if err := validation.ValidateDateRange(start, start); err != nil {
		t.Errorf("Expected equal dates to pass, got %v", err)
	}
	if err := validation.ValidateDateRange(end, start); err == nil {
		t.Error("Expected inverted range to be rejected")
	}
}

func TestValidateLookbackWindow(t *testing.T) {
	cases := []struct {
		name       string
		target     int
		min, max   int
		expectFail bool
	}{
		{"daily default", 1, 1, 14, false},
		{"weekly default", 5, 3, 10, false},
		{"inverted bounds", 5, 10, 3, true},
		{"zero min", 5, 0, 10, true},
		{"target below window", 1, 3, 10, true},
		{"target above window", 20, 3, 10, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.ValidateLookbackWindow(tc.target, tc.min, tc.max)
			if tc.expectFail && err == nil {
				t.Error("Expected validation to fail")
			}
			if !tc.expectFail && err != nil {
				t.Errorf("Expected validation to pass, got %v", err)
			}
		})
	}
}
