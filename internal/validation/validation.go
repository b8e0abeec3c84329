package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
)

var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ValidateTicker checks a ticker symbol: uppercase, starting with a letter,
// at most 10 characters, allowing digits, dots, and dashes.
func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidTicker, ticker)
	}
	return nil
}

// ValidateDateRange checks that start is not after end.
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: %s after %s",
			apperrors.ErrInvalidDateRange,
			start.Format("2006-01-02"),
			end.Format("2006-01-02"))
	}
	return nil
}

// ValidateThreshold checks a significance threshold is non-negative.
func ValidateThreshold(value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidThreshold, value)
	}
	return nil
}

// ValidateLookbackWindow checks lookback window bounds: both positive, min
// not greater than max, and the target lag inside the window.
func ValidateLookbackWindow(targetDays, windowMin, windowMax int) error {
	if windowMin <= 0 || windowMax <= 0 || windowMin > windowMax {
		return fmt.Errorf("%w: [%d, %d]", apperrors.ErrInvalidLookbackWindow, windowMin, windowMax)
	}
	if targetDays < windowMin || targetDays > windowMax {
		return fmt.Errorf("%w: target %d outside [%d, %d]",
			apperrors.ErrInvalidLookbackWindow, targetDays, windowMin, windowMax)
	}
	return nil
}
