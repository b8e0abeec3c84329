package request

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fundscope/fundscope-backend/internal/reconcile"
)

// ParseReferenceDate parses the optional reference_date query parameter.
// An empty value returns the zero time, which downstream code treats as now.
func ParseReferenceDate(param string) (time.Time, error) {
	if param == "" {
		return time.Time{}, nil
	}
	return parseQueryTime(param)
}

// ParseDateRange parses start_date and end_date query parameters into a
// validated range. An empty start defaults to 1970-01-01; an empty end
// defaults to now.
func ParseDateRange(startParam, endParam string) (start, end time.Time, err error) {
	if startParam == "" {
		start = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		start, err = parseQueryTime(startParam)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
		}
	}

	if endParam == "" {
		end = time.Now().UTC()
	} else {
		end, err = parseQueryTime(endParam)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must not be before start_date")
	}

	return start, end, nil
}

// ParseThresholds parses optional abs_threshold and pct_threshold query
// parameters, falling back to the provided defaults for whichever is absent.
func ParseThresholds(absParam, pctParam string, defaults reconcile.Thresholds) (reconcile.Thresholds, error) {
	thresholds := defaults

	if absParam != "" {
		abs, err := strconv.ParseFloat(absParam, 64)
		if err != nil || abs < 0 {
			return reconcile.Thresholds{}, fmt.Errorf("invalid abs_threshold: must be a non-negative number")
		}
		thresholds.AbsThreshold = abs
	}

	if pctParam != "" {
		pct, err := strconv.ParseFloat(pctParam, 64)
		if err != nil || pct < 0 {
			return reconcile.Thresholds{}, fmt.Errorf("invalid pct_threshold: must be a non-negative number")
		}
		thresholds.PctThreshold = pct
	}

	return thresholds, nil
}

// ParseLimit parses an optional limit query parameter with a default and a
// hard maximum.
func ParseLimit(param string, defaultLimit, maxLimit int) (int, error) {
	if param == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("invalid limit: must be a number")
	}
	if limit < 1 || limit > maxLimit {
		return 0, fmt.Errorf("invalid limit: must be between 1 and %d", maxLimit)
	}
	return limit, nil
}

// parseQueryTime parses date strings from query parameters.
// Accepts YYYY-MM-DD and RFC3339.
func parseQueryTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, str); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date", str)
}
