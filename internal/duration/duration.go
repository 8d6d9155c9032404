// Package duration parses the retention and look-back periods accepted by
// "srcview log": "12h", "7d", "4w" or "3m" (30-day months).
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalid is returned for strings that are not a period.
var ErrInvalid = errors.New("invalid duration")

const day = 24 * time.Hour

var (
	pattern = regexp.MustCompile(`^(\d+)([hdwm])$`)
	units   = map[string]time.Duration{
		"h": time.Hour,
		"d": day,
		"w": 7 * day,
		"m": 30 * day,
	}
)

// Parse converts a period such as "7d" into a time.Duration.
func Parse(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q (use 12h, 7d, 4w or 3m)", ErrInvalid, s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	return time.Duration(n) * units[m[2]], nil
}

// Before returns the unix time one period before now.
func Before(now time.Time, s string) (int64, error) {
	d, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return now.Add(-d).Unix(), nil
}
