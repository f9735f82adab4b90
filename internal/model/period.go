// Package model defines the core value types shared across the application.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is one billing month. Payments are tracked per period; the
// canonical on-disk key is a zero-padded "MM-YYYY" string.
type Period struct {
	Month time.Month
	Year  int
}

// PeriodOf returns the period containing the given instant.
func PeriodOf(t time.Time) Period {
	return Period{Month: t.Month(), Year: t.Year()}
}

// ParsePeriodKey parses a canonical "MM-YYYY" key.
func ParsePeriodKey(key string) (Period, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 4 {
		return Period{}, fmt.Errorf("invalid period key %q", key)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period key %q: %w", key, err)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period key %q: %w", key, err)
	}
	if month < 1 || month > 12 || year < 2000 {
		return Period{}, fmt.Errorf("invalid period key %q", key)
	}
	return Period{Month: time.Month(month), Year: year}, nil
}

// Key returns the canonical "MM-YYYY" representation.
func (p Period) Key() string {
	return fmt.Sprintf("%02d-%04d", int(p.Month), p.Year)
}

// Shift returns the period n calendar months forward, rolling over year
// boundaries. Shift(0) is the identity; negative n is not supported.
func (p Period) Shift(n int) Period {
	total := p.Year*12 + int(p.Month) - 1 + n
	return Period{
		Month: time.Month(total%12 + 1),
		Year:  total / 12,
	}
}

// Before reports whether p orders strictly before other by (year, month).
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// IsZero reports whether p is the zero value.
func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

func (p Period) String() string {
	return p.Key()
}
