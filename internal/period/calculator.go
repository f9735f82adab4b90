// Package period maps wall-clock time to the billing period being collected.
package period

import (
	"time"

	"github.com/ostapenco/domovyk/internal/model"
)

// DefaultCutoffDay is the day of month from which collection targets the
// following month. Once the last week of a month starts, neighbors are
// already paying for the next one.
const DefaultCutoffDay = 25

// Calculator computes the billing period in play for a given instant.
type Calculator struct {
	CutoffDay int
}

// NewCalculator returns a calculator with the given cutoff day; values
// outside 1..31 fall back to DefaultCutoffDay.
func NewCalculator(cutoffDay int) Calculator {
	if cutoffDay < 1 || cutoffDay > 31 {
		cutoffDay = DefaultCutoffDay
	}
	return Calculator{CutoffDay: cutoffDay}
}

// Target returns the period collection targets at the given instant: the
// current calendar month before the cutoff day, the following month from
// the cutoff day on (rolling December into January of the next year).
func (c Calculator) Target(now time.Time) model.Period {
	p := model.PeriodOf(now)
	if now.Day() >= c.CutoffDay {
		return p.Shift(1)
	}
	return p
}
