// Package booking holds the pure reservation math: half-open interval
// overlap, rental duration rounding and cost computation. Both the confirm
// path and the availability query go through these functions so the two can
// never disagree on what counts as a conflict.
package booking

import (
	"time"
)

// Interval is a half-open [Start, End) time window.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsValid reports whether the window has positive length.
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps reports whether two half-open windows intersect. A rental that
// ends exactly when another begins does not conflict.
func (iv Interval) Overlaps(other Interval) bool {
	// Existing starts before the candidate begins and runs into it,
	// existing ends after the candidate ends and starts inside it,
	// or the candidate fully contains the existing window.
	if !other.Start.After(iv.Start) && other.End.After(iv.Start) {
		return true
	}
	if other.Start.Before(iv.End) && !other.End.Before(iv.End) {
		return true
	}
	if !other.Start.Before(iv.Start) && !other.End.After(iv.End) {
		return true
	}
	return false
}
