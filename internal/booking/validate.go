// internal/booking/validate.go
package booking

import (
	"fmt"
	"time"
)

// Duration bounds for a single reservation.
const (
	MinDuration = 30 * time.Minute
	MaxDuration = 8 * time.Hour
)

// Interval is a half-open [Start, End) slot held by an active reservation.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports half-open intersection: touching endpoints do not
// conflict, so a reservation ending at 10:00 coexists with one starting
// at 10:00.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return iv.Start.Before(end) && iv.End.After(start)
}

// CheckParams describes the candidate interval for validation.
type CheckParams struct {
	Start time.Time
	End   time.Time
	// IsNew applies the no-past-booking rule. It holds only for draft
	// reservations being created; editing an already-confirmed past
	// reservation does not retroactively fail.
	IsNew bool
	// Status of the candidate itself. Cancelled reservations are exempt
	// from overlap checking entirely.
	Status Status
}

// CheckInterval runs the pure interval rules in order, reporting the first
// failure: chronology, no-past-booking, then duration bounds.
func CheckInterval(p CheckParams, now time.Time) error {
	if !p.End.After(p.Start) {
		return ErrInvalidInterval
	}
	if p.IsNew && p.Start.Before(now) {
		return ErrPastBooking
	}
	d := p.End.Sub(p.Start)
	if d < MinDuration {
		return ErrDurationTooShort
	}
	if d > MaxDuration {
		return ErrDurationTooLong
	}
	return nil
}

// CheckOverlap fails with ErrCourtUnavailable if any existing active
// interval intersects the candidate. The caller supplies intervals for
// reservations in {confirmed, in_progress} only, excluding the candidate
// itself. A cancelled candidate skips the check.
func CheckOverlap(p CheckParams, courtName string, existing []Interval) error {
	if p.Status == StatusCancelled {
		return nil
	}
	for _, iv := range existing {
		if iv.Overlaps(p.Start, p.End) {
			return fmt.Errorf("court %q: %w", courtName, ErrCourtUnavailable)
		}
	}
	return nil
}
