// internal/booking/errors.go
package booking

import (
	"errors"
	"fmt"
)

// Business-rule failures surfaced to callers. None are retried by the core.
var (
	ErrInvalidInterval  = errors.New("end time must be after start time")
	ErrPastBooking      = errors.New("reservation cannot start in the past")
	ErrDurationTooShort = errors.New("reservation must be at least 30 minutes")
	ErrDurationTooLong  = errors.New("reservation cannot exceed 8 hours")
	ErrCourtUnavailable = errors.New("court already has a confirmed reservation in that period")
	ErrCourtNotBookable = errors.New("court is not open for booking")
	ErrNotFound         = errors.New("not found")
)

// TransitionError rejects a lifecycle action that is not in the transition
// table for the reservation's current status.
type TransitionError struct {
	From   Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a reservation in status %s", e.Action, e.From)
}
