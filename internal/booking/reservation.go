// internal/booking/reservation.go
package booking

import "time"

// Status is a reservation's lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Action is an explicit lifecycle transition request.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionRevert   Action = "revert"
)

// transitions is the full lifecycle table. Anything absent is illegal.
var transitions = map[Status]map[Action]Status{
	StatusDraft: {
		ActionConfirm: StatusConfirmed,
		ActionCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		ActionStart:  StatusInProgress,
		ActionCancel: StatusCancelled,
		ActionRevert: StatusDraft,
	},
	StatusInProgress: {
		ActionComplete: StatusCompleted,
	},
}

// NextStatus resolves a transition or returns a TransitionError.
func NextStatus(from Status, action Action) (Status, error) {
	if next, ok := transitions[from][action]; ok {
		return next, nil
	}
	return "", &TransitionError{From: from, Action: action}
}

// Reservation is a booked interval on a court. Reference is assigned once at
// creation and never regenerated. DurationHours and TotalPrice are derived:
// TotalPrice tracks the court's current hourly price, not the price at
// booking time.
type Reservation struct {
	ID            int64
	Reference     string
	CourtID       int64
	UserID        int64
	Start         time.Time
	End           time.Time
	DurationHours float64
	TotalPrice    float64
	Status        Status
	Notes         string
	CreatedAt     time.Time
	CompanyID     int64
}

// Recompute refreshes the derived fields after any mutation of start, end,
// or court.
func (r *Reservation) Recompute(hourlyPrice float64) {
	if r.End.After(r.Start) {
		r.DurationHours = r.End.Sub(r.Start).Hours()
	} else {
		r.DurationHours = 0
	}
	r.TotalPrice = r.DurationHours * hourlyPrice
}
