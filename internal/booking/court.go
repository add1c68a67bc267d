// internal/booking/court.go
package booking

import "fmt"

// CourtType enumerates the kinds of courts a facility can offer.
type CourtType string

const (
	CourtSoccer     CourtType = "soccer"
	CourtBasketball CourtType = "basketball"
	CourtVolleyball CourtType = "volleyball"
	CourtTennis     CourtType = "tennis"
	CourtPadel      CourtType = "padel"
	CourtOther      CourtType = "other"
)

func (t CourtType) Valid() bool {
	switch t {
	case CourtSoccer, CourtBasketball, CourtVolleyball, CourtTennis, CourtPadel, CourtOther:
		return true
	}
	return false
}

// CourtStatus is the operational state of a court.
type CourtStatus string

const (
	CourtAvailable   CourtStatus = "available"
	CourtMaintenance CourtStatus = "maintenance"
	CourtInactive    CourtStatus = "inactive"
)

func (s CourtStatus) Valid() bool {
	switch s {
	case CourtAvailable, CourtMaintenance, CourtInactive:
		return true
	}
	return false
}

// Court is a bookable facility resource. Reservations reference courts;
// a court never owns its reservations.
type Court struct {
	ID          int64
	Name        string
	Type        CourtType
	Description string
	Capacity    int64
	HourlyPrice float64
	Status      CourtStatus
	Active      bool
	Location    string
	Notes       string
}

// Validate enforces the court invariants on create and update.
func (c *Court) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("court name is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("unknown court type: %s", c.Type)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("unknown court status: %s", c.Status)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("court capacity must be at least 1")
	}
	if c.HourlyPrice < 0 {
		return fmt.Errorf("hourly price cannot be negative")
	}
	return nil
}

// Bookable reports whether new reservations may target this court.
func (c *Court) Bookable() bool {
	return c.Active && c.Status == CourtAvailable
}
