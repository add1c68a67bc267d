// internal/booking/service.go
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openfield/courtbook/internal/notify"
)

const notifyTimeout = 5 * time.Second

// Clock abstracts wall-clock time for the no-past-booking rule.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// UserContact is the requester's billing/contact profile, derived from the
// reservation's user reference.
type UserContact struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// ListParams filters the portal reservation listing.
type ListParams struct {
	UserID int64
	From   time.Time
	To     time.Time
	Limit  int64
	Offset int64
}

// Store is the persistence contract the core depends on. InTx must execute
// fn atomically with respect to other writers touching the same court's
// reservation set; the availability check and the committing write always
// run inside a single InTx call.
type Store interface {
	InTx(ctx context.Context, fn func(Store) error) error

	InsertCourt(ctx context.Context, c Court) (Court, error)
	GetCourt(ctx context.Context, id int64) (Court, error)
	ListCourts(ctx context.Context) ([]Court, error)
	UpdateCourtStatus(ctx context.Context, id int64, status CourtStatus) error
	CountCourtReservations(ctx context.Context, courtID int64) (int64, error)

	InsertReservation(ctx context.Context, r Reservation) (Reservation, error)
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status Status) error
	ListReservations(ctx context.Context, p ListParams) ([]Reservation, error)
	ListActiveIntervals(ctx context.Context, courtID, excludeID int64) ([]Interval, error)
	NextSequence(ctx context.Context) (string, error)

	GetUserContact(ctx context.Context, id int64) (UserContact, error)
}

// Notifier delivers lifecycle event notifications, best effort.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// ServiceConfig wires the service collaborators. A nil Clock uses the
// system clock.
type ServiceConfig struct {
	Store    Store
	Notifier Notifier
	Clock    Clock
}

// Service owns reservation validity and the lifecycle state machine.
type Service struct {
	store    Store
	notifier Notifier
	clock    Clock
}

func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}
	return &Service{
		store:    cfg.Store,
		notifier: cfg.Notifier,
		clock:    clock,
	}
}

// CreateCourt validates and persists a new court. Status defaults to
// available and the court starts active.
func (s *Service) CreateCourt(ctx context.Context, c Court) (Court, error) {
	if c.Status == "" {
		c.Status = CourtAvailable
	}
	if err := c.Validate(); err != nil {
		return Court{}, err
	}
	return s.store.InsertCourt(ctx, c)
}

// CourtDetail bundles a court with its derived reservation count.
type CourtDetail struct {
	Court
	ReservationCount int64
}

func (s *Service) GetCourt(ctx context.Context, id int64) (CourtDetail, error) {
	court, err := s.store.GetCourt(ctx, id)
	if err != nil {
		return CourtDetail{}, err
	}
	count, err := s.store.CountCourtReservations(ctx, id)
	if err != nil {
		return CourtDetail{}, err
	}
	return CourtDetail{Court: court, ReservationCount: count}, nil
}

func (s *Service) ListCourts(ctx context.Context) ([]Court, error) {
	return s.store.ListCourts(ctx)
}

// SetCourtStatus applies the administrative court actions
// (maintenance, available, inactive).
func (s *Service) SetCourtStatus(ctx context.Context, id int64, status CourtStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown court status: %s", status)
	}
	return s.store.UpdateCourtStatus(ctx, id, status)
}

// CreateParams carries the attributes for a new reservation. Confirm runs
// the confirm transition immediately after creation, matching the portal's
// create-then-confirm flow.
type CreateParams struct {
	CourtID   int64
	UserID    int64
	Start     time.Time
	End       time.Time
	Notes     string
	CompanyID int64
	Confirm   bool
}

// CreateReservation validates the interval against the court's active
// reservations and persists a draft, all within one store transaction.
// The sequence reference is assigned exactly once here.
func (s *Service) CreateReservation(ctx context.Context, p CreateParams) (Reservation, error) {
	var created Reservation
	err := s.store.InTx(ctx, func(tx Store) error {
		court, err := tx.GetCourt(ctx, p.CourtID)
		if err != nil {
			return err
		}
		if !court.Bookable() {
			return fmt.Errorf("court %q: %w", court.Name, ErrCourtNotBookable)
		}

		check := CheckParams{Start: p.Start, End: p.End, IsNew: true, Status: StatusDraft}
		if err := CheckInterval(check, s.clock.Now()); err != nil {
			return err
		}
		existing, err := tx.ListActiveIntervals(ctx, court.ID, 0)
		if err != nil {
			return fmt.Errorf("availability check failed: %w", err)
		}
		if err := CheckOverlap(check, court.Name, existing); err != nil {
			return err
		}

		ref, err := tx.NextSequence(ctx)
		if err != nil {
			return fmt.Errorf("assign reservation reference: %w", err)
		}

		r := Reservation{
			Reference: ref,
			CourtID:   court.ID,
			UserID:    p.UserID,
			Start:     p.Start,
			End:       p.End,
			Status:    StatusDraft,
			Notes:     p.Notes,
			CreatedAt: s.clock.Now().UTC(),
			CompanyID: p.CompanyID,
		}
		r.Recompute(court.HourlyPrice)

		created, err = tx.InsertReservation(ctx, r)
		return err
	})
	if err != nil {
		return Reservation{}, err
	}

	if p.Confirm {
		return s.Confirm(ctx, created.ID)
	}
	return created, nil
}

func (s *Service) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

func (s *Service) ListReservations(ctx context.Context, p ListParams) ([]Reservation, error) {
	return s.store.ListReservations(ctx, p)
}

// Confirm re-validates availability and moves draft -> confirmed. The status
// change and the overlap check share a transaction; the confirmation
// notification is dispatched after commit and never blocks the transition.
func (s *Service) Confirm(ctx context.Context, id int64) (Reservation, error) {
	var (
		res   Reservation
		court Court
	)
	err := s.store.InTx(ctx, func(tx Store) error {
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		next, err := NextStatus(r.Status, ActionConfirm)
		if err != nil {
			return err
		}

		court, err = tx.GetCourt(ctx, r.CourtID)
		if err != nil {
			return err
		}
		check := CheckParams{Start: r.Start, End: r.End, Status: r.Status}
		if err := CheckInterval(check, s.clock.Now()); err != nil {
			return err
		}
		existing, err := tx.ListActiveIntervals(ctx, r.CourtID, r.ID)
		if err != nil {
			return fmt.Errorf("availability check failed: %w", err)
		}
		if err := CheckOverlap(check, court.Name, existing); err != nil {
			return err
		}

		if err := tx.UpdateReservationStatus(ctx, r.ID, next); err != nil {
			return err
		}
		r.Status = next
		r.Recompute(court.HourlyPrice)
		res = r
		return nil
	})
	if err != nil {
		return Reservation{}, err
	}

	msg := notify.BuildConfirmation(s.messageDetails(court, res))
	s.sendNotification(res.UserID, msg)
	return res, nil
}

// Start moves confirmed -> in_progress.
func (s *Service) Start(ctx context.Context, id int64) (Reservation, error) {
	return s.transition(ctx, id, ActionStart)
}

// Complete moves in_progress -> completed.
func (s *Service) Complete(ctx context.Context, id int64) (Reservation, error) {
	return s.transition(ctx, id, ActionComplete)
}

// Cancel moves draft or confirmed -> cancelled and dispatches the
// cancellation notification after commit.
func (s *Service) Cancel(ctx context.Context, id int64) (Reservation, error) {
	res, err := s.transition(ctx, id, ActionCancel)
	if err != nil {
		return Reservation{}, err
	}

	court, err := s.store.GetCourt(ctx, res.CourtID)
	if err != nil {
		log.Error().Err(err).Int64("court_id", res.CourtID).Msg("Failed to load court for cancellation notice")
		return res, nil
	}
	msg := notify.BuildCancellation(s.messageDetails(court, res))
	s.sendNotification(res.UserID, msg)
	return res, nil
}

// RevertToDraft is the administrative rollback confirmed -> draft.
func (s *Service) RevertToDraft(ctx context.Context, id int64) (Reservation, error) {
	return s.transition(ctx, id, ActionRevert)
}

func (s *Service) transition(ctx context.Context, id int64, action Action) (Reservation, error) {
	var res Reservation
	err := s.store.InTx(ctx, func(tx Store) error {
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		next, err := NextStatus(r.Status, action)
		if err != nil {
			return err
		}
		if err := tx.UpdateReservationStatus(ctx, r.ID, next); err != nil {
			return err
		}
		r.Status = next
		res = r
		return nil
	})
	if err != nil {
		return Reservation{}, err
	}
	return res, nil
}

func (s *Service) messageDetails(court Court, r Reservation) notify.Details {
	date, timeRange := notify.FormatDateTimeRange(r.Start, r.End)
	return notify.Details{
		Reference: r.Reference,
		CourtName: court.Name,
		Date:      date,
		TimeRange: timeRange,
	}
}

// sendNotification delivers asynchronously. Delivery failures are logged and
// never unwind a committed transition.
func (s *Service) sendNotification(userID int64, msg notify.Message) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	contact, err := s.store.GetUserContact(ctx, userID)
	if err != nil {
		cancel()
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to load user for notification")
		return
	}
	if contact.Email == "" {
		cancel()
		return
	}

	go func() {
		defer cancel()
		if err := s.notifier.Send(ctx, contact.Email, msg.Subject, msg.Body); err != nil {
			log.Error().Err(err).Str("recipient", contact.Email).Msg("Failed to send notification")
		}
	}()
}
