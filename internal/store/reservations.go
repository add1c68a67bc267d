// internal/store/reservations.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openfield/courtbook/internal/booking"
)

const reservationColumns = `id, reference, court_id, user_id, start_time, end_time,
	duration_hours, total_price, status, notes, created_at, company_id`

func (s *Store) InsertReservation(ctx context.Context, r booking.Reservation) (booking.Reservation, error) {
	result, err := s.exec.ExecContext(ctx, `
		INSERT INTO reservations (reference, court_id, user_id, start_time, end_time,
			duration_hours, total_price, status, notes, created_at, company_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Reference, r.CourtID, r.UserID, r.Start.UTC(), r.End.UTC(),
		r.DurationHours, r.TotalPrice, string(r.Status), r.Notes, r.CreatedAt.UTC(), r.CompanyID,
	)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("insert reservation id: %w", err)
	}
	r.ID = id
	return r, nil
}

func (s *Store) GetReservation(ctx context.Context, id int64) (booking.Reservation, error) {
	row := s.exec.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	r, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Reservation{}, fmt.Errorf("reservation %d: %w", id, booking.ErrNotFound)
		}
		return booking.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return r, nil
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id int64, status booking.Status) error {
	result, err := s.exec.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("reservation %d: %w", id, booking.ErrNotFound)
	}
	return nil
}

// ListReservations returns reservations ordered by start time descending,
// filtered by user and optional date range, with limit/offset paging.
func (s *Store) ListReservations(ctx context.Context, p booking.ListParams) ([]booking.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	args := []any{}
	if p.UserID != 0 {
		query += ` AND user_id = ?`
		args = append(args, p.UserID)
	}
	if !p.From.IsZero() {
		query += ` AND start_time >= ?`
		args = append(args, p.From.UTC())
	}
	if !p.To.IsZero() {
		query += ` AND start_time <= ?`
		args = append(args, p.To.UTC())
	}
	query += ` ORDER BY start_time DESC`
	if p.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.Limit, p.Offset)
	}

	rows, err := s.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListActiveIntervals returns the [start, end) windows of reservations on a
// court with status in {confirmed, in_progress}, excluding one identity.
// Cancelled reservations never appear here.
func (s *Store) ListActiveIntervals(ctx context.Context, courtID, excludeID int64) ([]booking.Interval, error) {
	rows, err := s.exec.QueryContext(ctx, `
		SELECT start_time, end_time FROM reservations
		WHERE court_id = ? AND id != ? AND status IN (?, ?)`,
		courtID, excludeID, string(booking.StatusConfirmed), string(booking.StatusInProgress),
	)
	if err != nil {
		return nil, fmt.Errorf("list active intervals: %w", err)
	}
	defer rows.Close()

	var intervals []booking.Interval
	for rows.Next() {
		var iv booking.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("scan interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

// ListReservationsStartingBetween returns confirmed reservations whose start
// falls in [from, to). Used by the reminder job.
func (s *Store) ListReservationsStartingBetween(ctx context.Context, from, to time.Time) ([]booking.Reservation, error) {
	rows, err := s.exec.QueryContext(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		WHERE status = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time`,
		string(booking.StatusConfirmed), from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list reservations starting between: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]booking.Reservation, error) {
	var reservations []booking.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func scanReservation(row rowScanner) (booking.Reservation, error) {
	var (
		r          booking.Reservation
		statusText string
	)
	err := row.Scan(&r.ID, &r.Reference, &r.CourtID, &r.UserID, &r.Start, &r.End,
		&r.DurationHours, &r.TotalPrice, &statusText, &r.Notes, &r.CreatedAt, &r.CompanyID)
	if err != nil {
		return booking.Reservation{}, err
	}
	r.Status = booking.Status(statusText)
	return r, nil
}
