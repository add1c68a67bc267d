// internal/store/courts.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openfield/courtbook/internal/booking"
)

const courtColumns = `id, name, type, description, capacity, hourly_price, status, active, location, notes`

func (s *Store) InsertCourt(ctx context.Context, c booking.Court) (booking.Court, error) {
	result, err := s.exec.ExecContext(ctx, `
		INSERT INTO courts (name, type, description, capacity, hourly_price, status, active, location, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, string(c.Type), c.Description, c.Capacity, c.HourlyPrice,
		string(c.Status), c.Active, c.Location, c.Notes,
	)
	if err != nil {
		return booking.Court{}, fmt.Errorf("insert court: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return booking.Court{}, fmt.Errorf("insert court id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (s *Store) GetCourt(ctx context.Context, id int64) (booking.Court, error) {
	row := s.exec.QueryRowContext(ctx,
		`SELECT `+courtColumns+` FROM courts WHERE id = ?`, id)
	court, err := scanCourt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Court{}, fmt.Errorf("court %d: %w", id, booking.ErrNotFound)
		}
		return booking.Court{}, fmt.Errorf("get court: %w", err)
	}
	return court, nil
}

func (s *Store) ListCourts(ctx context.Context) ([]booking.Court, error) {
	rows, err := s.exec.QueryContext(ctx,
		`SELECT `+courtColumns+` FROM courts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	defer rows.Close()

	var courts []booking.Court
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan court: %w", err)
		}
		courts = append(courts, court)
	}
	return courts, rows.Err()
}

func (s *Store) UpdateCourtStatus(ctx context.Context, id int64, status booking.CourtStatus) error {
	result, err := s.exec.ExecContext(ctx,
		`UPDATE courts SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update court status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update court status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("court %d: %w", id, booking.ErrNotFound)
	}
	return nil
}

func (s *Store) CountCourtReservations(ctx context.Context, courtID int64) (int64, error) {
	var count int64
	err := s.exec.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE court_id = ?`, courtID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count court reservations: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourt(row rowScanner) (booking.Court, error) {
	var (
		c          booking.Court
		courtType  string
		statusText string
	)
	err := row.Scan(&c.ID, &c.Name, &courtType, &c.Description, &c.Capacity,
		&c.HourlyPrice, &statusText, &c.Active, &c.Location, &c.Notes)
	if err != nil {
		return booking.Court{}, err
	}
	c.Type = booking.CourtType(courtType)
	c.Status = booking.CourtStatus(statusText)
	return c, nil
}
