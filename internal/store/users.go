// internal/store/users.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openfield/courtbook/internal/booking"
)

func (s *Store) InsertUser(ctx context.Context, name, email, phone string) (booking.UserContact, error) {
	result, err := s.exec.ExecContext(ctx,
		`INSERT INTO users (name, email, phone) VALUES (?, ?, ?)`,
		name, email, phone,
	)
	if err != nil {
		return booking.UserContact{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return booking.UserContact{}, fmt.Errorf("insert user id: %w", err)
	}
	return booking.UserContact{ID: id, Name: name, Email: email, Phone: phone}, nil
}

func (s *Store) GetUserContact(ctx context.Context, id int64) (booking.UserContact, error) {
	var contact booking.UserContact
	err := s.exec.QueryRowContext(ctx,
		`SELECT id, name, email, phone FROM users WHERE id = ?`, id).
		Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.UserContact{}, fmt.Errorf("user %d: %w", id, booking.ErrNotFound)
		}
		return booking.UserContact{}, fmt.Errorf("get user: %w", err)
	}
	return contact, nil
}
