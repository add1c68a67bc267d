// internal/store/sequence.go
package store

import (
	"context"
	"fmt"
)

// NextSequence advances the reservation sequence and formats the reference.
// The single-row update is atomic, so references are unique and monotonic
// even across concurrent creators.
func (s *Store) NextSequence(ctx context.Context) (string, error) {
	var n int64
	err := s.exec.QueryRowContext(ctx, `
		UPDATE reservation_sequence SET next_value = next_value + 1
		WHERE id = 1
		RETURNING next_value - 1`,
	).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next reservation sequence: %w", err)
	}
	return fmt.Sprintf("RES/%05d", n), nil
}
