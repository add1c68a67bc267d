// internal/notify/log.go
package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogNotifier writes notifications to the log instead of delivering them.
// Used in development and in environments without SES credentials.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	log.Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Str("body", body).
		Msg("Notification (log only)")
	return nil
}
