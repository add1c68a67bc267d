// internal/scheduler/reminders.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openfield/courtbook/internal/booking"
	"github.com/openfield/courtbook/internal/notify"
	"github.com/openfield/courtbook/internal/store"
)

const (
	defaultReminderHoursBefore int64 = 24
	reminderJobWindow                = 15 * time.Minute
)

// RegisterReminderJob registers the scheduled reservation reminder task.
// Every run scans the window reminderHours out and emails the requester of
// each confirmed reservation starting in it.
func RegisterReminderJob(st *store.Store, notifier booking.Notifier, reminderHours int64) error {
	if st == nil {
		return fmt.Errorf("reminder job requires store")
	}
	if reminderHours <= 0 {
		reminderHours = defaultReminderHoursBefore
	}

	jobName := "reservation_reminders"
	cronExpr := "*/15 * * * *"
	jobLogger := log.With().
		Str("component", "reservation_reminders_job").
		Str("job_name", jobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if notifier == nil {
			jobLogger.Debug().Msg("Reminder job skipped: notifier not configured")
			return
		}

		now := time.Now().UTC()
		windowStart := now.Add(time.Duration(reminderHours) * time.Hour)
		windowEnd := windowStart.Add(reminderJobWindow)

		reservations, err := st.ListReservationsStartingBetween(ctx, windowStart, windowEnd)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Failed to load reservations for reminder job")
			return
		}

		for _, reservation := range reservations {
			if err := sendReservationReminder(ctx, st, notifier, reservation, &jobLogger); err != nil {
				jobLogger.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("Failed to send reminder")
			}
		}
	}, gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return fmt.Errorf("add reservation reminder job: %w", err)
	}

	jobLogger.Info().Msg("Reservation reminder job registered")
	return nil
}

func sendReservationReminder(ctx context.Context, st *store.Store, notifier booking.Notifier, reservation booking.Reservation, logger *zerolog.Logger) error {
	court, err := st.GetCourt(ctx, reservation.CourtID)
	if err != nil {
		return fmt.Errorf("load reservation court: %w", err)
	}
	contact, err := st.GetUserContact(ctx, reservation.UserID)
	if err != nil {
		return fmt.Errorf("load reservation user: %w", err)
	}
	if contact.Email == "" {
		return nil
	}

	date, timeRange := notify.FormatDateTimeRange(reservation.Start, reservation.End)
	reminder := notify.BuildReminder(notify.Details{
		Reference: reservation.Reference,
		CourtName: court.Name,
		Date:      date,
		TimeRange: timeRange,
	})

	if err := notifier.Send(ctx, contact.Email, reminder.Subject, reminder.Body); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	logger.Debug().
		Int64("reservation_id", reservation.ID).
		Str("reference", reservation.Reference).
		Msg("Reminder sent")
	return nil
}
