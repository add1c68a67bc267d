// internal/notify/templates.go
package notify

import (
	"fmt"
	"strings"
	"time"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	Subject string
	Body    string
}

// Details feeds the lifecycle notification templates.
type Details struct {
	Reference string
	CourtName string
	Date      string
	TimeRange string
}

// FormatDateTimeRange renders a reservation window for notification bodies.
func FormatDateTimeRange(start, end time.Time) (string, string) {
	date := start.Format("Monday, Jan 2, 2006")
	timeRange := fmt.Sprintf("%s - %s %s", start.Format("3:04 PM"), end.Format("3:04 PM"), start.Format("MST"))
	return date, timeRange
}

// BuildConfirmation renders the reservation-confirmed notification.
func BuildConfirmation(details Details) Message {
	courtName := strings.TrimSpace(details.CourtName)
	if courtName == "" {
		courtName = "your court"
	}

	subject := "Reservation Confirmed"
	if details.Reference != "" {
		subject = fmt.Sprintf("%s - %s", subject, details.Reference)
	}

	lines := []string{
		fmt.Sprintf("Your reservation for %s has been confirmed.", courtName),
		"",
		fmt.Sprintf("Reference: %s", details.Reference),
		fmt.Sprintf("Court: %s", courtName),
		fmt.Sprintf("Date: %s", details.Date),
		fmt.Sprintf("Time: %s", details.TimeRange),
	}

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}

// BuildCancellation renders the reservation-cancelled notification.
func BuildCancellation(details Details) Message {
	courtName := strings.TrimSpace(details.CourtName)
	if courtName == "" {
		courtName = "your court"
	}

	subject := "Reservation Cancelled"
	if details.Reference != "" {
		subject = fmt.Sprintf("%s - %s", subject, details.Reference)
	}

	lines := []string{
		fmt.Sprintf("Your reservation for %s has been cancelled.", courtName),
		"",
		fmt.Sprintf("Reference: %s", details.Reference),
		fmt.Sprintf("Court: %s", courtName),
	}

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}

// BuildReminder renders the upcoming-reservation reminder.
func BuildReminder(details Details) Message {
	courtName := strings.TrimSpace(details.CourtName)
	if courtName == "" {
		courtName = "your court"
	}

	subject := "Upcoming Reservation Reminder"
	if details.Reference != "" {
		subject = fmt.Sprintf("%s - %s", subject, details.Reference)
	}

	lines := []string{
		fmt.Sprintf("Reminder: your reservation for %s is coming up.", courtName),
		"",
		fmt.Sprintf("Reference: %s", details.Reference),
		fmt.Sprintf("Court: %s", courtName),
		fmt.Sprintf("Date: %s", details.Date),
		fmt.Sprintf("Time: %s", details.TimeRange),
	}

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}
