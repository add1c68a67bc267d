package notify

import (
	"strings"
	"testing"
	"time"
)

func testDetails() Details {
	start := time.Date(2026, time.June, 5, 14, 0, 0, 0, time.UTC)
	date, timeRange := FormatDateTimeRange(start, start.Add(90*time.Minute))
	return Details{
		Reference: "RES/00042",
		CourtName: "Court A",
		Date:      date,
		TimeRange: timeRange,
	}
}

func TestFormatDateTimeRange(t *testing.T) {
	start := time.Date(2026, time.June, 5, 14, 0, 0, 0, time.UTC)
	date, timeRange := FormatDateTimeRange(start, start.Add(90*time.Minute))

	if date != "Friday, Jun 5, 2026" {
		t.Fatalf("date: got %q", date)
	}
	if timeRange != "2:00 PM - 3:30 PM UTC" {
		t.Fatalf("time range: got %q", timeRange)
	}
}

func TestBuildConfirmation(t *testing.T) {
	msg := BuildConfirmation(testDetails())

	if msg.Subject != "Reservation Confirmed - RES/00042" {
		t.Fatalf("subject: got %q", msg.Subject)
	}
	for _, want := range []string{"Court A", "RES/00042", "Friday, Jun 5, 2026"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestBuildCancellation(t *testing.T) {
	msg := BuildCancellation(testDetails())

	if msg.Subject != "Reservation Cancelled - RES/00042" {
		t.Fatalf("subject: got %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "has been cancelled") {
		t.Fatalf("body:\n%s", msg.Body)
	}
}

func TestBuildReminder(t *testing.T) {
	msg := BuildReminder(testDetails())

	if msg.Subject != "Upcoming Reservation Reminder - RES/00042" {
		t.Fatalf("subject: got %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "is coming up") {
		t.Fatalf("body:\n%s", msg.Body)
	}
}

func TestBuildConfirmation_MissingCourtName(t *testing.T) {
	details := testDetails()
	details.CourtName = "  "
	msg := BuildConfirmation(details)

	if !strings.Contains(msg.Body, "your court") {
		t.Fatalf("body missing fallback court name:\n%s", msg.Body)
	}
}
