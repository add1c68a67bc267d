// internal/contact/phone.go

// Package contact normalizes user contact details.
package contact

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// NormalizePhone parses a user-supplied phone number and returns it in E.164
// form. Numbers without a country prefix are parsed against the default
// region. An empty input is allowed and passes through unchanged.
func NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	parsed, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number: %s", trimmed)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
