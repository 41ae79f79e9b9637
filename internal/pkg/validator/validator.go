// Package validator holds the field checks shared by request DTOs.
package validator

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidationError reports one invalid request field.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is returned by every DTO Validate method and rendered as a 422.
type ValidationErrors []ValidationError

// Add records a problem with field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when nothing was recorded.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, err := range v {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Field)
		b.WriteString(": ")
		b.WriteString(err.Message)
	}
	return b.String()
}

// ToMap keys messages by field. The first message for a field wins.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		if _, seen := result[err.Field]; !seen {
			result[err.Field] = err.Message
		}
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID accepts only the canonical dashed form of a version 7 UUID,
// which is what the repositories generate.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 7
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

// IsNumeric reports whether s is a non-empty run of ASCII digits. Civil and military IDs use it.
func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsValidDate parses a YYYY-MM-DD calendar date.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(time.DateOnly, dateStr)
	return date, err == nil
}

// 24-hour wall clock, "8:05" and "08:05" both accepted
var timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTime checks for an HH:MM time of day.
func IsValidTime(s string) bool {
	return timeRegex.MatchString(strings.TrimSpace(s))
}

// Barcodes printed on trainee cards: letters, digits and dashes
var barcodeRegex = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

func IsValidBarcode(s string) bool {
	return barcodeRegex.MatchString(s)
}

func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}

// IsValidDateTime parses an RFC 3339 timestamp with an explicit offset,
// e.g. "2025-03-10T08:05:00+03:00".
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, dateTimeStr)
	return t, err == nil
}
