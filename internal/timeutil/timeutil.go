package timeutil

import (
	"fmt"
	"time"
)

// Accepted input layouts, tried in order. Overland and the API cursor use
// RFC3339; HTML datetime-local inputs arrive without seconds or zone.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseError reports a malformed timestamp and names the offending field.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid datetime for %s: %q", e.Field, e.Value)
}

// ParseInstant parses an ISO-8601 timestamp into a UTC instant.
// Inputs without an explicit offset are treated as UTC.
func ParseInstant(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &ParseError{Field: field, Value: value}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ParseError{Field: field, Value: value}
}

// FormatInstant serializes an instant as RFC3339 with an explicit UTC offset.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Midpoint returns the instant halfway between a and b.
func Midpoint(a, b time.Time) time.Time {
	return a.Add(b.Sub(a) / 2)
}
