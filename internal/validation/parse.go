// Package validation parses free-text console input into typed values.
package validation

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
)

// dateTimeFormat pairs a human readable format with its Go layout.
type dateTimeFormat struct {
	name   string
	layout string
}

// Order matters: the first layout that parses wins.
var dateTimeFormats = []dateTimeFormat{
	{name: "YYYY-MM-DD HH:MM", layout: "2006-1-2 15:04"},
	{name: "YYYY-MM-DD", layout: "2006-1-2"},
	{name: "DD-MM-YYYY HH:MM", layout: "2-1-2006 15:04"},
	{name: "DD-MM-YYYY", layout: "2-1-2006"},
}

// DateTimeFormats returns the accepted date formats in the order they are tried.
func DateTimeFormats() []string {
	names := make([]string, len(dateTimeFormats))
	for i, f := range dateTimeFormats {
		names[i] = f.name
	}
	return names
}

// ParseStrictInteger parses a base-10 integer with an optional sign.
// Surrounding whitespace is ignored; anything else in text is an error.
func ParseStrictInteger(text string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, apperrors.NewParse("integer", text, err)
	}
	return n, nil
}

// ParseFlexibleDateTime parses text in the local time zone using the first
// matching entry of DateTimeFormats.
func ParseFlexibleDateTime(text string) (time.Time, error) {
	return ParseFlexibleDateTimeIn(text, time.Local)
}

// ParseFlexibleDateTimeIn is ParseFlexibleDateTime with an explicit location.
func ParseFlexibleDateTimeIn(text string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(text)
	for _, f := range dateTimeFormats {
		if t, err := time.ParseInLocation(f.layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewParseFormats("datetime", text, DateTimeFormats())
}
