package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"

	"casetracker/internal/validate"
)

// ErrInvalidPattern is returned for patterns that cannot render and read
// back a date.
var ErrInvalidPattern = errors.New("invalid date/time pattern")

const maxPatternLen = 40

var (
	dateProbe      = time.Date(2031, time.December, 25, 0, 0, 0, 0, time.UTC)
	timestampProbe = time.Date(2031, time.December, 25, 13, 47, 0, 0, time.UTC)
)

// CompileDate converts a strftime date pattern to a Go layout. The pattern
// must identify day, month and year.
func CompileDate(pattern string) (string, error) {
	return compile(pattern, dateProbe)
}

// CompileTimestamp converts a strftime timestamp pattern to a Go layout. The
// pattern must identify the date, hour and minute.
func CompileTimestamp(pattern string) (string, error) {
	return compile(pattern, timestampProbe)
}

func compile(pattern string, probe time.Time) (string, error) {
	if pattern == "" || len(pattern) > maxPatternLen || !validate.IsASCIIPrintable(pattern) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	layout, err := strftime.Layout(pattern)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	back, err := time.Parse(layout, probe.Format(layout))
	if err != nil || !back.Equal(probe) {
		return "", fmt.Errorf("%w: %q does not identify a full %s", ErrInvalidPattern, pattern, what(probe))
	}
	return layout, nil
}

func what(probe time.Time) string {
	if probe.Hour() != 0 {
		return "date and time"
	}
	return "date"
}
