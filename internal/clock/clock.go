// Package clock parses and formats the "HH.MM" time-of-day notation used by
// schedule entries.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is matched by every ParseError.
var ErrInvalidClock = errors.New("clock time must be in HH.MM format")

// Separator joins the hour and minute parts.
const Separator = "."

// ParseError reports malformed clock-time text.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing clock %q: %s", e.Text, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidClock) hold for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidClock
}

// Clock is a time of day with minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// Parse reads "HH.MM" text. Both parts may be zero-padded or unpadded.
// Values are not range-checked here; the grid mapper owns the window.
func Parse(text string) (Clock, error) {
	hourPart, minutePart, ok := strings.Cut(text, Separator)
	if !ok {
		return Clock{}, &ParseError{Text: text, Reason: "missing separator"}
	}
	hour, err := parsePart(hourPart)
	if err != nil {
		return Clock{}, &ParseError{Text: text, Reason: "hour " + err.Error()}
	}
	minute, err := parsePart(minutePart)
	if err != nil {
		return Clock{}, &ParseError{Text: text, Reason: "minute " + err.Error()}
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func parsePart(s string) (int, error) {
	if s == "" {
		return 0, errors.New("is empty")
	}
	if len(s) > 2 {
		return 0, errors.New("has more than two digits")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errors.New("is not numeric")
		}
	}
	return strconv.Atoi(s)
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) Clock {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

// Format zero-pads both parts to two digits.
func Format(hour, minute int) string {
	return fmt.Sprintf("%02d%s%02d", hour, Separator, minute)
}

// String returns the clock in "HH.MM" notation.
func (c Clock) String() string {
	return Format(c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is strictly earlier than other.
func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

// FromMinutes converts minutes since midnight back to a Clock.
// Negative input is treated as midnight.
func FromMinutes(m int) Clock {
	if m < 0 {
		m = 0
	}
	return Clock{Hour: m / 60, Minute: m % 60}
}
