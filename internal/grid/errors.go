package grid

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/jadwal/internal/clock"
)

// Sentinels matched by the typed errors below.
var (
	ErrUnknownDay  = errors.New("unknown day")
	ErrOutOfWindow = errors.New("time outside grid window")
)

// DomainError reports a day name outside the fixed six-day set.
type DomainError struct {
	Day string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s %q: expected one of Senin, Selasa, Rabu, Kamis, Jumat, Sabtu", ErrUnknownDay, e.Day)
}

func (e *DomainError) Is(target error) bool { return target == ErrUnknownDay }

// RangeError reports a time that cannot be placed inside [StartHour, EndHour].
type RangeError struct {
	Time      clock.Clock
	StartHour int
	EndHour   int
	Reason    string
}

func (e *RangeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", ErrOutOfWindow, e.Time, e.Reason)
	}
	return fmt.Sprintf("%s: %s not within %s-%s", ErrOutOfWindow, e.Time,
		clock.Format(e.StartHour, 0), clock.Format(e.EndHour, 0))
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfWindow }
