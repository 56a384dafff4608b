package grid

import (
	"errors"
	"fmt"
)

// Config describes the visible window and optional features of one grid
// render. It is immutable for the duration of a render.
type Config struct {
	StartHour       int     `json:"startHour"`
	EndHour         int     `json:"endHour"`
	PixelsPerMinute float64 `json:"pixelsPerMinute"`
	ShowLabel       bool    `json:"showLabel"`
	ShowHeader      bool    `json:"showHeader"`
	ShowRoom        bool    `json:"showRoom"`
	Width           string  `json:"width,omitempty"` // passed through to the renderer
}

// Config validation errors.
var (
	ErrInvalidWindow  = errors.New("start hour must be before end hour within 0-24")
	ErrInvalidDensity = errors.New("pixels per minute must be positive")
)

// DefaultConfig is the desktop grid used by the schedule viewer.
func DefaultConfig() Config {
	return Config{
		StartHour:       7,
		EndHour:         21,
		PixelsPerMinute: 1,
		ShowLabel:       true,
		ShowHeader:      true,
		ShowRoom:        true,
		Width:           "100%",
	}
}

// Validate checks the window bounds and density.
func (c Config) Validate() error {
	if c.StartHour < 0 || c.EndHour > 24 || c.StartHour >= c.EndHour {
		return fmt.Errorf("%w: got %d-%d", ErrInvalidWindow, c.StartHour, c.EndHour)
	}
	if c.PixelsPerMinute <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidDensity, c.PixelsPerMinute)
	}
	return nil
}

// Hours returns the number of hours in the visible window.
func (c Config) Hours() int {
	return c.EndHour - c.StartHour
}
