// Package presentation selects which optional grid features and which
// density and colours a render uses, given a device class and colour theme.
package presentation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/jadwal/internal/theme"
)

// Device is the class of screen the grid is rendered for.
type Device string

const (
	Mobile  Device = "mobile"
	Desktop Device = "desktop"
)

// ErrUnknownDevice is returned for device names other than mobile and desktop.
var ErrUnknownDevice = errors.New("unknown device")

// ParseDevice accepts "mobile" or "desktop", case-insensitively.
func ParseDevice(s string) (Device, error) {
	switch d := Device(strings.ToLower(s)); d {
	case Mobile, Desktop:
		return d, nil
	default:
		return "", fmt.Errorf("%w %q: expected mobile or desktop", ErrUnknownDevice, s)
	}
}

// Presentation is the resolved display policy for one render.
type Presentation struct {
	Device Device
	Theme  string

	// BlockHeader renders a "start - end" line with the room above the
	// title. Compact (mobile) blocks show the room inline instead.
	BlockHeader bool
	RoomInline  bool

	TitleFontPx  int
	HeaderFontPx int
	LabelFontPx  int

	Palette theme.Palette
}

// For returns the presentation for device and themeName. It is a pure
// function of its inputs.
func For(device Device, themeName string) (Presentation, error) {
	device, err := ParseDevice(string(device))
	if err != nil {
		return Presentation{}, err
	}
	th, err := theme.Load(themeName)
	if err != nil {
		return Presentation{}, err
	}

	p := Presentation{
		Device:  device,
		Theme:   th.Name,
		Palette: theme.NewPalette(th),
	}
	if device == Mobile {
		p.RoomInline = true
		p.TitleFontPx = 8
		p.HeaderFontPx = 12
		p.LabelFontPx = 12
	} else {
		p.BlockHeader = true
		p.TitleFontPx = 12
		p.HeaderFontPx = 16
		p.LabelFontPx = 16
	}
	return p, nil
}

// Compact reports whether blocks use the single-part mobile form.
func (p Presentation) Compact() bool {
	return !p.BlockHeader
}
