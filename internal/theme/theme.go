// Package theme provides the light and dark colour palettes of the grid.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme names.
const (
	Light = "light"
	Dark  = "dark"
)

// ErrUnknownTheme is returned for names other than Light and Dark.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme holds the hex colours of one palette.
type Theme struct {
	Name       string `toml:"name"`
	Background string `toml:"background"` // Grid container
	GridLine   string `toml:"grid_line"`  // Hour separators
	HeaderBg   string `toml:"header_bg"`  // Day-name header band
	HeaderFg   string `toml:"header_fg"`
	BlockBg    string `toml:"block_bg"` // Session blocks
	BlockFg    string `toml:"block_fg"`
	Title      string `toml:"title"` // Session title accent
	Label      string `toml:"label"` // Time axis labels
}

// Load reads a palette by name from the embedded files.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(name)
	if !IsAvailable(name) {
		return nil, fmt.Errorf("%w %q: available %s", ErrUnknownTheme, name, strings.Join(Available(), ", "))
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	return &t, nil
}

// Available returns the palette names.
func Available() []string {
	return []string{Light, Dark}
}

// IsAvailable reports whether a palette name exists.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}

// Palette holds lipgloss colours for terminal rendering alongside the hex
// values the spreadsheet exporter needs.
type Palette struct {
	Hex Theme

	Background lipgloss.Color
	GridLine   lipgloss.Color
	HeaderBg   lipgloss.Color
	HeaderFg   lipgloss.Color
	BlockBg    lipgloss.Color
	BlockFg    lipgloss.Color
	Title      lipgloss.Color
	Label      lipgloss.Color
}

// NewPalette derives a Palette from t.
func NewPalette(t *Theme) Palette {
	return Palette{
		Hex:        *t,
		Background: lipgloss.Color(t.Background),
		GridLine:   lipgloss.Color(t.GridLine),
		HeaderBg:   lipgloss.Color(t.HeaderBg),
		HeaderFg:   lipgloss.Color(t.HeaderFg),
		BlockBg:    lipgloss.Color(t.BlockBg),
		BlockFg:    lipgloss.Color(t.BlockFg),
		Title:      lipgloss.Color(t.Title),
		Label:      lipgloss.Color(t.Label),
	}
}
