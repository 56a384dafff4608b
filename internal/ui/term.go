package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/javiermolinar/jadwal/internal/presentation"
	"github.com/javiermolinar/jadwal/internal/theme"
)

// Color definitions for consistent styling across the CLI.
var (
	colorHeader = color.New(color.Bold)
	colorTitle  = color.New(color.FgYellow, color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
	colorError  = color.New(color.FgRed)
)

// termWidth returns the terminal width and whether stdout is a terminal.
func termWidth() (int, bool) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// resolveDevice turns "auto" into mobile or desktop from the terminal width.
// Output that is not a terminal is treated as desktop.
func resolveDevice(setting string, mobileWidth int) (presentation.Device, error) {
	if setting != "auto" {
		return presentation.ParseDevice(setting)
	}
	if width, ok := termWidth(); ok && width < mobileWidth {
		return presentation.Mobile, nil
	}
	return presentation.Desktop, nil
}

// resolveTheme turns "auto" into light or dark from the terminal background.
func resolveTheme(setting string) string {
	if setting != "auto" {
		return setting
	}
	if termenv.HasDarkBackground() {
		return theme.Dark
	}
	return theme.Light
}
