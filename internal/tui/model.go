// Package tui provides the interactive schedule viewer.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/jadwal/internal/grid"
	"github.com/javiermolinar/jadwal/internal/presentation"
	"github.com/javiermolinar/jadwal/internal/render"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/theme"
)

// chromeLines is the number of lines used by the title and footer.
const chromeLines = 3

// Options configures a viewer session.
type Options struct {
	Grid           grid.Config
	Device         presentation.Device
	Theme          string
	MinutesPerLine int
}

// Model is the viewer model. The schedule is read once; every toggle
// re-plans it against a fresh mapper.
type Model struct {
	schedule schedule.Schedule
	opts     Options

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	blocks  int
	skipped []*schedule.ItemError
	err     error
}

// New creates a viewer for s.
func New(s schedule.Schedule, opts Options) Model {
	return Model{schedule: s, opts: opts, viewport: viewport.New(0, 0)}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the viewer in the alternate screen and blocks until it quits.
func Run(s schedule.Schedule, opts Options) error {
	p := tea.NewProgram(New(s, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// content plans the schedule with the current toggles and draws it.
func (m *Model) content() string {
	mapper, err := grid.NewMapper(m.opts.Grid)
	if err != nil {
		m.err = err
		return ""
	}
	p, err := presentation.For(m.opts.Device, m.opts.Theme)
	if err != nil {
		m.err = err
		return ""
	}
	m.err = nil

	blocks, skipped := schedule.LayoutSkipping(m.schedule, mapper)
	m.blocks = len(blocks)
	m.skipped = skipped
	return render.Terminal(blocks, mapper, p, render.TerminalOptions{
		Width:          m.width,
		MinutesPerLine: m.opts.MinutesPerLine,
	})
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
}

func (m *Model) toggleTheme() {
	if m.opts.Theme == theme.Dark {
		m.opts.Theme = theme.Light
	} else {
		m.opts.Theme = theme.Dark
	}
}

func (m *Model) toggleDevice() {
	if m.opts.Device == presentation.Mobile {
		m.opts.Device = presentation.Desktop
	} else {
		m.opts.Device = presentation.Mobile
	}
}
