package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B500"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the title bar, the scrollable grid and the footer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.viewport.View(),
		m.renderStatus(),
		m.renderHints(),
	)
}

func (m Model) renderTitle() string {
	name := m.schedule.Name
	if name == "" {
		name = "Jadwal"
	}
	return ansi.Truncate(titleStyle.Render(name), m.width, "…")
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return ansi.Truncate(errorStyle.Render(m.err.Error()), m.width, "…")
	}
	status := fmt.Sprintf("%s · %s · %d blocks", m.opts.Device, m.opts.Theme, m.blocks)
	if n := len(m.skipped); n > 0 {
		status += errorStyle.Render(fmt.Sprintf(" · %d skipped", n))
	}
	status += fmt.Sprintf(" · %3.f%%", m.viewport.ScrollPercent()*100)
	return ansi.Truncate(footerStyle.Render(status), m.width, "…")
}

func (m Model) renderHints() string {
	hints := "t theme  m device  l label  h header  r room  ↑/↓ scroll  q quit"
	return ansi.Truncate(footerStyle.Render(hints), m.width, "…")
}
