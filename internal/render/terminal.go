// Package render draws planned blocks onto concrete outputs: a terminal grid
// styled with lipgloss and an XLSX sheet.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/jadwal/internal/grid"
	"github.com/javiermolinar/jadwal/internal/presentation"
	"github.com/javiermolinar/jadwal/internal/schedule"
)

const (
	labelWidth     = 6
	minDayWidth    = 8
	defaultWidth   = 100
	ellipsis       = "…"
	gridLineRune   = "─"
	defaultMinutes = 15
)

// TerminalOptions sizes the terminal grid.
type TerminalOptions struct {
	Width          int // total columns available
	MinutesPerLine int // grid minutes per text line
}

func (o TerminalOptions) withDefaults() TerminalOptions {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.MinutesPerLine <= 0 {
		o.MinutesPerLine = defaultMinutes
	}
	return o
}

type cell struct {
	text  string
	style lipgloss.Style
}

type styles struct {
	empty, line, label, header, block, title lipgloss.Style
}

func newStyles(p presentation.Presentation) styles {
	pal := p.Palette
	base := lipgloss.NewStyle().Background(pal.Background)
	return styles{
		empty:  base,
		line:   base.Foreground(pal.GridLine),
		label:  base.Foreground(pal.Label),
		header: lipgloss.NewStyle().Background(pal.HeaderBg).Foreground(pal.HeaderFg).Bold(true).Align(lipgloss.Center),
		block:  lipgloss.NewStyle().Background(pal.BlockBg).Foreground(pal.BlockFg),
		title:  lipgloss.NewStyle().Background(pal.BlockBg).Foreground(pal.Title).Bold(true),
	}
}

// Terminal draws blocks on a text grid, one line per MinutesPerLine minutes
// of the window. Blocks are painted in order, so a later overlapping block
// covers an earlier one.
func Terminal(blocks []schedule.Block, m *grid.Mapper, p presentation.Presentation, opts TerminalOptions) string {
	opts = opts.withDefaults()
	cfg := m.Config()
	st := newStyles(p)

	lblWidth := 0
	if cfg.ShowLabel {
		lblWidth = labelWidth
	}
	dayWidth := max((opts.Width-lblWidth)/len(grid.Days), minDayWidth)
	lineCount := cfg.Hours()*60/opts.MinutesPerLine + 1

	canvas := make([][]cell, len(grid.Days))
	for c := range canvas {
		canvas[c] = make([]cell, lineCount)
		for i := range canvas[c] {
			if _, ok := hourOfLine(i, opts.MinutesPerLine, cfg.Hours()); ok {
				canvas[c][i] = cell{text: strings.Repeat(gridLineRune, dayWidth), style: st.line}
			} else {
				canvas[c][i] = cell{style: st.empty}
			}
		}
	}

	origin := m.TimeMarkerRow(0)
	for _, b := range blocks {
		c := b.Column - 1 - m.LabelColumn()
		if c < 0 || c >= len(canvas) {
			continue
		}
		first := (b.RowStart - origin) / opts.MinutesPerLine
		last := ceilDiv(b.RowEnd-origin, opts.MinutesPerLine)
		if last <= first {
			last = first + 1
		}
		last = min(last, lineCount)

		content := blockLines(b, p)
		for i := first; i < last; i++ {
			k := i - first
			switch {
			case k < len(content) && content[k].title:
				canvas[c][i] = cell{text: content[k].text, style: st.title}
			case k < len(content):
				canvas[c][i] = cell{text: content[k].text, style: st.block}
			default:
				canvas[c][i] = cell{style: st.block}
			}
		}
	}

	var out []string
	if header := m.HeaderCells(); header != nil {
		var sb strings.Builder
		for i, text := range header {
			w := dayWidth
			if cfg.ShowLabel && i == 0 {
				w = lblWidth
			}
			sb.WriteString(st.header.Width(w).Render(fit(text, w)))
		}
		out = append(out, sb.String())
	}

	for i := 0; i < lineCount; i++ {
		var sb strings.Builder
		if cfg.ShowLabel {
			text := ""
			if k, ok := hourOfLine(i, opts.MinutesPerLine, cfg.Hours()); ok {
				text = m.RowLabel(m.TimeMarkerRow(k))
			}
			sb.WriteString(st.label.Width(lblWidth).Render(text))
		}
		for c := range canvas {
			cl := canvas[c][i]
			sb.WriteString(cl.style.Width(dayWidth).Render(fit(cl.text, dayWidth)))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

type line struct {
	text  string
	title bool
}

// blockLines lays out the text of one block: a "start - end" header with the
// room on desktop, or the room inline above the title on mobile.
func blockLines(b schedule.Block, p presentation.Presentation) []line {
	var lines []line
	room := b.RoomText()
	if p.BlockHeader {
		head := b.Start + " - " + b.End
		if room != "" {
			head += " " + room
		}
		lines = append(lines, line{text: head})
	} else if room != "" {
		lines = append(lines, line{text: room})
	}
	return append(lines, line{text: b.DisplayTitle, title: true})
}

// hourOfLine returns the hour offset whose boundary falls within line i,
// which covers minutes [i*minutesPerLine, (i+1)*minutesPerLine) of the window.
func hourOfLine(i, minutesPerLine, hours int) (int, bool) {
	k := ceilDiv(i*minutesPerLine, 60)
	if k > hours || k*60 >= (i+1)*minutesPerLine {
		return 0, false
	}
	return k, true
}

func fit(text string, width int) string {
	return ansi.Truncate(text, width, ellipsis)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
