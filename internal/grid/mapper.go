// Package grid maps clock times and day names onto the row/column
// coordinates of the weekly schedule grid.
//
// Rows are counted in minutes: one grid row is one minute of the visible
// window, 1-based. PixelsPerMinute only scales rows at render time and never
// enters coordinate math. Without a header band every row moves up by
// HeaderShift minutes so the first hour starts at the top edge.
package grid

import (
	"github.com/javiermolinar/jadwal/internal/clock"
)

// HeaderShift is the row offset applied when the header band is hidden.
const HeaderShift = 30

// Label rows span from 30 to 90 minutes past their marker row, which centres
// the text on the gridline below the header band.
const (
	labelRowOffset = 30
	labelRowSpan   = 60
)

// Mapper converts domain times and days to grid indices for one Config.
// It holds no mutable state and is safe for concurrent use.
type Mapper struct {
	cfg Config
}

// NewMapper validates cfg and returns a Mapper for it.
func NewMapper(cfg Config) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Mapper{cfg: cfg}, nil
}

// Config returns the configuration the mapper was built with.
func (m *Mapper) Config() Config {
	return m.cfg
}

func (m *Mapper) shift() int {
	if m.cfg.ShowHeader {
		return 0
	}
	return HeaderShift
}

// MinuteOfWindow returns minutes elapsed since StartHour. Not clamped.
func (m *Mapper) MinuteOfWindow(hour, minute int) int {
	return (hour-m.cfg.StartHour)*60 + minute
}

// TimeToRow returns the 1-based row of a time. Not clamped; use RowOf for
// checked placement.
func (m *Mapper) TimeToRow(hour, minute int) int {
	return m.MinuteOfWindow(hour, minute) + 1 - m.shift()
}

// CheckWindow returns a RangeError if c lies outside [StartHour, EndHour].
func (m *Mapper) CheckWindow(c clock.Clock) error {
	if c.Minute < 0 || c.Minute > 59 {
		return &RangeError{Time: c, StartHour: m.cfg.StartHour, EndHour: m.cfg.EndHour, Reason: "minute must be 00-59"}
	}
	mow := m.MinuteOfWindow(c.Hour, c.Minute)
	if mow < 0 || mow > m.cfg.Hours()*60 {
		return &RangeError{Time: c, StartHour: m.cfg.StartHour, EndHour: m.cfg.EndHour}
	}
	return nil
}

// RowOf is TimeToRow guarded by CheckWindow.
func (m *Mapper) RowOf(c clock.Clock) (int, error) {
	if err := m.CheckWindow(c); err != nil {
		return 0, err
	}
	return m.TimeToRow(c.Hour, c.Minute), nil
}

// TimeMarkerRow returns the row of the hour gridline hourOffset hours past
// StartHour.
func (m *Mapper) TimeMarkerRow(hourOffset int) int {
	return hourOffset*60 + 1 - m.shift()
}

// RowCount returns the row of the last hour gridline.
func (m *Mapper) RowCount() int {
	return m.TimeMarkerRow(m.cfg.Hours())
}

// RowLabel formats the clock time shown at row.
func (m *Mapper) RowLabel(row int) string {
	minute := row - m.TimeMarkerRow(0)
	return clock.FromMinutes(m.cfg.StartHour*60 + minute).String()
}

// DayToColumn returns the 1-based column of day, shifted right by one when
// the label column is shown.
func (m *Mapper) DayToColumn(day string) (int, error) {
	d, err := ParseDay(day)
	if err != nil {
		return 0, err
	}
	i, _ := dayIndex(string(d))
	return i + 1 + m.LabelColumn(), nil
}

// LabelColumn is 1 when the label column is reserved and 0 otherwise.
func (m *Mapper) LabelColumn() int {
	if m.cfg.ShowLabel {
		return 1
	}
	return 0
}

// ColumnCount returns the number of grid columns, label column included.
func (m *Mapper) ColumnCount() int {
	return len(Days) + m.LabelColumn()
}

// VisibleHourMarkers returns one "HH.00" label per hour from StartHour to
// EndHour inclusive.
func (m *Mapper) VisibleHourMarkers() []string {
	out := make([]string, 0, m.cfg.Hours()+1)
	for h := m.cfg.StartHour; h <= m.cfg.EndHour; h++ {
		out = append(out, clock.Format(h, 0))
	}
	return out
}

// Marker is one hour gridline with its axis label placement.
type Marker struct {
	Label         string `json:"label"`
	Row           int    `json:"row"`
	LabelRowStart int    `json:"labelRowStart"`
	LabelRowEnd   int    `json:"labelRowEnd"`
}

// Markers pairs every visible hour label with its gridline row.
func (m *Mapper) Markers() []Marker {
	labels := m.VisibleHourMarkers()
	out := make([]Marker, len(labels))
	for i, label := range labels {
		row := m.TimeMarkerRow(i)
		out[i] = Marker{
			Label:         label,
			Row:           row,
			LabelRowStart: row + labelRowOffset,
			LabelRowEnd:   row + labelRowOffset + labelRowSpan,
		}
	}
	return out
}

// HeaderCells returns the header band texts left to right, or nil when the
// header is hidden.
func (m *Mapper) HeaderCells() []string {
	if !m.cfg.ShowHeader {
		return nil
	}
	cells := make([]string, 0, m.ColumnCount())
	if m.cfg.ShowLabel {
		cells = append(cells, LabelHeader)
	}
	for _, d := range Days {
		cells = append(cells, string(d))
	}
	return cells
}
