package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/jadwal/internal/grid"
	"github.com/javiermolinar/jadwal/internal/presentation"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/theme"
)

func setup(t *testing.T, cfg grid.Config, device presentation.Device, items ...schedule.Item) (*grid.Mapper, presentation.Presentation, []schedule.Block) {
	t.Helper()
	m, err := grid.NewMapper(cfg)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	p, err := presentation.For(device, theme.Light)
	if err != nil {
		t.Fatalf("presentation.For: %v", err)
	}
	blocks, err := schedule.Layout(schedule.Schedule{Name: "test", Items: items}, m)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return m, p, blocks
}

func gridConfig(showHeader bool) grid.Config {
	return grid.Config{StartHour: 7, EndHour: 17, PixelsPerMinute: 1, ShowLabel: true, ShowHeader: showHeader, ShowRoom: true}
}

var lecture = schedule.Item{Day: "Senin", Start: "08.00", End: "09.40", Room: "R301", Name: "Lecture", CourseName: "CS101"}

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestTerminal_Desktop(t *testing.T) {
	m, p, blocks := setup(t, gridConfig(true), presentation.Desktop, lecture)
	out := Terminal(blocks, m, p, TerminalOptions{Width: 126, MinutesPerLine: 15})
	lines := plainLines(out)

	// header + 10 hours * 4 lines + closing gridline
	if len(lines) != 42 {
		t.Fatalf("expected 42 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 126 {
			t.Errorf("line %d has width %d, want 126", i, w)
		}
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "Jam") || !strings.Contains(lines[0], "Senin") || !strings.Contains(lines[0], "Sabtu") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "07.00") || !strings.HasPrefix(lines[41], "17.00") {
		t.Errorf("unexpected axis labels %q / %q", lines[1], lines[41])
	}
	if !strings.HasPrefix(lines[5], "08.00") || !strings.Contains(lines[5], "08.00 - 09.40 R301") {
		t.Errorf("expected block header on the 08.00 line, got %q", lines[5])
	}
	if !strings.Contains(lines[6], "CS101 - Lecture") {
		t.Errorf("expected title below the block header, got %q", lines[6])
	}
	// the block covers the 09.00 gridline but stops before 10.00
	if strings.HasPrefix(lines[9][labelWidth:], gridLineRune) {
		t.Errorf("09.00 gridline should be covered by the block: %q", lines[9])
	}
	if !strings.HasPrefix(lines[13][labelWidth:], strings.Repeat(gridLineRune, 20)) {
		t.Errorf("10.00 gridline should be visible: %q", lines[13])
	}
}

func TestTerminal_MobileAndNoHeader(t *testing.T) {
	m, p, blocks := setup(t, gridConfig(false), presentation.Mobile, lecture)
	lines := plainLines(Terminal(blocks, m, p, TerminalOptions{Width: 126, MinutesPerLine: 15}))

	if len(lines) != 41 {
		t.Fatalf("expected 41 lines without header, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "07.00") {
		t.Errorf("first line should be the 07.00 gridline, got %q", lines[0])
	}
	if strings.Contains(strings.Join(lines, "\n"), "08.00 - 09.40") {
		t.Errorf("mobile blocks must not render the time header")
	}
	if !strings.Contains(lines[4], "R301") || !strings.Contains(lines[5], "CS101 - Lecture") {
		t.Errorf("expected inline room then title: %q / %q", lines[4], lines[5])
	}
}

func TestTerminal_TruncatesAndOverlaps(t *testing.T) {
	long := schedule.Item{Day: "Selasa", Start: "10.00", End: "11.00", Name: "A very long practical session title"}
	top := schedule.Item{Day: "Selasa", Start: "10.00", End: "11.00", Name: "Later"}
	cfg := gridConfig(true)
	cfg.ShowRoom = false
	m, p, blocks := setup(t, cfg, presentation.Desktop, long, top)
	lines := plainLines(Terminal(blocks, m, p, TerminalOptions{Width: 6 + 6*12, MinutesPerLine: 30}))

	body := strings.Join(lines, "\n")
	if strings.Contains(body, "A very long") {
		t.Errorf("later block should cover the earlier one:\n%s", body)
	}
	if !strings.Contains(body, "Later") {
		t.Errorf("later block missing:\n%s", body)
	}
	if !strings.Contains(body, "10.00 - 11.…") {
		t.Errorf("expected truncated block header:\n%s", body)
	}
}

func TestXLSX(t *testing.T) {
	m, p, blocks := setup(t, gridConfig(true), presentation.Desktop, lecture)

	var buf bytes.Buffer
	if err := XLSX(&buf, "Jadwal: Ganjil/2025", blocks, m, p, XLSXOptions{MinutesPerRow: 10}); err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet != "Jadwal Ganjil2025" {
		t.Errorf("sheet name = %q", sheet)
	}

	cells := map[string]string{
		"A1": "Jam",
		"B1": "Senin",
		"G1": "Sabtu",
		"A2": "07.00",
		"A8": "08.00",
		"A62": "17.00",
	}
	for axis, want := range cells {
		got, err := f.GetCellValue(sheet, axis)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", axis, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", axis, got, want)
		}
	}

	got, _ := f.GetCellValue(sheet, "B8")
	if got != "08.00 - 09.40 R301\nCS101 - Lecture" {
		t.Errorf("block cell = %q", got)
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		t.Fatalf("GetMergeCells: %v", err)
	}
	if len(merges) != 1 || merges[0].GetStartAxis() != "B8" || merges[0].GetEndAxis() != "B17" {
		t.Errorf("unexpected merges %v", merges)
	}

	height, err := f.GetRowHeight(sheet, 8)
	if err != nil {
		t.Fatalf("GetRowHeight: %v", err)
	}
	if height != 7.5 {
		t.Errorf("row height = %v, want 7.5", height)
	}
}

func TestSheetName(t *testing.T) {
	tests := map[string]string{
		"":                       "Jadwal",
		"  Semester  ":           "Semester",
		"a[b]c:d*e?f/g\\h":       "abcdefgh",
		strings.Repeat("x", 40): strings.Repeat("x", 31),
		"'Ganjil'":               "Ganjil",
		"''":                     "Jadwal",
	}
	for in, want := range tests {
		if got := sheetName(in); got != want {
			t.Errorf("sheetName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTerminal_HourLabelsForAnyDensity(t *testing.T) {
	m, p, _ := setup(t, gridConfig(true), presentation.Desktop)

	for _, mpl := range []int{1, 7, 15, 45, 50, 60} {
		lines := plainLines(Terminal(nil, m, p, TerminalOptions{Width: 80, MinutesPerLine: mpl}))
		var labels []string
		for _, l := range lines[1:] {
			if label := strings.TrimSpace(ansi.Truncate(l, 6, "")); label != "" {
				labels = append(labels, label)
			}
		}
		want := m.VisibleHourMarkers()
		if strings.Join(labels, " ") != strings.Join(want, " ") {
			t.Errorf("minutes per line %d: labels %v, want %v", mpl, labels, want)
		}
	}
}

func TestHourOfLine(t *testing.T) {
	tests := []struct {
		line, mpl int
		hour      int
		ok        bool
	}{
		{0, 15, 0, true},
		{1, 15, 0, false},
		{4, 15, 1, true},
		{8, 7, 1, true},  // 56..62
		{9, 7, 0, false}, // 63..69
		{1, 45, 1, true}, // 45..89
		{2, 45, 2, true}, // 90..134
		{3, 45, 0, false},
		{12, 50, 10, true},
	}
	for _, tt := range tests {
		hour, ok := hourOfLine(tt.line, tt.mpl, 10)
		if hour != tt.hour || ok != tt.ok {
			t.Errorf("hourOfLine(%d, %d) = %d, %v, want %d, %v", tt.line, tt.mpl, hour, ok, tt.hour, tt.ok)
		}
	}
}
