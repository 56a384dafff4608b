package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/jadwal/internal/grid"
	"github.com/javiermolinar/jadwal/internal/presentation"
	"github.com/javiermolinar/jadwal/internal/schedule"
)

const (
	defaultMinutesPerRow = 10
	labelColWidth        = 8
	dayColWidth          = 22
	maxRowHeight         = 409 // excelize limit, in points
	pointsPerPixel       = 0.75
)

// XLSXOptions controls the spreadsheet density.
type XLSXOptions struct {
	MinutesPerRow int // grid minutes per sheet row
}

// XLSX writes the grid as a single-sheet workbook. Each sheet row covers
// MinutesPerRow minutes and its height follows PixelsPerMinute; each block is
// a merged, filled cell range in its day column.
func XLSX(w io.Writer, name string, blocks []schedule.Block, m *grid.Mapper, p presentation.Presentation, opts XLSXOptions) error {
	if opts.MinutesPerRow <= 0 {
		opts.MinutesPerRow = defaultMinutesPerRow
	}
	mpr := opts.MinutesPerRow
	cfg := m.Config()
	pal := p.Palette.Hex

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(name)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerRows := 0
	if cfg.ShowHeader {
		headerRows = 1
	}
	slotRows := cfg.Hours() * 60 / mpr
	lastCol := m.ColumnCount()

	for c := 1; c <= lastCol; c++ {
		col, _ := excelize.ColumnNumberToName(c)
		width := float64(dayColWidth)
		if cfg.ShowLabel && c == 1 {
			width = labelColWidth
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	height := min(cfg.PixelsPerMinute*float64(mpr)*pointsPerPixel, maxRowHeight)
	for r := headerRows + 1; r <= headerRows+slotRows+1; r++ {
		if err := f.SetRowHeight(sheet, r, height); err != nil {
			return fmt.Errorf("setting row height: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: float64(p.HeaderFontPx), Color: pal.HeaderFg},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{pal.HeaderBg}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	for i, text := range m.HeaderCells() {
		if err := setStyledValue(f, sheet, i+1, 1, text, headerStyle); err != nil {
			return err
		}
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{pal.Background}, Pattern: 1},
		Border: []excelize.Border{{Type: "top", Color: pal.GridLine, Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating grid style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: float64(p.LabelFontPx), Color: pal.Label},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{pal.Background}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("creating label style: %w", err)
	}

	for i, marker := range m.Markers() {
		row := headerRows + 1 + i*60/mpr
		first, _ := excelize.CoordinatesToCellName(1+m.LabelColumn(), row)
		last, _ := excelize.CoordinatesToCellName(lastCol, row)
		if err := f.SetCellStyle(sheet, first, last, lineStyle); err != nil {
			return fmt.Errorf("styling gridline: %w", err)
		}
		if cfg.ShowLabel {
			if err := setStyledValue(f, sheet, 1, row, marker.Label, labelStyle); err != nil {
				return err
			}
		}
	}

	blockStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: float64(p.TitleFontPx), Color: pal.BlockFg},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{pal.BlockBg}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating block style: %w", err)
	}

	origin := m.TimeMarkerRow(0)
	for _, b := range blocks {
		top := headerRows + 1 + (b.RowStart-origin)/mpr
		bottom := max(headerRows+ceilDiv(b.RowEnd-origin, mpr), top)
		first, _ := excelize.CoordinatesToCellName(b.Column, top)
		last, _ := excelize.CoordinatesToCellName(b.Column, bottom)

		if bottom > top {
			if err := f.MergeCell(sheet, first, last); err != nil {
				return fmt.Errorf("merging block %s: %w", first, err)
			}
		}
		if err := f.SetCellValue(sheet, first, blockText(b, p)); err != nil {
			return fmt.Errorf("writing block %s: %w", first, err)
		}
		if err := f.SetCellStyle(sheet, first, last, blockStyle); err != nil {
			return fmt.Errorf("styling block %s: %w", first, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setStyledValue(f *excelize.File, sheet string, col, row int, value string, style int) error {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cellName, value); err != nil {
		return fmt.Errorf("writing %s: %w", cellName, err)
	}
	if err := f.SetCellStyle(sheet, cellName, cellName, style); err != nil {
		return fmt.Errorf("styling %s: %w", cellName, err)
	}
	return nil
}

func blockText(b schedule.Block, p presentation.Presentation) string {
	lines := blockLines(b, p)
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}

// sheetName strips characters Excel rejects and caps the length at 31.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	// Sheet names may not begin or end with an apostrophe.
	if name = strings.Trim(name, "'"); name == "" {
		return "Jadwal"
	}
	return name
}
