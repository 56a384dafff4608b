package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/jadwal/internal/grid"
	"github.com/javiermolinar/jadwal/internal/schedule"
)

// layoutResult is the JSON document printed by the layout command.
type layoutResult struct {
	Schedule string           `json:"schedule"`
	Grid     grid.Config      `json:"grid"`
	Header   []string         `json:"header,omitempty"`
	Markers  []grid.Marker    `json:"markers"`
	Blocks   []schedule.Block `json:"blocks"`
	Skipped  []skippedItem    `json:"skipped,omitempty"`
}

type skippedItem struct {
	Index int           `json:"index"`
	Item  schedule.Item `json:"item"`
	Error string        `json:"error"`
}

func (a *App) layoutCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "layout [FILE]",
		Short: "Print the grid position of every session",
		Long: `Compute the grid block of every session in a schedule.

Rows count minutes from the start hour (1-based, shifted up 30 when the
header is hidden); columns count days from Senin, after the label column.

Examples:
  jadwal layout jadwal.json
  jadwal layout kuliah.ics --format table
  jadwal layout jadwal.db --schedule Ganjil --skip-invalid`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, m, blocks, skipped, err := a.prepare(cmd.Context(), args)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return writeLayoutJSON(cmd.OutOrStdout(), s, m, blocks, skipped)
			case "table":
				printLayoutTable(cmd.OutOrStdout(), s, blocks, skipped)
				return nil
			default:
				return fmt.Errorf("unknown format %q (use json or table)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or table")
	return cmd
}

func writeLayoutJSON(w io.Writer, s schedule.Schedule, m *grid.Mapper, blocks []schedule.Block, skipped []*schedule.ItemError) error {
	res := layoutResult{
		Schedule: s.Name,
		Grid:     m.Config(),
		Header:   m.HeaderCells(),
		Markers:  m.Markers(),
		Blocks:   blocks,
	}
	if res.Blocks == nil {
		res.Blocks = []schedule.Block{}
	}
	for _, e := range skipped {
		res.Skipped = append(res.Skipped, skippedItem{Index: e.Index, Item: e.Item, Error: e.Err.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func printLayoutTable(w io.Writer, s schedule.Schedule, blocks []schedule.Block, skipped []*schedule.ItemError) {
	fmt.Fprintf(w, "\n  %s\n", colorHeader.Sprint(s.Name))
	fmt.Fprintln(w, strings.Repeat("─", 74))
	fmt.Fprintf(w, "  %-6s %-13s %-9s %-8s %s\n", "COL", "TIME", "ROWS", "ROOM", "TITLE")
	for _, b := range blocks {
		fmt.Fprintf(w, "  %-6d %-13s %-9s %-8s %s\n",
			b.Column,
			b.Start+"-"+b.End,
			fmt.Sprintf("%d-%d", b.RowStart, b.RowEnd),
			b.RoomText(),
			colorTitle.Sprint(b.DisplayTitle),
		)
	}
	fmt.Fprintln(w, strings.Repeat("─", 74))
	fmt.Fprintf(w, "  %s\n", colorMuted.Sprintf("%d blocks", len(blocks)))
	for _, e := range skipped {
		fmt.Fprintf(w, "  %s\n", colorError.Sprintf("skipped #%d: %v", e.Index, e.Err))
	}
	fmt.Fprintln(w)
}

func (a *App) markersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markers",
		Short: "Print the hour gridlines of the configured window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.mapper()
			if err != nil {
				return err
			}
			printMarkers(cmd.OutOrStdout(), m.Markers())
			return nil
		},
	}
}

func printMarkers(w io.Writer, markers []grid.Marker) {
	fmt.Fprintln(w, colorHeader.Sprintf("%-6s %6s %s", "LABEL", "ROW", "LABEL ROWS"))
	for _, mk := range markers {
		fmt.Fprintf(w, "%-6s %6d %d-%d\n", mk.Label, mk.Row, mk.LabelRowStart, mk.LabelRowEnd)
	}
}
