package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/jadwal/internal/render"
)

func (a *App) renderCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Draw the schedule grid in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, blocks, _, err := a.prepare(cmd.Context(), args)
			if err != nil {
				return err
			}
			p, err := a.presentation()
			if err != nil {
				return err
			}
			if width <= 0 {
				width, _ = termWidth()
			}

			out := render.Terminal(blocks, m, p, render.TerminalOptions{
				Width:          width,
				MinutesPerLine: a.config.Render.MinutesPerLine,
			})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Grid width in columns (default terminal width)")
	return cmd
}

func (a *App) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export the schedule grid to an XLSX workbook",
		Long: `Write the grid to a spreadsheet: one row per xlsx_minutes_per_row
minutes, one column per day, each session a merged, colored cell range.

Example:
  jadwal export jadwal.json -o jadwal.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, m, blocks, _, err := a.prepare(cmd.Context(), args)
			if err != nil {
				return err
			}
			p, err := a.presentation()
			if err != nil {
				return err
			}

			if dir := filepath.Dir(output); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
			}
			err = writeFile(output, func(w io.Writer) error {
				return render.XLSX(w, s.Name, blocks, m, p, render.XLSXOptions{
					MinutesPerRow: a.config.Render.XLSXMinutesPerRow,
				})
			})
			if err != nil {
				return err
			}

			a.log.Info("exported schedule", zap.String("path", output), zap.Int("blocks", len(blocks)))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d blocks to %s\n", len(blocks), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "jadwal.xlsx", "Output workbook path")
	return cmd
}

// writeFile creates path and fills it with write. On failure the partial
// file is removed.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	err = write(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", path, cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}
