package ui

import (
	"github.com/spf13/cobra"

	"github.com/javiermolinar/jadwal/internal/tui"
)

func (a *App) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [FILE]",
		Short: "Browse the schedule grid interactively",
		Long: `Open a full-screen viewer for the schedule.

Keys:
  t  toggle light/dark theme
  m  toggle mobile/desktop layout
  l  toggle the time label column
  h  toggle the day header row
  r  toggle rooms
  q  quit

Sessions that cannot be placed are skipped and counted in the status line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.mapper(); err != nil {
				return err
			}
			s, err := a.loadSchedule(cmd.Context(), args)
			if err != nil {
				return err
			}
			p, err := a.presentation()
			if err != nil {
				return err
			}
			return tui.Run(s, tui.Options{
				Grid:           a.config.GridConfig(),
				Device:         p.Device,
				Theme:          p.Theme,
				MinutesPerLine: a.config.Render.MinutesPerLine,
			})
		},
	}
}
