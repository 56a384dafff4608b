package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/jadwal/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after defaults, file, environment and flags
are applied.

With --init, writes the current settings to the config file if it does
not exist yet.

Example:
  jadwal config --init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Config file: %s\n\n", path)

			if initFile {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file already exists: %s", path)
				}
				if err := a.config.SaveTo(path); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
				fmt.Fprintf(w, "Created %s\n\n", path)
			}

			printConfig(w, a.config)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the config file with the current settings")
	return cmd
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, colorHeader.Sprint("Current configuration:"))
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[grid]")
	fmt.Fprintf(w, "  start_hour           = %d\n", cfg.Grid.StartHour)
	fmt.Fprintf(w, "  end_hour             = %d\n", cfg.Grid.EndHour)
	fmt.Fprintf(w, "  pixels_per_minute    = %g\n", cfg.Grid.PixelsPerMinute)
	fmt.Fprintf(w, "  show_label           = %t\n", cfg.Grid.ShowLabel)
	fmt.Fprintf(w, "  show_header          = %t\n", cfg.Grid.ShowHeader)
	fmt.Fprintf(w, "  show_room            = %t\n", cfg.Grid.ShowRoom)
	fmt.Fprintf(w, "  width                = %s\n", cfg.Grid.Width)
	fmt.Fprintln(w, "\n[display]")
	fmt.Fprintf(w, "  device               = %s\n", cfg.Display.Device)
	fmt.Fprintf(w, "  theme                = %s\n", cfg.Display.Theme)
	fmt.Fprintf(w, "  mobile_width         = %d\n", cfg.Display.MobileWidth)
	fmt.Fprintln(w, "\n[render]")
	fmt.Fprintf(w, "  minutes_per_line     = %d\n", cfg.Render.MinutesPerLine)
	fmt.Fprintf(w, "  xlsx_minutes_per_row = %d\n", cfg.Render.XLSXMinutesPerRow)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level                = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format               = %s\n", cfg.Log.Format)
	if cfg.Source.DBPath != "" {
		fmt.Fprintln(w, "\n[source]")
		fmt.Fprintf(w, "  db_path              = %s\n", cfg.Source.DBPath)
		fmt.Fprintf(w, "  schedule             = %s\n", cfg.Source.Schedule)
	}
}
