// Package ui implements the jadwal command line.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/jadwal/internal/config"
	"github.com/javiermolinar/jadwal/internal/grid"
	"github.com/javiermolinar/jadwal/internal/logging"
	"github.com/javiermolinar/jadwal/internal/presentation"
	"github.com/javiermolinar/jadwal/internal/schedule"
	"github.com/javiermolinar/jadwal/internal/source"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	configPath string
	root       *cobra.Command
	log        *zap.Logger
	flags      gridFlags
}

// gridFlags are the persistent overrides of the loaded config.
type gridFlags struct {
	device, theme      string
	startHour, endHour int
	noLabel, noHeader  bool
	noRoom             bool
	skipInvalid        bool
	schedule           string
	noColor            bool
	debug              bool
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, log: zap.NewNop()}

	a.root = &cobra.Command{
		Use:   "jadwal",
		Short: "Lay out weekly class schedules on a time grid",
		Long: `Jadwal places weekly class sessions on a Monday-Saturday time grid.

It reads schedules from JSON exports, iCalendar files or SQLite databases,
prints block coordinates, draws the grid in the terminal and exports it to
a spreadsheet.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) { _ = a.log.Sync() },
	}

	pf := a.root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")
	pf.StringVar(&a.flags.device, "device", "", "Device class: auto, mobile or desktop")
	pf.StringVar(&a.flags.theme, "theme", "", "Color theme: auto, light or dark")
	pf.IntVar(&a.flags.startHour, "start-hour", 0, "First visible hour")
	pf.IntVar(&a.flags.endHour, "end-hour", 0, "Last visible hour")
	pf.BoolVar(&a.flags.noLabel, "no-label", false, "Hide the time label column")
	pf.BoolVar(&a.flags.noHeader, "no-header", false, "Hide the day header row")
	pf.BoolVar(&a.flags.noRoom, "no-room", false, "Omit rooms from blocks")
	pf.BoolVar(&a.flags.skipInvalid, "skip-invalid", false, "Skip sessions that cannot be placed instead of failing")
	pf.StringVar(&a.flags.schedule, "schedule", "", "Schedule name inside a SQLite source")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable color output")
	pf.BoolVar(&a.flags.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.layoutCmd())
	a.root.AddCommand(a.markersCmd())
	a.root.AddCommand(a.renderCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.viewCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jadwal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// setup reloads config when --config is given, applies flag overrides and
// builds the logger.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		cfg, err := config.LoadFrom(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("device") {
		a.config.Display.Device = a.flags.device
	}
	if flags.Changed("theme") {
		a.config.Display.Theme = a.flags.theme
	}
	if flags.Changed("start-hour") {
		a.config.Grid.StartHour = a.flags.startHour
	}
	if flags.Changed("end-hour") {
		a.config.Grid.EndHour = a.flags.endHour
	}
	if a.flags.noLabel {
		a.config.Grid.ShowLabel = false
	}
	if a.flags.noHeader {
		a.config.Grid.ShowHeader = false
	}
	if a.flags.noRoom {
		a.config.Grid.ShowRoom = false
	}
	if a.flags.debug {
		a.config.Log.Level = "debug"
	}
	if a.flags.noColor {
		DisableColor()
	}
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger, err := logging.New(a.config.Log)
	if err != nil {
		return err
	}
	a.log = logger
	return nil
}

func (a *App) mapper() (*grid.Mapper, error) {
	return grid.NewMapper(a.config.GridConfig())
}

func (a *App) presentation() (presentation.Presentation, error) {
	device, err := resolveDevice(a.config.Display.Device, a.config.Display.MobileWidth)
	if err != nil {
		return presentation.Presentation{}, err
	}
	themeName := resolveTheme(a.config.Display.Theme)
	a.log.Debug("resolved presentation",
		zap.String("device", string(device)),
		zap.String("theme", themeName))
	return presentation.For(device, themeName)
}

// loadSchedule reads the schedule named by args, or the configured database
// source when no file is given. The configured schedule name only applies to
// the configured database.
func (a *App) loadSchedule(ctx context.Context, args []string) (schedule.Schedule, error) {
	path, name := a.config.Source.DBPath, a.config.Source.Schedule
	if len(args) > 0 {
		path, name = args[0], ""
	}
	if a.flags.schedule != "" {
		name = a.flags.schedule
	}
	if path == "" {
		return schedule.Schedule{}, fmt.Errorf("no schedule file given and source.db_path is not set")
	}

	start := time.Now()
	s, err := source.Open(ctx, path, source.Options{Schedule: name})
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("loading schedule: %w", err)
	}
	a.log.Debug("loaded schedule",
		zap.String("path", path),
		zap.String("name", s.Name),
		zap.Int("items", len(s.Items)),
		zap.Duration("took", time.Since(start)))
	return s, nil
}

// plan lays out s, aborting on the first bad session unless --skip-invalid
// is set, in which case each skipped session is logged and returned.
func (a *App) plan(s schedule.Schedule, m *grid.Mapper) ([]schedule.Block, []*schedule.ItemError, error) {
	if !a.flags.skipInvalid {
		blocks, err := schedule.Layout(s, m)
		if err != nil {
			return nil, nil, err
		}
		return blocks, nil, nil
	}
	blocks, errs := schedule.LayoutSkipping(s, m)
	for _, e := range errs {
		a.log.Warn("skipping session",
			zap.Int("index", e.Index),
			zap.String("day", e.Item.Day),
			zap.String("start", e.Item.Start),
			zap.String("end", e.Item.End),
			zap.String("name", e.Item.Name),
			zap.Error(e.Err))
	}
	return blocks, errs, nil
}

// prepare loads and plans the schedule for commands that draw it.
func (a *App) prepare(ctx context.Context, args []string) (schedule.Schedule, *grid.Mapper, []schedule.Block, []*schedule.ItemError, error) {
	m, err := a.mapper()
	if err != nil {
		return schedule.Schedule{}, nil, nil, nil, err
	}
	s, err := a.loadSchedule(ctx, args)
	if err != nil {
		return schedule.Schedule{}, nil, nil, nil, err
	}
	blocks, skipped, err := a.plan(s, m)
	if err != nil {
		return schedule.Schedule{}, nil, nil, nil, err
	}
	return s, m, blocks, skipped, nil
}
