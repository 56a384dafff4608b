// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/jadwal/internal/grid"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Display DisplayConfig `toml:"display"`
	Render  RenderConfig  `toml:"render"`
	Log     LogConfig     `toml:"log"`
	Source  SourceConfig  `toml:"source"`
}

// GridConfig holds the visible window and optional grid features.
type GridConfig struct {
	StartHour       int     `toml:"start_hour" validate:"gte=0,lte=23"`
	EndHour         int     `toml:"end_hour" validate:"gte=1,lte=24,gtfield=StartHour"`
	PixelsPerMinute float64 `toml:"pixels_per_minute" validate:"gt=0"`
	ShowLabel       bool    `toml:"show_label"`
	ShowHeader      bool    `toml:"show_header"`
	ShowRoom        bool    `toml:"show_room"`
	Width           string  `toml:"width"` // e.g., "100%", passed to renderers
}

// DisplayConfig selects the device class and theme.
type DisplayConfig struct {
	Device      string `toml:"device" validate:"oneof=auto mobile desktop"` // "auto" uses terminal width
	Theme       string `toml:"theme" validate:"oneof=auto light dark"`      // "auto" asks the terminal
	MobileWidth int    `toml:"mobile_width" validate:"gte=0"`               // columns below which auto means mobile
}

// RenderConfig holds output density settings.
type RenderConfig struct {
	MinutesPerLine    int `toml:"minutes_per_line" validate:"gte=1,lte=60"`
	XLSXMinutesPerRow int `toml:"xlsx_minutes_per_row" validate:"gte=1,lte=60"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json"`
}

// SourceConfig holds the default schedule source.
type SourceConfig struct {
	DBPath   string `toml:"db_path"`  // SQLite database with schedules (optional)
	Schedule string `toml:"schedule"` // schedule name inside db_path
}

// Default returns the default configuration.
func Default() *Config {
	g := grid.DefaultConfig()
	return &Config{
		Grid: GridConfig{
			StartHour:       g.StartHour,
			EndHour:         g.EndHour,
			PixelsPerMinute: g.PixelsPerMinute,
			ShowLabel:       g.ShowLabel,
			ShowHeader:      g.ShowHeader,
			ShowRoom:        g.ShowRoom,
			Width:           g.Width,
		},
		Display: DisplayConfig{
			Device:      "auto",
			Theme:       "auto",
			MobileWidth: 100,
		},
		Render: RenderConfig{
			MinutesPerLine:    15,
			XLSXMinutesPerRow: 10,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "jadwal", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Source.DBPath = expandPath(cfg.Source.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"JADWAL_START_HOUR", &cfg.Grid.StartHour},
		{"JADWAL_END_HOUR", &cfg.Grid.EndHour},
		{"JADWAL_MOBILE_WIDTH", &cfg.Display.MobileWidth},
		{"JADWAL_MINUTES_PER_LINE", &cfg.Render.MinutesPerLine},
		{"JADWAL_XLSX_MINUTES_PER_ROW", &cfg.Render.XLSXMinutesPerRow},
	}
	for _, o := range ints {
		if v := os.Getenv(o.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", o.key, err)
			}
			*o.dst = n
		}
	}

	if v := os.Getenv("JADWAL_PIXELS_PER_MINUTE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("JADWAL_PIXELS_PER_MINUTE: %w", err)
		}
		cfg.Grid.PixelsPerMinute = f
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"JADWAL_SHOW_LABEL", &cfg.Grid.ShowLabel},
		{"JADWAL_SHOW_HEADER", &cfg.Grid.ShowHeader},
		{"JADWAL_SHOW_ROOM", &cfg.Grid.ShowRoom},
	}
	for _, o := range bools {
		if v := os.Getenv(o.key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", o.key, err)
			}
			*o.dst = b
		}
	}

	// Display overrides
	if v := os.Getenv("JADWAL_DEVICE"); v != "" {
		cfg.Display.Device = strings.ToLower(v)
	}
	if v := os.Getenv("JADWAL_THEME"); v != "" {
		cfg.Display.Theme = strings.ToLower(v)
	}

	// Log overrides
	if v := os.Getenv("JADWAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("JADWAL_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	// Source overrides
	if v := os.Getenv("JADWAL_DB_PATH"); v != "" {
		cfg.Source.DBPath = v
	}
	if v := os.Getenv("JADWAL_SCHEDULE"); v != "" {
		cfg.Source.Schedule = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}
	if err := c.GridConfig().Validate(); err != nil {
		return err
	}
	if c.Source.Schedule != "" && c.Source.DBPath == "" {
		return errors.New("source.schedule requires source.db_path")
	}
	return nil
}

// fieldError turns a validator failure into a message naming the TOML key.
func fieldError(fe validator.FieldError) error {
	ns := strings.SplitN(fe.StructNamespace(), ".", 2)
	field := fe.StructNamespace()
	if len(ns) == 2 {
		field = ns[1]
	}
	key := tomlKeys[field]
	if key == "" {
		key = field
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "gtfield":
		return fmt.Errorf("%s must be greater than start_hour, got %v", key, fe.Value())
	default:
		return fmt.Errorf("%s failed %s=%s, got %v", key, fe.Tag(), fe.Param(), fe.Value())
	}
}

var tomlKeys = map[string]string{
	"Grid.StartHour":           "grid.start_hour",
	"Grid.EndHour":             "grid.end_hour",
	"Grid.PixelsPerMinute":     "grid.pixels_per_minute",
	"Display.Device":           "display.device",
	"Display.Theme":            "display.theme",
	"Display.MobileWidth":      "display.mobile_width",
	"Render.MinutesPerLine":    "render.minutes_per_line",
	"Render.XLSXMinutesPerRow": "render.xlsx_minutes_per_row",
	"Log.Level":                "log.level",
	"Log.Format":               "log.format",
}

// GridConfig converts the [grid] section to the mapper's configuration.
func (c *Config) GridConfig() grid.Config {
	return grid.Config{
		StartHour:       c.Grid.StartHour,
		EndHour:         c.Grid.EndHour,
		PixelsPerMinute: c.Grid.PixelsPerMinute,
		ShowLabel:       c.Grid.ShowLabel,
		ShowHeader:      c.Grid.ShowHeader,
		ShowRoom:        c.Grid.ShowRoom,
		Width:           c.Grid.Width,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
