package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.StartHour != 7 {
		t.Errorf("expected start_hour 7, got %d", cfg.Grid.StartHour)
	}
	if cfg.Grid.EndHour != 21 {
		t.Errorf("expected end_hour 21, got %d", cfg.Grid.EndHour)
	}
	if !cfg.Grid.ShowLabel || !cfg.Grid.ShowHeader || !cfg.Grid.ShowRoom {
		t.Errorf("expected label, header and room enabled by default")
	}
	if cfg.Display.Device != "auto" || cfg.Display.Theme != "auto" {
		t.Errorf("expected auto display, got %s/%s", cfg.Display.Device, cfg.Display.Theme)
	}
	if cfg.Render.MinutesPerLine != 15 {
		t.Errorf("expected minutes_per_line 15, got %d", cfg.Render.MinutesPerLine)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Grid.StartHour != 7 {
		t.Errorf("expected default start_hour, got %d", cfg.Grid.StartHour)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[grid]
start_hour = 8
end_hour = 18
pixels_per_minute = 0.5
show_label = false
show_header = false
show_room = false
width = "90%"

[display]
device = "mobile"
theme = "dark"

[render]
minutes_per_line = 30

[source]
db_path = "/tmp/jadwal.db"
schedule = "Semester Ganjil"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := cfg.GridConfig()
	if g.StartHour != 8 || g.EndHour != 18 {
		t.Errorf("expected window 8-18, got %d-%d", g.StartHour, g.EndHour)
	}
	if g.PixelsPerMinute != 0.5 {
		t.Errorf("expected pixels_per_minute 0.5, got %v", g.PixelsPerMinute)
	}
	if g.ShowLabel || g.ShowHeader || g.ShowRoom {
		t.Errorf("expected all grid features disabled")
	}
	if g.Width != "90%" {
		t.Errorf("expected width 90%%, got %s", g.Width)
	}
	if cfg.Display.Device != "mobile" || cfg.Display.Theme != "dark" {
		t.Errorf("unexpected display %+v", cfg.Display)
	}
	if cfg.Render.MinutesPerLine != 30 {
		t.Errorf("expected minutes_per_line 30, got %d", cfg.Render.MinutesPerLine)
	}
	// Unset keys keep their defaults
	if cfg.Render.XLSXMinutesPerRow != 10 {
		t.Errorf("expected default xlsx_minutes_per_row, got %d", cfg.Render.XLSXMinutesPerRow)
	}
	if cfg.Source.Schedule != "Semester Ganjil" {
		t.Errorf("unexpected schedule %q", cfg.Source.Schedule)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[grid]
start_hour = 8
end_hour = 16
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("JADWAL_START_HOUR", "6")
	t.Setenv("JADWAL_PIXELS_PER_MINUTE", "2")
	t.Setenv("JADWAL_THEME", "LIGHT")
	t.Setenv("JADWAL_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Grid.StartHour != 6 {
		t.Errorf("expected start_hour 6 from env, got %d", cfg.Grid.StartHour)
	}
	if cfg.Grid.EndHour != 16 {
		t.Errorf("expected end_hour 16 from file, got %d", cfg.Grid.EndHour)
	}
	if cfg.Grid.PixelsPerMinute != 2 {
		t.Errorf("expected pixels_per_minute 2, got %v", cfg.Grid.PixelsPerMinute)
	}
	if cfg.Display.Theme != "light" {
		t.Errorf("expected theme light, got %s", cfg.Display.Theme)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFrom_GridAndExportEnv(t *testing.T) {
	t.Setenv("JADWAL_XLSX_MINUTES_PER_ROW", "5")
	t.Setenv("JADWAL_SHOW_LABEL", "false")
	t.Setenv("JADWAL_SHOW_HEADER", "0")
	t.Setenv("JADWAL_SHOW_ROOM", "true")

	cfg, err := LoadFrom("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Render.XLSXMinutesPerRow != 5 {
		t.Errorf("expected xlsx_minutes_per_row 5, got %d", cfg.Render.XLSXMinutesPerRow)
	}
	if cfg.Grid.ShowLabel || cfg.Grid.ShowHeader || !cfg.Grid.ShowRoom {
		t.Errorf("unexpected show flags label=%v header=%v room=%v",
			cfg.Grid.ShowLabel, cfg.Grid.ShowHeader, cfg.Grid.ShowRoom)
	}
}

func TestLoadFrom_BadEnv(t *testing.T) {
	tests := map[string]string{
		"JADWAL_END_HOUR":             "five",
		"JADWAL_XLSX_MINUTES_PER_ROW": "ten",
		"JADWAL_SHOW_ROOM":            "sometimes",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadFrom("/nonexistent/config.toml"); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[grid\nstart_hour ="), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFrom(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid default", modify: func(*Config) {}},
		{
			name:    "end before start",
			modify:  func(c *Config) { c.Grid.StartHour, c.Grid.EndHour = 10, 9 },
			wantErr: "grid.end_hour",
		},
		{
			name:    "end equals start",
			modify:  func(c *Config) { c.Grid.StartHour, c.Grid.EndHour = 10, 10 },
			wantErr: "grid.end_hour",
		},
		{
			name:    "end past midnight",
			modify:  func(c *Config) { c.Grid.EndHour = 25 },
			wantErr: "grid.end_hour",
		},
		{
			name:    "zero density",
			modify:  func(c *Config) { c.Grid.PixelsPerMinute = 0 },
			wantErr: "grid.pixels_per_minute",
		},
		{
			name:    "unknown device",
			modify:  func(c *Config) { c.Display.Device = "tablet" },
			wantErr: "display.device",
		},
		{
			name:    "unknown theme",
			modify:  func(c *Config) { c.Display.Theme = "mocha" },
			wantErr: "display.theme",
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
		{
			name:    "zero minutes per line",
			modify:  func(c *Config) { c.Render.MinutesPerLine = 0 },
			wantErr: "render.minutes_per_line",
		},
		{
			name:    "schedule without db",
			modify:  func(c *Config) { c.Source.Schedule = "x" },
			wantErr: "source.schedule requires source.db_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Grid.StartHour = 6
	cfg.Display.Theme = "dark"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Grid.StartHour != 6 || loaded.Display.Theme != "dark" {
		t.Errorf("saved values not loaded back: %+v", loaded)
	}
}
