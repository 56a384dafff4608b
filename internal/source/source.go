// Package source reads schedules owned by external systems: JSON exports of
// the course API, iCalendar feeds, and SQLite databases. Sources are
// read-only; nothing here writes schedule data.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// Source errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported schedule file format")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrScheduleRequired  = errors.New("schedule name required for database sources")
)

// Options tune how a source is read.
type Options struct {
	// Schedule names the schedule inside a database source.
	Schedule string
	// Location is the zone iCalendar times are converted to.
	// Defaults to time.Local.
	Location *time.Location
}

// Open reads the schedule at path, choosing the reader by file extension.
func Open(ctx context.Context, path string, opts Options) (schedule.Schedule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON(path)
	case ".ics", ".ical":
		return ICS(path, opts.Location)
	case ".db", ".sqlite", ".sqlite3":
		if opts.Schedule == "" {
			names, err := SQLiteNames(ctx, path)
			if err != nil {
				return schedule.Schedule{}, err
			}
			if len(names) != 1 {
				return schedule.Schedule{}, fmt.Errorf("%w: %s holds %d schedules", ErrScheduleRequired, path, len(names))
			}
			opts.Schedule = names[0]
		}
		return SQLite(ctx, path, opts.Schedule)
	default:
		return schedule.Schedule{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
