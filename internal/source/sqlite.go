package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// The database is owned by the course application. It is expected to hold:
//
//	schedules(id INTEGER PRIMARY KEY, name TEXT UNIQUE)
//	schedule_items(schedule_id INTEGER, position INTEGER, day TEXT,
//	               start_time TEXT, end_time TEXT, room TEXT,
//	               name TEXT, course_name TEXT)
//
// room and course_name may be NULL.

func openReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", readOnlyURI(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// uriEscaper escapes the characters that end or alter the path part of a
// SQLite URI filename.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// readOnlyURI builds a read-only SQLite URI filename for path.
func readOnlyURI(path string) string {
	return "file:" + uriEscaper.Replace(filepath.ToSlash(path)) + "?mode=ro"
}

// SQLiteNames lists the schedule names in the database, sorted.
func SQLiteNames(ctx context.Context, path string) ([]string, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `SELECT name FROM schedules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SQLite reads the named schedule with its sessions in position order.
func SQLite(ctx context.Context, path, name string) (schedule.Schedule, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return schedule.Schedule{}, err
	}
	defer func() { _ = db.Close() }()

	var id int64
	err = db.QueryRowContext(ctx, `SELECT id FROM schedules WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Schedule{}, fmt.Errorf("%w: %q", ErrScheduleNotFound, name)
	}
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("querying schedule: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT day, start_time, end_time, room, name, course_name
		FROM schedule_items
		WHERE schedule_id = ?
		ORDER BY position, rowid
	`, id)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("querying schedule items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	s := schedule.Schedule{Name: name, Items: []schedule.Item{}}
	for rows.Next() {
		var (
			item             schedule.Item
			room, courseName sql.NullString
		)
		if err := rows.Scan(&item.Day, &item.Start, &item.End, &room, &item.Name, &courseName); err != nil {
			return schedule.Schedule{}, fmt.Errorf("scanning schedule item: %w", err)
		}
		item.Room = room.String
		item.CourseName = courseName.String
		s.Items = append(s.Items, item)
	}
	if err := rows.Err(); err != nil {
		return schedule.Schedule{}, fmt.Errorf("iterating schedule items: %w", err)
	}
	return s, nil
}
