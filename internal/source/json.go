package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/javiermolinar/jadwal/internal/schedule"
)

// JSON reads a schedule in the course API's shape:
// {"name": ..., "schedule_items": [{"day", "start", "end", "room", "name", "course_name"}]}.
// A bare {"user_schedule": {...}} envelope is accepted as well.
func JSON(path string) (schedule.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("opening schedule: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := DecodeJSON(f)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = baseName(path)
	}
	return s, nil
}

// DecodeJSON decodes one schedule from r.
func DecodeJSON(r io.Reader) (schedule.Schedule, error) {
	var doc struct {
		schedule.Schedule
		UserSchedule *schedule.Schedule `json:"user_schedule"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return schedule.Schedule{}, fmt.Errorf("decoding schedule JSON: %w", err)
	}
	if doc.UserSchedule != nil {
		return *doc.UserSchedule, nil
	}
	return doc.Schedule, nil
}
