package source

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/javiermolinar/jadwal/internal/clock"
	"github.com/javiermolinar/jadwal/internal/grid"
	"github.com/javiermolinar/jadwal/internal/schedule"
)

// weekdayNames maps time.Weekday to the grid's day names. Sunday has no grid
// column; it is kept as "Minggu" so the mapper reports it.
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "Minggu",
	time.Monday:    string(grid.Senin),
	time.Tuesday:   string(grid.Selasa),
	time.Wednesday: string(grid.Rabu),
	time.Thursday:  string(grid.Kamis),
	time.Friday:    string(grid.Jumat),
	time.Saturday:  string(grid.Sabtu),
}

// ICS reads a calendar file. See DecodeICS.
func ICS(path string, loc *time.Location) (schedule.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("opening calendar: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := DecodeICS(f, loc)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = baseName(path)
	}
	return s, nil
}

// DecodeICS turns the VEVENTs of a calendar into weekly sessions. The weekday
// and clock time come from DTSTART/DTEND in loc; SUMMARY is the session
// name, LOCATION the room and CATEGORIES the course title. Occurrences of the
// same session (equal name, day and times) collapse into one item, in
// first-seen order. All-day events have no clock time and are left out.
func DecodeICS(r io.Reader, loc *time.Location) (schedule.Schedule, error) {
	if loc == nil {
		loc = time.Local
	}
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("parsing calendar: %w", err)
	}

	var s schedule.Schedule
	for _, p := range cal.CalendarProperties {
		if p.IANAToken == string(ics.PropertyXWRCalName) {
			s.Name = p.Value
		}
	}

	seen := make(map[schedule.Item]bool)
	for _, evt := range cal.Events() {
		if allDay(evt) {
			continue
		}
		item, err := eventItem(evt, loc)
		if err != nil {
			return schedule.Schedule{}, fmt.Errorf("event %q: %w", evt.Id(), err)
		}
		if seen[item] {
			continue
		}
		seen[item] = true
		s.Items = append(s.Items, item)
	}
	return s, nil
}

func eventItem(evt *ics.VEvent, loc *time.Location) (schedule.Item, error) {
	summary := propertyValue(evt, ics.ComponentPropertySummary)
	if summary == "" {
		return schedule.Item{}, fmt.Errorf("missing %s", ics.ComponentPropertySummary)
	}
	start, err := eventTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return schedule.Item{}, err
	}
	end, err := eventTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		return schedule.Item{}, err
	}

	return schedule.Item{
		Day:        weekdayNames[start.Weekday()],
		Start:      clock.Format(start.Hour(), start.Minute()),
		End:        clock.Format(end.Hour(), end.Minute()),
		Room:       propertyValue(evt, ics.ComponentPropertyLocation),
		Name:       summary,
		CourseName: propertyValue(evt, ics.ComponentPropertyCategories),
	}, nil
}

func propertyValue(evt *ics.VEvent, name ics.ComponentProperty) string {
	p := evt.GetProperty(name)
	if p == nil {
		return ""
	}
	return strings.TrimSpace(unescapeText(p.Value))
}

// unescapeText undoes RFC 5545 TEXT escaping.
func unescapeText(s string) string {
	return strings.NewReplacer(`\,`, ",", `\;`, ";", `\n`, " ", `\N`, " ", `\\`, `\`).Replace(s)
}

// allDay reports whether the event starts on a DATE rather than a DATE-TIME.
func allDay(evt *ics.VEvent) bool {
	p := evt.GetProperty(ics.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	for k, v := range p.ICalParameters {
		if strings.EqualFold(k, "VALUE") && len(v) > 0 && strings.EqualFold(v[0], "DATE") {
			return true
		}
	}
	return len(p.Value) == len("20060102")
}

var icsTimeFormats = []string{
	"20060102T150405Z",
	"20060102T150405",
}

// eventTime reads a DATE-TIME property. UTC values are converted to loc,
// TZID values are read in their zone and converted, floating values are
// taken as loc-local.
func eventTime(evt *ics.VEvent, name ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	p := evt.GetProperty(name)
	if p == nil {
		return time.Time{}, fmt.Errorf("missing %s", name)
	}

	zone := loc
	for k, v := range p.ICalParameters {
		if !strings.EqualFold(k, "TZID") || len(v) == 0 {
			continue
		}
		z, err := time.LoadLocation(v[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: unknown TZID %q: %w", name, v[0], err)
		}
		zone = z
	}

	for _, layout := range icsTimeFormats {
		if strings.HasSuffix(layout, "Z") {
			if t, err := time.Parse(layout, p.Value); err == nil {
				return t.In(loc), nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, p.Value, zone); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: unsupported date-time %q", name, p.Value)
}
