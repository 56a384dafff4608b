// Package schedule plans positioned grid blocks from a weekly class schedule.
package schedule

import (
	"strings"
)

// Item is one weekly recurring class session.
type Item struct {
	Day        string `json:"day"`
	Start      string `json:"start"` // "HH.MM"
	End        string `json:"end"`   // "HH.MM"
	Room       string `json:"room,omitempty"`
	Name       string `json:"name"`
	CourseName string `json:"course_name,omitempty"`
}

// Schedule is a named, ordered list of sessions.
type Schedule struct {
	Name  string `json:"name"`
	Items []Item `json:"schedule_items"`
}

// Block is the placement of one session on the grid. Start and End are the
// session times in canonical "HH.MM" form. Room is nil when the grid does not
// show rooms.
type Block struct {
	RowStart     int     `json:"rowStart"`
	RowEnd       int     `json:"rowEnd"`
	Column       int     `json:"column"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	DisplayTitle string  `json:"displayTitle"`
	Room         *string `json:"room,omitempty"`
}

// RoomText returns the room or "" when it was omitted.
func (b Block) RoomText() string {
	if b.Room == nil {
		return ""
	}
	return *b.Room
}

// DisplayTitle prefixes name with the course title unless the course title
// is empty or already part of name.
func DisplayTitle(name, courseName string) string {
	if courseName == "" || strings.Contains(name, courseName) {
		return name
	}
	return courseName + " - " + name
}
