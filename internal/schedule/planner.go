package schedule

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/jadwal/internal/clock"
	"github.com/javiermolinar/jadwal/internal/grid"
)

// ErrEmptySession is matched when a session ends at or before its start.
var ErrEmptySession = errors.New("session must end after it starts")

// ItemError ties a codec or mapper failure to the session that caused it.
type ItemError struct {
	Index int
	Item  Item
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("schedule item %d (%s %s-%s %q): %v",
		e.Index, e.Item.Day, e.Item.Start, e.Item.End, e.Item.Name, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Placement is the planner's result for one session: a Block or an Err.
type Placement struct {
	Block Block
	Err   *ItemError
}

// Plan places every session of s in input order. Failures are reported per
// placement and never swallowed; the caller chooses to skip or abort.
func Plan(s Schedule, m *grid.Mapper) []Placement {
	out := make([]Placement, len(s.Items))
	for i, item := range s.Items {
		b, err := place(item, m)
		if err != nil {
			out[i] = Placement{Err: &ItemError{Index: i, Item: item, Err: err}}
			continue
		}
		out[i] = Placement{Block: b}
	}
	return out
}

// Layout places every session and aborts on the first failure.
func Layout(s Schedule, m *grid.Mapper) ([]Block, error) {
	placements := Plan(s, m)
	blocks := make([]Block, 0, len(placements))
	for _, p := range placements {
		if p.Err != nil {
			return nil, p.Err
		}
		blocks = append(blocks, p.Block)
	}
	return blocks, nil
}

// LayoutSkipping places every valid session and returns the failures
// alongside, both in input order.
func LayoutSkipping(s Schedule, m *grid.Mapper) ([]Block, []*ItemError) {
	var (
		blocks []Block
		errs   []*ItemError
	)
	for _, p := range Plan(s, m) {
		if p.Err != nil {
			errs = append(errs, p.Err)
			continue
		}
		blocks = append(blocks, p.Block)
	}
	return blocks, errs
}

func place(item Item, m *grid.Mapper) (Block, error) {
	start, err := clock.Parse(item.Start)
	if err != nil {
		return Block{}, fmt.Errorf("start: %w", err)
	}
	end, err := clock.Parse(item.End)
	if err != nil {
		return Block{}, fmt.Errorf("end: %w", err)
	}
	rowStart, err := m.RowOf(start)
	if err != nil {
		return Block{}, fmt.Errorf("start: %w", err)
	}
	rowEnd, err := m.RowOf(end)
	if err != nil {
		return Block{}, fmt.Errorf("end: %w", err)
	}
	if !start.Before(end) {
		return Block{}, fmt.Errorf("%w: %s-%s", ErrEmptySession, item.Start, item.End)
	}
	column, err := m.DayToColumn(item.Day)
	if err != nil {
		return Block{}, err
	}

	b := Block{
		RowStart:     rowStart,
		RowEnd:       rowEnd,
		Column:       column,
		Start:        start.String(),
		End:          end.String(),
		DisplayTitle: DisplayTitle(item.Name, item.CourseName),
	}
	if m.Config().ShowRoom {
		room := item.Room
		b.Room = &room
	}
	return b, nil
}
