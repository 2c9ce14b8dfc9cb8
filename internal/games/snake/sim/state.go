package sim

import "slices"

// Food is the target cell. In the portal variant Exit is where the head
// reappears after stepping onto Cell.
type Food struct {
	Cell    Cell
	Exit    Cell
	HasExit bool
}

// State is the unit recorded in history. Values returned by the engine are
// independent copies; mutating one never affects another.
type State struct {
	Snake    []Cell
	Food     *Food
	Dir      Direction
	Gravity  Direction
	Score    int
	Terminal bool
	Won      bool
}

// Head returns the first snake segment.
func (s State) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[0]
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Snake = slices.Clone(s.Snake)
	if s.Food != nil {
		f := *s.Food
		out.Food = &f
	}
	return out
}

// Equal compares two states structurally.
func (s State) Equal(o State) bool {
	if s.Dir != o.Dir || s.Gravity != o.Gravity || s.Score != o.Score ||
		s.Terminal != o.Terminal || s.Won != o.Won {
		return false
	}
	if !slices.Equal(s.Snake, o.Snake) {
		return false
	}
	switch {
	case s.Food == nil && o.Food == nil:
		return true
	case s.Food == nil || o.Food == nil:
		return false
	default:
		return *s.Food == *o.Food
	}
}

// occupied returns the snake cells as a set.
func (s State) occupied() Occupancy {
	return Occupy(s.Snake)
}
