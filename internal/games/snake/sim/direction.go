package sim

import "fmt"

// Direction is one of the four axis-aligned headings.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every heading in encoding order.
var Directions = [...]Direction{Up, Right, Down, Left}

var vectors = [...]Cell{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

// Opposite returns the reverse heading.
func Opposite(d Direction) Direction {
	return (d + 2) % 4
}

// IsOpposite reports whether a and b point in opposite directions.
func IsOpposite(a, b Direction) bool {
	return Opposite(a) == b
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// Vector returns the unit step (dx, dy) for d.
func (d Direction) Vector() (dx, dy int) {
	if !d.Valid() {
		return 0, 0
	}
	v := vectors[d]
	return v.X, v.Y
}

// FromVector maps a unit step back to its heading. Unknown vectors map to
// Right, the starting heading.
func FromVector(dx, dy int) Direction {
	for _, d := range Directions {
		if v := vectors[d]; v.X == dx && v.Y == dy {
			return d
		}
	}
	return Right
}

// ParseDirection converts a lowercase name into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "right":
		return Right, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	}
	return 0, false
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("sim: unknown direction %q", b)
	}
	*d = v
	return nil
}
