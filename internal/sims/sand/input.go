package sand

import "sandfall/internal/core"

// Mode selects what a pointer drag does to the cell under it.
type Mode uint8

const (
	// ModeAdd places sand.
	ModeAdd Mode = iota
	// ModeSubtract removes sand.
	ModeSubtract
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeSubtract:
		return "subtract"
	default:
		return "unknown"
	}
}

// Pointer is the last known pointer position in grid coordinates together
// with the primary button state.
type Pointer struct {
	X, Y int
	Held bool
}

// ApplyPointer writes the cell under p according to mode. It reports whether
// the grid was touched; nothing happens when the button is up or p lies
// outside the grid.
func ApplyPointer(g *core.BitGrid, p Pointer, mode Mode) bool {
	if !p.Held || !g.Contains(p.X, p.Y) {
		return false
	}
	switch mode {
	case ModeAdd:
		g.Set(p.X, p.Y, true)
	case ModeSubtract:
		g.Set(p.X, p.Y, false)
	default:
		return false
	}
	return true
}
