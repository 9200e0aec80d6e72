package render

import "sandfall/internal/core"

// ScreenToGrid maps a position in scaled screen pixels to the grid cell under
// it. Positions outside the drawable area are clamped to the nearest edge
// cell. Screen y grows downwards while grid row 0 is the floor.
func ScreenToGrid(sx, sy, scale int, size core.Size) (x, y int) {
	if scale <= 0 {
		scale = 1
	}
	x = min(max(sx/scale, 0), size.W-1)
	row := min(max(sy/scale, 0), size.H-1)
	return x, size.H - 1 - row
}

// GridToScreen maps a grid cell to its unscaled screen pixel.
func GridToScreen(x, y int, size core.Size) (sx, sy int) {
	return x, size.H - 1 - y
}
