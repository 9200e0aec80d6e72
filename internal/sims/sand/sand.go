package sand

import (
	"fmt"

	"sandfall/internal/core"
)

// Update returns the generation following cur. cur is not modified; the only
// side effect is drawing from rng when a grain has two free diagonals.
func Update(cur *core.BitGrid, rng core.BoolSource) *core.BitGrid {
	next := cur.Blank()
	step(cur, next, rng)
	return next
}

// StepInto computes the generation following cur into next, clearing next
// first. Both grids must have the same size and must not be the same grid.
func StepInto(cur, next *core.BitGrid, rng core.BoolSource) {
	if cur == next {
		panic("sand: StepInto requires distinct grids")
	}
	if cur.Size() != next.Size() {
		panic(fmt.Sprintf("sand: StepInto size mismatch %v vs %v", cur.Size(), next.Size()))
	}
	next.Clear()
	step(cur, next, rng)
}

// step moves every grain of cur into the blank grid next.
//
// A destination is free when it is empty in cur and no earlier grain has
// already landed there in next. Cells outside the grid are never free, so
// every grain resolves to exactly one write and the grain count is preserved.
func step(cur, next *core.BitGrid, rng core.BoolSource) {
	w := cur.Width()
	free := func(x, y int) bool {
		occupied, ok := cur.Get(x, y)
		if !ok || occupied {
			return false
		}
		claimed, _ := next.Get(x, y)
		return !claimed
	}

	for x, y := range cur.TrueCells() {
		if y == 0 {
			next.Set(x, y, true)
			continue
		}

		if free(x, y-1) {
			next.Set(x, y-1, true)
			continue
		}

		left := x > 0 && free(x-1, y-1)
		right := x < w-1 && free(x+1, y-1)

		switch {
		case left && right:
			if rng.Bool() {
				next.Set(x-1, y-1, true)
			} else {
				next.Set(x+1, y-1, true)
			}
		case left:
			next.Set(x-1, y-1, true)
		case right:
			next.Set(x+1, y-1, true)
		default:
			next.Set(x, y, true)
		}
	}
}
