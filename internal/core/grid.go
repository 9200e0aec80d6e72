package core

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/bits"
)

// ErrInvalidSize is returned when grid dimensions are zero, negative, or too
// large to address.
var ErrInvalidSize = errors.New("invalid grid size")

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// BitGrid stores a 2D field of boolean cells in row-major order, one bit per
// cell. Row 0 is the bottom of the world.
type BitGrid struct {
	w, h  int
	n     int
	words []uint64
}

// NewBitGrid allocates a grid with every cell cleared.
func NewBitGrid(w, h int) (*BitGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if w > math.MaxInt/h {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrInvalidSize, w, h)
	}
	n := w * h
	return &BitGrid{w: w, h: h, n: n, words: make([]uint64, (n+63)/64)}, nil
}

// Width returns the number of columns.
func (g *BitGrid) Width() int { return g.w }

// Height returns the number of rows.
func (g *BitGrid) Height() int { return g.h }

// Size returns the grid dimensions.
func (g *BitGrid) Size() Size { return Size{W: g.w, H: g.h} }

// Len returns the number of cells.
func (g *BitGrid) Len() int { return g.n }

// Contains reports whether (x, y) addresses a cell of the grid.
func (g *BitGrid) Contains(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Index returns the linear bit index for coordinates (x, y).
func (g *BitGrid) Index(x, y int) int { return y*g.w + x }

// Get returns the cell value at (x, y). ok is false when the coordinates are
// outside the grid.
func (g *BitGrid) Get(x, y int) (value, ok bool) {
	if !g.Contains(x, y) {
		return false, false
	}
	i := g.Index(x, y)
	return g.words[i>>6]&(1<<(uint(i)&63)) != 0, true
}

// Set writes the cell at (x, y). Callers must check bounds first; an
// out-of-range coordinate panics.
func (g *BitGrid) Set(x, y int, value bool) {
	if !g.Contains(x, y) {
		panic(fmt.Sprintf("core: BitGrid.Set(%d, %d) out of range %dx%d", x, y, g.w, g.h))
	}
	i := g.Index(x, y)
	mask := uint64(1) << (uint(i) & 63)
	if value {
		g.words[i>>6] |= mask
		return
	}
	g.words[i>>6] &^= mask
}

// TrueCells yields the coordinates of every set cell in increasing index
// order: row 0 left to right, then row 1, and so on. The sequence can be
// ranged over any number of times.
func (g *BitGrid) TrueCells() iter.Seq2[int, int] {
	return func(yield func(x, y int) bool) {
		for wi, word := range g.words {
			for word != 0 {
				bit := bits.TrailingZeros64(word)
				word &= word - 1
				i := wi<<6 + bit
				if !yield(i%g.w, i/g.w) {
					return
				}
			}
		}
	}
}

// Count returns the number of set cells.
func (g *BitGrid) Count() int {
	total := 0
	for _, word := range g.words {
		total += bits.OnesCount64(word)
	}
	return total
}

// Clear resets every cell to false.
func (g *BitGrid) Clear() {
	clear(g.words)
}

// Blank returns a new cleared grid with the same dimensions.
func (g *BitGrid) Blank() *BitGrid {
	return &BitGrid{w: g.w, h: g.h, n: g.n, words: make([]uint64, len(g.words))}
}

// Clone returns an independent copy of the grid.
func (g *BitGrid) Clone() *BitGrid {
	c := g.Blank()
	copy(c.words, g.words)
	return c
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *BitGrid) Equal(o *BitGrid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i := range g.words {
		if g.words[i] != o.words[i] {
			return false
		}
	}
	return true
}
