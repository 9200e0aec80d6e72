package sand

import (
	"fmt"

	"sandfall/internal/core"
)

// World holds the state owned by the control loop: the double-buffered grid,
// the tie-break RNG, and the latest pointer and edit mode.
type World struct {
	cfg Config

	cur *core.BitGrid
	nxt *core.BitGrid
	rng *core.RNG

	mode    Mode
	pointer Pointer
	steps   uint64
}

// New returns a square world of the given size using default settings.
func New(size int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = size
	cfg.Height = size
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options.
func NewWithConfig(cfg Config) (*World, error) {
	cur, err := core.NewBitGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("sand world: %w", err)
	}
	return &World{
		cfg: cfg,
		cur: cur,
		nxt: cur.Blank(),
		rng: core.NewRNG(cfg.Seed),
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.cur.Size() }

// Grid exposes the current generation. It is replaced on every step, so
// callers should not hold on to it across ticks.
func (w *World) Grid() *core.BitGrid { return w.cur }

// Steps returns the number of simulation steps taken since the last reset.
func (w *World) Steps() uint64 { return w.steps }

// Grains returns the number of occupied cells.
func (w *World) Grains() int { return w.cur.Count() }

// Mode returns the active edit mode.
func (w *World) Mode() Mode { return w.mode }

// SetMode changes the edit mode.
func (w *World) SetMode(m Mode) { w.mode = m }

// Pointer returns the last recorded pointer state.
func (w *World) Pointer() Pointer { return w.pointer }

// SetPointer records the pointer state applied on the next tick.
func (w *World) SetPointer(p Pointer) { w.pointer = p }

// Reset empties the grid and reseeds the RNG. A zero seed keeps the
// configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng = core.NewRNG(seed)
	w.cur.Clear()
	w.nxt.Clear()
	w.steps = 0
}

// Tick applies pointer input to the current grid and then advances the
// simulation, so edits show up in the same tick's output.
func (w *World) Tick() {
	ApplyPointer(w.cur, w.pointer, w.mode)
	w.Step()
}

// Step advances the simulation by one generation without applying input.
func (w *World) Step() {
	StepInto(w.cur, w.nxt, w.rng)
	w.cur, w.nxt = w.nxt, w.cur
	w.steps++
}
