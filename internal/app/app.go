//go:build ebiten

package app

import (
	"fmt"

	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a sand world to the ebiten.Game interface.
type Game struct {
	world   *sand.World
	painter *render.GridPainter
	timer   *core.Timer

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided world.
func New(world *sand.World, cfg *Config) *Game {
	palette := render.NewPalette(world.Size(), render.DefaultColors(), cfg.Seed)
	return &Game{
		world:   world,
		painter: render.NewGridPainter(palette),
		timer:   core.NewTimer(cfg.Tick),
		scale:   cfg.Scale,
		seed:    cfg.Seed,
	}
}

// Reset empties the world and reseeds its tie-break RNG.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation when the tick
// timer fires.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.world.SetMode(sand.ModeAdd)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.world.SetMode(sand.ModeSubtract)
	}

	cx, cy := ebiten.CursorPosition()
	x, y := render.ScreenToGrid(cx, cy, g.scale, g.world.Size())
	g.world.SetPointer(sand.Pointer{
		X:    x,
		Y:    y,
		Held: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	})

	if g.tickOnce {
		g.world.Tick()
		g.tickOnce = false
		return nil
	}
	if !g.paused && g.timer.CheckWithReset() {
		g.world.Tick()
	}
	return nil
}

// Draw renders the current grid and a status line.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world.Grid(), g.scale)
	status := fmt.Sprintf("mode: %s  grains: %d  tps: %.0f", g.world.Mode(), g.world.Grains(), ebiten.ActualTPS())
	if g.paused {
		status += "  [paused]"
	}
	ebitenutil.DebugPrint(screen, status)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W * g.scale, s.H * g.scale
}
