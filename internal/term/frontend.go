// Package term renders a sand world in a terminal using tcell. Every terminal
// cell shows two grid rows with an upper-half block glyph.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/sims/sand"
)

const (
	frameInterval = 16 * time.Millisecond
	halfBlock     = '▀'
)

// Frontend drives a sand world from terminal events and draws it.
type Frontend struct {
	screen  tcell.Screen
	world   *sand.World
	palette *render.Palette
	timer   *core.Timer
	buf     []byte

	paused   bool
	tickOnce bool
}

// New wires a frontend to an initialized screen.
func New(screen tcell.Screen, world *sand.World, palette *render.Palette, tick time.Duration) *Frontend {
	size := world.Size()
	return &Frontend{
		screen:  screen,
		world:   world,
		palette: palette,
		timer:   core.NewTimer(tick),
		buf:     make([]byte, 4*size.W*size.H),
	}
}

// HandleEvent applies one terminal event. It returns false when the user asked
// to quit.
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'a', 'A':
				f.world.SetMode(sand.ModeAdd)
			case 's', 'S':
				f.world.SetMode(sand.ModeSubtract)
			case 'c', 'C':
				f.world.Reset(0)
			case 'n', 'N':
				f.tickOnce = true
			case ' ':
				f.paused = !f.paused
			}
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		x, y := render.ScreenToGrid(cx, cy*2, 1, f.world.Size())
		f.world.SetPointer(sand.Pointer{X: x, Y: y, Held: ev.Buttons()&tcell.Button1 != 0})

	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

// Update advances the world when the tick timer fires and redraws.
func (f *Frontend) Update() {
	switch {
	case f.tickOnce:
		f.world.Tick()
		f.tickOnce = false
	case !f.paused && f.timer.CheckWithReset():
		f.world.Tick()
	}
	f.Draw()
}

// Draw paints the grid and a status line below it.
func (f *Frontend) Draw() {
	if !f.palette.Fill(f.buf, f.world.Grid()) {
		return
	}
	size := f.world.Size()
	rows := (size.H + 1) / 2
	for row := 0; row < rows; row++ {
		top := row * 2
		bottom := min(top+1, size.H-1)
		for x := 0; x < size.W; x++ {
			style := tcell.StyleDefault.
				Foreground(f.pixel(x, top)).
				Background(f.pixel(x, bottom))
			f.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}

	status := fmt.Sprintf(" mode: %s  grains: %d  step: %d ", f.world.Mode(), f.world.Grains(), f.world.Steps())
	if f.paused {
		status += "[paused] "
	}
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	col := 0
	for _, r := range status {
		f.screen.SetContent(col, rows, r, nil, statusStyle)
		col++
	}
	for ; col < size.W; col++ {
		f.screen.SetContent(col, rows, ' ', nil, statusStyle)
	}
	f.screen.Show()
}

func (f *Frontend) pixel(sx, sy int) tcell.Color {
	base := (sy*f.world.Size().W + sx) * 4
	return tcell.NewRGBColor(int32(f.buf[base]), int32(f.buf[base+1]), int32(f.buf[base+2]))
}

// Run pumps terminal events and redraws until the user quits or ctx is done.
// Only the calling goroutine touches the world; a helper goroutine forwards
// events from the screen.
func (f *Frontend) Run(ctx context.Context) error {
	f.screen.EnableMouse()
	f.screen.HideCursor()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	f.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !f.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			f.Update()
		}
	}
}
