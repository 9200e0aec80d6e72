package render

import (
	"image/color"

	"github.com/aquilax/go-perlin"

	"sandfall/internal/core"
)

// Colors configures how a grid is painted.
type Colors struct {
	Sand color.RGBA
	// Top and Bottom are the ends of the vertical background gradient.
	Top    color.RGBA
	Bottom color.RGBA
	// Grain scales the per-cell noise applied to sand pixels; zero paints
	// every grain in the flat Sand color.
	Grain float64
}

// DefaultColors returns the standard sand-on-night palette.
func DefaultColors() Colors {
	return Colors{
		Sand:   color.RGBA{R: 200, G: 200, B: 100, A: 255},
		Top:    color.RGBA{R: 18, G: 20, B: 44, A: 255},
		Bottom: color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Grain:  0.18,
	}
}

// Palette converts grid state into RGBA pixels. The background gradient and
// the grain texture are computed once per grid size.
type Palette struct {
	size       core.Size
	colors     Colors
	background []byte
	sand       []byte
}

// NewPalette prepares a palette for grids of the given size. seed drives the
// Perlin texture that gives neighbouring grains slightly different shades.
func NewPalette(size core.Size, colors Colors, seed int64) *Palette {
	p := &Palette{
		size:       size,
		colors:     colors,
		background: make([]byte, 4*size.W*size.H),
		sand:       make([]byte, 4*size.W*size.H),
	}
	noise := perlin.NewPerlin(2, 2, 3, seed)
	for sy := 0; sy < size.H; sy++ {
		t := 0.0
		if size.H > 1 {
			t = float64(sy) / float64(size.H-1)
		}
		bg := lerpRGBA(colors.Top, colors.Bottom, t)
		for sx := 0; sx < size.W; sx++ {
			base := (sy*size.W + sx) * 4
			putRGBA(p.background[base:], bg)
			shade := 1 + colors.Grain*noise.Noise2D(float64(sx)/6, float64(sy)/6)
			putRGBA(p.sand[base:], scaleRGBA(colors.Sand, shade))
		}
	}
	return p
}

// Size returns the grid size the palette was built for.
func (p *Palette) Size() core.Size { return p.size }

// Colors returns the palette configuration.
func (p *Palette) Colors() Colors { return p.colors }

// Fill paints g into buf, which must hold 4 bytes per cell. Every pixel is
// rewritten: the background first, then one sand pixel per occupied cell. It
// reports false and leaves buf untouched when the sizes do not match.
func (p *Palette) Fill(buf []byte, g *core.BitGrid) bool {
	if g.Size() != p.size || len(buf) != len(p.background) {
		return false
	}
	copy(buf, p.background)
	for x, y := range g.TrueCells() {
		sx, sy := GridToScreen(x, y, p.size)
		base := (sy*p.size.W + sx) * 4
		copy(buf[base:base+4], p.sand[base:base+4])
	}
	return true
}

func putRGBA(dst []byte, c color.RGBA) {
	dst[0] = c.R
	dst[1] = c.G
	dst[2] = c.B
	dst[3] = c.A
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-t) + float64(y)*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func scaleRGBA(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		s := float64(v)*f + 0.5
		if s < 0 {
			return 0
		}
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
