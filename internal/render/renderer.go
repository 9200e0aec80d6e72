//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"sandfall/internal/core"
)

// GridPainter uploads grid state into a single RGBA image and draws it.
type GridPainter struct {
	palette *Palette
	img     *ebiten.Image
	buf     []byte
}

// NewGridPainter allocates a painter for grids matching the palette size.
func NewGridPainter(p *Palette) *GridPainter {
	size := p.Size()
	return &GridPainter{
		palette: p,
		img:     ebiten.NewImage(size.W, size.H),
		buf:     make([]byte, 4*size.W*size.H),
	}
}

// Blit paints g into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.BitGrid, scale int) {
	if !gp.palette.Fill(gp.buf, g) {
		return
	}
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
