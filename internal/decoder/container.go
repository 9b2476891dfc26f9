package decoder

import (
	"image"
	"image/gif"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// container exposes a decoded GIF one active frame at a time, together with
// its property list.
//
// GIF frames only carry the pixels that changed, so every frame is plotted
// onto a canvas the size of the logical screen, honouring the disposal mode
// of the frame before it.
type container struct {
	g      *gif.GIF
	canvas *image.RGBA
	saved  *image.RGBA // canvas before a DisposalPrevious frame was drawn
	active int
	props  map[uint16][]byte
}

func newContainer(g *gif.GIF) *container {
	w, h := g.Config.Width, g.Config.Height
	if w <= 0 || h <= 0 {
		var b image.Rectangle
		for _, m := range g.Image {
			b = b.Union(m.Bounds())
		}
		w, h = b.Max.X, b.Max.Y
	}

	c := &container{
		g:      g,
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
		active: -1,
		props:  make(map[uint16][]byte),
	}

	if len(g.Delay) > 0 {
		c.props[PropertyFrameDelay] = delayProperty(g.Delay)
	}

	return c
}

// FrameCount is the number of frames in the time dimension.
func (c *container) FrameCount() int {
	return len(c.g.Image)
}

// Property returns the raw value of a property, if the container has it.
func (c *container) Property(id uint16) ([]byte, bool) {
	v, ok := c.props[id]
	return v, ok
}

// SelectActiveFrame composites frames up to and including i.
func (c *container) SelectActiveFrame(i int) error {
	if i < 0 || i >= len(c.g.Image) {
		return errors.Errorf("frame %d out of range [0,%d)", i, len(c.g.Image))
	}
	if i <= c.active {
		c.reset()
	}
	for c.active < i {
		c.advance()
	}
	return nil
}

// Rasterize copies the active frame into a new bitmap owned by the caller.
func (c *container) Rasterize() *image.RGBA {
	out := image.NewRGBA(c.canvas.Rect)
	copy(out.Pix, c.canvas.Pix)
	return out
}

func (c *container) reset() {
	clear(c.canvas.Pix)
	c.saved = nil
	c.active = -1
}

func (c *container) disposal(i int) byte {
	if i < 0 || i >= len(c.g.Disposal) {
		return gif.DisposalNone
	}
	return c.g.Disposal[i]
}

func (c *container) advance() {
	if c.active >= 0 {
		prev := c.g.Image[c.active]
		switch c.disposal(c.active) {
		case gif.DisposalBackground:
			draw.Draw(c.canvas, prev.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if c.saved != nil {
				copy(c.canvas.Pix, c.saved.Pix)
			}
		}
	}

	next := c.active + 1
	if c.disposal(next) == gif.DisposalPrevious {
		if c.saved == nil {
			c.saved = image.NewRGBA(c.canvas.Rect)
		}
		copy(c.saved.Pix, c.canvas.Pix)
	}

	m := c.g.Image[next]
	draw.Draw(c.canvas, m.Bounds(), m, m.Bounds().Min, draw.Over)
	c.active = next
}
