package decoder

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{0xff, 0x00, 0x00, 0xff}
	green = color.RGBA{0x00, 0xff, 0x00, 0xff}
	blue  = color.RGBA{0x00, 0x00, 0xff, 0xff}

	testPalette = color.Palette{red, green, blue}
)

type testFrame struct {
	rect     image.Rectangle
	fill     color.RGBA
	delay    int
	disposal byte
}

func filled(rect image.Rectangle, c color.RGBA) *image.Paletted {
	m := image.NewPaletted(rect, testPalette)
	idx := uint8(testPalette.Index(c))
	for i := range m.Pix {
		m.Pix[i] = idx
	}
	return m
}

// writeGIF encodes frames into dir/name and returns the full path.
func writeGIF(t *testing.T, dir, name string, w, h int, frames []testFrame) string {
	t.Helper()

	g := &gif.GIF{
		Config: image.Config{Width: w, Height: h, ColorModel: testPalette},
	}
	for _, f := range frames {
		g.Image = append(g.Image, filled(f.rect, f.fill))
		g.Delay = append(g.Delay, f.delay)
		g.Disposal = append(g.Disposal, f.disposal)
	}

	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, gif.EncodeAll(out, g))

	return path
}

// writePNG encodes a solid w x h image into dir/name.
func writePNG(t *testing.T, dir, name string, w, h int, c color.RGBA) string {
	t.Helper()

	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetRGBA(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, png.Encode(out, m))

	return path
}

func fullFrames(w, h int, delays ...int) []testFrame {
	fills := []color.RGBA{red, green, blue}
	frames := make([]testFrame, len(delays))
	for i, d := range delays {
		frames[i] = testFrame{
			rect:  image.Rect(0, 0, w, h),
			fill:  fills[i%len(fills)],
			delay: d,
		}
	}
	return frames
}
