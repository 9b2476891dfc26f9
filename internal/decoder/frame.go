package decoder

import (
	"image"
	"time"
)

// Frame is one still image of a sequence plus how long it stays visible.
// The bitmap is owned by the frame and never shared with another frame.
type Frame struct {
	Image *image.RGBA
	Delay time.Duration
}

// Sequence holds the frames of a decoded image in display order. A Sequence is
// not modified after the decoder returns it. An empty Sequence means "nothing
// to show" and is a valid result.
type Sequence []Frame

// Size returns the dimensions of the first frame, or zero for an empty sequence.
func (s Sequence) Size() (width, height int) {
	if len(s) == 0 || s[0].Image == nil {
		return 0, 0
	}
	b := s[0].Image.Bounds()
	return b.Dx(), b.Dy()
}

// Duration is the sum of all frame delays.
func (s Sequence) Duration() time.Duration {
	var total time.Duration
	for _, f := range s {
		total += f.Delay
	}
	return total
}

// FPS derives a frame rate from the first frame that records a delay.
// Returns 0 for static images and for animations with no delays at all.
func (s Sequence) FPS() float64 {
	if len(s) <= 1 {
		return 0
	}
	for _, f := range s {
		if f.Delay != 0 {
			return 1 / f.Delay.Seconds()
		}
	}
	return 0
}
