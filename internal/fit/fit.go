// Package fit sizes an image against a display box, anywhere between fitting
// inside it and covering it.
package fit

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Size is a width and height in display units.
type Size struct {
	W, H float64
}

// Contain scales src to fit entirely inside box, keeping its aspect ratio.
func Contain(src, box Size) Size {
	if wider(src, box) {
		return fixedWidth(src, box)
	}
	return fixedHeight(src, box)
}

// Cover scales src to cover the whole box, keeping its aspect ratio.
func Cover(src, box Size) Size {
	if wider(src, box) {
		return fixedHeight(src, box)
	}
	return fixedWidth(src, box)
}

// ComputeSize blends between Contain (blend 0) and Cover (blend 1).
// Degenerate sources keep the box size.
func ComputeSize(src, box Size, blend float64) Size {
	if src.W <= 0 || src.H <= 0 || box.W <= 0 || box.H <= 0 {
		return box
	}
	blend = math.Max(0, math.Min(1, blend))

	contain := Contain(src, box)
	cover := Cover(src, box)
	return Size{
		W: lerp(contain.W, cover.W, blend),
		H: lerp(contain.H, cover.H, blend),
	}
}

// Centered places a w x h rectangle in the middle of box.
func Centered(box image.Rectangle, s Size) image.Rectangle {
	w, h := int(math.Round(s.W)), int(math.Round(s.H))
	x := box.Min.X + (box.Dx()-w)/2
	y := box.Min.Y + (box.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Scale draws src stretched over dst's rectangle r.
func Scale(dst draw.Image, r image.Rectangle, src image.Image) {
	draw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), draw.Over, nil)
}

func wider(src, box Size) bool {
	return src.W/src.H > box.W/box.H
}

func fixedWidth(src, box Size) Size {
	return Size{W: box.W, H: src.H * (box.W / src.W)}
}

func fixedHeight(src, box Size) Size {
	return Size{W: src.W * (box.H / src.H), H: box.H}
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
