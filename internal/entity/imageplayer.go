package entity

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"gifplayer/internal/assets"
	"gifplayer/internal/decoder"
	"gifplayer/internal/fit"
	"gifplayer/internal/playback"
)

// ImagePlayer shows a still or animated image inside a fixed box on screen.
type ImagePlayer struct {
	Box        image.Rectangle
	Background color.Color

	player *playback.Player

	// Fit/fill blend, 0 keeps the image inside the box, 1 covers it
	blend float64
	tween *gween.Tween

	pending  *assets.Pending
	textures map[int]*ebiten.Image
}

// NewImagePlayer creates an empty player drawing into box.
func NewImagePlayer(box image.Rectangle, blend float64, background color.Color) *ImagePlayer {
	return &ImagePlayer{
		Box:        box,
		Background: background,
		player:     playback.NewPlayer(),
		blend:      blend,
		textures:   make(map[int]*ebiten.Image),
	}
}

// Player exposes the playback controls.
func (p *ImagePlayer) Player() *playback.Player {
	return p.player
}

// SetImage shows seq right away, replacing whatever was shown or loading.
func (p *ImagePlayer) SetImage(seq decoder.Sequence) {
	if p.pending != nil {
		p.pending.Cancel()
		p.pending = nil
	}
	p.dropTextures()
	p.player.SetSequence(seq)
}

// Load shows the result of a background decode once it arrives.
func (p *ImagePlayer) Load(pending *assets.Pending) {
	p.SetImage(decoder.Sequence{})
	p.pending = pending
}

// Loading reports whether a background decode is still outstanding.
func (p *ImagePlayer) Loading() bool {
	return p.pending != nil
}

// Progress of the outstanding decode, 1 when nothing is loading.
func (p *ImagePlayer) Progress() float64 {
	if p.pending == nil {
		return 1
	}
	return p.pending.Progress()
}

// Clear shows nothing.
func (p *ImagePlayer) Clear() {
	if p.pending != nil {
		p.pending.Cancel()
		p.pending = nil
	}
	p.dropTextures()
	p.player.Clear()
}

func (p *ImagePlayer) Blend() float64 {
	return p.blend
}

// SetBlend changes the fit/fill blend immediately.
func (p *ImagePlayer) SetBlend(blend float64) {
	p.tween = nil
	p.blend = clamp01(blend)
}

// TweenBlend eases the fit/fill blend towards target over d.
func (p *ImagePlayer) TweenBlend(target float64, d time.Duration) {
	target = clamp01(target)
	if d <= 0 {
		p.SetBlend(target)
		return
	}
	p.tween = gween.New(float32(p.blend), float32(target), float32(d.Seconds()), ease.OutQuad)
}

// Rect is where the current frame is drawn, centered on the box.
func (p *ImagePlayer) Rect() image.Rectangle {
	w, h := p.player.Sequence().Size()
	box := fit.Size{W: float64(p.Box.Dx()), H: float64(p.Box.Dy())}
	size := fit.ComputeSize(fit.Size{W: float64(w), H: float64(h)}, box, p.blend)
	return fit.Centered(p.Box, size)
}

// Update advances loading, the blend tween and playback by dt.
func (p *ImagePlayer) Update(dt time.Duration) {
	if p.pending != nil {
		if seq, ok := p.pending.Result(); ok {
			p.pending = nil
			p.dropTextures()
			p.player.SetSequence(seq)
		}
	}

	if p.tween != nil {
		v, done := p.tween.Update(float32(dt.Seconds()))
		p.blend = clamp01(float64(v))
		if done {
			p.tween = nil
		}
	}

	p.player.Tick(dt)
}

// Draw paints the box background and the current frame clipped to the box.
func (p *ImagePlayer) Draw(screen *ebiten.Image) {
	if p.Background != nil {
		vector.DrawFilledRect(screen,
			float32(p.Box.Min.X), float32(p.Box.Min.Y),
			float32(p.Box.Dx()), float32(p.Box.Dy()),
			p.Background, false)
	}

	frame := p.player.Current()
	if frame == nil || frame.Image == nil {
		return
	}

	tex := p.texture(p.player.Index(), frame)
	src := tex.Bounds()
	dst := p.Rect()
	if src.Dx() == 0 || src.Dy() == 0 || dst.Empty() {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	op.Filter = ebiten.FilterLinear

	clip := screen.SubImage(p.Box.Intersect(screen.Bounds())).(*ebiten.Image)
	clip.DrawImage(tex, op)
}

// texture converts frames to GPU images the first time they are shown.
func (p *ImagePlayer) texture(index int, frame *decoder.Frame) *ebiten.Image {
	if tex, ok := p.textures[index]; ok {
		return tex
	}
	tex := ebiten.NewImageFromImage(frame.Image)
	p.textures[index] = tex
	return tex
}

func (p *ImagePlayer) dropTextures() {
	for i, tex := range p.textures {
		tex.Deallocate()
		delete(p.textures, i)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
