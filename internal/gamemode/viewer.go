package gamemode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hako/durafmt"
	logging "github.com/ipfs/go-log/v2"

	"gifplayer/internal/assets"
	"gifplayer/internal/entity"
	"gifplayer/internal/playback"
	"gifplayer/internal/settings"
)

var log = logging.Logger("gifplayer/gamemode")

type ViewerState int

const (
	ViewerIdle    ViewerState = iota // Nothing shown
	ViewerLoading                    // Decoding in the background
	ViewerShowing                    // Image on screen
)

func (s ViewerState) String() string {
	switch s {
	case ViewerIdle:
		return "idle"
	case ViewerLoading:
		return "loading"
	case ViewerShowing:
		return "showing"
	}
	return fmt.Sprintf("ViewerState(%d)", int(s))
}

const (
	BlendStep  = 0.25
	BlendTween = 250 * time.Millisecond
)

// Viewer browses the picture directory and maps keys to playback controls.
type Viewer struct {
	State   ViewerState
	Overlay bool

	ctx      context.Context
	assets   *assets.Manager
	settings *settings.Store
	player   *entity.ImagePlayer

	images  []string
	current int
	name    string

	// Target of the blend tween, the value saved to settings
	blend float64

	changed <-chan string
}

func NewViewer(ctx context.Context, m *assets.Manager, s *settings.Store, p *entity.ImagePlayer) *Viewer {
	return &Viewer{
		State:    ViewerIdle,
		ctx:      ctx,
		assets:   m,
		settings: s,
		player:   p,
		current:  -1,
		blend:    p.Blend(),
	}
}

// Watch makes the viewer reload images reported on changed.
func (v *Viewer) Watch(changed <-chan string) {
	v.changed = changed
}

func (v *Viewer) Player() *entity.ImagePlayer {
	return v.player
}

// Name of the image shown or loading, empty when idle.
func (v *Viewer) Name() string {
	return v.name
}

func (v *Viewer) Images() []string {
	return v.images
}

// Refresh re-reads the list of images in the picture directory.
func (v *Viewer) Refresh() error {
	images, err := v.assets.List()
	if err != nil {
		return err
	}
	v.images = images
	v.current = v.indexOf(v.name)
	return nil
}

// Open starts loading name and remembers it as the last image shown.
func (v *Viewer) Open(name string) {
	v.name = name
	v.current = v.indexOf(name)
	v.player.Load(v.assets.Request(v.ctx, name))
	v.State = ViewerLoading

	if v.settings != nil {
		if err := v.settings.SetLastImage(name); err != nil {
			log.Warnf("failed to save last image: %v", err)
		}
	}
}

func (v *Viewer) Next() {
	v.step(1)
}

func (v *Viewer) Prev() {
	v.step(-1)
}

func (v *Viewer) step(delta int) {
	n := len(v.images)
	if n == 0 {
		return
	}
	i := v.current
	if i < 0 {
		if delta > 0 {
			i = -1
		} else {
			i = 0
		}
	}
	i = ((i+delta)%n + n) % n
	v.Open(v.images[i])
}

func (v *Viewer) TogglePlay() {
	p := v.player.Player()
	if p.State() == playback.Playing {
		p.Pause()
		return
	}
	p.Play()
}

func (v *Viewer) Stop() {
	v.player.Player().Stop()
}

func (v *Viewer) Restart() {
	v.player.Player().Restart()
}

// Clear removes the image from the screen.
func (v *Viewer) Clear() {
	v.player.Clear()
	v.name = ""
	v.current = -1
	v.State = ViewerIdle
}

// AdjustBlend eases the fit/fill blend by delta and saves the new value.
func (v *Viewer) AdjustBlend(delta float64) {
	target := v.blend + delta
	switch {
	case target < 0:
		target = 0
	case target > 1:
		target = 1
	}
	if target == v.blend {
		return
	}
	v.blend = target
	v.player.TweenBlend(target, BlendTween)

	if v.settings != nil {
		if err := v.settings.SetFitFillBlend(target); err != nil {
			log.Warnf("failed to save blend: %v", err)
		}
	}
}

// Update reads the keyboard, then advances the viewer by dt.
func (v *Viewer) Update(dt time.Duration) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.TogglePlay()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.Prev()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		v.AdjustBlend(BlendStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		v.AdjustBlend(-BlendStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		v.Overlay = !v.Overlay
	}

	v.Step(dt)
}

// Step advances loading and playback by dt without reading input.
func (v *Viewer) Step(dt time.Duration) {
	v.drainChanges()

	v.player.Update(dt)

	if v.State == ViewerLoading && !v.player.Loading() {
		if v.player.Player().Len() == 0 {
			log.Warnf("nothing to show for '%s'", v.name)
			v.State = ViewerIdle
			return
		}
		v.State = ViewerShowing
	}
}

func (v *Viewer) drainChanges() {
	for v.changed != nil {
		select {
		case name, ok := <-v.changed:
			if !ok {
				v.changed = nil
				return
			}
			if v.indexOf(name) < 0 {
				if err := v.Refresh(); err != nil {
					log.Warnf("failed to list images: %v", err)
				}
			}
			if name == v.name {
				log.Infof("reloading '%s'", name)
				v.Open(name)
			}
		default:
			return
		}
	}
}

func (v *Viewer) indexOf(name string) int {
	for i, image := range v.images {
		if image == name {
			return i
		}
	}
	return -1
}

// Status is the overlay text.
func (v *Viewer) Status() string {
	var b strings.Builder

	switch v.State {
	case ViewerIdle:
		b.WriteString("NO IMAGE\n<- -> TO BROWSE")
		return b.String()
	case ViewerLoading:
		fmt.Fprintf(&b, "%s\nLOADING %d%%", v.name, int(v.player.Progress()*100))
		return b.String()
	}

	p := v.player.Player()
	fmt.Fprintf(&b, "%s (%d/%d)\n", v.name, v.current+1, len(v.images))
	fmt.Fprintf(&b, "%s  frame %d/%d\n", p.State(), p.Index()+1, p.Len())
	if seq := p.Sequence(); p.Animated() {
		fmt.Fprintf(&b, "loop %s  %.1f fps\n", durafmt.Parse(seq.Duration()).String(), seq.FPS())
	} else {
		b.WriteString("still\n")
	}
	fmt.Fprintf(&b, "blend %.2f", v.player.Blend())
	return b.String()
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	v.player.Draw(screen)

	if v.Overlay || v.State != ViewerShowing {
		ebitenutil.DebugPrintAt(screen, v.Status(), 4, 4)
	}
}
