package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gifplayer/internal/assets"
	"gifplayer/internal/decoder"
	"gifplayer/internal/gamemode"
)

type GameMode int

const (
	ModeViewer GameMode = iota
	ModeLibrary
)

// Game holds global state
type Game struct {
	CurrentMode GameMode
	Tick        int

	viewer  *gamemode.Viewer
	manager *assets.Manager

	// Library listing, rebuilt each time the mode is entered
	library string
}

func NewGame(viewer *gamemode.Viewer, manager *assets.Manager) *Game {
	return &Game{
		CurrentMode: ModeViewer,
		viewer:      viewer,
		manager:     manager,
	}
}

// frameTime is the time covered by one Update call.
func frameTime() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// Update: Logic (60 TPS)
func (g *Game) Update() error {
	g.Tick++

	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.CurrentMode = ModeViewer
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.CurrentMode = ModeLibrary
		g.library = g.listLibrary()
	}

	switch g.CurrentMode {
	case ModeViewer:
		g.viewer.Update(frameTime())
	case ModeLibrary:
		// Keep loads and playback moving while the list is shown
		g.viewer.Step(frameTime())
	}

	return nil
}

// listLibrary describes every image using header-only probes.
func (g *Game) listLibrary() string {
	names, err := g.manager.List()
	if err != nil {
		return fmt.Sprintf("MODE: LIBRARY\n%v", err)
	}

	var b strings.Builder
	b.WriteString("MODE: LIBRARY\n")
	for _, name := range names {
		w, h, err := decoder.Probe(g.manager.Resolve(name))
		if err != nil {
			fmt.Fprintf(&b, "%s  ?\n", name)
			continue
		}
		fmt.Fprintf(&b, "%s  %dx%d\n", name, w, h)
	}
	if len(names) == 0 {
		b.WriteString("(empty)\n")
	}
	return b.String()
}

// Draw: Rendering (VSync)
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x2b, 0x2b, 0x2b, 0xff}) // Dark Grey

	switch g.CurrentMode {
	case ModeViewer:
		g.viewer.Draw(screen)
	case ModeLibrary:
		ebitenutil.DebugPrint(screen, g.library)
	}
}

// Layout: Scaling Strategy
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Always render at 320x240, let Ebiten scale it up
	return ScreenWidth, ScreenHeight
}
