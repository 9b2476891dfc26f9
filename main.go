package main

import (
	"context"
	"image"
	"io/fs"
	"log"

	"github.com/alexflint/go-arg"
	"github.com/hajimehoshi/ebiten/v2"
	logging "github.com/ipfs/go-log/v2"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"gifplayer/internal/assets"
	"gifplayer/internal/config"
	"gifplayer/internal/entity"
	"gifplayer/internal/gamemode"
	"gifplayer/internal/settings"
)

// Screen Constants (Retro 4:3)
const (
	ScreenWidth  = 320
	ScreenHeight = 240
	WindowTitle  = "GIF Player"
)

var logger = logging.Logger("gifplayer")

type Args struct {
	Image   string   `arg:"positional" help:"image to show, relative to the picture directory"`
	Config  string   `arg:"-c,--config" help:"path to config.yaml"`
	PicDir  string   `arg:"-p,--pic-dir" help:"directory holding the images"`
	Blend   *float64 `arg:"-b,--blend" help:"fit/fill blend, 0 fits the image inside the box, 1 covers it"`
	Preload bool     `arg:"--preload" help:"decode every image in the background at startup"`
	Debug   bool     `arg:"-d,--debug" help:"debug logging"`
}

func (Args) Description() string {
	return "Plays animated GIFs and shows PNG/JPG images."
}

func main() {
	var args Args
	arg.MustParse(&args)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Config
	cfg, err := config.Load(ctx, args.Config)
	if err != nil {
		log.Fatal(err)
	}
	if args.PicDir != "" {
		cfg.PicDir = args.PicDir
	}

	level := cfg.LogLevel
	if args.Debug {
		level = "debug"
	}
	if err := logging.SetLogLevelRegex("gifplayer.*", level); err != nil {
		log.Fatal(err)
	}

	store, err := settings.Open("")
	if err != nil {
		log.Fatal(err)
	}
	blend := store.FitFillBlend(cfg.FitFillBlend)
	if args.Blend != nil {
		blend = *args.Blend
	}

	// 2. Viewer
	manager := assets.NewManager(cfg)
	box := image.Rect(0, 0, cfg.BoxWidth, cfg.BoxHeight).
		Add(image.Pt((ScreenWidth-cfg.BoxWidth)/2, (ScreenHeight-cfg.BoxHeight)/2))
	player := entity.NewImagePlayer(box, blend, cfg.BackgroundColor())
	viewer := gamemode.NewViewer(ctx, manager, store, player)

	if err := viewer.Refresh(); err != nil {
		logger.Warnf("failed to list %s: %v", cfg.PicDir, err)
	}
	if args.Preload {
		go func() {
			if err := manager.Preload(ctx, viewer.Images()); err != nil {
				logger.Warnf("preload: %v", err)
			}
		}()
	}
	if cfg.Watch {
		changed, err := manager.Watch(ctx)
		if err != nil {
			logger.Warnf("hot reload disabled: %v", err)
		} else {
			viewer.Watch(changed)
		}
	}

	name := args.Image
	if name == "" {
		name = store.LastImage()
	}
	if name != "" {
		viewer.Open(name)
	} else {
		viewer.Next()
	}

	// 3. Window Setup
	ebiten.SetWindowSize(ScreenWidth*3, ScreenHeight*3)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 4. Run Loop
	if err := ebiten.RunGame(NewGame(viewer, manager)); err != nil {
		log.Fatal(err)
	}
}
