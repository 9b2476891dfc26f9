package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v2"
)

// RelPath is where the config file lives under the XDG config directories.
const RelPath = "gifplayer/config.yaml"

// EnvPrefix is prepended to every environment override, e.g. GIFPLAYER_PIC_DIR.
const EnvPrefix = "GIFPLAYER_"

// Config is passed explicitly to everything that needs paths or tuning.
type Config struct {
	// PicDir is where relative image names are resolved.
	PicDir string `yaml:"picDir" env:"PIC_DIR, overwrite"`

	// FitFillBlend blends between fitting the image inside the box (0) and
	// covering the box (1).
	FitFillBlend float64 `yaml:"fitFillBlend" env:"FIT_FILL_BLEND, overwrite"`

	// SniffContent dispatches on the detected MIME type instead of the file
	// extension.
	SniffContent bool `yaml:"sniffContent" env:"SNIFF_CONTENT, overwrite"`

	Background     string `yaml:"background" env:"BACKGROUND, overwrite"`
	BoxWidth       int    `yaml:"boxWidth" env:"BOX_WIDTH, overwrite"`
	BoxHeight      int    `yaml:"boxHeight" env:"BOX_HEIGHT, overwrite"`
	PreloadWorkers int    `yaml:"preloadWorkers" env:"PRELOAD_WORKERS, overwrite"`
	Watch          bool   `yaml:"watch" env:"WATCH, overwrite"`
	LogLevel       string `yaml:"logLevel" env:"LOG_LEVEL, overwrite"`
}

// Default returns the built-in configuration. Pictures are looked up in
// content/pic/ next to the executable.
func Default() Config {
	return Config{
		PicDir:         filepath.Join(ExeDir(), "content", "pic"),
		FitFillBlend:   0,
		Background:     "#2b2b2b",
		BoxWidth:       240,
		BoxHeight:      180,
		PreloadWorkers: 4,
		LogLevel:       "info",
	}
}

// ExeDir is the directory holding the running executable, or the working
// directory when that cannot be determined.
func ExeDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Dir(exe)
}

// Load builds a Config from the defaults, the YAML file at path (or the XDG
// config file when path is empty and one exists) and GIFPLAYER_* environment
// variables, in that order.
func Load(ctx context.Context, path string) (Config, error) {
	c := Default()

	if path == "" {
		if found, err := xdg.SearchConfigFile(RelPath); err == nil {
			path = found
		}
	}

	if path != "" {
		if err := c.readFile(path); err != nil {
			return c, err
		}
	}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &c,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, envconfig.OsLookuper()),
	})
	if err != nil {
		return c, errors.Wrap(err, "reading environment")
	}

	return c, c.Validate()
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening config %s", path)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(c); err != nil {
		return errors.Wrapf(err, "decoding config %s", path)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.FitFillBlend < 0 || c.FitFillBlend > 1 {
		return errors.Errorf("fitFillBlend %v outside [0,1]", c.FitFillBlend)
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return errors.Wrapf(err, "background %q", c.Background)
	}
	if c.BoxWidth <= 0 || c.BoxHeight <= 0 {
		return errors.Errorf("box %dx%d must be positive", c.BoxWidth, c.BoxHeight)
	}
	return nil
}

// BackgroundColor parses Background, falling back to black.
func (c Config) BackgroundColor() colorful.Color {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// Resolve turns a relative image name into a path under PicDir.
func (c Config) Resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.PicDir, name)
}
