// Package decoder turns GIF, PNG and JPG files into frame sequences with
// per-frame display durations.
package decoder

import (
	"context"
	"image"
	"image/gif"
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"gifplayer/internal/config"
)

var log = logging.Logger("gifplayer/decoder")

var (
	// ErrUnsupported is returned for files that are neither GIF, PNG nor JPG.
	ErrUnsupported = errors.New("unsupported image format")
	// ErrNoFrames is returned for a GIF without a single frame.
	ErrNoFrames = errors.New("image has no frames")
)

// Format is the decode path chosen for a file.
type Format int

const (
	FormatUnknown Format = iota
	FormatGIF
	FormatStatic
)

func (f Format) String() string {
	switch f {
	case FormatGIF:
		return "gif"
	case FormatStatic:
		return "static"
	}
	return "unknown"
}

// FormatOf picks the decode path from the file name. The first literal match
// wins and matching is case-sensitive.
func FormatOf(path string) Format {
	switch {
	case strings.Contains(path, ".gif"):
		return FormatGIF
	case strings.Contains(path, ".png"), strings.Contains(path, ".jpg"):
		return FormatStatic
	}
	return FormatUnknown
}

// SniffFormat picks the decode path from the file content.
func SniffFormat(path string) (Format, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return FormatUnknown, errors.Wrapf(err, "detecting %s", path)
	}

	switch {
	case mtype.Is("image/gif"):
		return FormatGIF, nil
	case mtype.Is("image/png"), mtype.Is("image/jpeg"):
		return FormatStatic, nil
	}
	return FormatUnknown, nil
}

// Progress is told how many of total frames have been decoded.
type Progress func(done, total int)

// DecodeGIF reads every frame of a GIF with its delay. Decoding is
// all-or-nothing: if any frame fails the whole sequence is discarded.
// ctx is checked between frames.
func DecodeGIF(ctx context.Context, r io.Reader, progress Progress) (Sequence, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding gif")
	}

	c := newContainer(g)
	count := c.FrameCount()
	if count == 0 {
		return nil, ErrNoFrames
	}

	delays, hasDelays := c.Property(PropertyFrameDelay)
	if !hasDelays {
		log.Debugf("gif without frame delays, using 0 for all %d frames", count)
	}

	seq := make(Sequence, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.SelectActiveFrame(i); err != nil {
			return nil, errors.Wrapf(err, "selecting frame %d", i)
		}

		seq = append(seq, Frame{
			Image: c.Rasterize(),
			Delay: FrameDelay(delays, i),
		})

		if progress != nil {
			progress(i+1, count)
		}
	}

	return seq, nil
}

// DecodeStatic reads a single-image format as a one-frame sequence with no
// delay.
func DecodeStatic(r io.Reader) (Sequence, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}
	log.Debugf("decoded %s image", format)

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	return Sequence{{Image: dst}}, nil
}

// Decode loads the file at path, dispatching on its extension. Any failure
// yields an empty Sequence.
func Decode(path string) Sequence {
	seq, err := DecodeFile(context.Background(), path, FormatOf(path), nil)
	if err != nil {
		log.Debugf("decode %s: %v", path, err)
		return Sequence{}
	}
	return seq
}

// DecodeFile opens path and decodes it as format.
func DecodeFile(ctx context.Context, path string, format Format, progress Progress) (Sequence, error) {
	if format == FormatUnknown {
		return nil, errors.Wrap(ErrUnsupported, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	if format == FormatGIF {
		return DecodeGIF(ctx, f, progress)
	}

	seq, err := DecodeStatic(f)
	if err == nil && progress != nil {
		progress(1, 1)
	}
	return seq, err
}

// Loader decodes images named relative to the configured picture directory.
type Loader struct {
	cfg config.Config
}

// NewLoader creates a Loader for cfg.
func NewLoader(cfg config.Config) *Loader {
	return &Loader{cfg: cfg}
}

// Path resolves name against the picture directory.
func (l *Loader) Path(name string) string {
	return l.cfg.Resolve(name)
}

// Format picks the decode path for a resolved file.
func (l *Loader) Format(path string) Format {
	if !l.cfg.SniffContent {
		return FormatOf(path)
	}
	format, err := SniffFormat(path)
	if err != nil {
		log.Debugf("sniff: %v", err)
	}
	return format
}

// LoadImage decodes name. Unsupported, missing or corrupt files yield an
// empty Sequence.
func (l *Loader) LoadImage(name string) Sequence {
	seq, err := l.Load(context.Background(), name, nil)
	if err != nil {
		log.Debugf("load %s: %v", name, err)
		return Sequence{}
	}
	return seq
}

// Load is LoadImage with the error and a cancellation point between frames.
func (l *Loader) Load(ctx context.Context, name string, progress Progress) (Sequence, error) {
	path := l.Path(name)
	return DecodeFile(ctx, path, l.Format(path), progress)
}
