package decoder

import (
	"os"

	"github.com/fumiama/imgsz"
	"github.com/pkg/errors"
)

// Probe reads just enough of the file header to report the image size.
func Probe(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	sz, _, err := imgsz.DecodeSize(f)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "probing %s", path)
	}
	return sz.Width, sz.Height, nil
}
