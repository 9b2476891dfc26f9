// Package settings persists the values a user tunes while viewing images.
package settings

import (
	"os"
	"sync"

	"github.com/adrg/xdg"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var log = logging.Logger("gifplayer/settings")

const (
	RelPath = "gifplayer/settings.json"

	KeyFitFillBlend = "fitFillBlend"
	KeyLastImage    = "lastImage"
)

// Store is a JSON document saved to disk on every change.
type Store struct {
	mu   sync.Mutex
	path string
	data string
}

// Open loads the settings at path, or at the XDG config location when path
// is empty. A missing or unreadable file starts an empty document.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := xdg.ConfigFile(RelPath)
		if err != nil {
			return nil, errors.Wrap(err, "locating settings")
		}
		path = p
	}

	s := &Store{path: path, data: "{}"}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, errors.Wrapf(err, "reading %s", path)
	case !gjson.Valid(string(raw)):
		log.Warnf("ignoring invalid settings in %s", path)
	default:
		s.data = string(raw)
	}

	return s, nil
}

// Path is the file the store saves to.
func (s *Store) Path() string {
	return s.path
}

// FitFillBlend returns the saved blend, or def if none was saved.
func (s *Store) FitFillBlend(def float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r := gjson.Get(s.data, KeyFitFillBlend); r.Exists() {
		return r.Float()
	}
	return def
}

func (s *Store) SetFitFillBlend(blend float64) error {
	return s.set(KeyFitFillBlend, blend)
}

// LastImage is the image name shown when the viewer was last closed.
func (s *Store) LastImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return gjson.Get(s.data, KeyLastImage).String()
}

func (s *Store) SetLastImage(name string) error {
	return s.set(KeyLastImage, name)
}

func (s *Store) set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := sjson.Set(s.data, key, value)
	if err != nil {
		return errors.Wrapf(err, "setting %s", key)
	}
	s.data = data

	pretty := gjson.Get(s.data, "@pretty").String()
	if err := os.WriteFile(s.path, []byte(pretty), 0o644); err != nil {
		return errors.Wrapf(err, "saving %s", s.path)
	}
	return nil
}
