package assets

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"gifplayer/internal/config"
	"gifplayer/internal/decoder"
)

var log = logging.Logger("gifplayer/assets")

// Manager loads images from the picture directory off the update loop and
// keeps the decoded sequences around.
type Manager struct {
	cfg    config.Config
	loader *decoder.Loader

	mu    sync.Mutex
	cache map[string]decoder.Sequence
}

// NewManager creates a Manager reading from cfg.PicDir.
func NewManager(cfg config.Config) *Manager {
	return &Manager{
		cfg:    cfg,
		loader: decoder.NewLoader(cfg),
		cache:  make(map[string]decoder.Sequence),
	}
}

// Resolve is the path name is loaded from.
func (m *Manager) Resolve(name string) string {
	return m.cfg.Resolve(name)
}

// Get returns a cached sequence.
func (m *Manager) Get(name string) (decoder.Sequence, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seq, ok := m.cache[name]
	return seq, ok
}

// Forget drops a cached sequence so the next request decodes it again.
func (m *Manager) Forget(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cache, name)
}

func (m *Manager) store(name string, seq decoder.Sequence) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache[name] = seq
}

// LoadGIF decodes name on the calling goroutine. Failures give an empty
// sequence, which is not cached.
func (m *Manager) LoadGIF(name string) decoder.Sequence {
	if seq, ok := m.Get(name); ok {
		return seq
	}

	seq, err := m.loader.Load(context.Background(), name, nil)
	if err != nil {
		log.Warnf("failed to load image '%s': %v", name, err)
		return decoder.Sequence{}
	}

	m.store(name, seq)
	return seq
}

// Request starts decoding name in the background. The returned Pending is
// polled from the update loop; cancelling ctx abandons the decode between
// frames.
func (m *Manager) Request(ctx context.Context, name string) *Pending {
	p := newPending(ctx, name)

	if seq, ok := m.Get(name); ok {
		p.finish(seq)
		return p
	}

	go func() {
		seq, err := m.loader.Load(p.ctx, name, func(done, total int) {
			p.report(float64(done) / float64(total))
		})
		if err != nil {
			log.Warnf("failed to load image '%s': %v", name, err)
			seq = decoder.Sequence{}
		} else {
			m.store(name, seq)
			log.Debugf("loaded '%s': %d frames", name, len(seq))
		}
		p.finish(seq)
	}()

	return p
}

// Preload decodes names concurrently into the cache. Every failure is
// reported; a failed image does not stop the others.
func (m *Manager) Preload(ctx context.Context, names []string) error {
	eg, ctx := errgroup.WithContext(ctx)
	if m.cfg.PreloadWorkers > 0 {
		eg.SetLimit(m.cfg.PreloadWorkers)
	}

	var (
		errMu sync.Mutex
		errs  error
	)
	for _, name := range names {
		if _, ok := m.Get(name); ok {
			continue
		}
		eg.Go(func() error {
			seq, err := m.loader.Load(ctx, name, nil)
			if err != nil {
				errMu.Lock()
				errs = multierr.Append(errs, err)
				errMu.Unlock()
				return nil
			}
			m.store(name, seq)
			return nil
		})
	}

	_ = eg.Wait()
	return errs
}

// List returns the names of the images in the picture directory that the
// decoder can dispatch, sorted.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.cfg.PicDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if m.loader.Format(filepath.Join(m.cfg.PicDir, e.Name())) != decoder.FormatUnknown {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
