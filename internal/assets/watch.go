package assets

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch reports the names of images in the picture directory that were
// written or created, after dropping them from the cache. The channel is
// closed when ctx ends or the watcher fails.
func (m *Manager) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	if err := watcher.Add(m.cfg.PicDir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watching %s", m.cfg.PicDir)
	}

	changed := make(chan string, 16)
	go func() {
		defer close(changed)
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				name := filepath.Base(event.Name)
				m.Forget(name)
				log.Debugf("%s changed", name)

				select {
				case changed <- name:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("watcher error: %v", err)

			case <-ctx.Done():
				return
			}
		}
	}()

	return changed, nil
}
