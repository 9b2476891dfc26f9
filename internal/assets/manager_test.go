package assets

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"gifplayer/internal/config"
)

var palette = color.Palette{color.Black, color.White}

func writeGIF(t *testing.T, dir, name string, delays ...int) {
	t.Helper()

	g := &gif.GIF{}
	for range delays {
		g.Image = append(g.Image, image.NewPaletted(image.Rect(0, 0, 2, 2), palette))
	}
	g.Delay = delays

	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gif.EncodeAll(f, g))
}

func newTestManager(t *testing.T) (*Manager, string) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.PicDir = dir
	cfg.PreloadWorkers = 2
	return NewManager(cfg), dir
}

func TestLoadGIF(t *testing.T) {
	m, dir := newTestManager(t)
	writeGIF(t, dir, "anim.gif", 10, 20, 30)

	seq := m.LoadGIF("anim.gif")
	assert.Len(t, seq, 3)

	cached, ok := m.Get("anim.gif")
	require.True(t, ok)
	assert.Len(t, cached, 3)

	assert.Empty(t, m.LoadGIF("missing.gif"))
	_, ok = m.Get("missing.gif")
	assert.False(t, ok)
}

func TestRequest(t *testing.T) {
	m, dir := newTestManager(t)
	writeGIF(t, dir, "anim.gif", 10, 20)

	p := m.Request(context.Background(), "anim.gif")
	seq, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Len(t, seq, 2)
	assert.Equal(t, 1.0, p.Progress())

	again := m.Request(context.Background(), "anim.gif")
	seq, ok := again.Result()
	require.True(t, ok)
	assert.Len(t, seq, 2)
}

func TestRequestPolling(t *testing.T) {
	m, dir := newTestManager(t)
	writeGIF(t, dir, "anim.gif", 10, 20, 30, 40)

	p := m.Request(context.Background(), "anim.gif")
	assert.Eventually(t, func() bool {
		_, ok := p.Result()
		return ok
	}, 5*time.Second, 5*time.Millisecond)

	seq, _ := p.Result()
	assert.Len(t, seq, 4)
}

func TestRequestFailureIsEmpty(t *testing.T) {
	m, _ := newTestManager(t)

	seq, err := m.Request(context.Background(), "missing.gif").Wait(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, seq)
	assert.Empty(t, seq)
}

func TestRequestCancelled(t *testing.T) {
	m, dir := newTestManager(t)
	writeGIF(t, dir, "anim.gif", 10, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq, err := m.Request(ctx, "anim.gif").Wait(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seq)

	_, ok := m.Get("anim.gif")
	assert.False(t, ok)
}

func TestPreload(t *testing.T) {
	m, dir := newTestManager(t)
	writeGIF(t, dir, "a.gif", 10, 10)
	writeGIF(t, dir, "b.gif", 10)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.gif"), []byte("nope"), 0o644))

	err := m.Preload(context.Background(), []string{"a.gif", "b.gif", "broken.gif", "missing.png"})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)

	for _, name := range []string{"a.gif", "b.gif"} {
		_, ok := m.Get(name)
		assert.True(t, ok, name)
	}
}

func TestList(t *testing.T) {
	m, dir := newTestManager(t)
	writeGIF(t, dir, "b.gif", 10)
	writeGIF(t, dir, "a.gif", 10)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.png"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.gif"), 0o755))

	names, err := m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.gif", "b.gif", "c.png"}, names)
}

func TestWatch(t *testing.T) {
	m, dir := newTestManager(t)
	writeGIF(t, dir, "anim.gif", 10, 10)
	require.Len(t, m.LoadGIF("anim.gif"), 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed, err := m.Watch(ctx)
	require.NoError(t, err)

	writeGIF(t, dir, "anim.gif", 10, 10, 10)

	select {
	case name := <-changed:
		assert.Equal(t, "anim.gif", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	assert.Len(t, m.LoadGIF("anim.gif"), 3)
}
