package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, filepath.Join(ExeDir(), "content", "pic"), c.PicDir)
	assert.NoError(t, c.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
picDir: /srv/pic
fitFillBlend: 0.5
sniffContent: true
background: "#000005"
boxWidth: 320
boxHeight: 240
`)

	c, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/pic", c.PicDir)
	assert.Equal(t, 0.5, c.FitFillBlend)
	assert.True(t, c.SniffContent)
	assert.Equal(t, 320, c.BoxWidth)
	assert.Equal(t, 4, c.PreloadWorkers)

	r, g, b := c.BackgroundColor().RGB255()
	assert.Equal(t, [3]uint8{0, 0, 5}, [3]uint8{r, g, b})
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "picDir: /srv/pic\nfitFillBlend: 0.5\n")
	t.Setenv("GIFPLAYER_PIC_DIR", "/env/pic")
	t.Setenv("GIFPLAYER_FIT_FILL_BLEND", "1")

	c, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "/env/pic", c.PicDir)
	assert.Equal(t, 1.0, c.FitFillBlend)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"blend":      "fitFillBlend: 1.5\n",
		"background": "background: nope\n",
		"box":        "boxWidth: 0\n",
		"yaml":       "picDir: [\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(context.Background(), writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	c := Config{PicDir: "/srv/pic"}

	assert.Equal(t, filepath.Join("/srv/pic", "anim.gif"), c.Resolve("anim.gif"))
	assert.Equal(t, "/tmp/x.png", c.Resolve("/tmp/x.png"))
	assert.Equal(t, "", c.Resolve(""))
}
