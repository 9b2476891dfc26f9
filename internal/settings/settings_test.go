package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, s.FitFillBlend(0.25))
	assert.Empty(t, s.LastImage())

	require.NoError(t, s.SetFitFillBlend(0.75))
	require.NoError(t, s.SetLastImage("anim.gif"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.75, gjson.GetBytes(raw, KeyFitFillBlend).Float())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0.75, reopened.FitFillBlend(0))
	assert.Equal(t, "anim.gif", reopened.LastImage())
}

func TestStoreIgnoresInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.FitFillBlend(1))

	require.NoError(t, s.SetLastImage("magic.png"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(raw))
}
