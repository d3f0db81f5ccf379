package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  fps: 25\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Render.FPS)
	assert.Equal(t, "NewsShort", cfg.Render.Composition)
	assert.Equal(t, 3, cfg.Render.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Render.RetryDelay())
	assert.Equal(t, 10*time.Minute, cfg.Render.Timeout())
	assert.Equal(t, "es", cfg.Upload.DefaultLanguage)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  fps: -5\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fps")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30, cfg.Render.FPS)
	assert.Equal(t, 1080, cfg.Render.Width)
	assert.Equal(t, 1920, cfg.Render.Height)
	assert.Equal(t, "h264", cfg.Render.Codec)
}
