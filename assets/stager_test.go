package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/types"
)

func newTestStager(t *testing.T) *Stager {
	t.Helper()
	cfg := config.Default().Render
	cfg.StagingDir = t.TempDir()
	return NewStager(cfg)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStageLocalFiles(t *testing.T) {
	s := newTestStager(t)
	audio := writeTemp(t, "narration.mp3", "mp3-bytes")
	image := writeTemp(t, "hero.jpg", "jpg-bytes")

	staged, err := s.Stage(context.Background(), types.RenderRequest{
		VideoID:   "vid123",
		AudioPath: audio,
		ImagePath: image,
	})
	require.NoError(t, err)

	assert.False(t, staged.ImageDegraded)
	assert.Equal(t, filepath.Join(s.cfg.StagingDir, "vid123_audio.mp3"), staged.AudioPath)
	assert.Equal(t, filepath.Join(s.cfg.StagingDir, "vid123_hero.jpg"), staged.HeroImage)
	assert.Equal(t, staged.HeroImage, staged.ContextImage)
	assert.Equal(t, OutroImage, staged.OutroImage)

	data, err := os.ReadFile(staged.AudioPath)
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))
}

func TestStageRemoteAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote-audio"))
	}))
	defer srv.Close()

	s := newTestStager(t)
	staged, err := s.Stage(context.Background(), types.RenderRequest{
		VideoID:   "vid-r",
		AudioPath: srv.URL + "/narration.mp3",
		ImagePath: writeTemp(t, "hero.jpg", "x"),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(staged.AudioPath)
	require.NoError(t, err)
	assert.Equal(t, "remote-audio", string(data))
}

func TestStageFollowsOneRedirect(t *testing.T) {
	var final *httptest.Server
	final = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("redirected"))
	}))
	defer final.Close()
	hop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer hop.Close()

	s := newTestStager(t)
	staged, err := s.Stage(context.Background(), types.RenderRequest{
		VideoID:   "vid-h",
		AudioPath: hop.URL + "/a.mp3",
		ImagePath: writeTemp(t, "hero.jpg", "x"),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(staged.AudioPath)
	require.NoError(t, err)
	assert.Equal(t, "redirected", string(data))
}

// A 404 on the hero image must not fail staging: the render proceeds
// with the bundled placeholder.
func TestStageImage404DegradesToPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := newTestStager(t)
	staged, err := s.Stage(context.Background(), types.RenderRequest{
		VideoID:   "vid-404",
		AudioPath: writeTemp(t, "narration.mp3", "ok"),
		ImagePath: srv.URL + "/missing.jpg",
	})
	require.NoError(t, err)

	assert.True(t, staged.ImageDegraded)
	assert.Equal(t, PlaceholderImage, staged.HeroImage)
}

func TestStageMissingAudioIsFatal(t *testing.T) {
	s := newTestStager(t)
	_, err := s.Stage(context.Background(), types.RenderRequest{
		VideoID:   "vid-x",
		AudioPath: "/does/not/exist.mp3",
		ImagePath: writeTemp(t, "hero.jpg", "x"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestStageRemoteAudioServerErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestStager(t)
	_, err := s.Stage(context.Background(), types.RenderRequest{
		VideoID:   "vid-500",
		AudioPath: srv.URL + "/a.mp3",
		ImagePath: writeTemp(t, "hero.jpg", "x"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, err.Error(), "500")

	// no partial audio file left behind
	_, statErr := os.Stat(filepath.Join(s.cfg.StagingDir, "vid-500_audio.mp3"))
	assert.True(t, os.IsNotExist(statErr))
}
