package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"audio_format": "opus", "video_max_width": 1280}`), 0o644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "opus", settings.AudioFormat)
	assert.Equal(t, 1280, settings.VideoMaxWidth)
	// Untouched fields stay at their defaults.
	assert.Equal(t, DefaultSettings().MaxConcurrentSongs, settings.MaxConcurrentSongs)
	assert.True(t, settings.DownloadVideo)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	settings := DefaultSettings()
	settings.SongDir = "/srv/karaoke"
	settings.Browser = "firefox"
	settings.DownloadVideo = false
	require.NoError(t, settings.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestToMediaOptions(t *testing.T) {
	settings := DefaultSettings()
	settings.AudioFormat = "mp3"
	assert.Equal(t, "mp3", settings.ToAudioOptions().Format)

	settings.AudioFormat = "flac"
	assert.Equal(t, "m4a", settings.ToAudioOptions().Format, "unsupported formats fall back")

	settings.VideoContainer = "webm"
	settings.VideoMaxWidth = 1280
	settings.VideoMaxFPS = 30
	video := settings.ToVideoOptions()
	assert.Equal(t, "bestvideo*[ext=webm][width<=1280][fps<=30]", video.YtdlpFormat())
}
