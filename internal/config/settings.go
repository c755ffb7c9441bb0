package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mjhalwa/usdb-syncer/internal/resource"
)

// Settings holds all configuration options.
type Settings struct {
	// Locations
	SongDir string `json:"song_dir"`
	DBPath  string `json:"db_path"`

	// Download settings
	MaxConcurrentSongs    int     `json:"max_concurrent_songs"`
	DownloadMaxRetries    int     `json:"download_max_retries"`
	DownloadRetryCooldown float64 `json:"download_retry_cooldown"`
	DownloadRetryExponent float64 `json:"download_retry_exponent"`

	// Browser to read site cookies from for age or region restricted
	// media. Empty disables cookies.
	Browser string `json:"browser"`

	// Audio settings
	AudioFormat string `json:"audio_format"` // m4a, mp3, ogg, opus

	// Video settings
	DownloadVideo  bool   `json:"download_video"`
	VideoContainer string `json:"video_container"` // mp4, webm
	VideoMaxWidth  int    `json:"video_max_width"`
	VideoMaxFPS    int    `json:"video_max_fps"`

	// Image settings
	MaxImageWidth int `json:"max_image_width"`

	// Tag settings
	ModifyTags bool `json:"modify_tags"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		SongDir: filepath.Join(homeDir, "Music", "UltraStar Songs"),
		DBPath:  filepath.Join(homeDir, "Music", "UltraStar Songs", "songs.db"),

		MaxConcurrentSongs:    4,
		DownloadMaxRetries:    3,
		DownloadRetryCooldown: 0.5,
		DownloadRetryExponent: 2.0,

		AudioFormat: "m4a",

		DownloadVideo:  true,
		VideoContainer: "mp4",
		VideoMaxWidth:  1920,
		VideoMaxFPS:    60,

		MaxImageWidth: 1920,

		ModifyTags: true,
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToAudioOptions converts settings to the audio download options.
func (s *Settings) ToAudioOptions() resource.AudioOptions {
	format := s.AudioFormat
	switch format {
	case "m4a", "mp3", "ogg", "opus":
	default:
		format = "m4a"
	}
	return resource.AudioOptions{Format: format}
}

// ToVideoOptions converts settings to the video download options.
func (s *Settings) ToVideoOptions() resource.VideoOptions {
	return resource.VideoOptions{
		Container: s.VideoContainer,
		MaxWidth:  s.VideoMaxWidth,
		MaxFPS:    s.VideoMaxFPS,
	}
}
