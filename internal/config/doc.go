// Package config provides configuration management for usdb-syncer.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to audio and video download options
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Songs below ~/Music/UltraStar Songs
//	// m4a audio, mp4 video up to 1080p
//	// ID3 tagging enabled
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.SongDir = "/srv/karaoke"
//	err := settings.Save("/path/to/config.json")
package config
