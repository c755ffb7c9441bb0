package sync

import (
	"os"
	"path/filepath"

	"github.com/mjhalwa/usdb-syncer/internal/ioutils"
	"github.com/mjhalwa/usdb-syncer/internal/log"
	"github.com/mjhalwa/usdb-syncer/internal/model"
	"github.com/mjhalwa/usdb-syncer/internal/txt"
)

// Resolve determines which of a song's assets exist below root. It never
// fails: unreadable or malformed files degrade to absent flags, with the
// cause logged.
//
// The returned SongTxt is the parsed notes file, or nil when the notes
// file is missing or does not parse.
func Resolve(song *model.Song, root string, logger *log.Logger) (model.LocalFiles, *txt.SongTxt) {
	var files model.LocalFiles

	folder := song.FolderPath(root)
	if !ioutils.FileExists(filepath.Join(folder, song.MarkerFileName())) {
		return files, nil
	}

	txtPath := filepath.Join(folder, song.TxtFileName())
	contents, err := ioutils.ReadFileUnknownEncoding(txtPath)
	if err != nil {
		logger.Debugf("no readable notes file in %s: %v", folder, err)
		return files, nil
	}

	parsed, err := txt.Parse(contents)
	if err != nil {
		logger.Warnf("notes file %s does not parse: %v", txtPath, err)
		return files, nil
	}
	files.Txt = true

	files.Audio = headerFileExists(folder, parsed.Headers.Mp3)
	files.Video = headerFileExists(folder, parsed.Headers.Video)
	files.Cover = headerFileExists(folder, parsed.Headers.Cover)
	files.Background = headerFileExists(folder, parsed.Headers.Background)
	return files, parsed
}

func headerFileExists(folder, name string) bool {
	if name == "" {
		return false
	}
	return ioutils.FileExists(filepath.Join(folder, name))
}

// WriteMarker writes the sync marker file into the song folder, marking
// the folder as having completed a sync.
func WriteMarker(song *model.Song, root string) error {
	folder := song.FolderPath(root)
	if err := ioutils.EnsureDir(folder); err != nil {
		return err
	}
	return ioutils.WriteFile(filepath.Join(folder, song.MarkerFileName()), nil)
}

// RemoveMarker deletes the sync marker, demoting the folder to unsynced.
// A missing marker is not an error.
func RemoveMarker(song *model.Song, root string) error {
	err := os.Remove(filepath.Join(song.FolderPath(root), song.MarkerFileName()))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
