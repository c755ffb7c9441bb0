package sync

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjhalwa/usdb-syncer/internal/log"
	"github.com/mjhalwa/usdb-syncer/internal/model"
)

var testSong = &model.Song{ID: 1234, Artist: "Foo", Title: "Bar"}

const testNotes = `#TITLE:Bar
#ARTIST:Foo
#MP3:Foo - Bar.mp3
#VIDEO:Foo - Bar.mp4
#COVER:Foo - Bar [CO].jpg
#BPM:300
: 0 2 0 Some
: 4 2 0  body
E
`

func testLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, log.LevelDebug)
}

func writeSongFile(t *testing.T, root, name, contents string) {
	t.Helper()
	folder := testSong.FolderPath(root)
	require.NoError(t, os.MkdirAll(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, name), []byte(contents), 0o644))
}

func TestResolve_NoMarkerMeansNothingLocal(t *testing.T) {
	root := t.TempDir()
	// A fully stocked folder without the marker still counts as unsynced.
	writeSongFile(t, root, testSong.TxtFileName(), testNotes)
	writeSongFile(t, root, "Foo - Bar.mp3", "audio")

	files, parsed := Resolve(testSong, root, testLogger())
	assert.Equal(t, model.LocalFiles{}, files)
	assert.Nil(t, parsed)
}

func TestResolve_MarkerWithoutTxt(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, WriteMarker(testSong, root))

	files, parsed := Resolve(testSong, root, testLogger())
	assert.Equal(t, model.LocalFiles{}, files)
	assert.Nil(t, parsed)
}

func TestResolve_ChecksHeaderReferences(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, WriteMarker(testSong, root))
	writeSongFile(t, root, testSong.TxtFileName(), testNotes)
	writeSongFile(t, root, "Foo - Bar.mp3", "audio")
	writeSongFile(t, root, "Foo - Bar [CO].jpg", "image")
	// The referenced video is missing, and no background is referenced.

	files, parsed := Resolve(testSong, root, testLogger())
	require.NotNil(t, parsed)
	assert.Equal(t, model.LocalFiles{Txt: true, Audio: true, Cover: true}, files)
	assert.Equal(t, "Foo - Bar.mp3", parsed.Headers.Mp3)
}

func TestResolve_MalformedTxt(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, WriteMarker(testSong, root))
	writeSongFile(t, root, testSong.TxtFileName(), "#TITLE:Bar\ngarbage body line\n")

	// A notes file that does not parse counts as no notes at all.
	files, parsed := Resolve(testSong, root, testLogger())
	assert.Equal(t, model.LocalFiles{}, files)
	assert.Nil(t, parsed)
}

func TestRemoveMarker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, WriteMarker(testSong, root))
	require.NoError(t, RemoveMarker(testSong, root))
	require.NoError(t, RemoveMarker(testSong, root))

	files, _ := Resolve(testSong, root, testLogger())
	assert.Equal(t, model.LocalFiles{}, files)
}
