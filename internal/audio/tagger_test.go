package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjhalwa/usdb-syncer/internal/txt"
)

func TestSaveTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xfb\x90\x00fake mpeg frame"), 0o644))

	headers := &txt.Headers{
		Title:    "Westerland",
		Artist:   "Die Ärzte",
		Edition:  "SingStar Rocks!",
		Genre:    "Punk",
		Year:     "1988",
		Language: "German",
	}
	tagger := NewTagger(nil)
	require.NoError(t, tagger.SaveTags(path, headers, []byte("jpeg bytes")))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()

	assert.Equal(t, "Die Ärzte", tag.Artist())
	assert.Equal(t, "Westerland", tag.Title())
	assert.Equal(t, "SingStar Rocks!", tag.Album())
	assert.Equal(t, "Punk", tag.Genre())
	assert.Equal(t, "1988", tag.GetTextFrame("TYER").Text)
	assert.Equal(t, "German", tag.GetTextFrame("TLAN").Text)

	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	require.Len(t, pictures, 1)
	pic, ok := pictures[0].(id3v2.PictureFrame)
	require.True(t, ok)
	assert.Equal(t, []byte("jpeg bytes"), pic.Picture)
}

func TestSaveTagsRespectsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xfb\x90\x00fake mpeg frame"), 0o644))

	headers := &txt.Headers{Title: "Westerland", Artist: "Die Ärzte"}
	tagger := NewTagger(&TagConfig{ModifyTags: false})
	require.NoError(t, tagger.SaveTags(path, headers, nil))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Empty(t, tag.Artist())
	assert.Empty(t, tag.Title())
}
