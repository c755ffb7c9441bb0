package audio

import (
	"os"

	"github.com/bogem/id3v2"

	"github.com/mjhalwa/usdb-syncer/internal/txt"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag from the notes file headers.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds the tagging configuration for each ID3 field.
//
// Each field can be configured independently, so existing tags of a
// re-synced file are only touched where wanted.
type TagConfig struct {
	// ModifyTags is a master switch. If false, no string tags are modified.
	ModifyTags bool

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Album controls the TALB (Album title) frame, sourced from the
	// song's edition.
	Album TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction

	// Year controls the TYER (Year) frame.
	Year TagEditAction

	// Language controls the TLAN (Language) frame.
	Language TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every field is
// taken from the notes file headers, comments are cleared.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		Artist:     TagModify,
		Title:      TagModify,
		Album:      TagModify,
		Genre:      TagModify,
		Year:       TagModify,
		Language:   TagModify,
		Comments:   TagEmpty,
	}
}

// Tagger writes ID3 tags to downloaded audio files, sourcing the values
// from the song's notes file headers.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags(mp3Path, &songTxt.Headers, coverBytes)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger. If config is nil, DefaultTagConfig()
// is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 tags to the audio file at path. headers provides
// the tag values; artwork is JPEG cover art, nil to skip.
func (t *Tagger) SaveTags(path string, headers *txt.Headers, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			tag = id3v2.NewEmptyTag()
		} else {
			return err
		}
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, headers)
	}
	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	return tag.Save()
}

func (t *Tagger) updateStringTags(tag *id3v2.Tag, headers *txt.Headers) {
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(headers.Artist)
	}

	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(headers.Title)
	}

	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(headers.Edition)
	}

	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		tag.SetGenre(headers.Genre)
	}

	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
	case TagModify:
		if headers.Year != "" {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, headers.Year)
		}
	}

	switch t.config.Language {
	case TagEmpty:
		tag.DeleteFrames("TLAN")
	case TagModify:
		if headers.Language != "" {
			tag.AddTextFrame("TLAN", id3v2.EncodingUTF8, headers.Language)
		}
	}

	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}
