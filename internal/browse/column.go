package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mjhalwa/usdb-syncer/internal/model"
)

// Column identifies one column of the song list.
type Column int

const (
	ColumnSongID Column = iota
	ColumnArtist
	ColumnTitle
	ColumnLanguage
	ColumnEdition
	ColumnGoldenNotes
	ColumnRating
	ColumnViews
	ColumnTxt
	ColumnAudio
	ColumnVideo
	ColumnCover
	ColumnBackground
)

// Columns lists all columns in display order.
var Columns = []Column{
	ColumnSongID, ColumnArtist, ColumnTitle, ColumnLanguage, ColumnEdition,
	ColumnGoldenNotes, ColumnRating, ColumnViews,
	ColumnTxt, ColumnAudio, ColumnVideo, ColumnCover, ColumnBackground,
}

func (c Column) String() string {
	switch c {
	case ColumnSongID:
		return "ID"
	case ColumnArtist:
		return "Artist"
	case ColumnTitle:
		return "Title"
	case ColumnLanguage:
		return "Language"
	case ColumnEdition:
		return "Edition"
	case ColumnGoldenNotes:
		return "Golden Notes"
	case ColumnRating:
		return "Rating"
	case ColumnViews:
		return "Views"
	case ColumnTxt:
		return "Txt"
	case ColumnAudio:
		return "Audio"
	case ColumnVideo:
		return "Video"
	case ColumnCover:
		return "Cover"
	case ColumnBackground:
		return "Background"
	default:
		panic(fmt.Sprintf("unknown column %d", int(c)))
	}
}

// IsDecoration reports whether the column renders a local-file presence
// glyph rather than song text.
func (c Column) IsDecoration() bool {
	switch c {
	case ColumnTxt, ColumnAudio, ColumnVideo, ColumnCover, ColumnBackground:
		return true
	case ColumnSongID, ColumnArtist, ColumnTitle, ColumnLanguage,
		ColumnEdition, ColumnGoldenNotes, ColumnRating, ColumnViews:
		return false
	default:
		panic(fmt.Sprintf("unknown column %d", int(c)))
	}
}

// DisplayData returns the text for a display column. Decoration columns
// carry no text and return ""; an unknown column panics.
func (c Column) DisplayData(song *model.Song) string {
	switch c {
	case ColumnSongID:
		return song.ID.String()
	case ColumnArtist:
		return song.Artist
	case ColumnTitle:
		return song.Title
	case ColumnLanguage:
		return song.Language
	case ColumnEdition:
		return song.Edition
	case ColumnGoldenNotes:
		return yesNo(song.GoldenNotes)
	case ColumnRating:
		return RatingStr(song.Rating)
	case ColumnViews:
		return strconv.Itoa(song.Views)
	case ColumnTxt, ColumnAudio, ColumnVideo, ColumnCover, ColumnBackground:
		return ""
	default:
		panic(fmt.Sprintf("unknown column %d", int(c)))
	}
}

// DecorationData returns the presence flag for a decoration column.
// Display columns carry no decoration and return false; an unknown
// column panics.
func (c Column) DecorationData(files model.LocalFiles) bool {
	switch c {
	case ColumnTxt:
		return files.Txt
	case ColumnAudio:
		return files.Audio
	case ColumnVideo:
		return files.Video
	case ColumnCover:
		return files.Cover
	case ColumnBackground:
		return files.Background
	case ColumnSongID, ColumnArtist, ColumnTitle, ColumnLanguage,
		ColumnEdition, ColumnGoldenNotes, ColumnRating, ColumnViews:
		return false
	default:
		panic(fmt.Sprintf("unknown column %d", int(c)))
	}
}

// ratingStrs memoizes the six possible star strings.
var ratingStrs = func() [6]string {
	var strs [6]string
	for i := range strs {
		strs[i] = strings.Repeat("★", i)
	}
	return strs
}()

// RatingStr renders a 0 to 5 star rating. Out-of-range values clamp.
func RatingStr(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return ratingStrs[rating]
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
