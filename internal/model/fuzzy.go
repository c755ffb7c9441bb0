package model

import (
	"strings"

	"github.com/gosimple/unidecode"
)

// replacements normalizes common word and notation variants. Order matters:
// the spaced forms must fire before the bare "&" catch-all.
var replacements = [...][2]string{
	{" vs. ", " vs  "},
	{" & ", " and "},
	{"&", " and "},
	{" + ", " and "},
	{" ft. ", " feat. "},
	{" ft ", " feat. "},
	{" feat ", " feat. "},
	{"!", ""},
	{"?", ""},
	{"/", ""},
}

// FuzzText canonicalizes free-form text for tolerant substring search:
// transliterate to ASCII, lowercase, then apply the replacement table.
// The function is total and idempotent.
func FuzzText(text string) string {
	text = strings.ToLower(unidecode.Unidecode(text))
	for _, r := range replacements {
		text = strings.ReplaceAll(text, r[0], r[1])
	}
	return text
}

// FuzzyText is the search index entry derived from a song, built once per
// record and cached by the caller.
type FuzzyText struct {
	SongID   string
	Artist   string
	Title    string
	Language string
	Edition  string
}

// NewFuzzyText builds the normalized search entry for a song.
func NewFuzzyText(song *Song) FuzzyText {
	return FuzzyText{
		SongID:   song.ID.String(),
		Artist:   FuzzText(song.Artist),
		Title:    FuzzText(song.Title),
		Language: FuzzText(song.Language),
		Edition:  FuzzText(song.Edition),
	}
}

// Contains reports whether any of the indexed fields contains text.
// The query is expected to already be normalized with FuzzText.
func (ft FuzzyText) Contains(text string) bool {
	for _, field := range [...]string{ft.SongID, ft.Artist, ft.Title, ft.Language, ft.Edition} {
		if strings.Contains(field, text) {
			return true
		}
	}
	return false
}
