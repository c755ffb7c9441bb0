package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// SongID identifies a song on USDB.
type SongID int

// String returns the plain decimal form used in paths and filenames.
func (id SongID) String() string {
	return strconv.Itoa(int(id))
}

// ParseSongID parses a decimal song id.
func ParseSongID(s string) (SongID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid song id %q", s)
	}
	return SongID(n), nil
}

// Song is the reference record for a USDB entry.
//
// Songs are owned by the database layer and treated as immutable once
// constructed; presentation and presence information is derived from them
// rather than stored on them.
type Song struct {
	// ID is the numeric USDB song id.
	ID SongID

	// Artist is the performing artist.
	Artist string

	// Title is the song title.
	Title string

	// Language is the (comma-separated) song language.
	Language string

	// Edition is the karaoke edition the song belongs to, if any.
	Edition string

	// GoldenNotes reports whether the chart contains golden notes.
	GoldenNotes bool

	// Rating is the USDB community rating, 0 to 5 stars.
	Rating int

	// Views is the USDB view counter.
	Views int

	// CoverURL is the small cover thumbnail hosted on USDB.
	// Empty string means no cover is available.
	CoverURL string
}

// FolderName returns the sanitized "<artist> - <title>" folder component.
func (s *Song) FolderName() string {
	return SanitizeFileName(fmt.Sprintf("%s - %s", s.Artist, s.Title))
}

// FolderPath returns the song folder below root: <root>/<artist> - <title>/<id>.
func (s *Song) FolderPath(root string) string {
	return filepath.Join(root, s.FolderName(), s.ID.String())
}

// TxtFileName returns the notes file name, "<artist> - <title>.txt".
func (s *Song) TxtFileName() string {
	return s.FolderName() + ".txt"
}

// MarkerFileName returns the sentinel file name, "<id>.usdb". Its presence
// in the song folder means the folder has completed at least one sync.
func (s *Song) MarkerFileName() string {
	return s.ID.String() + ".usdb"
}

// LocalFiles records which assets of a song exist locally at the time of
// resolution. A true flag means the referenced file existed when checked;
// the filesystem is not locked, so flags are best-effort.
type LocalFiles struct {
	Txt        bool
	Audio      bool
	Video      bool
	Cover      bool
	Background bool
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	multiWhitespace  = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in
// file or folder names, keeping names valid on Windows as well.
//
// Example:
//
//	SanitizeFileName("AC/DC - T.N.T.") // "AC_DC - T.N.T"
func SanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multiWhitespace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
