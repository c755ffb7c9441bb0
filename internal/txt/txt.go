package txt

import (
	"fmt"
	"sort"
	"strings"
)

// NoteKind is the single-character tag of a note line.
type NoteKind byte

const (
	// NoteRegular is a normally sung note.
	NoteRegular NoteKind = ':'

	// NoteGolden is a golden note, worth extra points.
	NoteGolden NoteKind = '*'

	// NoteFreestyle is a freestyle note without pitch scoring.
	NoteFreestyle NoteKind = 'F'

	// NoteRap is a rap note.
	NoteRap NoteKind = 'R'

	// NoteRapGolden is a golden rap note.
	NoteRapGolden NoteKind = 'G'
)

// Note is one sung syllable: kind, start beat, length in beats, pitch, text.
type Note struct {
	Kind   NoteKind
	Start  int
	Length int
	Pitch  int
	Text   string
}

func (n Note) String() string {
	return fmt.Sprintf("%c %d %d %d %s", n.Kind, n.Start, n.Length, n.Pitch, n.Text)
}

// LineBreak separates two lines of lyrics. The optional End beat tells the
// game when to display the next line.
type LineBreak struct {
	Start  int
	End    int
	HasEnd bool
}

func (b LineBreak) String() string {
	if b.HasEnd {
		return fmt.Sprintf("- %d %d", b.Start, b.End)
	}
	return fmt.Sprintf("- %d", b.Start)
}

// Line is a display line of notes, terminated by a line break except for
// the last line of a voice.
type Line struct {
	Notes []Note
	Break *LineBreak
}

// Voice is the note body of one player. Single-player songs have exactly
// one voice with an empty Player marker; duets have one voice per "P1"/"P2"
// marker.
type Voice struct {
	Player string
	Lines  []Line
}

// Headers holds the key-value header section of a song txt.
//
// All values are kept as strings: numeric headers like BPM may use a comma
// decimal separator which must survive a parse-render round trip untouched.
type Headers struct {
	Title    string
	Artist   string
	Language string
	Edition  string
	Genre    string
	Year     string
	Creator  string

	// Media file references. These name files inside the song folder and
	// are what local presence resolution checks for.
	Mp3        string
	Video      string
	Cover      string
	Background string

	BPM             string
	Gap             string
	VideoGap        string
	PreviewStart    string
	MedleyStartBeat string
	MedleyEndBeat   string
	Relative        string

	// Duet player names.
	P1 string
	P2 string

	// Unknown holds headers this package has no field for. They are
	// preserved and rendered after the known ones, sorted by key.
	Unknown map[string]string
}

// knownHeaders maps canonical keys to accessors, in canonical render order.
var knownHeaders = []struct {
	key string
	get func(*Headers) *string
}{
	{"TITLE", func(h *Headers) *string { return &h.Title }},
	{"ARTIST", func(h *Headers) *string { return &h.Artist }},
	{"LANGUAGE", func(h *Headers) *string { return &h.Language }},
	{"EDITION", func(h *Headers) *string { return &h.Edition }},
	{"GENRE", func(h *Headers) *string { return &h.Genre }},
	{"YEAR", func(h *Headers) *string { return &h.Year }},
	{"CREATOR", func(h *Headers) *string { return &h.Creator }},
	{"MP3", func(h *Headers) *string { return &h.Mp3 }},
	{"VIDEO", func(h *Headers) *string { return &h.Video }},
	{"COVER", func(h *Headers) *string { return &h.Cover }},
	{"BACKGROUND", func(h *Headers) *string { return &h.Background }},
	{"BPM", func(h *Headers) *string { return &h.BPM }},
	{"GAP", func(h *Headers) *string { return &h.Gap }},
	{"VIDEOGAP", func(h *Headers) *string { return &h.VideoGap }},
	{"PREVIEWSTART", func(h *Headers) *string { return &h.PreviewStart }},
	{"MEDLEYSTARTBEAT", func(h *Headers) *string { return &h.MedleyStartBeat }},
	{"MEDLEYENDBEAT", func(h *Headers) *string { return &h.MedleyEndBeat }},
	{"RELATIVE", func(h *Headers) *string { return &h.Relative }},
	{"P1", func(h *Headers) *string { return &h.P1 }},
	{"P2", func(h *Headers) *string { return &h.P2 }},
}

// Set stores a header value under its canonical (upper-case) key.
func (h *Headers) Set(key, value string) {
	key = strings.ToUpper(strings.TrimSpace(key))
	for _, kh := range knownHeaders {
		if kh.key == key {
			*kh.get(h) = value
			return
		}
	}
	if h.Unknown == nil {
		h.Unknown = make(map[string]string)
	}
	h.Unknown[key] = value
}

// SongTxt is a parsed notes document.
type SongTxt struct {
	Headers Headers
	Voices  []Voice
}

// String renders the canonical text form: known headers in fixed order,
// unknown headers sorted, note fields separated by single spaces, and a
// final "E" line with a trailing newline.
func (t *SongTxt) String() string {
	var sb strings.Builder

	for _, kh := range knownHeaders {
		if value := *kh.get(&t.Headers); value != "" {
			fmt.Fprintf(&sb, "#%s:%s\n", kh.key, value)
		}
	}
	unknown := make([]string, 0, len(t.Headers.Unknown))
	for key := range t.Headers.Unknown {
		unknown = append(unknown, key)
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		fmt.Fprintf(&sb, "#%s:%s\n", key, t.Headers.Unknown[key])
	}

	for _, voice := range t.Voices {
		if voice.Player != "" {
			sb.WriteString(voice.Player + "\n")
		}
		for _, line := range voice.Lines {
			for _, note := range line.Notes {
				sb.WriteString(note.String() + "\n")
			}
			if line.Break != nil {
				sb.WriteString(line.Break.String() + "\n")
			}
		}
	}

	sb.WriteString("E\n")
	return sb.String()
}
