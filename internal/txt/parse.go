package txt

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a song txt document.
//
// Parse is deliberately forgiving about the deviations real-world files
// show (see the package documentation); it fails only when the input is
// missing the title, artist, or BPM header, or contains no notes at all,
// or when a body line cannot be interpreted.
func Parse(contents string) (*SongTxt, error) {
	contents = strings.TrimPrefix(contents, "\uFEFF")
	contents = strings.ReplaceAll(contents, "\r\n", "\n")

	t := &SongTxt{}
	lines := strings.Split(contents, "\n")

	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}
		key, value, found := strings.Cut(line[1:], ":")
		if !found {
			return nil, fmt.Errorf("malformed header line %d: %q", i+1, line)
		}
		t.Headers.Set(key, strings.TrimSpace(value))
	}

	if t.Headers.Title == "" || t.Headers.Artist == "" || t.Headers.BPM == "" {
		return nil, fmt.Errorf("missing required header (TITLE, ARTIST and BPM must be set)")
	}

	voice := &Voice{}
	line := Line{}
	flushLine := func(brk *LineBreak) {
		if len(line.Notes) > 0 || brk != nil {
			line.Break = brk
			voice.Lines = append(voice.Lines, line)
			line = Line{}
		}
	}
	flushVoice := func() {
		flushLine(nil)
		if len(voice.Lines) > 0 {
			t.Voices = append(t.Voices, *voice)
		}
	}

body:
	for ; i < len(lines); i++ {
		raw := strings.TrimRight(lines[i], " \t")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		switch raw[0] {
		case byte(NoteRegular), byte(NoteGolden), byte(NoteFreestyle), byte(NoteRap), byte(NoteRapGolden):
			note, err := parseNote(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			line.Notes = append(line.Notes, note)
		case '-':
			brk, err := parseLineBreak(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			flushLine(&brk)
		case 'P':
			player := strings.TrimSpace(raw)
			if player != "P1" && player != "P2" && player != "P3" {
				return nil, fmt.Errorf("line %d: unexpected player marker %q", i+1, raw)
			}
			flushVoice()
			voice = &Voice{Player: player}
		case 'E':
			// End of song; anything after is trailing garbage and dropped.
			break body
		default:
			return nil, fmt.Errorf("line %d: cannot interpret %q", i+1, raw)
		}
	}
	flushVoice()

	if len(t.Voices) == 0 {
		return nil, fmt.Errorf("document contains no notes")
	}
	return t, nil
}

// parseNote parses a note line like ": 0 4 12 Some". Numeric fields may be
// separated by runs of whitespace; the syllable text starts after a single
// space following the pitch, so leading spaces in the text survive.
func parseNote(raw string) (Note, error) {
	note := Note{Kind: NoteKind(raw[0])}
	rest := raw[1:]

	for _, field := range [...]*int{&note.Start, &note.Length, &note.Pitch} {
		var err error
		if *field, rest, err = scanInt(rest); err != nil {
			return Note{}, fmt.Errorf("bad note %q: %w", raw, err)
		}
	}
	rest = strings.TrimPrefix(rest, " ")
	if rest == "" {
		return Note{}, fmt.Errorf("bad note %q: missing text", raw)
	}
	note.Text = rest
	return note, nil
}

// parseLineBreak parses "- 10" or "- 10 12".
func parseLineBreak(raw string) (LineBreak, error) {
	fields := strings.Fields(raw[1:])
	switch len(fields) {
	case 1:
		start, err := strconv.Atoi(fields[0])
		if err != nil {
			return LineBreak{}, fmt.Errorf("bad line break %q", raw)
		}
		return LineBreak{Start: start}, nil
	case 2:
		start, err1 := strconv.Atoi(fields[0])
		end, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return LineBreak{}, fmt.Errorf("bad line break %q", raw)
		}
		return LineBreak{Start: start, End: end, HasEnd: true}, nil
	default:
		return LineBreak{}, fmt.Errorf("bad line break %q", raw)
	}
}

// scanInt skips leading whitespace, scans one optionally signed integer and
// returns it along with the unread remainder.
func scanInt(s string) (int, string, error) {
	start := 0
	for start < len(s) && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	end := start
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, s, fmt.Errorf("expected integer at %q", s[start:])
	}
	return n, s[end:], nil
}
