package db

import (
	"strings"

	"github.com/mjhalwa/usdb-syncer/internal/model"
)

// ViewRange is a half-open view-count bucket. Max 0 means unbounded.
type ViewRange struct {
	Min int
	Max int
}

// Search collects the active filters of one query. Filters of different
// fields are combined with AND; the values within one field with OR. Nil
// or empty fields are inactive.
type Search struct {
	// Text is a free-form search string matched fuzzily against artist,
	// title and the plain song id.
	Text string

	// GoldenNotes lists accepted golden-notes flag values.
	GoldenNotes []bool

	// Ratings lists accepted star counts.
	Ratings []int

	// Views lists accepted view-count buckets.
	Views []ViewRange

	// Languages and Editions list accepted exact values.
	Languages []string
	Editions  []string
}

// build renders the WHERE clause and its arguments. An empty Search
// yields an empty clause.
func (s *Search) build() (string, []any) {
	if s == nil {
		return "", nil
	}
	var clauses []string
	var args []any

	if text := strings.TrimSpace(s.Text); text != "" {
		// Every word must occur in at least one of the indexed fields,
		// mirroring model.FuzzyText.Contains on the SQL side.
		var words []string
		for _, word := range strings.Fields(model.FuzzText(text)) {
			words = append(words, "(instr(fuzzy_artist, ?) > 0 OR instr(fuzzy_title, ?) > 0"+
				" OR instr(fuzzy_language, ?) > 0 OR instr(fuzzy_edition, ?) > 0"+
				" OR instr(CAST(song_id AS TEXT), ?) > 0)")
			args = append(args, word, word, word, word, word)
		}
		clauses = append(clauses, "("+strings.Join(words, " AND ")+")")
	}

	if len(s.GoldenNotes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.GoldenNotes)), ", ")
		clauses = append(clauses, "golden_notes IN ("+placeholders+")")
		for _, golden := range s.GoldenNotes {
			args = append(args, golden)
		}
	}

	if len(s.Ratings) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.Ratings)), ", ")
		clauses = append(clauses, "rating IN ("+placeholders+")")
		for _, rating := range s.Ratings {
			args = append(args, rating)
		}
	}

	if len(s.Views) > 0 {
		var ranges []string
		for _, r := range s.Views {
			if r.Max > 0 {
				ranges = append(ranges, "(views >= ? AND views < ?)")
				args = append(args, r.Min, r.Max)
			} else {
				ranges = append(ranges, "views >= ?")
				args = append(args, r.Min)
			}
		}
		clauses = append(clauses, "("+strings.Join(ranges, " OR ")+")")
	}

	for column, values := range map[string][]string{"language": s.Languages, "edition": s.Editions} {
		if len(values) == 0 {
			continue
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
		clauses = append(clauses, column+" IN ("+placeholders+")")
		for _, value := range values {
			args = append(args, value)
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
