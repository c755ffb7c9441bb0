package model

import (
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Queen - Bohemian Rhapsody", "Queen - Bohemian Rhapsody"},
		{"AC/DC - T.N.T.", "AC_DC - T.N.T"},
		{"Song: Part 1/2", "Song_ Part 1_2"},
		{"What?!*", "What_!_"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSong_FolderPath(t *testing.T) {
	song := &Song{ID: 3327, Artist: "Queen", Title: "Bohemian Rhapsody"}

	want := filepath.Join("/songs", "Queen - Bohemian Rhapsody", "3327")
	if got := song.FolderPath("/songs"); got != want {
		t.Errorf("FolderPath = %q, want %q", got, want)
	}
	if got := song.TxtFileName(); got != "Queen - Bohemian Rhapsody.txt" {
		t.Errorf("TxtFileName = %q", got)
	}
	if got := song.MarkerFileName(); got != "3327.usdb" {
		t.Errorf("MarkerFileName = %q", got)
	}
}

func TestFuzzText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Beyoncé", "beyonce"},
		{"Simon & Garfunkel", "simon and garfunkel"},
		{"AC & DC + Friends", "ac and dc and friends"},
		{"Jay-Z ft. Alicia Keys", "jay-z feat. alicia keys"},
		{"Help!", "help"},
		{"What's Up?", "what's up"},
		{"AC/DC", "acdc"},
		{"A vs. B", "a vs  b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FuzzText(tt.input)
			if got != tt.want {
				t.Errorf("FuzzText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFuzzText_Idempotent(t *testing.T) {
	inputs := []string{
		"Beyoncé", "Simon & Garfunkel", "Jay-Z ft. Alicia Keys",
		"Help!", "AC/DC", "already plain text",
	}
	for _, input := range inputs {
		once := FuzzText(input)
		twice := FuzzText(once)
		if once != twice {
			t.Errorf("FuzzText not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestFuzzyText_Contains(t *testing.T) {
	song := &Song{
		ID:       123,
		Artist:   "Mötley Crüe",
		Title:    "Kickstart My Heart",
		Language: "English",
		Edition:  "Rock Ballads",
	}
	ft := NewFuzzyText(song)

	for _, query := range []string{"motley", "kickstart", "english", "ballads", "123"} {
		if !ft.Contains(query) {
			t.Errorf("Contains(%q) = false, want true", query)
		}
	}
	if ft.Contains("polka") {
		t.Error("Contains(\"polka\") = true, want false")
	}
}
