package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mjhalwa/usdb-syncer/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS song (
	song_id      INTEGER PRIMARY KEY,
	artist       TEXT NOT NULL,
	title        TEXT NOT NULL,
	language     TEXT NOT NULL DEFAULT '',
	edition      TEXT NOT NULL DEFAULT '',
	golden_notes INTEGER NOT NULL DEFAULT 0,
	rating       INTEGER NOT NULL DEFAULT 0,
	views        INTEGER NOT NULL DEFAULT 0,
	cover_url    TEXT NOT NULL DEFAULT '',
	txt          TEXT NOT NULL DEFAULT '',
	fuzzy_artist   TEXT NOT NULL DEFAULT '',
	fuzzy_title    TEXT NOT NULL DEFAULT '',
	fuzzy_language TEXT NOT NULL DEFAULT '',
	fuzzy_edition  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_song_language ON song(language);
CREATE INDEX IF NOT EXISTS idx_song_edition ON song(edition);
`

// Store is a handle to the song database. A Store is safe for concurrent
// use; database/sql serializes access to the underlying SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the song database at path. The
// special path ":memory:" yields a throwaway in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open song database: %w", err)
	}
	// The sqlite3 driver cannot share an in-memory database across
	// connections, and file databases do not profit from more than one
	// writer either.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create song schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

const upsertSong = `
INSERT INTO song (song_id, artist, title, language, edition, golden_notes,
	rating, views, cover_url, fuzzy_artist, fuzzy_title, fuzzy_language, fuzzy_edition)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(song_id) DO UPDATE SET
	artist = excluded.artist,
	title = excluded.title,
	language = excluded.language,
	edition = excluded.edition,
	golden_notes = excluded.golden_notes,
	rating = excluded.rating,
	views = excluded.views,
	cover_url = excluded.cover_url,
	fuzzy_artist = excluded.fuzzy_artist,
	fuzzy_title = excluded.fuzzy_title,
	fuzzy_language = excluded.fuzzy_language,
	fuzzy_edition = excluded.fuzzy_edition
`

// UpsertSongs inserts or updates the given song records. The stored notes
// text of existing rows is kept.
func (s *Store) UpsertSongs(songs []model.Song) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertSong)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range songs {
		song := &songs[i]
		ft := model.NewFuzzyText(song)
		_, err := stmt.Exec(int(song.ID), song.Artist, song.Title, song.Language,
			song.Edition, song.GoldenNotes, song.Rating, song.Views, song.CoverURL,
			ft.Artist, ft.Title, ft.Language, ft.Edition)
		if err != nil {
			return fmt.Errorf("upsert song %s: %w", song.ID, err)
		}
	}
	return tx.Commit()
}

const selectSong = `
SELECT song_id, artist, title, language, edition, golden_notes, rating,
	views, cover_url
FROM song
`

// Get returns the song with the given id, or nil if it is not stored.
func (s *Store) Get(id model.SongID) (*model.Song, error) {
	row := s.db.QueryRow(selectSong+"WHERE song_id = ?", int(id))
	song, err := scanSong(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return song, nil
}

// Search returns all songs matching the given filters, ordered by artist
// and title. A zero-valued Search matches everything.
func (s *Store) Search(search *Search) ([]model.Song, error) {
	where, args := search.build()
	rows, err := s.db.Query(selectSong+where+" ORDER BY artist COLLATE NOCASE, title COLLATE NOCASE", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []model.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, *song)
	}
	return songs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (*model.Song, error) {
	var song model.Song
	var id int
	err := row.Scan(&id, &song.Artist, &song.Title, &song.Language,
		&song.Edition, &song.GoldenNotes, &song.Rating, &song.Views, &song.CoverURL)
	if err != nil {
		return nil, err
	}
	song.ID = model.SongID(id)
	return &song, nil
}

// SetTxt stores the notes file contents for a song.
func (s *Store) SetTxt(id model.SongID, txt string) error {
	_, err := s.db.Exec("UPDATE song SET txt = ? WHERE song_id = ?", txt, int(id))
	return err
}

// GetTxt returns the stored notes file contents for a song, or "" if none
// are stored.
func (s *Store) GetTxt(id model.SongID) (string, error) {
	var txt string
	err := s.db.QueryRow("SELECT txt FROM song WHERE song_id = ?", int(id)).Scan(&txt)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return txt, err
}

// Languages returns the distinct languages present in the store, sorted.
func (s *Store) Languages() ([]string, error) {
	return s.distinct("language")
}

// Editions returns the distinct editions present in the store, sorted.
func (s *Store) Editions() ([]string, error) {
	return s.distinct("edition")
}

func (s *Store) distinct(column string) ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT " + column + " FROM song WHERE " + column + " != '' ORDER BY " + column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// songRecord is the JSON dump format for one song.
type songRecord struct {
	SongID      int    `json:"song_id"`
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	Edition     string `json:"edition"`
	GoldenNotes bool   `json:"golden_notes"`
	Rating      int    `json:"rating"`
	Views       int    `json:"views"`
	CoverURL    string `json:"cover_url"`
	Txt         string `json:"txt"`
}

// ImportJSON reads a JSON array of song records from r and upserts them.
// Records carrying a non-empty "txt" field also replace the stored notes
// text. Returns the number of imported records.
func (s *Store) ImportJSON(r io.Reader) (int, error) {
	var records []songRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode song dump: %w", err)
	}

	songs := make([]model.Song, 0, len(records))
	for _, rec := range records {
		if rec.SongID <= 0 {
			return 0, fmt.Errorf("song dump entry without valid song_id (artist %q, title %q)", rec.Artist, rec.Title)
		}
		songs = append(songs, model.Song{
			ID:          model.SongID(rec.SongID),
			Artist:      rec.Artist,
			Title:       rec.Title,
			Language:    rec.Language,
			Edition:     rec.Edition,
			GoldenNotes: rec.GoldenNotes,
			Rating:      rec.Rating,
			Views:       rec.Views,
			CoverURL:    rec.CoverURL,
		})
	}
	if err := s.UpsertSongs(songs); err != nil {
		return 0, err
	}
	for _, rec := range records {
		if rec.Txt == "" {
			continue
		}
		if err := s.SetTxt(model.SongID(rec.SongID), rec.Txt); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}
