package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjhalwa/usdb-syncer/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var testSongs = []model.Song{
	{ID: 100, Artist: "Mötley Crüe", Title: "Kickstart My Heart", Language: "English", GoldenNotes: true, Rating: 5, Views: 1200},
	{ID: 200, Artist: "Die Ärzte", Title: "Westerland", Language: "German", Edition: "SingStar Rocks!", Rating: 4, Views: 350},
	{ID: 300, Artist: "Simon & Garfunkel", Title: "The Boxer", Language: "English", Rating: 3, Views: 80},
}

func TestUpsertAndGet(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.UpsertSongs(testSongs))

	song, err := store.Get(200)
	require.NoError(t, err)
	require.NotNil(t, song)
	assert.Equal(t, "Die Ärzte", song.Artist)
	assert.Equal(t, "SingStar Rocks!", song.Edition)

	missing, err := store.Get(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpsertReplacesMetadataKeepsTxt(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.UpsertSongs(testSongs))
	require.NoError(t, store.SetTxt(100, "#TITLE:Kickstart My Heart\n"))

	updated := testSongs[0]
	updated.Views = 9999
	require.NoError(t, store.UpsertSongs([]model.Song{updated}))

	song, err := store.Get(100)
	require.NoError(t, err)
	assert.Equal(t, 9999, song.Views)

	txt, err := store.GetTxt(100)
	require.NoError(t, err)
	assert.Equal(t, "#TITLE:Kickstart My Heart\n", txt)
}

func TestSearchFuzzyText(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.UpsertSongs(testSongs))

	// Umlauts and the ampersand normalize away on both sides.
	for _, query := range []string{"motley", "Mötley", "simon and garfunkel", "arzte"} {
		songs, err := store.Search(&Search{Text: query})
		require.NoError(t, err)
		require.Len(t, songs, 1, "query %q", query)
	}

	// Language and edition are indexed too, normalized like the rest.
	songs, err := store.Search(&Search{Text: "german"})
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, model.SongID(200), songs[0].ID)

	songs, err = store.Search(&Search{Text: "singstar rocks"})
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, model.SongID(200), songs[0].ID)

	// The id matches by substring containment.
	for _, query := range []string{"300", "30"} {
		songs, err = store.Search(&Search{Text: query})
		require.NoError(t, err)
		require.Len(t, songs, 1, "query %q", query)
		assert.Equal(t, model.SongID(300), songs[0].ID)
	}

	songs, err = store.Search(&Search{Text: "no such song"})
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestSearchFilters(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.UpsertSongs(testSongs))

	songs, err := store.Search(&Search{GoldenNotes: []bool{true}})
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, model.SongID(100), songs[0].ID)

	// Accepting both values imposes no constraint.
	songs, err = store.Search(&Search{GoldenNotes: []bool{true, false}})
	require.NoError(t, err)
	assert.Len(t, songs, 3)

	songs, err = store.Search(&Search{Ratings: []int{4, 5}})
	require.NoError(t, err)
	assert.Len(t, songs, 2)

	songs, err = store.Search(&Search{Views: []ViewRange{{Min: 0, Max: 100}, {Min: 1000}}})
	require.NoError(t, err)
	assert.Len(t, songs, 2)

	songs, err = store.Search(&Search{Languages: []string{"German"}})
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, model.SongID(200), songs[0].ID)

	// Filters of different fields narrow each other.
	songs, err = store.Search(&Search{Languages: []string{"English"}, Ratings: []int{5}})
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, model.SongID(100), songs[0].ID)
}

func TestSearchOrdering(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.UpsertSongs(testSongs))

	songs, err := store.Search(nil)
	require.NoError(t, err)
	require.Len(t, songs, 3)
	assert.Equal(t, "Die Ärzte", songs[0].Artist)
	assert.Equal(t, "Mötley Crüe", songs[1].Artist)
	assert.Equal(t, "Simon & Garfunkel", songs[2].Artist)
}

func TestDistinctValues(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.UpsertSongs(testSongs))

	languages, err := store.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "German"}, languages)

	editions, err := store.Editions()
	require.NoError(t, err)
	assert.Equal(t, []string{"SingStar Rocks!"}, editions)
}

func TestImportJSON(t *testing.T) {
	store := testStore(t)

	dump := `[
		{"song_id": 42, "artist": "Queen", "title": "Bohemian Rhapsody",
		 "language": "English", "golden_notes": true, "rating": 5, "views": 10000,
		 "txt": "#TITLE:Bohemian Rhapsody\n#ARTIST:Queen\n#BPM:71\nE\n"},
		{"song_id": 43, "artist": "Queen", "title": "Under Pressure", "language": "English"}
	]`
	n, err := store.ImportJSON(strings.NewReader(dump))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	song, err := store.Get(42)
	require.NoError(t, err)
	require.NotNil(t, song)
	assert.Equal(t, "Queen", song.Artist)

	txt, err := store.GetTxt(42)
	require.NoError(t, err)
	assert.Contains(t, txt, "#ARTIST:Queen")

	txt, err = store.GetTxt(43)
	require.NoError(t, err)
	assert.Empty(t, txt)
}

func TestImportJSONRejectsBadRecords(t *testing.T) {
	store := testStore(t)

	_, err := store.ImportJSON(strings.NewReader(`[{"artist": "Nobody"}]`))
	assert.Error(t, err)

	_, err = store.ImportJSON(strings.NewReader(`not json`))
	assert.Error(t, err)
}
