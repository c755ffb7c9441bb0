package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjhalwa/usdb-syncer/internal/model"
)

func TestColumnPartition(t *testing.T) {
	song := &model.Song{
		ID: 42, Artist: "Queen", Title: "Bohemian Rhapsody",
		Language: "English", Edition: "SingStar", GoldenNotes: true,
		Rating: 4, Views: 1234,
	}
	files := model.LocalFiles{Txt: true, Cover: true}

	// Both accessors are total over the enum: the foreign partition
	// yields the zero value.
	for _, c := range Columns {
		if c.IsDecoration() {
			assert.Empty(t, c.DisplayData(song), "column %s", c)
		} else {
			assert.False(t, c.DecorationData(files), "column %s", c)
		}
	}

	assert.Equal(t, "42", ColumnSongID.DisplayData(song))
	assert.Equal(t, "Yes", ColumnGoldenNotes.DisplayData(song))
	assert.Equal(t, "★★★★", ColumnRating.DisplayData(song))
	assert.Equal(t, "1234", ColumnViews.DisplayData(song))
	assert.True(t, ColumnTxt.DecorationData(files))
	assert.False(t, ColumnVideo.DecorationData(files))
}

func TestColumnUnknownPanics(t *testing.T) {
	bad := Column(99)
	assert.Panics(t, func() { _ = bad.String() })
	assert.Panics(t, func() { _ = bad.IsDecoration() })
	assert.Panics(t, func() { _ = bad.DisplayData(&model.Song{}) })
	assert.Panics(t, func() { _ = bad.DecorationData(model.LocalFiles{}) })
}

func TestRatingStr(t *testing.T) {
	assert.Equal(t, "", RatingStr(0))
	assert.Equal(t, "★★★", RatingStr(3))
	assert.Equal(t, "★★★★★", RatingStr(5))
	assert.Equal(t, "", RatingStr(-1))
	assert.Equal(t, "★★★★★", RatingStr(9))
}

func testTree(t *testing.T) *Tree {
	t.Helper()
	return NewTree([]string{"English", "German"}, []string{"SingStar"})
}

func mustFind(t *testing.T, tree *Tree, category, variant string) *VariantNode {
	t.Helper()
	v, err := tree.Find(category, variant)
	require.NoError(t, err)
	return v
}

func TestToggleExclusiveClearsSiblings(t *testing.T) {
	tree := testTree(t)
	english := mustFind(t, tree, "Language", "English")
	german := mustFind(t, tree, "Language", "German")

	var changed []*VariantNode
	tree.OnChange(func(v *VariantNode) { changed = append(changed, v) })

	tree.Toggle(english, true)
	require.Equal(t, []*VariantNode{english}, changed)
	assert.True(t, english.Checked)

	// The sibling takes over; both nodes change and both notify.
	changed = nil
	tree.Toggle(german, true)
	assert.ElementsMatch(t, []*VariantNode{english, german}, changed)
	assert.False(t, english.Checked)
	assert.True(t, german.Checked)

	// Toggling the checked variant exclusively unchecks it again.
	changed = nil
	tree.Toggle(german, true)
	assert.Equal(t, []*VariantNode{german}, changed)
	assert.False(t, german.Checked)
}

func TestToggleAdditiveKeepsSiblings(t *testing.T) {
	tree := testTree(t)
	english := mustFind(t, tree, "Language", "English")
	german := mustFind(t, tree, "Language", "German")

	tree.Toggle(english, true)
	tree.Toggle(german, false)
	assert.True(t, english.Checked)
	assert.True(t, german.Checked)

	tree.Toggle(german, false)
	assert.True(t, english.Checked)
	assert.False(t, german.Checked)
}

func TestBuildSearch(t *testing.T) {
	tree := testTree(t)
	tree.Toggle(mustFind(t, tree, "Language", "English"), false)
	tree.Toggle(mustFind(t, tree, "Language", "German"), false)
	tree.Toggle(mustFind(t, tree, "Golden Notes", "Yes"), true)
	tree.Toggle(mustFind(t, tree, "Rating", RatingStr(5)), false)
	tree.Toggle(mustFind(t, tree, "Views", "1000 and more"), false)
	tree.Toggle(mustFind(t, tree, "Edition", "SingStar"), true)

	search := tree.BuildSearch("queen")
	assert.Equal(t, "queen", search.Text)
	assert.Equal(t, []bool{true}, search.GoldenNotes)
	assert.Equal(t, []int{5}, search.Ratings)
	assert.Equal(t, []string{"English", "German"}, search.Languages)
	assert.Equal(t, []string{"SingStar"}, search.Editions)
	require.Len(t, search.Views, 1)
	assert.Equal(t, 1000, search.Views[0].Min)
}

func TestClear(t *testing.T) {
	tree := testTree(t)
	tree.Toggle(mustFind(t, tree, "Language", "English"), false)
	tree.Toggle(mustFind(t, tree, "Golden Notes", "No"), false)

	tree.Clear()
	for _, c := range tree.Categories {
		for _, v := range c.Variants {
			assert.False(t, v.Checked)
		}
	}
	search := tree.BuildSearch("")
	assert.Empty(t, search.GoldenNotes)
	assert.Empty(t, search.Languages)
}

func TestBuildSearchBothGoldenVariants(t *testing.T) {
	tree := testTree(t)
	tree.Toggle(mustFind(t, tree, "Golden Notes", "Yes"), false)
	tree.Toggle(mustFind(t, tree, "Golden Notes", "No"), false)

	search := tree.BuildSearch("")
	assert.ElementsMatch(t, []bool{true, false}, search.GoldenNotes)
}
