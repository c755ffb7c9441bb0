package browse

import (
	"fmt"

	"github.com/mjhalwa/usdb-syncer/internal/db"
)

// VariantNode is one checkable filter value below a category.
type VariantNode struct {
	Label   string
	Checked bool

	parent *CategoryNode
	apply  func(*db.Search)
}

// CategoryNode groups the variants of one filter field.
type CategoryNode struct {
	Label    string
	Variants []*VariantNode
}

func (c *CategoryNode) addVariant(label string, apply func(*db.Search)) *VariantNode {
	v := &VariantNode{Label: label, parent: c, apply: apply}
	c.Variants = append(c.Variants, v)
	return v
}

// Tree holds the filter state of the song browser.
type Tree struct {
	Categories []*CategoryNode

	listeners []func(*VariantNode)
}

// NewTree builds the filter tree. The golden notes, rating and views
// categories are fixed; language and edition variants come from the
// values present in the database.
func NewTree(languages, editions []string) *Tree {
	t := &Tree{}

	golden := t.addCategory("Golden Notes")
	for _, val := range []bool{true, false} {
		val := val
		golden.addVariant(yesNo(val), func(s *db.Search) { s.GoldenNotes = append(s.GoldenNotes, val) })
	}

	rating := t.addCategory("Rating")
	for stars := 5; stars >= 1; stars-- {
		stars := stars
		rating.addVariant(RatingStr(stars), func(s *db.Search) { s.Ratings = append(s.Ratings, stars) })
	}

	views := t.addCategory("Views")
	for _, bucket := range []struct {
		label string
		r     db.ViewRange
	}{
		{"below 100", db.ViewRange{Min: 0, Max: 100}},
		{"100 to 1000", db.ViewRange{Min: 100, Max: 1000}},
		{"1000 and more", db.ViewRange{Min: 1000}},
	} {
		r := bucket.r
		views.addVariant(bucket.label, func(s *db.Search) { s.Views = append(s.Views, r) })
	}

	language := t.addCategory("Language")
	for _, lang := range languages {
		lang := lang
		language.addVariant(lang, func(s *db.Search) { s.Languages = append(s.Languages, lang) })
	}

	edition := t.addCategory("Edition")
	for _, ed := range editions {
		ed := ed
		edition.addVariant(ed, func(s *db.Search) { s.Editions = append(s.Editions, ed) })
	}

	return t
}

func (t *Tree) addCategory(label string) *CategoryNode {
	c := &CategoryNode{Label: label}
	t.Categories = append(t.Categories, c)
	return c
}

// OnChange registers fn to be called for every variant whose checked
// state changes, including variants cleared as a side effect of an
// exclusive toggle.
func (t *Tree) OnChange(fn func(*VariantNode)) {
	t.listeners = append(t.listeners, fn)
}

func (t *Tree) notify(v *VariantNode) {
	for _, fn := range t.listeners {
		fn(v)
	}
}

func (t *Tree) setChecked(v *VariantNode, checked bool) {
	if v.Checked == checked {
		return
	}
	v.Checked = checked
	t.notify(v)
}

// Toggle flips a variant. An exclusive toggle additionally clears all
// sibling variants of the same category, so the category ends up with at
// most the toggled variant checked. A non-exclusive toggle leaves the
// siblings alone, accumulating a multi-selection.
func (t *Tree) Toggle(v *VariantNode, exclusive bool) {
	target := !v.Checked
	if exclusive {
		for _, sibling := range v.parent.Variants {
			if sibling != v {
				t.setChecked(sibling, false)
			}
		}
	}
	t.setChecked(v, target)
}

// ClearCategory unchecks every variant of the category.
func (t *Tree) ClearCategory(c *CategoryNode) {
	for _, v := range c.Variants {
		t.setChecked(v, false)
	}
}

// Clear unchecks the whole tree.
func (t *Tree) Clear() {
	for _, c := range t.Categories {
		t.ClearCategory(c)
	}
}

// BuildSearch translates the checked state plus a free-text query into a
// database search.
func (t *Tree) BuildSearch(text string) *db.Search {
	search := &db.Search{Text: text}
	for _, c := range t.Categories {
		for _, v := range c.Variants {
			if v.Checked {
				v.apply(search)
			}
		}
	}
	return search
}

// Find returns the variant with the given category and variant label, or
// an error if no such node exists. Intended for tests and scripted use.
func (t *Tree) Find(category, variant string) (*VariantNode, error) {
	for _, c := range t.Categories {
		if c.Label != category {
			continue
		}
		for _, v := range c.Variants {
			if v.Label == variant {
				return v, nil
			}
		}
	}
	return nil, fmt.Errorf("no filter %s/%s", category, variant)
}
