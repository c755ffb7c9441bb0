// Package db persists the local mirror of USDB song records in SQLite.
//
// The store keeps one row per song, together with the downloaded notes
// text and precomputed fuzzy search columns. Records enter the store
// through [Store.UpsertSongs] or a JSON dump via [Store.ImportJSON];
// queries go through [Store.Search] with a [Search] describing the active
// filters.
package db
