// Package model defines the core data structures used throughout
// the usdb-syncer application.
//
// # Song
//
// Song is the immutable reference record for one USDB entry:
//
//	song := &model.Song{ID: 3327, Artist: "Queen", Title: "Bohemian Rhapsody"}
//	fmt.Println(song.FolderName()) // "Queen - Bohemian Rhapsody"
//
// # Fuzzy search
//
// FuzzyText holds normalized copies of the searchable fields so that
// substring search tolerates accents, case, and common notation variants:
//
//	ft := model.NewFuzzyText(song)
//	ft.Contains(model.FuzzText("Bohémian")) // true
//
// # Local files
//
// LocalFiles records which assets of a song exist on disk. It is derived
// on demand and never persisted.
package model
