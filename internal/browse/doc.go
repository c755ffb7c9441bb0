// Package browse prepares song records for list presentation and keeps
// the state of the filter tree.
//
// [Column] partitions the song list columns into display columns, which
// render text from a song record, and decoration columns, which render a
// presence glyph from the resolved local files. The filter tree groups
// filter variants under fixed categories and translates its checked state
// into a database query.
package browse
