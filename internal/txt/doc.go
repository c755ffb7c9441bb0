// Package txt parses and renders UltraStar song txt documents.
//
// A document consists of `#KEY:value` header lines followed by the note
// body: sung notes, line breaks, optional player markers for duets, and a
// terminating "E" line.
//
//	#TITLE:Example
//	#ARTIST:Band
//	#MP3:Band - Example.mp3
//	#BPM:240
//	#GAP:1000
//	: 0 4 12 Some
//	: 4 4 12 ~thing
//	- 10
//	: 12 4 14 else
//	E
//
// # Round-trip contract
//
// Parse is tolerant: it accepts CRLF input, a UTF-8 BOM, blank lines,
// case-insensitive header keys, extra whitespace between note fields, and a
// missing final "E". String always renders the canonical form, so
//
//	Parse(doc).String() == doc
//
// holds for canonical documents, while deviant documents render to their
// canonical equivalent rather than being reproduced verbatim.
package txt
