// Package meta decodes and encodes the resource meta tags USDB songs carry
// in their #VIDEO header.
//
// The header value is a comma-separated list of key=value pairs naming the
// audio/video resources to download and how to post-process the cover and
// background images:
//
//	a=dQw4w9WgXcQ,v=dQw4w9WgXcQ,co=artist-cover-id,co-rotate=90,
//	co-crop=10-10-500-500,co-resize=1920-1080,co-contrast=auto
//
// Tags returns the canonical encoding used when composing a new header.
package meta
