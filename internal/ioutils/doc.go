// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Ensure the song folder exists
//	err := ioutils.EnsureDir(folder)
//
//	// Write the rendered notes file
//	err := ioutils.WriteFile(path, []byte(songTxt.String()))
//
//	// Read a txt file whose encoding is unknown
//	contents, err := ioutils.ReadFileUnknownEncoding(path)
//
// Song txt files in the wild are a mix of UTF-8 and legacy Windows-1252;
// ReadFileUnknownEncoding tries UTF-8 first and falls back transparently.
//
// # Image Processing
//
// The ImageService applies the processing directives carried by a song's
// image meta tags (rotate, crop, resize, contrast) and enforces a maximum
// width, always re-encoding to JPEG:
//
//	svc := ioutils.NewImageService()
//	processed, err := svc.Process(raw, tags.Cover, maxWidth)
package ioutils
