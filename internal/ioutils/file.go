package ioutils

import (
	"bytes"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFile writes data to a file with mode 0644, truncating any existing
// content.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// FileExists reports whether path names an existing file or directory.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFileUnknownEncoding reads a text file of unknown encoding.
//
// Valid UTF-8 content (with or without BOM) is returned as-is; anything
// else is decoded as Windows-1252, which covers the legacy encoding song
// txt files commonly use. The decode cannot fail, so the only error source
// is the file read itself.
func ReadFileUnknownEncoding(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	data = bytes.TrimPrefix(data, []byte{0xef, 0xbb, 0xbf})
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
