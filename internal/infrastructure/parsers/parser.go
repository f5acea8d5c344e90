// Package parsers provides parsers for importing characters from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawCharacter represents a character parsed from an external source
// before validation.
type RawCharacter struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Gender  string `json:"gender,omitempty"`
	LineNum int    `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing characters from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawCharacter, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
