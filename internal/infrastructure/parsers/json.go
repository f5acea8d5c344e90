package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses characters from JSON format.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed characters.
func (p *JSONParser) Parse(r io.Reader) ([]RawCharacter, error) {
	var characters []RawCharacter

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&characters); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range characters {
		characters[i].LineNum = i + 1
	}

	return characters, nil
}
