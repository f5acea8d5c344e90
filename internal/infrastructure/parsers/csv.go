package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser parses characters from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed characters.
// Expected columns: name, gender; optional: id.
func (p *CSVParser) Parse(r io.Reader) ([]RawCharacter, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawCharacters.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawCharacter, error) {
	var characters []RawCharacter
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		characters = append(characters, RawCharacter{
			ID:      getColumn(record, colIndex, "id"),
			Name:    getColumn(record, colIndex, "name"),
			Gender:  getColumn(record, colIndex, "gender"),
			LineNum: lineNum,
		})
	}

	return characters, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
