package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/fablekeep/storygraph/internal/domain/services"
	"github.com/fablekeep/storygraph/internal/infrastructure/parsers"
)

// ImportHandler handles character imports from external files.
type ImportHandler struct {
	importer *services.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importer *services.ImportService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// HandleImport parses characters from the reader in the given format
// ("json" or "csv") and imports them into the story.
func (h *ImportHandler) HandleImport(ctx context.Context, storyID string, r io.Reader, format string, opts services.ImportOptions) (*services.ImportResult, error) {
	parser := parsers.ForFormat(format)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format: %s (supported: json, csv)", format)
	}

	raws, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}

	return h.importer.Import(ctx, storyID, raws, opts)
}
