// Package loader turns scanned well files into documents the extractor can
// work on. Text comes from the pdftotext CLI; tables come from the layout
// text, or from a sidecar JSON file when a better table extraction was done
// upstream.
package loader

import (
	"context"

	"github.com/ndwells/wellbook/internal/model"
)

// Loader produces a Document from a source file.
type Loader interface {
	Load(ctx context.Context, path string) (model.Document, error)
}
