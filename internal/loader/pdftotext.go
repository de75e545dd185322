package loader

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/ndwells/wellbook/internal/model"
)

// PdfToText extracts document text with the pdftotext CLI and recovers
// tables from the layout-preserved output.
type PdfToText struct {
	binPath  string
	maxPages int
}

// NewPdfToText creates a PdfToText loader. If binPath is empty, "pdftotext"
// is used. maxPages limits extraction to the first N pages when > 0; well
// files front-load the permit and completion forms, so a small cap skips
// hundreds of pages of attached logs.
func NewPdfToText(binPath string, maxPages int) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath, maxPages: maxPages}
}

// Load runs pdftotext -layout on the given PDF. When a sidecar
// <name>.tables.json exists next to the PDF, its tables take precedence over
// the ones recovered from the layout text.
func (p *PdfToText) Load(ctx context.Context, pdfPath string) (model.Document, error) {
	args := []string{"-layout"}
	if p.maxPages > 0 {
		args = append(args, "-l", strconv.Itoa(p.maxPages))
	}
	args = append(args, pdfPath, "-")
	cmd := exec.CommandContext(ctx, p.binPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return model.Document{}, eris.Wrapf(err, "loader: pdftotext failed for %s: %s",
			pdfPath, stderr.String())
	}

	doc := model.Document{
		RawText: stdout.String(),
		Source:  filepath.Base(pdfPath),
	}

	sidecar, err := loadSidecarTables(pdfPath)
	if err != nil {
		return model.Document{}, err
	}
	if sidecar != nil {
		doc.Tables = sidecar
	} else {
		doc.Tables = LayoutTables(doc.RawText)
	}
	return doc, nil
}
