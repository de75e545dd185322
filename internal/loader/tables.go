package loader

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// columnGapRe splits layout-preserved lines on runs of two or more spaces,
// which is how pdftotext renders column boundaries.
var columnGapRe = regexp.MustCompile(`\s{2,}`)

// LayoutTables recovers tables from pdftotext -layout output. A table is a
// run of consecutive lines that split into at least two columns; runs
// shorter than two lines are prose, not tables.
func LayoutTables(text string) [][][]string {
	var tables [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitColumns(line)
		if len(cells) >= 2 {
			current = append(current, cells)
		} else {
			flush()
		}
	}
	flush()
	return tables
}

func splitColumns(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	parts := columnGapRe.Split(line, -1)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// loadSidecarTables reads <pdf>.tables.json if present. The sidecar holds an
// array of tables, each an array of rows of cell strings. Returns nil with no
// error when there is no sidecar.
func loadSidecarTables(pdfPath string) ([][][]string, error) {
	sidecarPath := strings.TrimSuffix(pdfPath, ".pdf") + ".tables.json"
	data, err := os.ReadFile(sidecarPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read sidecar %s", sidecarPath)
	}

	var tables [][][]string
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, eris.Wrapf(err, "loader: parse sidecar %s", sidecarPath)
	}
	return tables, nil
}
