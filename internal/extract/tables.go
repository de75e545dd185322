package extract

import (
	"regexp"
	"strings"

	"github.com/ndwells/wellbook/internal/model"
)

// headerSynonyms resolves normalized header text to a canonical stimulation
// field. Header wording and column order vary across source documents, so
// positional mapping would silently misassign fields; the synonym lookup is
// mandatory before any data row is read.
var headerSynonyms = map[string]string{
	"date stimulated":      model.FieldDateStimulated,
	"date":                 model.FieldDateStimulated,
	"stimulation date":     model.FieldDateStimulated,
	"date of stimulation":  model.FieldDateStimulated,
	"stimulated formation": model.FieldStimulatedFormation,
	"formation":            model.FieldStimulatedFormation,
	"top ft":               model.FieldTopFt,
	"top":                  model.FieldTopFt,
	"bottom ft":            model.FieldBottomFt,
	"bottom":               model.FieldBottomFt,
	"stimulation stages":   model.FieldStimulationStages,
	"stages":               model.FieldStimulationStages,
	"volume":               model.FieldVolume,
	"volume units":         model.FieldVolumeUnits,
	"units":                model.FieldVolumeUnits,
	"type treatment":       model.FieldTypeTreatment,
	"treatment type":       model.FieldTypeTreatment,
	"type":                 model.FieldTypeTreatment,
	"acid pct":             model.FieldAcidPct,
	"acid":                 model.FieldAcidPct,
	"acid percent":         model.FieldAcidPct,
	"lbs proppant":         model.FieldLbsProppant,
	"proppant":             model.FieldLbsProppant,
	"max treatment pressure psi": model.FieldMaxTreatmentPressure,
	"maximum treatment pressure": model.FieldMaxTreatmentPressure,
	"max pressure":               model.FieldMaxTreatmentPressure,
	"pressure psi":               model.FieldMaxTreatmentPressure,
	"max treatment rate":         model.FieldMaxTreatmentRate,
	"maximum treatment rate":     model.FieldMaxTreatmentRate,
	"max rate":                   model.FieldMaxTreatmentRate,
	"details":                    model.FieldDetails,
	"detail":                     model.FieldDetails,

	// Common OCR misreads seen across the scanned corpus, where "t"
	// degrades to "l" and headers truncate.
	"date slimulaled": model.FieldDateStimulated,
	"dale stimulated": model.FieldDateStimulated,
	"stimulated form": model.FieldStimulatedFormation,
	"formalion":       model.FieldStimulatedFormation,
	"lbs proppanl":    model.FieldLbsProppant,
	"lype treatment":  model.FieldTypeTreatment,
}

var headerPunctRe = regexp.MustCompile(`[^a-z0-9%\s]`)

// normalizeHeader lower-cases a header cell and strips punctuation and unit
// decorations so "Top (ft)", "top_ft" and "Top" all collapse to one key.
func normalizeHeader(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	s = strings.ReplaceAll(s, "_", " ")
	s = headerPunctRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "pct", " pct")
	return collapseSpace(s)
}

// resolveHeader maps one header cell to its canonical field, or "" when no
// synonym matches. Unmapped columns are dropped, not errors.
func resolveHeader(cell string) string {
	key := normalizeHeader(cell)
	if f, ok := headerSynonyms[key]; ok {
		return f
	}
	// "%" survives normalization so "acid %" needs one more pass.
	if f, ok := headerSynonyms[collapseSpace(strings.ReplaceAll(key, "%", " pct"))]; ok {
		return f
	}
	return ""
}

// MapStimulationTable maps a raw table to stimulation drafts. The first two
// rows are scanned for a header; a table where no cell resolves to any
// synonym is not a stimulation table and yields zero drafts. Cells stay raw
// strings here; the normalization engine does the coercion.
func MapStimulationTable(table [][]string) []model.StimulationDraft {
	headerRow, columns := findHeader(table)
	if columns == nil {
		return nil
	}

	var drafts []model.StimulationDraft
	for _, row := range table[headerRow+1:] {
		d := model.StimulationDraft{}
		for col, field := range columns {
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				d[field] = strings.TrimSpace(row[col])
			}
		}
		if len(d) > 0 {
			drafts = append(drafts, d)
		}
	}
	return drafts
}

// findHeader scans the first two rows for header cells, returning the header
// row index and a column-index-to-field mapping.
func findHeader(table [][]string) (int, map[int]string) {
	limit := 2
	if len(table) < limit {
		limit = len(table)
	}
	for i := 0; i < limit; i++ {
		columns := map[int]string{}
		for col, cell := range table[i] {
			if field := resolveHeader(cell); field != "" {
				columns[col] = field
			}
		}
		if len(columns) > 0 {
			return i, columns
		}
	}
	return 0, nil
}

// wellLabels maps two-column table labels to well-level field names, used to
// backfill fields the text patterns missed.
var wellLabels = map[string]string{
	"api":           "api_number",
	"api number":    "api_number",
	"well name":     "well_name",
	"latitude":      "latitude_raw",
	"lat":           "latitude_raw",
	"longitude":     "longitude_raw",
	"long":          "longitude_raw",
	"address":       "address",
	"field address": "address",
	"county":        "county",
	"field":         "field",
	"field pool":    "field",
	"operator":      "operator",
	"permit number": "permit_number",
	"permit":        "permit_number",
	"permit date":   "permit_date",
	"total depth":   "total_depth",
	"depth":         "total_depth",
	"formation":     "formation",
}

// WellKV reads two-column key/value tables into well-level fields. First
// value per key wins across tables, matching the first-match convention of
// the text patterns.
func WellKV(tables [][][]string) map[string]string {
	kv := map[string]string{}
	for _, table := range tables {
		for _, row := range table {
			if len(row) < 2 || len(table[0]) != 2 {
				continue
			}
			label := normalizeHeader(row[0])
			val := strings.TrimSpace(row[1])
			if label == "" || val == "" {
				continue
			}
			if field, ok := wellLabels[label]; ok {
				if _, seen := kv[field]; !seen {
					kv[field] = val
				}
			}
		}
	}
	return kv
}

// FlattenTables renders table rows as text lines so the pattern library can
// match values that only appear inside tables.
func FlattenTables(tables [][][]string) string {
	var b strings.Builder
	for _, table := range tables {
		for _, row := range table {
			var cells []string
			for _, c := range row {
				if s := strings.TrimSpace(c); s != "" {
					cells = append(cells, s)
				}
			}
			if len(cells) > 0 {
				b.WriteString(strings.Join(cells, " "))
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}
