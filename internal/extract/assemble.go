package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ndwells/wellbook/internal/model"
	"github.com/ndwells/wellbook/internal/normalize"
)

// Result is one document's persistence-ready output.
type Result struct {
	Well         model.WellRecord
	Stimulations []model.StimulationRecord
	Findings     []model.Finding
}

// Assemble combines the pattern library and the table mapper into exactly
// one WellRecord plus its non-empty stimulation records, then runs both
// through the normalization engine. It holds no cross-document state and is
// safe to run once per document.
func Assemble(doc model.Document) Result {
	// Table rows often carry values the page text dropped; flatten them into
	// the searchable text before running the recognizers.
	text := doc.RawText
	if flat := FlattenTables(doc.Tables); flat != "" {
		text += "\n" + flat
	}

	fields := Fields(text)

	// Two-column key/value tables backfill whatever the text patterns missed.
	for key, val := range WellKV(doc.Tables) {
		if key == "latitude_raw" || key == "longitude_raw" {
			continue
		}
		if _, ok := fields[key]; !ok {
			fields[key] = val
		}
	}

	w := model.WellRecord{
		APINumber:        pick(fields, "api_number"),
		WellFileNo:       pick(fields, "well_file_no"),
		WellName:         pick(fields, "well_name"),
		Address:          pick(fields, "address"),
		County:           pick(fields, "county"),
		Field:            pick(fields, "field"),
		Operator:         pick(fields, "operator"),
		PermitNumber:     pick(fields, "permit_number"),
		PermitDate:       pick(fields, "permit_date"),
		TotalDepth:       pick(fields, "total_depth"),
		Formation:        pick(fields, "formation"),
		StimulationNotes: model.TextNA,
		RawExtract:       doc.RawText,
		PDFSource:        doc.Source,
		CreatedAt:        time.Now().UTC(),

		WellStatus:         model.TextNA,
		WellType:           model.TextNA,
		ClosestCity:        model.TextNA,
		BarrelsOilProduced: model.TextNA,
		MCFGasProduced:     model.TextNA,
	}

	if w.WellFileNo == model.TextNA {
		if no := WellFileFromFilename(doc.Source); no != "" {
			w.WellFileNo = no
		}
	}

	w.Latitude, w.Longitude = coordinates(text, doc.Tables)

	var stims []model.StimulationRecord
	var findings []model.Finding
	for _, table := range doc.Tables {
		for _, draft := range MapStimulationTable(table) {
			res := normalize.StimFromDraft(draft)
			if res.Stim.IsEmpty() {
				continue
			}
			stims = append(stims, res.Stim)
			findings = append(findings, res.Findings...)
		}
	}

	if len(stims) > 0 {
		w.StimulationNotes = stimulationNotes(stims)
	}

	wellRes := normalize.Well(w)
	return Result{
		Well:         wellRes.Well,
		Stimulations: stims,
		Findings:     append(wellRes.Findings, findings...),
	}
}

// coordinates resolves the lat/lon pair: text patterns first, two-column
// table values as fallback. The pair invariant holds here: a half-found
// pair is kept half-found and flagged later, never zero-filled.
func coordinates(text string, tables [][][]string) (*float64, *float64) {
	var lat, lon *float64
	if v, ok := ExtractLatitude(text); ok {
		lat = &v
	}
	if v, ok := ExtractLongitude(text); ok {
		lon = &v
	}

	kv := WellKV(tables)
	if lat == nil {
		if raw, ok := kv["latitude_raw"]; ok {
			if v, ok := parseRawCoordinate(raw, "N"); ok && v >= -90 && v <= 90 {
				lat = &v
			}
		}
	}
	if lon == nil {
		if raw, ok := kv["longitude_raw"]; ok {
			if v, ok := parseRawCoordinate(raw, "W"); ok && v >= -180 && v <= 180 {
				if v > 0 {
					v = -v
				}
				lon = &v
			}
		}
	}
	return lat, lon
}

// parseRawCoordinate handles a table cell that is either a decimal value or
// a DMS string missing its hemisphere suffix.
func parseRawCoordinate(raw, hemisphere string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if strings.ContainsRune(raw, '°') {
		upper := strings.ToUpper(raw)
		if !strings.Contains(upper, "N") && !strings.Contains(upper, "S") &&
			!strings.Contains(upper, "W") && !strings.Contains(upper, "E") {
			raw += " " + hemisphere
		}
		norm := dmsGlyphs.Replace(raw)
		m := strings.FieldsFunc(norm, func(r rune) bool {
			return r == '°' || r == '\'' || r == '"' || r == ' '
		})
		if len(m) >= 3 {
			if v, ok := dmsToDecimal(m[0], m[1], m[2]); ok {
				if hemisphere == "W" || strings.Contains(strings.ToUpper(raw), "W") || strings.Contains(strings.ToUpper(raw), "S") {
					return -v, true
				}
				return v, true
			}
		}
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}

// stimulationNotes synthesizes the per-well summary string shown on the map
// popup: formation, proppant weight and treatment type per row.
func stimulationNotes(stims []model.StimulationRecord) string {
	var parts []string
	for _, s := range stims {
		var bits []string
		if s.StimulatedFormation != "" && s.StimulatedFormation != model.TextNA {
			bits = append(bits, s.StimulatedFormation)
		}
		if s.LbsProppant > 0 {
			bits = append(bits, fmt.Sprintf("%.0f lbs proppant", s.LbsProppant))
		}
		if s.TypeTreatment != "" && s.TypeTreatment != model.TextNA {
			bits = append(bits, s.TypeTreatment)
		}
		if len(bits) > 0 {
			parts = append(parts, strings.Join(bits, ", "))
		}
	}
	if len(parts) == 0 {
		return model.TextNA
	}
	return strings.Join(parts, "; ")
}

func pick(fields map[string]string, key string) string {
	if v, ok := fields[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return model.TextNA
}
