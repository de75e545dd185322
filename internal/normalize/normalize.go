// Package normalize implements the second-pass cleaning and validation engine
// applied to every record after assembly or enrichment. All operations are
// idempotent: running the engine over already-clean output changes nothing.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ndwells/wellbook/internal/model"
)

var (
	markupRe  = regexp.MustCompile(`<[^>]+>`)
	controlRe = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
	unicodeWS = strings.NewReplacer(
		" ", " ", " ", " ", " ", " ", " ", " ", "　", " ",
	)
	multiSpaceRe = regexp.MustCompile(` {2,}`)

	titleCaser = cases.Title(language.AmericanEnglish)
)

// missingMarkers are the case-insensitive spellings treated as "no value".
var missingMarkers = map[string]struct{}{
	"": {}, "n/a": {}, "na": {}, "null": {}, "none": {}, "-": {}, "--": {},
}

// Sanitize strips markup tags and control characters from a text value and
// collapses runs of whitespace.
func Sanitize(s string) string {
	s = markupRe.ReplaceAllString(s, "")
	s = controlRe.ReplaceAllString(s, "")
	s = unicodeWS.Replace(s)
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// MissingText reports whether a sanitized value is one of the recognized
// missing-value spellings.
func MissingText(s string) bool {
	_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Text sanitizes a text field and resolves missing spellings to the sentinel.
func Text(s string) string {
	s = Sanitize(s)
	if MissingText(s) {
		return model.TextNA
	}
	return s
}

// WellResult pairs a cleaned record with its validation findings.
type WellResult struct {
	Well     model.WellRecord
	Findings []model.Finding
}

// Well runs the full engine over a well record: sanitize, missing markers,
// date and API canonicalization, shorthand expansion on production
// quantities, and coordinate bounds validation. The input is not modified.
func Well(w model.WellRecord) WellResult {
	var findings []model.Finding

	for _, f := range []struct {
		name string
		p    *string
	}{
		{"well_file_no", &w.WellFileNo},
		{"well_name", &w.WellName},
		{"address", &w.Address},
		{"county", &w.County},
		{"operator", &w.Operator},
		{"permit_number", &w.PermitNumber},
		{"formation", &w.Formation},
		{"stimulation_notes", &w.StimulationNotes},
		{"well_status", &w.WellStatus},
		{"well_type", &w.WellType},
		{"closest_city", &w.ClosestCity},
	} {
		*f.p = Text(*f.p)
	}

	// Field names read in ALL CAPS or lowercase on the form; title-case them.
	w.Field = Text(w.Field)
	if w.Field != model.TextNA {
		w.Field = titleCaser.String(strings.ToLower(w.Field))
	}

	w.PermitDate, findings = date("permit_date", w.PermitDate, findings)
	w.APINumber, findings = apiNumber(w.APINumber, findings)
	w.TotalDepth = wellNumericText(w.TotalDepth)
	w.BarrelsOilProduced, findings = quantity("barrels_oil_produced", w.BarrelsOilProduced, findings)
	w.MCFGasProduced, findings = quantity("mcf_gas_produced", w.MCFGasProduced, findings)

	findings = append(findings, ValidateCoordinates(w.Latitude, w.Longitude)...)

	// drillingedge_url is opaque provenance, sanitize only.
	w.DrillingEdgeURL = Sanitize(w.DrillingEdgeURL)

	return WellResult{Well: w, Findings: findings}
}

// StimResult pairs a cleaned stimulation record with its findings.
type StimResult struct {
	Stim     model.StimulationRecord
	Findings []model.Finding
}

// Stim runs the engine over a stimulation record. Numeric fields already
// carry the zero sentinel; only text fields and the date need cleaning.
func Stim(s model.StimulationRecord) StimResult {
	var findings []model.Finding

	s.StimulatedFormation = Text(s.StimulatedFormation)
	s.VolumeUnits = Text(s.VolumeUnits)
	s.TypeTreatment = Text(s.TypeTreatment)
	s.AcidPct = Text(s.AcidPct)
	s.Details = Text(s.Details)

	s.DateStimulated, findings = date("date_stimulated", s.DateStimulated, findings)

	if s.TopFt > 0 && s.BottomFt > 0 && s.TopFt > s.BottomFt {
		findings = append(findings, model.Finding{
			Field:  "top_ft",
			Value:  strings.TrimSpace(formatNumber(s.TopFt)),
			Reason: "top_ft exceeds bottom_ft",
		})
	}
	if s.StimulationStages < 0 {
		s.StimulationStages = 0
	}

	return StimResult{Stim: s, Findings: findings}
}

// date canonicalizes a date field, flagging unparseable non-missing values.
func date(field, v string, findings []model.Finding) (string, []model.Finding) {
	v = Text(v)
	if v == model.TextNA {
		return v, findings
	}
	iso, ok := CanonicalDate(v)
	if !ok {
		return v, append(findings, model.Finding{Field: field, Value: v, Reason: "unparseable date"})
	}
	return iso, findings
}

// quantity expands production shorthand, flagging unparseable non-missing
// values. Missing quantities take the text sentinel: production columns are
// well-level, not stimulation columns.
func quantity(field, v string, findings []model.Finding) (string, []model.Finding) {
	v = Text(v)
	if v == model.TextNA {
		return v, findings
	}
	expanded, ok := ExpandShorthand(v)
	if !ok {
		return v, append(findings, model.Finding{Field: field, Value: v, Reason: "unparseable quantity"})
	}
	return expanded, findings
}

// wellNumericText normalizes a well-level numeric-as-text field such as
// total_depth: values with no recoverable number become the sentinel, values
// like "9500 ft" pass through sanitized.
func wellNumericText(v string) string {
	v = Text(v)
	if v == model.TextNA {
		return v
	}
	if _, ok := FirstNumber(v); !ok {
		return model.TextNA
	}
	return v
}
