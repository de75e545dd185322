package normalize

import (
	"math"

	"github.com/ndwells/wellbook/internal/model"
)

// StimFromDraft coerces a mapped table row into a typed stimulation record
// and runs the engine over it. Cells with no parseable number take the zero
// sentinel; non-empty unparseable numerics are flagged.
func StimFromDraft(d model.StimulationDraft) StimResult {
	var s model.StimulationRecord
	var findings []model.Finding

	s.DateStimulated = d[model.FieldDateStimulated]
	s.StimulatedFormation = d[model.FieldStimulatedFormation]
	s.VolumeUnits = d[model.FieldVolumeUnits]
	s.TypeTreatment = d[model.FieldTypeTreatment]
	s.AcidPct = d[model.FieldAcidPct]
	s.Details = d[model.FieldDetails]

	for _, f := range []struct {
		name string
		p    *float64
	}{
		{model.FieldTopFt, &s.TopFt},
		{model.FieldBottomFt, &s.BottomFt},
		{model.FieldVolume, &s.Volume},
		{model.FieldLbsProppant, &s.LbsProppant},
		{model.FieldMaxTreatmentPressure, &s.MaxTreatmentPressurePSI},
		{model.FieldMaxTreatmentRate, &s.MaxTreatmentRate},
	} {
		*f.p, findings = stimNumeric(f.name, d[f.name], findings)
	}

	stages, findings := stimNumeric(model.FieldStimulationStages, d[model.FieldStimulationStages], findings)
	s.StimulationStages = int(math.Max(0, math.Round(stages)))

	res := Stim(s)
	res.Findings = append(findings, res.Findings...)
	return res
}

func stimNumeric(field, raw string, findings []model.Finding) (float64, []model.Finding) {
	raw = Text(raw)
	if raw == model.TextNA {
		return 0, findings
	}
	v, ok := FirstNumber(raw)
	if !ok {
		return 0, append(findings, model.Finding{Field: field, Value: raw, Reason: "unparseable number"})
	}
	return v, findings
}
