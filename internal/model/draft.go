package model

// Canonical stimulation field names, as they appear in the stimulation_data
// schema. Header synonyms resolve to these keys.
const (
	FieldDateStimulated       = "date_stimulated"
	FieldStimulatedFormation  = "stimulated_formation"
	FieldTopFt                = "top_ft"
	FieldBottomFt             = "bottom_ft"
	FieldStimulationStages    = "stimulation_stages"
	FieldVolume               = "volume"
	FieldVolumeUnits          = "volume_units"
	FieldTypeTreatment        = "type_treatment"
	FieldAcidPct              = "acid_pct"
	FieldLbsProppant          = "lbs_proppant"
	FieldMaxTreatmentPressure = "max_treatment_pressure_psi"
	FieldMaxTreatmentRate     = "max_treatment_rate"
	FieldDetails              = "details"
)

// StimulationDraft is one table row after header mapping: canonical field
// name to raw cell text. Numeric cells stay strings here; coercion belongs
// to the normalization engine.
type StimulationDraft map[string]string
