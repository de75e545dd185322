package model

// StimulationRecord is one stimulation treatment belonging to a well. Missing
// numeric values are zero (the stimulation-table sentinel); missing text
// values are TextNA after normalization.
type StimulationRecord struct {
	ID                      int64   `json:"id"`
	WellID                  int64   `json:"well_id"`
	DateStimulated          string  `json:"date_stimulated"`
	StimulatedFormation     string  `json:"stimulated_formation"`
	TopFt                   float64 `json:"top_ft"`
	BottomFt                float64 `json:"bottom_ft"`
	StimulationStages       int     `json:"stimulation_stages"`
	Volume                  float64 `json:"volume"`
	VolumeUnits             string  `json:"volume_units"`
	TypeTreatment           string  `json:"type_treatment"`
	AcidPct                 string  `json:"acid_pct"`
	LbsProppant             float64 `json:"lbs_proppant"`
	MaxTreatmentPressurePSI float64 `json:"max_treatment_pressure_psi"`
	MaxTreatmentRate        float64 `json:"max_treatment_rate"`
	Details                 string  `json:"details"`
}

// IsEmpty reports whether every field sits at its missing sentinel. Empty
// rows are dropped at assembly time and never persisted.
func (s *StimulationRecord) IsEmpty() bool {
	for _, v := range []string{
		s.DateStimulated, s.StimulatedFormation, s.VolumeUnits,
		s.TypeTreatment, s.AcidPct, s.Details,
	} {
		if v != "" && v != TextNA {
			return false
		}
	}
	return s.TopFt == 0 && s.BottomFt == 0 && s.StimulationStages == 0 &&
		s.Volume == 0 && s.LbsProppant == 0 &&
		s.MaxTreatmentPressurePSI == 0 && s.MaxTreatmentRate == 0
}
