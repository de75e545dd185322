package extract

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ndwells/wellbook/internal/model"
)

// synonymFile is the on-disk shape of a header-synonym override file:
// canonical field name to extra header spellings.
type synonymFile struct {
	Headers map[string][]string `yaml:"headers"`
}

var canonicalFields = map[string]struct{}{
	model.FieldDateStimulated: {}, model.FieldStimulatedFormation: {},
	model.FieldTopFt: {}, model.FieldBottomFt: {}, model.FieldStimulationStages: {},
	model.FieldVolume: {}, model.FieldVolumeUnits: {}, model.FieldTypeTreatment: {},
	model.FieldAcidPct: {}, model.FieldLbsProppant: {}, model.FieldMaxTreatmentPressure: {},
	model.FieldMaxTreatmentRate: {}, model.FieldDetails: {},
}

// LoadSynonyms merges extra header synonyms from a YAML file into the
// built-in table. New document batches occasionally bring header wordings
// the built-ins have not seen; the override file avoids a rebuild.
func LoadSynonyms(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "extract: read synonyms %s", path)
	}

	var f synonymFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return eris.Wrapf(err, "extract: parse synonyms %s", path)
	}

	for field, spellings := range f.Headers {
		if _, ok := canonicalFields[field]; !ok {
			return eris.Errorf("extract: unknown stimulation field %q in %s", field, path)
		}
		for _, spelling := range spellings {
			headerSynonyms[normalizeHeader(spelling)] = field
		}
	}
	return nil
}
