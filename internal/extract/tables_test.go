package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndwells/wellbook/internal/model"
)

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"Date Stimulated", model.FieldDateStimulated},
		{"date_stimulated", model.FieldDateStimulated},
		{"Top (Ft)", model.FieldTopFt},
		{"TOP", model.FieldTopFt},
		{"Lbs Proppant", model.FieldLbsProppant},
		{"Acid%", model.FieldAcidPct},
		{"Acid %", model.FieldAcidPct},
		{"AcidPct", model.FieldAcidPct},
		{"Max Treatment Pressure (PSI)", model.FieldMaxTreatmentPressure},
		{"Township", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveHeader(tt.cell), "cell %q", tt.cell)
	}
}

func TestResolveHeaderOCRMisreads(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"Date Slimulaled", model.FieldDateStimulated},
		{"Dale Stimulated", model.FieldDateStimulated},
		{"Stimulated Form", model.FieldStimulatedFormation},
		{"Formalion", model.FieldStimulatedFormation},
		{"Lbs Proppanl", model.FieldLbsProppant},
		{"Lype Treatment", model.FieldTypeTreatment},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveHeader(tt.cell), "cell %q", tt.cell)
	}
}

func TestMapStimulationTable(t *testing.T) {
	table := [][]string{
		{"Date Stimulated", "Stimulated Formation", "Top (Ft)", "Bottom (Ft)", "Lbs Proppant"},
		{"07/01/2012", "Bakken", "9500", "20800", "4,000,000"},
		{"", "Three Forks", "9600", "", ""},
	}

	drafts := MapStimulationTable(table)
	require.Len(t, drafts, 2)
	assert.Equal(t, "07/01/2012", drafts[0][model.FieldDateStimulated])
	assert.Equal(t, "4,000,000", drafts[0][model.FieldLbsProppant])
	assert.Equal(t, "Three Forks", drafts[1][model.FieldStimulatedFormation])
	assert.NotContains(t, drafts[1], model.FieldDateStimulated)
}

func TestMapStimulationTableColumnOrderIrrelevant(t *testing.T) {
	byName := func(drafts []model.StimulationDraft) map[string]string {
		require.Len(t, drafts, 1)
		return drafts[0]
	}

	a := byName(MapStimulationTable([][]string{
		{"Date Stimulated", "Lbs Proppant"},
		{"07/01/2012", "500000"},
	}))
	b := byName(MapStimulationTable([][]string{
		{"Lbs Proppant", "Date Stimulated"},
		{"500000", "07/01/2012"},
	}))
	assert.Equal(t, a, b)
}

func TestMapStimulationTableNoHeader(t *testing.T) {
	table := [][]string{
		{"Township", "Range", "Section"},
		{"151N", "95W", "12"},
	}
	assert.Nil(t, MapStimulationTable(table), "a table without stimulation headers maps to nothing")
}

func TestMapStimulationTableHeaderOnSecondRow(t *testing.T) {
	table := [][]string{
		{"STIMULATION DATA", "continued on form"},
		{"Date Stimulated", "Type Treatment"},
		{"07/01/2012", "Sand Frac"},
	}
	drafts := MapStimulationTable(table)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Sand Frac", drafts[0][model.FieldTypeTreatment])
}

func TestWellKV(t *testing.T) {
	tables := [][][]string{
		{
			{"API Number", "33-053-01234"},
			{"Operator", "Continental Resources"},
			{"Township", "151N"},
		},
		{
			{"Operator", "Different Operator"},
			{"County", "Mckenzie"},
		},
	}

	kv := WellKV(tables)
	assert.Equal(t, "33-053-01234", kv["api_number"])
	assert.Equal(t, "Continental Resources", kv["operator"], "first value wins")
	assert.Equal(t, "Mckenzie", kv["county"])
	assert.NotContains(t, kv, "township")
}

func TestWellKVIgnoresWideTables(t *testing.T) {
	tables := [][][]string{{
		{"Date Stimulated", "Top (Ft)", "Bottom (Ft)"},
		{"07/01/2012", "9500", "20800"},
	}}
	assert.Empty(t, WellKV(tables))
}

func TestFlattenTables(t *testing.T) {
	tables := [][][]string{{
		{"API Number", "33-053-01234"},
		{"", ""},
	}}
	assert.Equal(t, "API Number 33-053-01234\n", FlattenTables(tables))
}

func TestLoadSynonyms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`headers:
  lbs_proppant:
    - "Proppant Weight (lbs)"
  type_treatment:
    - "Trtmt Type"
`), 0o644))

	require.NoError(t, LoadSynonyms(path))
	assert.Equal(t, model.FieldLbsProppant, resolveHeader("Proppant Weight (lbs)"))
	assert.Equal(t, model.FieldTypeTreatment, resolveHeader("Trtmt Type"))
}

func TestLoadSynonymsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`headers:
  not_a_field:
    - "Whatever"
`), 0o644))

	assert.Error(t, LoadSynonyms(path))
}

func TestLoadSynonymsMissingFile(t *testing.T) {
	assert.Error(t, LoadSynonyms(filepath.Join(t.TempDir(), "absent.yaml")))
}
