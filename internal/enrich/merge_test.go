package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndwells/wellbook/internal/model"
)

func TestMergeFillsMissingOnly(t *testing.T) {
	w := model.WellRecord{
		WellStatus:         model.TextNA,
		WellType:           "Oil",
		ClosestCity:        "",
		BarrelsOilProduced: model.TextNA,
		MCFGasProduced:     "120000",
	}
	e := model.Enrichment{
		WellStatus:         "Active",
		WellType:           "Gas",
		ClosestCity:        "Watford City",
		BarrelsOilProduced: "350000",
		MCFGasProduced:     "999999",
		SourceURL:          "https://www.drillingedge.com/x",
	}

	got := Merge(w, e, false)

	assert.Equal(t, "Active", got.WellStatus)
	assert.Equal(t, "Oil", got.WellType, "existing value must survive")
	assert.Equal(t, "Watford City", got.ClosestCity)
	assert.Equal(t, "350000", got.BarrelsOilProduced)
	assert.Equal(t, "120000", got.MCFGasProduced, "existing value must survive")
	assert.Equal(t, "https://www.drillingedge.com/x", got.DrillingEdgeURL)
}

func TestMergeForceOverwrites(t *testing.T) {
	w := model.WellRecord{
		WellStatus:     "Plugged",
		MCFGasProduced: "120000",
	}
	e := model.Enrichment{
		WellStatus:     "Active",
		MCFGasProduced: "130000",
		SourceURL:      "https://www.drillingedge.com/x",
	}

	got := Merge(w, e, true)

	assert.Equal(t, "Active", got.WellStatus)
	assert.Equal(t, "130000", got.MCFGasProduced)
}

func TestMergeEmptySourceNeverClears(t *testing.T) {
	w := model.WellRecord{WellStatus: "Active", ClosestCity: "Williston"}
	e := model.Enrichment{SourceURL: "https://www.drillingedge.com/x"}

	got := Merge(w, e, true)

	assert.Equal(t, "Active", got.WellStatus)
	assert.Equal(t, "Williston", got.ClosestCity)
}

func TestMergeExpandsProductionShorthand(t *testing.T) {
	w := model.WellRecord{
		BarrelsOilProduced: model.TextNA,
		MCFGasProduced:     model.TextNA,
	}
	e := model.Enrichment{
		BarrelsOilProduced: "1.5M",
		MCFGasProduced:     "423k",
	}

	got := Merge(w, e, false)

	assert.Equal(t, "1500000", got.BarrelsOilProduced)
	assert.Equal(t, "423000", got.MCFGasProduced)
}

func TestMergeIsPure(t *testing.T) {
	w := model.WellRecord{WellStatus: model.TextNA}
	e := model.Enrichment{WellStatus: "Active"}

	_ = Merge(w, e, false)

	assert.Equal(t, model.TextNA, w.WellStatus)
}
