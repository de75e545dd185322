// Package enrich merges DrillingEdge well-page attributes into persisted
// records: a pure merge function, an HTTP fetcher, and a resumable sweep.
package enrich

import (
	"github.com/ndwells/wellbook/internal/model"
	"github.com/ndwells/wellbook/internal/normalize"
)

// Merge folds fetched enrichment attributes into a well record. Each
// attribute is written only when the existing value sits at the missing
// sentinel or force is set, so re-running a sweep over an already-enriched
// well is a no-op by default. Production quantities go through shorthand
// expansion before storage. Pure function: no I/O, input not modified.
func Merge(w model.WellRecord, e model.Enrichment, force bool) model.WellRecord {
	mergeText(&w.WellStatus, e.WellStatus, force)
	mergeText(&w.WellType, e.WellType, force)
	mergeText(&w.ClosestCity, e.ClosestCity, force)
	mergeQuantity(&w.BarrelsOilProduced, e.BarrelsOilProduced, force)
	mergeQuantity(&w.MCFGasProduced, e.MCFGasProduced, force)
	mergeText(&w.DrillingEdgeURL, e.SourceURL, force)
	return w
}

func mergeText(dst *string, src string, force bool) {
	if src == "" {
		return
	}
	if force || *dst == "" || *dst == model.TextNA {
		*dst = src
	}
}

func mergeQuantity(dst *string, src string, force bool) {
	if expanded, ok := normalize.ExpandShorthand(src); ok {
		src = expanded
	}
	mergeText(dst, src, force)
}
