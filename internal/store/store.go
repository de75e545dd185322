// Package store persists well and stimulation records behind a Store
// interface with SQLite and Postgres backends.
package store

import (
	"context"
	"time"

	"github.com/ndwells/wellbook/internal/model"
)

// Store is the persistence contract for the extraction and enrichment
// pipelines. One document's well and stimulation rows are written as a
// single transaction.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	// UpsertWell writes a well keyed on pdf_source and replaces its
	// stimulation rows; re-processing the same document overwrites the
	// extraction columns but leaves enrichment columns untouched.
	UpsertWell(ctx context.Context, w model.WellRecord, stims []model.StimulationRecord) (int64, error)

	GetWell(ctx context.Context, id int64) (*model.WellRecord, error)
	ListWells(ctx context.Context) ([]model.WellRecord, error)
	ListStimulations(ctx context.Context, wellID int64) ([]model.StimulationRecord, error)

	// EnrichmentCandidates returns wells with enough identity for a page
	// lookup. Already-visited wells are excluded unless includeVisited is
	// set (the rescrape flag); that exclusion is what makes an interrupted
	// sweep resumable.
	EnrichmentCandidates(ctx context.Context, includeVisited bool) ([]model.WellRecord, error)
	UpdateEnrichment(ctx context.Context, w model.WellRecord) error

	// UpdateWell rewrites every non-source column, used by the preprocess
	// pass write-back.
	UpdateWell(ctx context.Context, w model.WellRecord) error
	UpdateStimulation(ctx context.Context, s model.StimulationRecord) error

	Stats(ctx context.Context) (Stats, error)

	StartRun(ctx context.Context, kind string) (string, error)
	CompleteRun(ctx context.Context, runID string, processed int, runErr error) error
}

// Stats summarizes table contents for the status command.
type Stats struct {
	Wells           int64 `json:"wells"`
	WithCoordinates int64 `json:"with_coordinates"`
	Stimulations    int64 `json:"stimulations"`
	Enriched        int64 `json:"enriched"`
}

// Run is one extract or enrich invocation recorded in the run log.
type Run struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Status     string     `json:"status"`
	Processed  int        `json:"processed"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// wellColumns lists the extraction columns in insert order; enrichment
// columns are managed separately so a re-extract cannot clobber them.
var wellColumns = []string{
	"api_number", "well_file_no", "well_name", "latitude", "longitude",
	"address", "county", "field", "operator", "permit_number", "permit_date",
	"total_depth", "formation", "stimulation_notes", "raw_extract", "pdf_source",
}

var stimColumns = []string{
	"well_id", "date_stimulated", "stimulated_formation", "top_ft", "bottom_ft",
	"stimulation_stages", "volume", "volume_units", "type_treatment", "acid_pct",
	"lbs_proppant", "max_treatment_pressure_psi", "max_treatment_rate", "details",
}
