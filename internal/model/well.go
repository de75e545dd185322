// Package model defines the canonical well and stimulation record types
// shared by extraction, enrichment, normalization and storage.
package model

import "time"

// TextNA is the missing-value marker for text fields. Well-level numeric
// fields (total depth, production quantities) are stored as text and use the
// same marker; stimulation numerics use zero instead (see stimulation.go).
// The two conventions are deliberately distinct and must not be merged: the
// empty-row drop rule for stimulation data depends on the zero sentinel.
const TextNA = "N/A"

// North Dakota bounding box. Coordinates outside it are flagged, not dropped.
const (
	LatMin = 45.934
	LatMax = 48.9982
	LonMin = -104.0501
	LonMax = -96.5671
)

// WellRecord is the canonical per-document record of a well. One row in the
// wells table; created once by the assembler, mutated only by the enrichment
// merger (enrichment columns) and the normalization engine.
type WellRecord struct {
	ID               int64    `json:"id"`
	APINumber        string   `json:"api_number"`
	WellFileNo       string   `json:"well_file_no"`
	WellName         string   `json:"well_name"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Address          string   `json:"address"`
	County           string   `json:"county"`
	Field            string   `json:"field"`
	Operator         string   `json:"operator"`
	PermitNumber     string   `json:"permit_number"`
	PermitDate       string   `json:"permit_date"`
	TotalDepth       string   `json:"total_depth"`
	Formation        string   `json:"formation"`
	StimulationNotes string   `json:"stimulation_notes"`
	RawExtract       string   `json:"raw_extract,omitempty"`
	PDFSource        string   `json:"pdf_source"`
	CreatedAt        time.Time `json:"created_at"`

	// Enrichment columns, populated by the DrillingEdge sweep.
	WellStatus         string `json:"well_status"`
	WellType           string `json:"well_type"`
	ClosestCity        string `json:"closest_city"`
	BarrelsOilProduced string `json:"barrels_oil_produced"`
	MCFGasProduced     string `json:"mcf_gas_produced"`
	DrillingEdgeURL    string `json:"drillingedge_url"`
}

// HasCoordinates reports whether both latitude and longitude are present.
// The pair invariant: either both are set or both are nil.
func (w *WellRecord) HasCoordinates() bool {
	return w.Latitude != nil && w.Longitude != nil
}

// Enriched reports whether the DrillingEdge sweep already visited this well.
// The persisted URL doubles as the "already enriched" marker that makes the
// sweep safe to interrupt and restart.
func (w *WellRecord) Enriched() bool {
	return w.DrillingEdgeURL != "" && w.DrillingEdgeURL != TextNA
}

// Enrichment holds the attributes fetched from a DrillingEdge well page.
type Enrichment struct {
	WellStatus         string `json:"well_status"`
	WellType           string `json:"well_type"`
	ClosestCity        string `json:"closest_city"`
	BarrelsOilProduced string `json:"barrels_oil_produced"`
	MCFGasProduced     string `json:"mcf_gas_produced"`
	SourceURL          string `json:"source_url"`
}
