package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ndwells/wellbook/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS wells (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	api_number           TEXT,
	well_file_no         TEXT,
	well_name            TEXT,
	latitude             REAL,
	longitude            REAL,
	address              TEXT,
	county               TEXT,
	field                TEXT,
	operator             TEXT,
	permit_number        TEXT,
	permit_date          TEXT,
	total_depth          TEXT,
	formation            TEXT,
	stimulation_notes    TEXT,
	raw_extract          TEXT,
	pdf_source           TEXT UNIQUE,
	created_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	well_status          TEXT NOT NULL DEFAULT 'N/A',
	well_type            TEXT NOT NULL DEFAULT 'N/A',
	closest_city         TEXT NOT NULL DEFAULT 'N/A',
	barrels_oil_produced TEXT NOT NULL DEFAULT 'N/A',
	mcf_gas_produced     TEXT NOT NULL DEFAULT 'N/A',
	drillingedge_url     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS stimulation_data (
	id                         INTEGER PRIMARY KEY AUTOINCREMENT,
	well_id                    INTEGER NOT NULL REFERENCES wells(id),
	date_stimulated            TEXT,
	stimulated_formation       TEXT,
	top_ft                     REAL,
	bottom_ft                  REAL,
	stimulation_stages         INTEGER,
	volume                     REAL,
	volume_units               TEXT,
	type_treatment             TEXT,
	acid_pct                   TEXT,
	lbs_proppant               REAL,
	max_treatment_pressure_psi REAL,
	max_treatment_rate         REAL,
	details                    TEXT
);

CREATE TABLE IF NOT EXISTS scrape_runs (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	processed   INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME,
	error       TEXT
);

CREATE INDEX IF NOT EXISTS idx_wells_api ON wells(api_number);
CREATE INDEX IF NOT EXISTS idx_wells_file ON wells(well_file_no);
CREATE INDEX IF NOT EXISTS idx_stim_well ON stimulation_data(well_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteWellSelect = `SELECT id, api_number, well_file_no, well_name, latitude, longitude,
	address, county, field, operator, permit_number, permit_date, total_depth,
	formation, stimulation_notes, raw_extract, pdf_source, created_at,
	well_status, well_type, closest_city, barrels_oil_produced, mcf_gas_produced,
	drillingedge_url FROM wells`

func (s *SQLiteStore) UpsertWell(ctx context.Context, w model.WellRecord, stims []model.StimulationRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wells (api_number, well_file_no, well_name, latitude, longitude,
			address, county, field, operator, permit_number, permit_date, total_depth,
			formation, stimulation_notes, raw_extract, pdf_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pdf_source) DO UPDATE SET
			api_number = excluded.api_number,
			well_file_no = excluded.well_file_no,
			well_name = excluded.well_name,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			address = excluded.address,
			county = excluded.county,
			field = excluded.field,
			operator = excluded.operator,
			permit_number = excluded.permit_number,
			permit_date = excluded.permit_date,
			total_depth = excluded.total_depth,
			formation = excluded.formation,
			stimulation_notes = excluded.stimulation_notes,
			raw_extract = excluded.raw_extract`,
		extractionValues(w)...,
	)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: upsert well %s", w.PDFSource)
	}

	var wellID int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM wells WHERE pdf_source = ?`, w.PDFSource).Scan(&wellID); err != nil {
		return 0, eris.Wrapf(err, "sqlite: lookup well %s", w.PDFSource)
	}

	// Same document re-run replaces the old stimulation rows wholesale.
	if _, err := tx.ExecContext(ctx, `DELETE FROM stimulation_data WHERE well_id = ?`, wellID); err != nil {
		return 0, eris.Wrapf(err, "sqlite: clear stimulations for well %d", wellID)
	}
	for _, stim := range stims {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO stimulation_data (well_id, date_stimulated, stimulated_formation,
				top_ft, bottom_ft, stimulation_stages, volume, volume_units, type_treatment,
				acid_pct, lbs_proppant, max_treatment_pressure_psi, max_treatment_rate, details)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			stimValues(wellID, stim)...,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert stimulation for well %d", wellID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrapf(err, "sqlite: commit well %s", w.PDFSource)
	}
	return wellID, nil
}

func (s *SQLiteStore) GetWell(ctx context.Context, id int64) (*model.WellRecord, error) {
	row := s.db.QueryRowContext(ctx, sqliteWellSelect+` WHERE id = ?`, id)
	w, err := scanWell(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get well %d", id)
	}
	return w, nil
}

func (s *SQLiteStore) ListWells(ctx context.Context) ([]model.WellRecord, error) {
	rows, err := s.db.QueryContext(ctx, sqliteWellSelect+` ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list wells")
	}
	defer rows.Close()
	return collectWells(rows)
}

func (s *SQLiteStore) ListStimulations(ctx context.Context, wellID int64) ([]model.StimulationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, well_id, date_stimulated, stimulated_formation, top_ft, bottom_ft,
			stimulation_stages, volume, volume_units, type_treatment, acid_pct,
			lbs_proppant, max_treatment_pressure_psi, max_treatment_rate, details
		FROM stimulation_data WHERE well_id = ?
		ORDER BY date_stimulated = '' OR date_stimulated = 'N/A', date_stimulated, id`,
		wellID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list stimulations for well %d", wellID)
	}
	defer rows.Close()

	var stims []model.StimulationRecord
	for rows.Next() {
		st, err := scanStim(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan stimulation")
		}
		stims = append(stims, st)
	}
	return stims, eris.Wrap(rows.Err(), "sqlite: iterate stimulations")
}

func (s *SQLiteStore) EnrichmentCandidates(ctx context.Context, includeVisited bool) ([]model.WellRecord, error) {
	query := sqliteWellSelect + `
		WHERE api_number IS NOT NULL AND api_number != '' AND api_number != 'N/A'
		  AND well_name IS NOT NULL AND well_name != '' AND well_name != 'N/A'
		  AND county IS NOT NULL AND county != '' AND county != 'N/A'`
	if !includeVisited {
		query += ` AND drillingedge_url = ''`
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: enrichment candidates")
	}
	defer rows.Close()
	return collectWells(rows)
}

func (s *SQLiteStore) UpdateEnrichment(ctx context.Context, w model.WellRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE wells SET well_status = ?, well_type = ?, closest_city = ?,
			barrels_oil_produced = ?, mcf_gas_produced = ?, drillingedge_url = ?
		WHERE id = ?`,
		w.WellStatus, w.WellType, w.ClosestCity,
		w.BarrelsOilProduced, w.MCFGasProduced, w.DrillingEdgeURL, w.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update enrichment for well %d", w.ID)
	}
	return checkRowsAffected(res, w.ID)
}

func (s *SQLiteStore) UpdateWell(ctx context.Context, w model.WellRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE wells SET api_number = ?, well_file_no = ?, well_name = ?, latitude = ?,
			longitude = ?, address = ?, county = ?, field = ?, operator = ?,
			permit_number = ?, permit_date = ?, total_depth = ?, formation = ?,
			stimulation_notes = ?, well_status = ?, well_type = ?, closest_city = ?,
			barrels_oil_produced = ?, mcf_gas_produced = ?, drillingedge_url = ?
		WHERE id = ?`,
		w.APINumber, w.WellFileNo, w.WellName, nullableFloat(w.Latitude),
		nullableFloat(w.Longitude), w.Address, w.County, w.Field, w.Operator,
		w.PermitNumber, w.PermitDate, w.TotalDepth, w.Formation,
		w.StimulationNotes, w.WellStatus, w.WellType, w.ClosestCity,
		w.BarrelsOilProduced, w.MCFGasProduced, w.DrillingEdgeURL, w.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update well %d", w.ID)
	}
	return checkRowsAffected(res, w.ID)
}

func (s *SQLiteStore) UpdateStimulation(ctx context.Context, st model.StimulationRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE stimulation_data SET date_stimulated = ?, stimulated_formation = ?,
			top_ft = ?, bottom_ft = ?, stimulation_stages = ?, volume = ?,
			volume_units = ?, type_treatment = ?, acid_pct = ?, lbs_proppant = ?,
			max_treatment_pressure_psi = ?, max_treatment_rate = ?, details = ?
		WHERE id = ?`,
		st.DateStimulated, st.StimulatedFormation, st.TopFt, st.BottomFt,
		st.StimulationStages, st.Volume, st.VolumeUnits, st.TypeTreatment,
		st.AcidPct, st.LbsProppant, st.MaxTreatmentPressurePSI, st.MaxTreatmentRate,
		st.Details, st.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update stimulation %d", st.ID)
	}
	return checkRowsAffected(res, st.ID)
}

func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	for _, q := range []struct {
		query string
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM wells`, &stats.Wells},
		{`SELECT COUNT(*) FROM wells WHERE latitude IS NOT NULL AND longitude IS NOT NULL`, &stats.WithCoordinates},
		{`SELECT COUNT(*) FROM stimulation_data`, &stats.Stimulations},
		{`SELECT COUNT(*) FROM wells WHERE drillingedge_url != '' AND drillingedge_url != 'N/A'`, &stats.Enriched},
	} {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dst); err != nil {
			return Stats{}, eris.Wrap(err, "sqlite: stats")
		}
	}
	return stats, nil
}

func (s *SQLiteStore) StartRun(ctx context.Context, kind string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scrape_runs (id, kind, status, started_at) VALUES (?, ?, 'running', ?)`,
		id, kind, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: start run")
	}
	return id, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, processed int, runErr error) error {
	status, errText := "complete", ""
	if runErr != nil {
		status, errText = "failed", runErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE scrape_runs SET status = ?, processed = ?, finished_at = ?, error = ? WHERE id = ?`,
		status, processed, time.Now().UTC(), errText, runID,
	)
	return eris.Wrapf(err, "sqlite: complete run %s", runID)
}

// helpers

func checkRowsAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("row not found: %d", id)
	}
	return nil
}

func extractionValues(w model.WellRecord) []any {
	return []any{
		w.APINumber, w.WellFileNo, w.WellName,
		nullableFloat(w.Latitude), nullableFloat(w.Longitude),
		w.Address, w.County, w.Field, w.Operator, w.PermitNumber, w.PermitDate,
		w.TotalDepth, w.Formation, w.StimulationNotes, w.RawExtract, w.PDFSource,
	}
}

func stimValues(wellID int64, s model.StimulationRecord) []any {
	return []any{
		wellID, s.DateStimulated, s.StimulatedFormation, s.TopFt, s.BottomFt,
		s.StimulationStages, s.Volume, s.VolumeUnits, s.TypeTreatment, s.AcidPct,
		s.LbsProppant, s.MaxTreatmentPressurePSI, s.MaxTreatmentRate, s.Details,
	}
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

type scannable interface {
	Scan(dest ...any) error
}

func scanWell(row scannable) (*model.WellRecord, error) {
	var w model.WellRecord
	var lat, lon sql.NullFloat64
	var createdAt sql.NullTime

	err := row.Scan(
		&w.ID, &w.APINumber, &w.WellFileNo, &w.WellName, &lat, &lon,
		&w.Address, &w.County, &w.Field, &w.Operator, &w.PermitNumber,
		&w.PermitDate, &w.TotalDepth, &w.Formation, &w.StimulationNotes,
		&w.RawExtract, &w.PDFSource, &createdAt,
		&w.WellStatus, &w.WellType, &w.ClosestCity,
		&w.BarrelsOilProduced, &w.MCFGasProduced, &w.DrillingEdgeURL,
	)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		w.Latitude = &lat.Float64
	}
	if lon.Valid {
		w.Longitude = &lon.Float64
	}
	if createdAt.Valid {
		w.CreatedAt = createdAt.Time
	}
	return &w, nil
}

func scanStim(row scannable) (model.StimulationRecord, error) {
	var s model.StimulationRecord
	err := row.Scan(
		&s.ID, &s.WellID, &s.DateStimulated, &s.StimulatedFormation, &s.TopFt,
		&s.BottomFt, &s.StimulationStages, &s.Volume, &s.VolumeUnits,
		&s.TypeTreatment, &s.AcidPct, &s.LbsProppant, &s.MaxTreatmentPressurePSI,
		&s.MaxTreatmentRate, &s.Details,
	)
	return s, err
}

func collectWells(rows *sql.Rows) ([]model.WellRecord, error) {
	var wells []model.WellRecord
	for rows.Next() {
		w, err := scanWell(rows)
		if err != nil {
			return nil, eris.Wrap(err, "scan well")
		}
		wells = append(wells, *w)
	}
	return wells, eris.Wrap(rows.Err(), "iterate wells")
}
