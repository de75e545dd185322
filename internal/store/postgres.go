package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/ndwells/wellbook/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs. pgxmock implements it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects to the given database URL.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS wells (
	id                   BIGSERIAL PRIMARY KEY,
	api_number           TEXT,
	well_file_no         TEXT,
	well_name            TEXT,
	latitude             DOUBLE PRECISION,
	longitude            DOUBLE PRECISION,
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
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	well_status          TEXT NOT NULL DEFAULT 'N/A',
	well_type            TEXT NOT NULL DEFAULT 'N/A',
	closest_city         TEXT NOT NULL DEFAULT 'N/A',
	barrels_oil_produced TEXT NOT NULL DEFAULT 'N/A',
	mcf_gas_produced     TEXT NOT NULL DEFAULT 'N/A',
	drillingedge_url     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS stimulation_data (
	id                         BIGSERIAL PRIMARY KEY,
	well_id                    BIGINT NOT NULL REFERENCES wells(id),
	date_stimulated            TEXT,
	stimulated_formation       TEXT,
	top_ft                     DOUBLE PRECISION,
	bottom_ft                  DOUBLE PRECISION,
	stimulation_stages         INTEGER,
	volume                     DOUBLE PRECISION,
	volume_units               TEXT,
	type_treatment             TEXT,
	acid_pct                   TEXT,
	lbs_proppant               DOUBLE PRECISION,
	max_treatment_pressure_psi DOUBLE PRECISION,
	max_treatment_rate         DOUBLE PRECISION,
	details                    TEXT
);

CREATE TABLE IF NOT EXISTS scrape_runs (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	processed   INTEGER NOT NULL DEFAULT 0,
	started_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ,
	error       TEXT
);

CREATE INDEX IF NOT EXISTS idx_wells_api ON wells(api_number);
CREATE INDEX IF NOT EXISTS idx_wells_file ON wells(well_file_no);
CREATE INDEX IF NOT EXISTS idx_stim_well ON stimulation_data(well_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const pgWellSelect = `SELECT id, api_number, well_file_no, well_name, latitude, longitude,
	address, county, field, operator, permit_number, permit_date, total_depth,
	formation, stimulation_notes, raw_extract, pdf_source, created_at,
	well_status, well_type, closest_city, barrels_oil_produced, mcf_gas_produced,
	drillingedge_url FROM wells`

func (s *PostgresStore) UpsertWell(ctx context.Context, w model.WellRecord, stims []model.StimulationRecord) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin upsert")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var wellID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO wells (api_number, well_file_no, well_name, latitude, longitude,
			address, county, field, operator, permit_number, permit_date, total_depth,
			formation, stimulation_notes, raw_extract, pdf_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (pdf_source) DO UPDATE SET
			api_number = EXCLUDED.api_number,
			well_file_no = EXCLUDED.well_file_no,
			well_name = EXCLUDED.well_name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			address = EXCLUDED.address,
			county = EXCLUDED.county,
			field = EXCLUDED.field,
			operator = EXCLUDED.operator,
			permit_number = EXCLUDED.permit_number,
			permit_date = EXCLUDED.permit_date,
			total_depth = EXCLUDED.total_depth,
			formation = EXCLUDED.formation,
			stimulation_notes = EXCLUDED.stimulation_notes,
			raw_extract = EXCLUDED.raw_extract
		RETURNING id`,
		extractionValues(w)...,
	).Scan(&wellID)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: upsert well %s", w.PDFSource)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM stimulation_data WHERE well_id = $1`, wellID); err != nil {
		return 0, eris.Wrapf(err, "postgres: clear stimulations for well %d", wellID)
	}
	for _, stim := range stims {
		_, err := tx.Exec(ctx, `
			INSERT INTO stimulation_data (well_id, date_stimulated, stimulated_formation,
				top_ft, bottom_ft, stimulation_stages, volume, volume_units, type_treatment,
				acid_pct, lbs_proppant, max_treatment_pressure_psi, max_treatment_rate, details)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			stimValues(wellID, stim)...,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: insert stimulation for well %d", wellID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrapf(err, "postgres: commit well %s", w.PDFSource)
	}
	return wellID, nil
}

func (s *PostgresStore) GetWell(ctx context.Context, id int64) (*model.WellRecord, error) {
	row := s.pool.QueryRow(ctx, pgWellSelect+` WHERE id = $1`, id)
	w, err := scanWell(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get well %d", id)
	}
	return w, nil
}

func (s *PostgresStore) ListWells(ctx context.Context) ([]model.WellRecord, error) {
	rows, err := s.pool.Query(ctx, pgWellSelect+` ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list wells")
	}
	defer rows.Close()
	return collectPgWells(rows)
}

func (s *PostgresStore) ListStimulations(ctx context.Context, wellID int64) ([]model.StimulationRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, well_id, date_stimulated, stimulated_formation, top_ft, bottom_ft,
			stimulation_stages, volume, volume_units, type_treatment, acid_pct,
			lbs_proppant, max_treatment_pressure_psi, max_treatment_rate, details
		FROM stimulation_data WHERE well_id = $1
		ORDER BY date_stimulated = '' OR date_stimulated = 'N/A', date_stimulated, id`,
		wellID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list stimulations for well %d", wellID)
	}
	defer rows.Close()

	var stims []model.StimulationRecord
	for rows.Next() {
		st, err := scanStim(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan stimulation")
		}
		stims = append(stims, st)
	}
	return stims, eris.Wrap(rows.Err(), "postgres: iterate stimulations")
}

func (s *PostgresStore) EnrichmentCandidates(ctx context.Context, includeVisited bool) ([]model.WellRecord, error) {
	query := pgWellSelect + `
		WHERE api_number IS NOT NULL AND api_number != '' AND api_number != 'N/A'
		  AND well_name IS NOT NULL AND well_name != '' AND well_name != 'N/A'
		  AND county IS NOT NULL AND county != '' AND county != 'N/A'`
	if !includeVisited {
		query += ` AND drillingedge_url = ''`
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: enrichment candidates")
	}
	defer rows.Close()
	return collectPgWells(rows)
}

func (s *PostgresStore) UpdateEnrichment(ctx context.Context, w model.WellRecord) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE wells SET well_status = $1, well_type = $2, closest_city = $3,
			barrels_oil_produced = $4, mcf_gas_produced = $5, drillingedge_url = $6
		WHERE id = $7`,
		w.WellStatus, w.WellType, w.ClosestCity,
		w.BarrelsOilProduced, w.MCFGasProduced, w.DrillingEdgeURL, w.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update enrichment for well %d", w.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("row not found: %d", w.ID)
	}
	return nil
}

func (s *PostgresStore) UpdateWell(ctx context.Context, w model.WellRecord) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE wells SET api_number = $1, well_file_no = $2, well_name = $3,
			latitude = $4, longitude = $5, address = $6, county = $7, field = $8,
			operator = $9, permit_number = $10, permit_date = $11, total_depth = $12,
			formation = $13, stimulation_notes = $14, well_status = $15,
			well_type = $16, closest_city = $17, barrels_oil_produced = $18,
			mcf_gas_produced = $19, drillingedge_url = $20
		WHERE id = $21`,
		w.APINumber, w.WellFileNo, w.WellName, nullableFloat(w.Latitude),
		nullableFloat(w.Longitude), w.Address, w.County, w.Field, w.Operator,
		w.PermitNumber, w.PermitDate, w.TotalDepth, w.Formation,
		w.StimulationNotes, w.WellStatus, w.WellType, w.ClosestCity,
		w.BarrelsOilProduced, w.MCFGasProduced, w.DrillingEdgeURL, w.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update well %d", w.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("row not found: %d", w.ID)
	}
	return nil
}

func (s *PostgresStore) UpdateStimulation(ctx context.Context, st model.StimulationRecord) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE stimulation_data SET date_stimulated = $1, stimulated_formation = $2,
			top_ft = $3, bottom_ft = $4, stimulation_stages = $5, volume = $6,
			volume_units = $7, type_treatment = $8, acid_pct = $9, lbs_proppant = $10,
			max_treatment_pressure_psi = $11, max_treatment_rate = $12, details = $13
		WHERE id = $14`,
		st.DateStimulated, st.StimulatedFormation, st.TopFt, st.BottomFt,
		st.StimulationStages, st.Volume, st.VolumeUnits, st.TypeTreatment,
		st.AcidPct, st.LbsProppant, st.MaxTreatmentPressurePSI, st.MaxTreatmentRate,
		st.Details, st.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update stimulation %d", st.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("row not found: %d", st.ID)
	}
	return nil
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM wells),
			(SELECT COUNT(*) FROM wells WHERE latitude IS NOT NULL AND longitude IS NOT NULL),
			(SELECT COUNT(*) FROM stimulation_data),
			(SELECT COUNT(*) FROM wells WHERE drillingedge_url != '' AND drillingedge_url != 'N/A')`,
	).Scan(&stats.Wells, &stats.WithCoordinates, &stats.Stimulations, &stats.Enriched)
	if err != nil {
		return Stats{}, eris.Wrap(err, "postgres: stats")
	}
	return stats, nil
}

func (s *PostgresStore) StartRun(ctx context.Context, kind string) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scrape_runs (id, kind, status, started_at) VALUES ($1, $2, 'running', $3)`,
		id, kind, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: start run")
	}
	return id, nil
}

func (s *PostgresStore) CompleteRun(ctx context.Context, runID string, processed int, runErr error) error {
	status, errText := "complete", ""
	if runErr != nil {
		status, errText = "failed", runErr.Error()
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE scrape_runs SET status = $1, processed = $2, finished_at = $3, error = $4 WHERE id = $5`,
		status, processed, time.Now().UTC(), errText, runID,
	)
	return eris.Wrapf(err, "postgres: complete run %s", runID)
}

func collectPgWells(rows pgx.Rows) ([]model.WellRecord, error) {
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
