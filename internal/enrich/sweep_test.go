package enrich

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ndwells/wellbook/internal/model"
	"github.com/ndwells/wellbook/internal/store"
)

type stubFetcher struct {
	results map[string]*model.Enrichment
	errs    map[string]error
	calls   []string
}

func (f *stubFetcher) Fetch(_ context.Context, w model.WellRecord) (*model.Enrichment, error) {
	f.calls = append(f.calls, w.WellName)
	if err := f.errs[w.WellName]; err != nil {
		return nil, err
	}
	return f.results[w.WellName], nil
}

func newSweepStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "sweep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func seedWell(t *testing.T, s store.Store, name string) int64 {
	t.Helper()
	id, err := s.UpsertWell(context.Background(), model.WellRecord{
		APINumber:          "33-053-01234",
		WellName:           name,
		County:             "Mckenzie",
		PDFSource:          name + ".pdf",
		WellStatus:         model.TextNA,
		WellType:           model.TextNA,
		ClosestCity:        model.TextNA,
		BarrelsOilProduced: model.TextNA,
		MCFGasProduced:     model.TextNA,
	}, nil)
	require.NoError(t, err)
	return id
}

func TestSweepEnrichesAndPersists(t *testing.T) {
	s := newSweepStore(t)
	ctx := context.Background()
	id := seedWell(t, s, "Alpha 1")

	f := &stubFetcher{results: map[string]*model.Enrichment{
		"Alpha 1": {
			WellStatus:         "Active",
			WellType:           "Oil",
			ClosestCity:        "Watford City",
			BarrelsOilProduced: "1.2M",
			SourceURL:          "https://www.drillingedge.com/a",
		},
	}}

	res, err := NewSweeper(s, f).Run(ctx, SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Candidates)
	assert.Equal(t, 1, res.Enriched)

	got, err := s.GetWell(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Active", got.WellStatus)
	assert.Equal(t, "1200000", got.BarrelsOilProduced, "shorthand expands on merge")
	assert.Equal(t, "https://www.drillingedge.com/a", got.DrillingEdgeURL)
	assert.True(t, got.Enriched())
}

func TestSweepMarksNotFound(t *testing.T) {
	s := newSweepStore(t)
	ctx := context.Background()
	id := seedWell(t, s, "Ghost 1")

	f := &stubFetcher{} // every lookup returns nil, nil

	res, err := NewSweeper(s, f).Run(ctx, SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.NotFound)

	got, err := s.GetWell(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.TextNA, got.DrillingEdgeURL)

	// The miss is recorded, so the next sweep has nothing to do.
	res, err = NewSweeper(s, f).Run(ctx, SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Candidates)
}

func TestSweepSkipsFailedWell(t *testing.T) {
	s := newSweepStore(t)
	ctx := context.Background()
	seedWell(t, s, "Alpha 1")
	okID := seedWell(t, s, "Beta 2")

	f := &stubFetcher{
		errs: map[string]error{"Alpha 1": eris.New("connection reset")},
		results: map[string]*model.Enrichment{
			"Beta 2": {WellStatus: "Active", SourceURL: "https://www.drillingedge.com/b"},
		},
	}

	res, err := NewSweeper(s, f).Run(ctx, SweepOptions{})
	require.NoError(t, err, "per-well failures do not abort the sweep")
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Enriched)

	got, err := s.GetWell(ctx, okID)
	require.NoError(t, err)
	assert.Equal(t, "Active", got.WellStatus)
}

func TestSweepDryRun(t *testing.T) {
	s := newSweepStore(t)
	ctx := context.Background()
	id := seedWell(t, s, "Alpha 1")

	f := &stubFetcher{results: map[string]*model.Enrichment{
		"Alpha 1": {WellStatus: "Active", SourceURL: "https://www.drillingedge.com/a"},
	}}

	res, err := NewSweeper(s, f).Run(ctx, SweepOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Enriched)

	got, err := s.GetWell(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.TextNA, got.WellStatus, "dry run must not write")
	assert.False(t, got.Enriched())
}

func TestSweepDryRunSkipsRunLog(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sweep.db")
	s, err := store.NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(ctx))
	seedWell(t, s, "Alpha 1")

	f := &stubFetcher{results: map[string]*model.Enrichment{
		"Alpha 1": {WellStatus: "Active", SourceURL: "https://www.drillingedge.com/a"},
	}}

	_, err = NewSweeper(s, f).Run(ctx, SweepOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 0, countRuns(t, dbPath), "dry run must not log a run")

	_, err = NewSweeper(s, f).Run(ctx, SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, countRuns(t, dbPath))
}

func countRuns(t *testing.T, dbPath string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM scrape_runs").Scan(&n))
	return n
}

func TestSweepLimit(t *testing.T) {
	s := newSweepStore(t)
	seedWell(t, s, "Alpha 1")
	seedWell(t, s, "Beta 2")
	seedWell(t, s, "Gamma 3")

	f := &stubFetcher{}
	res, err := NewSweeper(s, f).Run(context.Background(), SweepOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Candidates)
	assert.Len(t, f.calls, 2)
}
