package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndwells/wellbook/internal/model"
	"github.com/ndwells/wellbook/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, int64) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	lat, lon := 47.5, -103.2
	id, err := st.UpsertWell(context.Background(), model.WellRecord{
		APINumber: "33-053-01234",
		WellName:  "Smith Federal 1-23H",
		County:    "Mckenzie",
		Latitude:  &lat,
		Longitude: &lon,
		PDFSource: "W12345.pdf",
	}, []model.StimulationRecord{{TypeTreatment: "Sand Frac", LbsProppant: 4000000}})
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer(st).Router())
	t.Cleanup(srv.Close)
	return srv, id
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, srv.URL+"/api/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestListWells(t *testing.T) {
	srv, _ := newTestServer(t)

	var wells []map[string]any
	resp := getJSON(t, srv.URL+"/api/wells", &wells)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.Len(t, wells, 1)
	assert.Equal(t, "Smith Federal 1-23H", wells[0]["well_name"])
	assert.InDelta(t, 47.5, wells[0]["latitude"], 1e-9)

	// Slim projection only: no raw extract, no embedded stimulations.
	assert.NotContains(t, wells[0], "raw_extract")
	assert.NotContains(t, wells[0], "stimulations")
	assert.NotContains(t, wells[0], "operator")
}

func TestListWellsSkipsUnplottable(t *testing.T) {
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	lat, lon := 47.5, -103.2
	_, err = st.UpsertWell(context.Background(), model.WellRecord{
		WellName:  "Smith Federal 1-23H",
		Latitude:  &lat,
		Longitude: &lon,
		PDFSource: "W12345.pdf",
	}, nil)
	require.NoError(t, err)
	id, err := st.UpsertWell(context.Background(), model.WellRecord{
		WellName:  "Jones 2-14",
		PDFSource: "W20001.pdf",
	}, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer(st).Router())
	t.Cleanup(srv.Close)

	var wells []map[string]any
	getJSON(t, srv.URL+"/api/wells", &wells)
	require.Len(t, wells, 1)
	assert.Equal(t, "Smith Federal 1-23H", wells[0]["well_name"])

	// Still reachable by id even though it never appears in the list.
	var well map[string]any
	resp := getJSON(t, srv.URL+"/api/wells/"+strconv.FormatInt(id, 10), &well)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jones 2-14", well["well_name"])
}

func TestGetWell(t *testing.T) {
	srv, id := newTestServer(t)

	var well map[string]any
	resp := getJSON(t, srv.URL+"/api/wells/"+strconv.FormatInt(id, 10), &well)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "33-053-01234", well["api_number"])
	assert.InDelta(t, 47.5, well["latitude"], 1e-9)
}

func TestGetWellNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/wells/99999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetWellBadID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/wells/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStats(t *testing.T) {
	srv, _ := newTestServer(t)

	var stats store.Stats
	resp := getJSON(t, srv.URL+"/api/stats", &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), stats.Wells)
	assert.Equal(t, int64(1), stats.WithCoordinates)
	assert.Equal(t, int64(1), stats.Stimulations)
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/wells", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
