package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndwells/wellbook/internal/model"
)

const wellPage = `<html><body>
<p class="block_stat"><span class="dropcap">423.5k</span> Barrels of Oil Produced</p>
<p class="block_stat"><span class="dropcap">1,250,000</span> MCF of Gas Produced</p>
<table class="table">
<tr><th>Well Status</th><td>Active</td></tr>
<tr><th>Well Type</th><td>Oil &amp; Gas</td></tr>
<tr><th>Closest City</th><td><a href="/x">Watford City</a></td></tr>
<tr><th>Township</th><td>151N</td></tr>
</table>
</body></html>`

func testFetcher(baseURL string) *DrillingEdge {
	return NewDrillingEdge(DrillingEdgeOptions{
		BaseURL:    baseURL,
		Delay:      time.Millisecond,
		MaxRetries: 2,
	})
}

func candidateWell() model.WellRecord {
	return model.WellRecord{
		APINumber: "33-053-01234",
		WellName:  "Smith Federal 1-23H",
		County:    "Mckenzie",
	}
}

func TestWellURL(t *testing.T) {
	d := NewDrillingEdge(DrillingEdgeOptions{})
	got := d.WellURL(candidateWell())
	assert.Equal(t,
		"https://www.drillingedge.com/north-dakota/mckenzie/wells/smith-federal-1-23h/33-053-01234",
		got)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "smith-federal-1-23h", slugify("Smith  Federal #1-23H"))
	assert.Equal(t, "o-brien", slugify("O'Brien"))
	assert.Equal(t, "dunn", slugify("  Dunn  "))
}

func TestFetchParsesWellPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(wellPage))
	}))
	defer srv.Close()

	e, err := testFetcher(srv.URL).Fetch(context.Background(), candidateWell())
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "Active", e.WellStatus)
	assert.Equal(t, "Oil & Gas", e.WellType)
	assert.Equal(t, "Watford City", e.ClosestCity)
	assert.Equal(t, "423.5k", e.BarrelsOilProduced)
	assert.Equal(t, "1,250,000", e.MCFGasProduced)
	assert.Contains(t, e.SourceURL, "/wells/smith-federal-1-23h/")
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e, err := testFetcher(srv.URL).Fetch(context.Background(), candidateWell())
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(wellPage))
	}))
	defer srv.Close()

	e, err := testFetcher(srv.URL).Fetch(context.Background(), candidateWell())
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).Fetch(context.Background(), candidateWell())
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestParseWellPageEmpty(t *testing.T) {
	e := parseWellPage("<html><body>nothing here</body></html>")
	assert.Empty(t, e.WellStatus)
	assert.Empty(t, e.BarrelsOilProduced)
}
