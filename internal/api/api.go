// Package api exposes the stored well data as a read-only JSON API for the
// map front end.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ndwells/wellbook/internal/model"
	"github.com/ndwells/wellbook/internal/store"
)

// Server holds the route handlers. All endpoints are read-only; writes go
// through the CLI pipeline, never through HTTP.
type Server struct {
	store store.Store
}

func NewServer(st store.Store) *Server {
	return &Server{store: st}
}

// Router builds the chi router. The front end is served from a different
// origin, so CORS is open for GET.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/wells", s.handleListWells)
	r.Get("/api/wells/{id}", s.handleGetWell)
	r.Get("/api/stats", s.handleStats)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// wellResponse is a well with its stimulation rows attached, the shape the
// map popup consumes in one request.
type wellResponse struct {
	model.WellRecord
	Stimulations []model.StimulationRecord `json:"stimulations"`
}

// wellSummary is the list projection: just enough to place a marker on the
// map. The full record comes from GET /api/wells/{id}.
type wellSummary struct {
	ID        int64    `json:"id"`
	WellName  string   `json:"well_name"`
	APINumber string   `json:"api_number"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	County    string   `json:"county"`
}

// handleListWells returns only wells that can be plotted; rows without a
// coordinate pair are reachable by id but never listed.
func (s *Server) handleListWells(w http.ResponseWriter, r *http.Request) {
	wells, err := s.store.ListWells(r.Context())
	if err != nil {
		serverError(w, "list wells", err)
		return
	}

	out := make([]wellSummary, 0, len(wells))
	for _, well := range wells {
		if !well.HasCoordinates() {
			continue
		}
		out = append(out, wellSummary{
			ID:        well.ID,
			WellName:  well.WellName,
			APINumber: well.APINumber,
			Latitude:  well.Latitude,
			Longitude: well.Longitude,
			County:    well.County,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetWell(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid well id")
		return
	}

	well, err := s.store.GetWell(r.Context(), id)
	if err != nil {
		serverError(w, "get well", err)
		return
	}
	if well == nil {
		writeError(w, http.StatusNotFound, "well not found")
		return
	}

	stims, err := s.store.ListStimulations(r.Context(), id)
	if err != nil {
		serverError(w, "list stimulations", err)
		return
	}
	if stims == nil {
		stims = []model.StimulationRecord{}
	}
	writeJSON(w, http.StatusOK, wellResponse{WellRecord: *well, Stimulations: stims})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		serverError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func serverError(w http.ResponseWriter, action string, err error) {
	zap.L().Error("api request failed", zap.String("action", action), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
