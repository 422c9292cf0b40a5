package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geosight/internal/core"
	"geosight/internal/domain/model"
	"geosight/internal/pkg/metrics"
)

type Handler struct {
	service *core.AnalysisService
}

func NewHandler(service *core.AnalysisService) *Handler {
	return &Handler{service: service}
}

// Routes wires the HTTP surface.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/analyze", h.Analyze).Methods(http.MethodPost)
	r.HandleFunc("/api/geocode", h.Geocode).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

type AnalyzeRequest struct {
	Place     string  `json:"place"`
	RadiusKm  float64 `json:"radius_km"`
	Attribute string  `json:"attribute"`
}

// Analyze runs the full pipeline for a place and returns the report.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Place == "" {
		respondError(w, http.StatusBadRequest, "place is required")
		return
	}
	if req.Attribute == "" {
		req.Attribute = "population"
	}

	report, err := h.service.Analyze(r.Context(), req.Place, req.RadiusKm, req.Attribute)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			slog.Error("analysis failed", "place", req.Place, "error", err)
		}
		metrics.AnalysesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
		respondError(w, status, err.Error())
		return
	}

	metrics.AnalysesTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	respondJSON(w, http.StatusOK, report)
}

// Geocode resolves a place name without running any analysis.
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	place := r.URL.Query().Get("place")
	if place == "" {
		respondError(w, http.StatusBadRequest, "place query parameter is required")
		return
	}

	coord, err := h.service.Locate(r.Context(), place)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, coord)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrGeocodeFailure):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrAcquisitionFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
