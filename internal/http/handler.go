package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/davidbz/propwise/internal/domain"
	"github.com/davidbz/propwise/internal/observability"
)

// Handler handles HTTP requests.
type Handler struct {
	orchestrator *domain.Orchestrator
	cache        *domain.CacheStore
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(orchestrator *domain.Orchestrator, cache *domain.CacheStore) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		cache:        cache,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type indexResponse struct {
	PropertyID  int64  `json:"property_id"`
	EmbeddingID string `json:"embedding_id"`
}

type healthResponse struct {
	Status string              `json:"status"`
	Cache  []domain.TierStatus `json:"cache"`
}

// HandleSearch runs a property search.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ValidationError("decode search", "invalid request body: %v", err))
		return
	}

	result, info, err := h.orchestrator.Search(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	observability.FromContext(ctx).Info("search served",
		observability.Int("results", len(result.Items)),
		observability.String("cache", string(info.Status)))

	setCacheHeaders(w, &info)
	writeJSON(w, r, http.StatusOK, result)
}

// HandleAnalysis returns the investment analysis of a property.
func (h *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	analysis, info, err := h.orchestrator.Analyze(r.Context(), propertyID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setCacheHeaders(w, &info)
	writeJSON(w, r, http.StatusOK, analysis)
}

// HandleIndex embeds a stored property into the vector index.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	embeddingID, err := h.orchestrator.IndexProperty(r.Context(), propertyID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, indexResponse{PropertyID: propertyID, EmbeddingID: embeddingID})
}

// HandleTrends returns the market trend report of a city.
func (h *Handler) HandleTrends(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	report, info, err := h.orchestrator.Trends(r.Context(), query.Get("city"), query.Get("timeframe"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	setCacheHeaders(w, &info)
	writeJSON(w, r, http.StatusOK, report)
}

// HandleHealth reports cache tier availability. Unreachable tiers degrade the
// service without failing it.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "healthy", Cache: []domain.TierStatus{}}
	if h.cache != nil {
		resp.Cache = h.cache.Status(r.Context())
	}

	for _, tier := range resp.Cache {
		if !tier.Available {
			resp.Status = "degraded"
		}
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ValidationError("parse property id", "invalid property id %q", raw)
	}
	return id, nil
}

// setCacheHeaders reports how the response was served.
func setCacheHeaders(w http.ResponseWriter, info *domain.CacheInfo) {
	if info == nil || info.Status == "" {
		return
	}

	if info.Status == domain.CacheHit {
		w.Header().Set("X-Propwise-Cache", "HIT")
		if !info.StoredAt.IsZero() {
			w.Header().Set("X-Propwise-Cache-Timestamp", info.StoredAt.UTC().Format(time.RFC3339))
		}
		return
	}

	w.Header().Set("X-Propwise-Cache", "MISS")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		observability.FromContext(r.Context()).Error("request failed",
			observability.String("path", r.URL.Path),
			observability.Error(err))
	}

	writeJSON(w, r, status, errorResponse{Error: err.Error(), Kind: string(domain.KindOf(err))})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(r.Context()).Error("failed to encode response",
			observability.Error(fmt.Errorf("encode %T: %w", body, err)))
	}
}
