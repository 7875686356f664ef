package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/engine"
	"github.com/driftlab/ampmap/internal/event"
	"github.com/driftlab/ampmap/internal/metrics"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(eng *engine.Engine, loader *config.Loader) http.Handler {
	h := &Handler{eng: eng, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/map", h.mapEvent)
	h.mux.HandleFunc("POST /v1/map/batch", h.mapBatch)
	h.mux.HandleFunc("GET /v1/settings", h.showSettings)
	h.mux.HandleFunc("POST /v1/settings/reload", h.reloadSettings)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// mapRequest is the body of both mapping endpoints. Inline settings, when
// present, override the loaded destination settings for this request only.
type mapRequest struct {
	Event    *event.Envelope   `json:"event,omitempty"`
	Events   []*event.Envelope `json:"events,omitempty"`
	Settings *config.Settings  `json:"settings,omitempty"`
}

// POST /v1/map — synchronous single-event mapping.
func (h *Handler) mapEvent(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if req.Event == nil {
		writeError(w, http.StatusBadRequest, "event is required")
		return
	}
	if req.Event.Type == "" {
		writeError(w, http.StatusBadRequest, "event type is required")
		return
	}
	if req.Settings != nil {
		if err := config.ValidateSettings(req.Settings); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Event.MessageID == "" {
		req.Event.MessageID = uuid.New().String()
	}
	req.Event.ReceivedAt = time.Now()

	res, err := h.eng.MapSync(r.Context(), req.Event, req.Settings)
	if err != nil {
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/map/batch — async batch mapping.
func (h *Handler) mapBatch(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(req.Events) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one event")
		return
	}
	maxBatch := h.loader.Config().Server.MaxBatchSize
	if len(req.Events) > maxBatch {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(req.Events), maxBatch))
		return
	}
	if req.Settings != nil {
		if err := config.ValidateSettings(req.Settings); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	now := time.Now()
	jobID := uuid.New().String()
	queued := 0
	for _, ev := range req.Events {
		if ev.MessageID == "" {
			ev.MessageID = uuid.New().String()
		}
		ev.ReceivedAt = now
		if h.eng.MapAsync(ev, req.Settings) {
			queued++
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   jobID,
		"total":    len(req.Events),
		"queued":   queued,
		"rejected": len(req.Events) - queued,
	})
}

// GET /v1/settings — current destination settings, api key redacted.
func (h *Handler) showSettings(w http.ResponseWriter, r *http.Request) {
	s := *h.eng.Settings()
	if s.APIKey != "" {
		s.APIKey = "[redacted]"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version":  h.loader.Config().Version,
		"settings": s,
	})
}

// POST /v1/settings/reload — hot-reload settings from disk. The engine
// swap itself happens through the loader's OnChange callbacks.
func (h *Handler) reloadSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"version":  cfg.Version,
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 if the mapping queue is >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ready",
		"queue_utilization": util,
	})
}
