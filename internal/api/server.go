// Package api exposes the conversion service over HTTP: system discovery,
// single and batch conversion, the Earth-orientation snapshot and the SSE
// tick stream.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lexorius/alternative-time/internal/auth"
	"github.com/Lexorius/alternative-time/internal/calendar"
	"github.com/Lexorius/alternative-time/internal/eop"
	"github.com/Lexorius/alternative-time/internal/health"
	"github.com/Lexorius/alternative-time/internal/httputil"
	"github.com/Lexorius/alternative-time/internal/i18n"
	"github.com/Lexorius/alternative-time/internal/metrics"
	"github.com/Lexorius/alternative-time/internal/stream"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

// maxBatchBody bounds the POST /convert request body.
const maxBatchBody = 64 << 10

// Server wires the conversion registry into HTTP handlers.
type Server struct {
	registry *calendar.Registry
	labels   *i18n.Bundle
	eopCache *eop.Cache
	streamer *stream.Streamer
	checker  *health.Checker
	logger   *slog.Logger
	token    string
}

// NewServer assembles the server from its dependencies.
func NewServer(registry *calendar.Registry, labels *i18n.Bundle, eopCache *eop.Cache,
	streamer *stream.Streamer, checker *health.Checker, token string, logger *slog.Logger) *Server {
	return &Server{
		registry: registry,
		labels:   labels,
		eopCache: eopCache,
		streamer: streamer,
		checker:  checker,
		logger:   logger,
		token:    token,
	}
}

// Handler builds the full middleware chain and route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.checker.Live)
	mux.HandleFunc("GET /readyz", s.checker.Ready)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /api/v1/systems", s.handleSystems)
	mux.HandleFunc("GET /api/v1/convert/{system}", s.handleConvertOne)
	mux.HandleFunc("POST /api/v1/convert", s.handleConvertBatch)
	mux.HandleFunc("GET /api/v1/eop", s.handleEOP)
	mux.Handle("GET /api/v1/stream/ticks", s.streamer)

	var h http.Handler = mux
	h = auth.Middleware(s.token, s.logger)(h)
	h = s.logRequests(h)
	h = httputil.RequestIDMiddleware(h)
	h = metrics.Middleware(h)
	return h
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", httputil.ClientIP(r),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", httputil.RequestID(r.Context()))
	})
}

// systemInfo is one entry of the discovery listing.
type systemInfo struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Options     []calendar.OptionSpec `json:"options,omitempty"`
}

func (s *Server) handleSystems(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")

	infos := make([]systemInfo, 0, len(s.registry.IDs()))
	for _, m := range s.registry.All() {
		meta := m.Metadata()
		infos = append(infos, systemInfo{
			ID:          meta.ID,
			Name:        s.labels.Label(meta.ID, "name", locale),
			Description: s.labels.Label(meta.ID, "description", locale),
			Options:     meta.Options,
		})
	}
	httputil.WriteJSON(w, s.logger, http.StatusOK, map[string]any{"systems": infos})
}

func (s *Server) handleConvertOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("system")
	module, err := s.registry.Get(id)
	if err != nil {
		httputil.WriteError(w, s.logger, http.StatusNotFound, err.Error())
		return
	}

	at, err := parseTimestamp(r.URL.Query().Get("at"))
	if err != nil {
		httputil.WriteError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}

	opts := calendar.Options{}
	for _, spec := range module.Metadata().Options {
		if v := r.URL.Query().Get(spec.Name); v != "" {
			opts[spec.Name] = v
		}
	}

	res, err := module.Compute(r.Context(), at, opts)
	if err != nil {
		s.writeComputeError(w, id, err)
		return
	}
	metrics.RecordConversion(id, "ok")

	httputil.WriteJSON(w, s.logger, http.StatusOK, map[string]any{
		"timestamp": at.UTC().Format(time.RFC3339Nano),
		"result":    res,
	})
}

// batchRequest is the POST /convert body. Missing systems means all;
// a missing timestamp means now.
type batchRequest struct {
	Timestamp string                      `json:"timestamp,omitempty"`
	Systems   []string                    `json:"systems,omitempty"`
	Options   map[string]calendar.Options `json:"options,omitempty"`
}

func (s *Server) handleConvertBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httputil.WriteError(w, s.logger, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	at, err := parseTimestamp(req.Timestamp)
	if err != nil {
		httputil.WriteError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}

	ids := req.Systems
	if len(ids) == 0 {
		ids = s.registry.IDs()
	}

	results := make(map[string]*calendar.Result, len(ids))
	failures := make(map[string]string)
	for _, id := range ids {
		module, err := s.registry.Get(id)
		if err != nil {
			httputil.WriteError(w, s.logger, http.StatusNotFound, err.Error())
			return
		}
		res, err := module.Compute(r.Context(), at, req.Options[id])
		if err != nil {
			failures[id] = err.Error()
			metrics.RecordConversion(id, outcomeLabel(err))
			continue
		}
		results[id] = res
		metrics.RecordConversion(id, "ok")
	}

	httputil.WriteJSON(w, s.logger, http.StatusOK, map[string]any{
		"timestamp": at.UTC().Format(time.RFC3339Nano),
		"results":   results,
		"errors":    failures,
	})
}

func (s *Server) handleEOP(w http.ResponseWriter, r *http.Request) {
	dut1, stale := s.eopCache.DUT1(r.Context())
	body := map[string]any{
		"dut1_sec": dut1,
		"stale":    stale,
		"ttl_sec":  s.eopCache.TTL().Seconds(),
	}
	if sample, _ := s.eopCache.Sample(); sample != nil {
		body["observed_at"] = sample.ObservedAt.UTC().Format(time.RFC3339)
		body["fetched_at"] = sample.FetchedAt.UTC().Format(time.RFC3339)
		body["source"] = sample.Source
		body["age_sec"] = s.eopCache.AgeSeconds()
	}
	httputil.WriteJSON(w, s.logger, http.StatusOK, body)
}

// writeComputeError maps module errors onto the HTTP error taxonomy:
// out-of-range instants are 422, bad options 400, the rest 500.
func (s *Server) writeComputeError(w http.ResponseWriter, system string, err error) {
	metrics.RecordConversion(system, outcomeLabel(err))
	switch {
	case errors.Is(err, timescale.ErrOutOfRange):
		httputil.WriteError(w, s.logger, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, calendar.ErrBadOption):
		httputil.WriteError(w, s.logger, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("conversion failed", "system", system, "error", err)
		httputil.WriteError(w, s.logger, http.StatusInternalServerError, "conversion failed")
	}
}

func outcomeLabel(err error) string {
	if errors.Is(err, timescale.ErrOutOfRange) {
		return "out_of_range"
	}
	return "error"
}

// parseTimestamp accepts an RFC 3339 timestamp or empty for now.
func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q is not RFC 3339", raw)
	}
	return t.UTC(), nil
}
