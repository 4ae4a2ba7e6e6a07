// Package stream pushes live conversion ticks to clients over Server-Sent
// Events. Each tick re-evaluates the requested systems at the current
// instant and emits one JSON event.
package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Lexorius/alternative-time/internal/calendar"
	"github.com/Lexorius/alternative-time/internal/httputil"
	"github.com/Lexorius/alternative-time/internal/metrics"
)

// Limits on client-supplied parameters.
const (
	minTickInterval = 100 * time.Millisecond
	maxTickInterval = time.Minute
	maxSystems      = 8
)

// Streamer serves the SSE tick endpoint.
type Streamer struct {
	registry *calendar.Registry
	interval time.Duration
	limiter  *ipLimiter
	logger   *slog.Logger
	now      func() time.Time
}

// NewStreamer builds a Streamer with the configured default tick interval
// and per-IP connection cap.
func NewStreamer(registry *calendar.Registry, interval time.Duration, maxPerIP int, logger *slog.Logger) *Streamer {
	return &Streamer{
		registry: registry,
		interval: interval,
		limiter:  newIPLimiter(maxPerIP),
		logger:   logger,
		now:      time.Now,
	}
}

// tickEvent is the JSON payload of one SSE event.
type tickEvent struct {
	Timestamp time.Time                   `json:"timestamp"`
	Results   map[string]*calendar.Result `json:"results"`
	Errors    map[string]string           `json:"errors,omitempty"`
}

// ServeHTTP handles GET /api/v1/stream/ticks?systems=a,b&interval=2s.
func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		metrics.IncStreamErrors("no_flush")
		httputil.WriteError(w, s.logger, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	modules, err := s.selectModules(r.URL.Query().Get("systems"))
	if err != nil {
		httputil.WriteError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}

	interval := s.interval
	if raw := r.URL.Query().Get("interval"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < minTickInterval || d > maxTickInterval {
			httputil.WriteError(w, s.logger, http.StatusBadRequest,
				fmt.Sprintf("interval must be a duration between %s and %s", minTickInterval, maxTickInterval))
			return
		}
		interval = d
	}

	ip := httputil.ClientIP(r)
	if !s.limiter.acquire(ip) {
		metrics.IncStreamErrors("rate_limited")
		httputil.WriteError(w, s.logger, http.StatusTooManyRequests, "too many concurrent streams")
		return
	}
	defer s.limiter.release(ip)

	metrics.IncStreamConnections("connect")
	metrics.IncStreamsActive()
	defer func() {
		metrics.IncStreamConnections("disconnect")
		metrics.DecStreamsActive()
	}()

	s.logger.Info("stream opened", "remote", ip, "interval", interval,
		"systems", len(modules), "request_id", httputil.RequestID(r.Context()))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First tick immediately, then on the interval.
	for {
		if err := s.writeTick(w, r, modules); err != nil {
			metrics.IncStreamErrors("write")
			s.logger.Debug("stream write failed", "remote", ip, "error", err)
			return
		}
		flusher.Flush()

		select {
		case <-r.Context().Done():
			s.logger.Info("stream closed", "remote", ip)
			return
		case <-ticker.C:
		}
	}
}

// selectModules resolves the systems parameter; empty means all.
func (s *Streamer) selectModules(raw string) ([]calendar.Module, error) {
	if raw == "" {
		return s.registry.All(), nil
	}

	ids := strings.Split(raw, ",")
	if len(ids) > maxSystems {
		return nil, fmt.Errorf("at most %d systems per stream", maxSystems)
	}
	modules := make([]calendar.Module, 0, len(ids))
	for _, id := range ids {
		m, err := s.registry.Get(strings.TrimSpace(id))
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func (s *Streamer) writeTick(w http.ResponseWriter, r *http.Request, modules []calendar.Module) error {
	now := s.now().UTC()
	event := tickEvent{
		Timestamp: now,
		Results:   make(map[string]*calendar.Result, len(modules)),
	}

	for _, m := range modules {
		id := m.Metadata().ID
		res, err := m.Compute(r.Context(), now, nil)
		if err != nil {
			if event.Errors == nil {
				event.Errors = make(map[string]string)
			}
			event.Errors[id] = err.Error()
			metrics.RecordConversion(id, "error")
			continue
		}
		event.Results[id] = res
		metrics.RecordConversion(id, "ok")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: tick\ndata: %s\n\n", payload)
	return err
}
