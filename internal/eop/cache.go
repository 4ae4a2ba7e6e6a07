package eop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Lexorius/alternative-time/internal/metrics"
)

// FallbackDUT1 is the static default returned when no sample has ever been
// fetched. DUT1 is bounded within +-0.9 s, so 0.0 bounds the UT1 error of
// any conversion to under a second.
const FallbackDUT1 = 0.0

// fetchSource abstracts the Fetcher so tests can inject fakes.
type fetchSource interface {
	Fetch(ctx context.Context) (Sample, error)
}

// Cache holds the single mutable piece of state in the conversion core: the
// latest DUT1 sample. The sample is replaced atomically on successful fetch;
// readers never wait on an in-flight fetch.
type Cache struct {
	fetcher      fetchSource
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	logger       *slog.Logger

	sample  atomic.Pointer[Sample]
	fetchMu sync.Mutex // at most one fetch in flight
}

// NewCache creates a Cache refreshing through fetcher with the given TTL.
func NewCache(fetcher *Fetcher, ttl, fetchTimeout time.Duration, logger *slog.Logger) *Cache {
	return newCache(fetcher, ttl, fetchTimeout, time.Now, logger)
}

func newCache(fetcher fetchSource, ttl, fetchTimeout time.Duration, now func() time.Time, logger *slog.Logger) *Cache {
	if ttl < 5*time.Minute {
		ttl = 5 * time.Minute
	}
	if ttl > 24*time.Hour {
		ttl = 24 * time.Hour
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 5 * time.Second
	}
	return &Cache{
		fetcher:      fetcher,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		now:          now,
		logger:       logger,
	}
}

// DUT1 returns the current UT1-UTC correction in seconds and whether it is
// stale. A valid cached sample returns immediately. Otherwise at most one
// caller attempts a refresh (bounded by the fetch timeout) while concurrent
// callers fall straight through to the previous sample or the static
// fallback, marked stale.
func (c *Cache) DUT1(ctx context.Context) (float64, bool) {
	if s := c.sample.Load(); s != nil && c.valid(s) {
		return s.DUT1, false
	}

	if c.fetchMu.TryLock() {
		c.refresh(ctx)
		c.fetchMu.Unlock()
	}

	s := c.sample.Load()
	switch {
	case s == nil:
		return FallbackDUT1, true
	case c.valid(s):
		return s.DUT1, false
	default:
		return s.DUT1, true
	}
}

// Sample returns the current cached sample (nil if none) and whether it is
// still valid. Used for diagnostics; never triggers a fetch.
func (c *Cache) Sample() (*Sample, bool) {
	s := c.sample.Load()
	if s == nil {
		return nil, false
	}
	return s, c.valid(s)
}

// Refresh forces a fetch attempt regardless of TTL, serialized with any
// in-flight refresh. Used by the background refresh loop.
func (c *Cache) Refresh(ctx context.Context) {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()
	c.refresh(ctx)
}

// AgeSeconds returns the age of the cached sample, or -1 if none exists.
func (c *Cache) AgeSeconds() float64 {
	s := c.sample.Load()
	if s == nil {
		return -1
	}
	return c.now().Sub(s.FetchedAt).Seconds()
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) valid(s *Sample) bool {
	return c.now().Sub(s.FetchedAt) < c.ttl
}

// refresh performs one fetch attempt and atomically installs the result.
// The caller must hold fetchMu. A result older than the installed sample is
// discarded (last-writer-wins by fetch start order).
func (c *Cache) refresh(ctx context.Context) {
	started := c.now()

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	sample, err := c.fetcher.Fetch(fetchCtx)
	if err != nil {
		metrics.RecordEOPFetch("error")
		c.logger.Warn("DUT1 fetch failed, keeping previous sample",
			"component", "eop",
			"error", err,
		)
		return
	}

	if prev := c.sample.Load(); prev != nil && prev.FetchedAt.After(started) {
		metrics.RecordEOPFetch("superseded")
		return
	}

	sample.FetchedAt = started
	c.sample.Store(&sample)

	metrics.RecordEOPFetch("success")
	metrics.SetDUT1(sample.DUT1)
	c.logger.Info("DUT1 sample refreshed",
		"component", "eop",
		"dut1_seconds", sample.DUT1,
		"observed_at", sample.ObservedAt.Format(time.RFC3339),
		"source", sample.Source,
	)
}
