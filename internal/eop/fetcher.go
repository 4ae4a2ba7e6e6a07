// Package eop fetches and caches the Earth-orientation correction DUT1
// (UT1 - UTC). It is the only component in the conversion core that
// performs I/O; every fetch failure is absorbed here and converted into a
// stale-but-usable value, never an error to the caller.
package eop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// maxBodyBytes bounds the response size; the bulletin payload is a small
// JSON object.
const maxBodyBytes = 1 << 20

// Sample is one DUT1 observation together with its provenance.
type Sample struct {
	DUT1       float64   // seconds, |DUT1| < 1.0 by leap-second policy
	ObservedAt time.Time // observation timestamp reported by the source
	Source     string
	FetchedAt  time.Time
}

// bulletinResponse mirrors the JSON body of the finals/bulletin endpoint.
type bulletinResponse struct {
	DUT1       float64   `json:"dut1"`
	ObservedAt time.Time `json:"observed_at"`
}

// Fetcher retrieves DUT1 from a bulletin-style HTTP endpoint with a bounded
// timeout and a single retry.
type Fetcher struct {
	sourceURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher for the given source URL. The timeout bounds
// each individual attempt.
func NewFetcher(sourceURL string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fetcher{
		sourceURL: sourceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SourceURL returns the configured source URL.
func (f *Fetcher) SourceURL() string {
	return f.sourceURL
}

// Fetch retrieves the current DUT1 sample, retrying once on failure.
func (f *Fetcher) Fetch(ctx context.Context) (Sample, error) {
	sample, err := f.fetchOnce(ctx)
	if err == nil {
		return sample, nil
	}
	if ctx.Err() != nil {
		return Sample{}, err
	}

	f.logger.Debug("DUT1 fetch retry", "component", "eop", "error", err)
	return f.fetchOnce(ctx)
}

func (f *Fetcher) fetchOnce(ctx context.Context) (Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.sourceURL, nil)
	if err != nil {
		return Sample{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Sample{}, fmt.Errorf("fetching DUT1: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Sample{}, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, f.sourceURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Sample{}, fmt.Errorf("reading response body: %w", err)
	}

	var bulletin bulletinResponse
	if err := json.Unmarshal(body, &bulletin); err != nil {
		return Sample{}, fmt.Errorf("parsing bulletin response: %w", err)
	}

	// UT1-UTC is kept within +-0.9 s by leap-second policy; anything larger
	// is a corrupt or misinterpreted payload.
	if math.IsNaN(bulletin.DUT1) || math.Abs(bulletin.DUT1) >= 1.0 {
		return Sample{}, fmt.Errorf("implausible DUT1 value %v from %s", bulletin.DUT1, f.sourceURL)
	}

	return Sample{
		DUT1:       bulletin.DUT1,
		ObservedAt: bulletin.ObservedAt.UTC(),
		Source:     f.sourceURL,
	}, nil
}
