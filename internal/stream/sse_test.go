package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lexorius/alternative-time/internal/calendar"
	"github.com/Lexorius/alternative-time/internal/eop"
	"github.com/Lexorius/alternative-time/internal/lunar"
	"github.com/Lexorius/alternative-time/internal/refdata"
	"github.com/Lexorius/alternative-time/internal/rotation"
	"github.com/Lexorius/alternative-time/internal/stellar"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

func newTestStreamer(t *testing.T, maxPerIP int) *Streamer {
	t.Helper()

	table, err := timescale.LoadTable(refdata.LeapSeconds)
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := stellar.LoadCatalog(refdata.Stars)
	if err != nil {
		t.Fatal(err)
	}

	bulletin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dut1": 0.01, "observed_at": "2026-08-20T00:00:00Z"}`))
	}))
	t.Cleanup(bulletin.Close)
	cache := eop.NewCache(eop.NewFetcher(bulletin.URL, time.Second, testLogger),
		time.Hour, time.Second, testLogger)

	registry := calendar.Builtin(calendar.Deps{
		Timescale: timescale.NewConverter(table),
		Rotation:  rotation.NewConverter(cache),
		Lunar:     lunar.NewModel(),
		Stellar:   stellar.NewEstimator(catalog),
	})
	return NewStreamer(registry, 200*time.Millisecond, maxPerIP, testLogger)
}

// TestStreamEmitsTicks opens a stream and decodes the first two events.
func TestStreamEmitsTicks(t *testing.T) {
	server := httptest.NewServer(newTestStreamer(t, 4))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet,
		server.URL+"?systems=tai,julian_day", nil)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	events := readEvents(t, resp.Body, 2)
	for _, data := range events {
		var tick struct {
			Timestamp time.Time                 `json:"timestamp"`
			Results   map[string]map[string]any `json:"results"`
		}
		if err := json.Unmarshal([]byte(data), &tick); err != nil {
			t.Fatalf("bad tick payload: %v", err)
		}
		if tick.Timestamp.IsZero() {
			t.Error("missing timestamp")
		}
		if len(tick.Results) != 2 {
			t.Errorf("got %d results, want 2", len(tick.Results))
		}
		if _, ok := tick.Results["tai"]; !ok {
			t.Error("missing tai result")
		}
	}
}

// readEvents collects the data lines of the first n SSE events.
func readEvents(t *testing.T, body io.Reader, n int) []string {
	t.Helper()
	var events []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() && len(events) < n {
		line := scanner.Text()
		if strings.HasPrefix(line, "data: ") {
			events = append(events, strings.TrimPrefix(line, "data: "))
		}
	}
	if len(events) < n {
		t.Fatalf("stream ended after %d events, want %d", len(events), n)
	}
	return events
}

// TestStreamRejectsBadParams covers parameter validation.
func TestStreamRejectsBadParams(t *testing.T) {
	server := httptest.NewServer(newTestStreamer(t, 4))
	defer server.Close()

	cases := map[string]string{
		"unknown system":          "?systems=gregorian",
		"interval too small":      "?interval=1ms",
		"interval not a duration": "?interval=fast",
		"too many systems":        "?systems=a,b,c,d,e,f,g,h,i",
	}
	for name, query := range cases {
		resp, err := http.Get(server.URL + query)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, resp.StatusCode)
		}
	}
}

// TestStreamPerIPLimit verifies the concurrent-stream cap per client.
func TestStreamPerIPLimit(t *testing.T) {
	server := httptest.NewServer(newTestStreamer(t, 1))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hold one stream open.
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"?systems=tai", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	readEvents(t, resp.Body, 1)

	// Second stream from the same IP is rejected.
	req2, _ := http.NewRequest(http.MethodGet, server.URL+"?systems=tai", nil)
	req2.Header.Set("X-Forwarded-For", "203.0.113.9")
	resp2, err := http.DefaultClient.Do(req2)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp2.StatusCode)
	}

	// A different IP still gets a slot.
	req3, _ := http.NewRequest(http.MethodGet, server.URL+"?systems=tai", nil)
	req3.Header.Set("X-Forwarded-For", "203.0.113.10")
	ctx3, cancel3 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel3()
	resp3, err := http.DefaultClient.Do(req3.WithContext(ctx3))
	if err != nil {
		t.Fatal(err)
	}
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp3.StatusCode)
	}
}

// TestLimiterCounts exercises the limiter directly.
func TestLimiterCounts(t *testing.T) {
	l := newIPLimiter(2)
	if !l.acquire("a") || !l.acquire("a") {
		t.Fatal("first two acquires should succeed")
	}
	if l.acquire("a") {
		t.Error("third acquire should fail")
	}
	if !l.acquire("b") {
		t.Error("other ip should not be affected")
	}
	l.release("a")
	if !l.acquire("a") {
		t.Error("acquire after release should succeed")
	}
}
