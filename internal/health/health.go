// Package health implements the liveness and readiness probes.
package health

import (
	"net/http"
	"sync/atomic"
)

// Checker tracks whether the service is ready to serve conversions.
// Liveness is unconditional; readiness flips on once startup wiring is
// complete and can be withdrawn during shutdown.
type Checker struct {
	ready atomic.Bool
}

// NewChecker starts in the not-ready state.
func NewChecker() *Checker {
	return &Checker{}
}

// SetReady marks the service ready (or not).
func (c *Checker) SetReady(ready bool) {
	c.ready.Store(ready)
}

// Live always reports 200; the process is up if it can answer at all.
func (c *Checker) Live(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// Ready reports 200 once startup completed, 503 otherwise.
func (c *Checker) Ready(w http.ResponseWriter, _ *http.Request) {
	if !c.ready.Load() {
		http.Error(w, "starting", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready\n"))
}
