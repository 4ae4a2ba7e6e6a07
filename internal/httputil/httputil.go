// Package httputil carries small HTTP helpers shared by the API and the
// tick stream: client IP extraction, request IDs and JSON writing.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey int

const requestIDKey contextKey = iota

// ClientIP extracts the originating client address, honoring the leftmost
// X-Forwarded-For entry when present.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequestID returns the id assigned by the middleware, or "" outside it.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestIDMiddleware assigns each request a UUID, echoes it in the
// X-Request-Id response header and stores it on the context.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// WriteJSON encodes v with the given status. Encoding failures are logged,
// not surfaced: the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", "error", err)
	}
}

// WriteError emits the uniform error envelope.
func WriteError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	WriteJSON(w, logger, status, map[string]any{
		"error":  msg,
		"status": status,
	})
}
