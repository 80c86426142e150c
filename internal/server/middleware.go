package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// withMiddleware wraps the router with middleware chain
func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last applied = first executed)
	handler = s.recoveryMiddleware(handler)
	handler = s.originGateMiddleware(handler)
	handler = s.loggingMiddleware(handler)
	return handler
}

// AllowedOrigin resolves the origin to echo back for a request, given the
// comma-separated allow-list. A list containing "*" echoes whatever the
// caller sent (or "*" when no Origin header is present). Otherwise the
// caller's origin must byte-match a configured entry; an empty return
// means reject.
func AllowedOrigin(requestOrigin, allowedOrigins string) string {
	var list []string
	for _, entry := range strings.Split(allowedOrigins, ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			list = append(list, trimmed)
		}
	}

	wildcard := false
	for _, entry := range list {
		if entry == "*" {
			wildcard = true
			break
		}
	}

	if wildcard {
		if requestOrigin != "" {
			return requestOrigin
		}
		return "*"
	}

	if requestOrigin == "" {
		return ""
	}
	for _, entry := range list {
		if entry == requestOrigin {
			return requestOrigin
		}
	}
	return ""
}

// applyCORS sets the CORS headers for an origin that passed the gate.
func applyCORS(header http.Header, origin string) {
	header.Set("Access-Control-Allow-Origin", origin)
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type")
	header.Set("Vary", "Origin")
}

// originGateMiddleware enforces the origin allow-list in front of the
// whole pipeline. Rejected origins get a bare 403 with no CORS headers;
// preflight requests that pass the gate are answered here with 204 and
// never reach the router.
func (s *Server) originGateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := AllowedOrigin(r.Header.Get("Origin"), s.app.Config.Chat.AllowedOrigins)
		if origin == "" {
			s.app.Logger.Warn().
				Str("origin", r.Header.Get("Origin")).
				Str("path", r.URL.Path).
				Msg("Request rejected by origin gate")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		applyCORS(w.Header(), origin)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests and responses
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		s.app.Logger.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Msg("HTTP request")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.app.Logger.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", time.Since(start)).
			Msg("HTTP response")
	})
}

// recoveryMiddleware recovers from panics and returns 500 error
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.app.Logger.Error().
					Str("error", fmt.Sprintf("%v", err)).
					Str("path", r.URL.Path).
					Msg("Panic recovered")

				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
