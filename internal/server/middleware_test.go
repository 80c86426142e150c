package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/lebonkosi/foliochat/internal/app"
	"github.com/lebonkosi/foliochat/internal/common"
	"github.com/lebonkosi/foliochat/internal/handlers"
	"github.com/lebonkosi/foliochat/internal/interfaces"
)

// stubChatService answers every question the same way.
type stubChatService struct{}

func (s *stubChatService) Ask(ctx context.Context, question string) (*interfaces.ChatResult, error) {
	return &interfaces.ChatResult{Answer: "stub answer", CountsAsQuestion: true}, nil
}

func (s *stubChatService) HealthCheck(ctx context.Context) error { return nil }

func newTestServer(allowedOrigins string) *Server {
	config := common.NewDefaultConfig()
	config.Chat.AllowedOrigins = allowedOrigins
	logger := arbor.NewLogger()

	application := &app.App{
		Config:      config,
		Logger:      logger,
		ChatHandler: handlers.NewChatHandler(&stubChatService{}, logger),
		APIHandler:  handlers.NewAPIHandler(),
	}
	return New(application)
}

func execute(srv *Server, method, path, origin, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestAllowedOrigin(t *testing.T) {
	tests := []struct {
		name          string
		requestOrigin string
		allowList     string
		want          string
	}{
		{"wildcard echoes caller", "https://site.example", "*", "https://site.example"},
		{"wildcard without origin", "", "*", "*"},
		{"wildcard among entries", "https://anywhere.example", "https://a.example,*", "https://anywhere.example"},
		{"exact match", "https://a.example", "https://a.example,https://b.example", "https://a.example"},
		{"no match rejected", "https://evil.example", "https://a.example", ""},
		{"missing origin rejected", "", "https://a.example", ""},
		{"prefix is not a match", "https://a.example.evil.com", "https://a.example", ""},
		{"entries are trimmed", "https://b.example", " https://a.example , https://b.example ", "https://b.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedOrigin(tt.requestOrigin, tt.allowList))
		})
	}
}

func TestOriginGate_RejectsDisallowedOrigin(t *testing.T) {
	srv := newTestServer("https://lebonkosi.dev")

	rec := execute(srv, http.MethodPost, "/api/chat", "https://evil.example", `{"question":"hi"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), "rejected requests carry no CORS headers")
}

func TestOriginGate_PreflightShortCircuits(t *testing.T) {
	srv := newTestServer("https://lebonkosi.dev")

	rec := execute(srv, http.MethodOptions, "/api/chat", "https://lebonkosi.dev", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://lebonkosi.dev", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Body.String())
}

func TestOriginGate_WildcardWithoutOrigin(t *testing.T) {
	srv := newTestServer("*")

	rec := execute(srv, http.MethodOptions, "/api/chat", "", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatRoute_SuccessCarriesCORS(t *testing.T) {
	srv := newTestServer("https://lebonkosi.dev")

	rec := execute(srv, http.MethodPost, "/api/chat", "https://lebonkosi.dev", `{"question":"Do you know Go?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://lebonkosi.dev", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Body.String(), "stub answer")
	assert.Contains(t, rec.Body.String(), `"countsAsQuestion":true`)
}

func TestChatRoute_WrongMethodIs405WithCORS(t *testing.T) {
	srv := newTestServer("*")

	rec := execute(srv, http.MethodGet, "/api/chat", "https://site.example", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "https://site.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownPathIs404(t *testing.T) {
	srv := newTestServer("*")

	rec := execute(srv, http.MethodGet, "/something/else", "https://site.example", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownAPIPathIs404(t *testing.T) {
	srv := newTestServer("*")

	rec := execute(srv, http.MethodGet, "/api/unknown", "https://site.example", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Found")
}

func TestHealthRoute(t *testing.T) {
	srv := newTestServer("*")

	rec := execute(srv, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
