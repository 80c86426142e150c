package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/lebonkosi/foliochat/internal/interfaces"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService interfaces.ChatService
	logger      arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService interfaces.ChatService, logger arbor.ILogger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// ChatHandler handles POST /api/chat requests. Error payloads share the
// success envelope shape so callers branch on HTTP status, not payload
// structure.
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req interfaces.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAnswer(w, http.StatusBadRequest, "Please ask a question.", nil)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		WriteAnswer(w, http.StatusBadRequest, "Please ask a question.", nil)
		return
	}

	h.logger.Info().
		Int("question_length", len(question)).
		Msg("Processing chat request")

	result, err := h.chatService.Ask(r.Context(), question)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		h.logger.Error().Err(err).Msg("Chat pipeline failed")
		WriteAnswer(w, status, "Error: "+err.Error(), nil)
		return
	}

	counts := result.CountsAsQuestion
	WriteAnswer(w, http.StatusOK, result.Answer, &counts)
}

// HealthHandler handles GET /api/chat/health requests
func (h *ChatHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if err := h.chatService.HealthCheck(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("Chat service health check failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"healthy": false,
			"error":   err.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"healthy": true,
	})
}
