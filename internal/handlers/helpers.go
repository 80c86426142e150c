package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lebonkosi/foliochat/internal/interfaces"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteAnswer writes the chat envelope. Error and validation payloads pass
// counts as nil so the quota field is omitted; every success passes an
// explicit value.
func WriteAnswer(w http.ResponseWriter, statusCode int, answer string, counts *bool) error {
	return WriteJSON(w, statusCode, interfaces.ChatResponse{
		Answer:           answer,
		CountsAsQuestion: counts,
	})
}
