// Package middleware provides HTTP middleware and response helpers shared
// by all API handlers.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorObject is one error in a JSON:API style error response.
type ErrorObject struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// ErrorResponse is the error envelope returned by every handler.
type ErrorResponse struct {
	Errors []ErrorObject `json:"errors"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// WriteError writes a JSON error response with the given status and detail.
func WriteError(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, ErrorResponse{
		Errors: []ErrorObject{
			{
				Status: http.StatusText(status),
				Title:  http.StatusText(status),
				Detail: detail,
			},
		},
	})
}
