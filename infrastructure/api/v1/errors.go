// Package v1 implements the v1 HTTP API handlers.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/infrastructure/api/middleware"
	"github.com/movelabhq/movelab/infrastructure/toolchain"
)

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and masked as a bare 500 so internals never leak to clients.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTooLarge):
		middleware.WriteError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrNotConfigured):
		middleware.WriteError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, toolchain.ErrToolchainUnavailable):
		middleware.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		middleware.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// readBody reads the request body up to limit bytes.
func readBody(r *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("request body must not be empty")
	}
	return data, nil
}
