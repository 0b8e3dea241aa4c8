package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/vidgrab/backend/internal/logging"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// encodeJSON marshals payload without HTML escaping so echoed URLs keep their
// literal ampersands.
func encodeJSON(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	body, err := encodeJSON(payload)
	if err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		status = http.StatusInternalServerError
		body, _ = encodeJSON(errorResponse{Error: msgProcessFailed})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)

	logResponse(ctx, status, payload)
}

func logResponse(ctx context.Context, status int, payload any) {
	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}
