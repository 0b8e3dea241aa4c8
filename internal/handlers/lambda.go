package handlers

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/vidgrab/backend/internal/logging"
)

// HandleLambda serves the download endpoint behind an API Gateway proxy
// integration. The returned error is always nil; failures are status codes.
func (h DownloadHandler) HandleLambda(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID := req.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	logger := logging.FromContext(ctx).With(
		slog.String("request_id", requestID),
		slog.String("method", req.HTTPMethod),
		slog.String("path", req.Path),
	)
	ctx = logging.WithLogger(ctx, logger)
	ctx = logging.WithRequestID(ctx, requestID)

	var body io.Reader = strings.NewReader(req.Body)
	if req.IsBase64Encoded {
		body = base64.NewDecoder(base64.StdEncoding, body)
	}

	out := h.resolve(ctx, req.HTTPMethod, body)

	payload, err := encodeJSON(out.payload)
	if err != nil {
		logger.Error("encode response body", "status", out.status, "error", err)
		out = failure(http.StatusInternalServerError, msgProcessFailed)
		payload, _ = encodeJSON(out.payload)
	}
	logResponse(ctx, out.status, out.payload)

	return events.APIGatewayProxyResponse{
		StatusCode: out.status,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"X-Request-ID": requestID,
		},
		Body: string(payload),
	}, nil
}
