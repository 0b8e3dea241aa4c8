package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidgrab/backend/internal/videos"
)

func invokeLambda(t *testing.T, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	t.Helper()
	resp, err := newDownloadHandler().HandleLambda(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func TestHandleLambdaSuccess(t *testing.T) {
	resp := invokeLambda(t, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodPost,
		Path:           "/.netlify/functions/download",
		Body:           `{"url":"https://www.youtube.com/watch?v=abc123"}`,
		RequestContext: events.APIGatewayProxyRequestContext{RequestID: "gw-1"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "gw-1", resp.Headers["X-Request-ID"])

	var info videos.VideoInfo
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &info))
	assert.Equal(t, "Video from youtube", info.Title)
	assert.Len(t, info.Qualities, 3)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", info.URL)
}

func TestHandleLambdaBase64Body(t *testing.T) {
	resp := invokeLambda(t, events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"url":"https://www.tiktok.com/@user/video/123"}`)),
		IsBase64Encoded: true,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, `"title":"Video from tiktok"`)
	assert.NotEmpty(t, resp.Headers["X-Request-ID"])
}

func TestHandleLambdaErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     events.APIGatewayProxyRequest
		status  int
		message string
	}{
		{
			name:    "method",
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet},
			status:  http.StatusMethodNotAllowed,
			message: "Method not allowed",
		},
		{
			name:    "missing url",
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{}`},
			status:  http.StatusBadRequest,
			message: "URL parameter is required",
		},
		{
			name:    "invalid url",
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{"url":"not a url"}`},
			status:  http.StatusBadRequest,
			message: "Invalid URL format",
		},
		{
			name:    "unsupported",
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{"url":"https://example.com/video"}`},
			status:  http.StatusBadRequest,
			message: "Unsupported platform",
		},
		{
			name:    "malformed json",
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{`},
			status:  http.StatusInternalServerError,
			message: "Failed to process the video",
		},
		{
			name:    "bad base64",
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: "%%%", IsBase64Encoded: true},
			status:  http.StatusInternalServerError,
			message: "Failed to process the video",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := invokeLambda(t, tt.req)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, resp.Body)
		})
	}
}

func TestHandleLambdaMatchesHTTPTransport(t *testing.T) {
	body := `{"url":"https://www.youtube.com/watch?v=abc&list=x"}`

	resp := invokeLambda(t, events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: body})
	rec := postDownload(t, newDownloadHandler(), body)

	assert.Equal(t, rec.Code, resp.StatusCode)
	assert.Equal(t, rec.Body.String(), resp.Body)
}
