package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vidgrab/backend/internal/logging"
	"github.com/vidgrab/backend/internal/videos"
)

const (
	msgMethodNotAllowed = "Method not allowed"
	msgURLRequired      = "URL parameter is required"
	msgInvalidURL       = "Invalid URL format"
	msgUnsupported      = "Unsupported platform"
	msgProcessFailed    = "Failed to process the video"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

var (
	errBodyTooLarge = errors.New("request body too large")
	errNullBody     = errors.New("request body is null")
	errTrailingData = errors.New("request body has trailing data")
)

// DownloadHandler resolves a social-media video URL into downloadable
// renditions.
type DownloadHandler struct {
	Metadata     MetadataProvider
	MaxBodyBytes int64
}

type outcome struct {
	status  int
	payload any
}

func failure(status int, message string) outcome {
	return outcome{status: status, payload: errorResponse{Error: message}}
}

// ServeHTTP handles POST /api/download.
func (h DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out := h.resolve(ctx, r.Method, r.Body)
	respondJSON(ctx, w, out.status, out.payload)
}

// resolve runs the request pipeline. Every failure not mapped to a client error
// becomes a generic 500; panics included.
func (h DownloadHandler) resolve(ctx context.Context, method string, body io.Reader) (out outcome) {
	logger := logging.FromContext(ctx)

	if method != http.MethodPost {
		return failure(http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("download handler panic", "panic", rec)
			out = failure(http.StatusInternalServerError, msgProcessFailed)
		}
	}()

	field, err := readURLField(body, h.maxBodyBytes())
	if err != nil {
		logger.Error("parse download request", "error", err)
		return failure(http.StatusInternalServerError, msgProcessFailed)
	}

	if !truthy(field) {
		return failure(http.StatusBadRequest, msgURLRequired)
	}

	rawURL, ok := field.(string)
	if !ok {
		// Arrays stringify to their joined elements, which may well parse, but
		// an array never names a platform.
		if arr, isArray := field.([]any); isArray && isAbsoluteURL(joinArray(arr)) {
			return failure(http.StatusBadRequest, msgUnsupported)
		}
		return failure(http.StatusBadRequest, msgInvalidURL)
	}
	if !isAbsoluteURL(rawURL) {
		return failure(http.StatusBadRequest, msgInvalidURL)
	}

	platform, ok := videos.DetectPlatform(rawURL)
	if !ok {
		return failure(http.StatusBadRequest, msgUnsupported)
	}

	if h.Metadata == nil {
		logger.Error("metadata provider unavailable")
		return failure(http.StatusInternalServerError, msgProcessFailed)
	}

	spanCtx, span := logging.StartSpan(ctx, "extract_video_info")
	info, err := h.Metadata.Lookup(spanCtx, rawURL, platform)
	span.End(err)
	if err != nil {
		logger.Error("extract video info", slog.String("platform", platform.String()), slog.Any("error", err))
		return failure(http.StatusInternalServerError, msgProcessFailed)
	}

	return outcome{status: http.StatusOK, payload: info}
}

func (h DownloadHandler) maxBodyBytes() int64 {
	if h.MaxBodyBytes > 0 {
		return h.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

// readURLField parses body as JSON and returns the raw "url" member. Bodies
// that are valid JSON but not objects yield nil.
func readURLField(body io.Reader, limit int64) (any, error) {
	if body == nil {
		body = http.NoBody
	}

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	if doc == nil {
		return nil, errNullBody
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, nil
	}
	return obj["url"], nil
}

// truthy mirrors the loose truthiness clients expect of JSON values: null,
// false, 0 and "" are all treated as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		// Out-of-range literals still parse to ±Inf alongside the error.
		f, _ := strconv.ParseFloat(t.String(), 64)
		return f != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// isAbsoluteURL accepts anything with a scheme; schemes that address a network
// host must also carry one. Ports must fit in 16 bits, and malformed percent
// escapes after the authority are tolerated as browsers do.
func isAbsoluteURL(raw string) bool {
	trimmed := strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' })

	u, err := url.Parse(escapeStrayPercents(trimmed))
	if err != nil || u.Scheme == "" {
		return false
	}

	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 0 || n > 65535 {
			return false
		}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ws", "wss", "ftp":
		return u.Hostname() != ""
	}
	return true
}

// escapeStrayPercents rewrites every '%' not followed by two hex digits as
// "%25", leaving the scheme and authority untouched.
func escapeStrayPercents(s string) string {
	start := 0
	if i := strings.Index(s, "://"); i >= 0 {
		start = i + len("://")
	}
	j := strings.IndexAny(s[start:], "/?#")
	if j < 0 {
		return s
	}
	cut := start + j

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:cut])
	for i := cut; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// joinArray stringifies an array the way JavaScript's Array.prototype.join
// does: null elements become empty strings and nested arrays are flattened.
func joinArray(arr []any) string {
	parts := make([]string, len(arr))
	for i, v := range arr {
		switch t := v.(type) {
		case nil:
		case string:
			parts[i] = t
		case bool:
			parts[i] = strconv.FormatBool(t)
		case json.Number:
			parts[i] = t.String()
		case []any:
			parts[i] = joinArray(t)
		default:
			parts[i] = "[object Object]"
		}
	}
	return strings.Join(parts, ",")
}
