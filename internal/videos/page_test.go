package videos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLoopbackPageProvider permits fetching from the httptest server.
func newLoopbackPageProvider(userAgent string) *PageProvider {
	provider := NewPageProvider(time.Second, userAgent)
	provider.allowHost = func(string, Platform) bool { return true }
	return provider
}

func TestPageProviderLookup(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<title>Fallback title</title>
			<meta property="og:title" content=" Real title ">
			<meta property="og:image" content="https://img.example/thumb.jpg">
			<meta property="og:video:duration" content="754">
		</head><body></body></html>`))
	}))
	defer srv.Close()

	provider := newLoopbackPageProvider("vidgrab-test")

	info, err := provider.Lookup(context.Background(), srv.URL+"/watch", PlatformYouTube)
	require.NoError(t, err)

	assert.Equal(t, "vidgrab-test", gotUA)
	assert.Equal(t, "Real title", info.Title)
	assert.Equal(t, "https://img.example/thumb.jpg", info.Thumbnail)
	assert.Equal(t, "12:34", info.Duration)
	assert.Equal(t, DefaultQualities(), info.Qualities)
	assert.Equal(t, srv.URL+"/watch", info.URL)
}

func TestPageProviderLookupFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Page title</title></head></html>`))
	}))
	defer srv.Close()

	info, err := newLoopbackPageProvider("").Lookup(context.Background(), srv.URL, PlatformInstagram)
	require.NoError(t, err)

	assert.Equal(t, "Page title", info.Title)
	assert.Equal(t, PlaceholderThumbnail, info.Thumbnail)
	assert.Equal(t, PlaceholderDuration, info.Duration)
}

func TestPageProviderLookupBareDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<p>nothing here</p>`))
	}))
	defer srv.Close()

	info, err := newLoopbackPageProvider("").Lookup(context.Background(), srv.URL, PlatformTikTok)
	require.NoError(t, err)
	assert.Equal(t, "Video from tiktok", info.Title)
}

func TestPageProviderLookupNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newLoopbackPageProvider("").Lookup(context.Background(), srv.URL, PlatformYouTube)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPageProviderLookupCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<title>x</title>`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newLoopbackPageProvider("").Lookup(ctx, srv.URL, PlatformYouTube)
	require.Error(t, err)
}

func TestPageProviderNil(t *testing.T) {
	var provider *PageProvider
	_, err := provider.Lookup(context.Background(), "https://youtu.be/x", PlatformYouTube)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestPageProviderRefusesOffPlatformHosts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`<title>secret</title>`))
	}))
	defer srv.Close()

	provider := NewPageProvider(time.Second, "")

	for _, raw := range []string{
		srv.URL + "/latest/?youtube.com",
		srv.URL + "/youtube.com/shorts/x",
		"http://169.254.169.254/latest/?youtube.com",
	} {
		_, err := provider.Lookup(context.Background(), raw, PlatformYouTube)
		assert.ErrorIs(t, err, ErrOffPlatformHost, raw)
	}

	assert.Zero(t, hits.Load())
}
