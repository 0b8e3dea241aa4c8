package videos

import "context"

// Quality describes one downloadable rendition of a video.
type Quality struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// VideoInfo is the payload returned to clients for a resolved video URL.
type VideoInfo struct {
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Duration  string    `json:"duration"`
	Qualities []Quality `json:"qualities"`
	URL       string    `json:"url"`
}

// Provider resolves video details for a URL on a detected platform.
type Provider interface {
	Lookup(ctx context.Context, url string, platform Platform) (VideoInfo, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, url string, platform Platform) (VideoInfo, error)

// Lookup implements Provider.
func (f ProviderFunc) Lookup(ctx context.Context, url string, platform Platform) (VideoInfo, error) {
	return f(ctx, url, platform)
}
