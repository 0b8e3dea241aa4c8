package videos

import (
	"context"
	"fmt"
)

const (
	// PlaceholderThumbnail is served whenever no real thumbnail is known.
	PlaceholderThumbnail = "https://via.placeholder.com/300x200.png?text=Video+Thumbnail"
	// PlaceholderDuration is served whenever no real duration is known.
	PlaceholderDuration = "2:45"
)

// DefaultQualities returns the fixed quality list. A fresh slice is returned on
// every call so callers may not alias each other's payloads.
func DefaultQualities() []Quality {
	return []Quality{
		{Quality: "720p", URL: "#download-720p"},
		{Quality: "480p", URL: "#download-480p"},
		{Quality: "360p", URL: "#download-360p"},
	}
}

// MockTitle is the synthesized title for a platform.
func MockTitle(platform Platform) string {
	return fmt.Sprintf("Video from %s", platform)
}

// MockProvider synthesizes deterministic placeholder metadata without any I/O.
type MockProvider struct{}

// NewMockProvider constructs the default metadata provider.
func NewMockProvider() MockProvider {
	return MockProvider{}
}

// Lookup implements Provider.
func (MockProvider) Lookup(_ context.Context, url string, platform Platform) (VideoInfo, error) {
	return mockInfo(url, platform), nil
}

func mockInfo(url string, platform Platform) VideoInfo {
	return VideoInfo{
		Title:     MockTitle(platform),
		Thumbnail: PlaceholderThumbnail,
		Duration:  PlaceholderDuration,
		Qualities: DefaultQualities(),
		URL:       url,
	}
}
