package handlers

import (
	"context"

	"github.com/vidgrab/backend/internal/videos"
)

// MetadataProvider resolves video details for a validated URL.
type MetadataProvider interface {
	Lookup(ctx context.Context, url string, platform videos.Platform) (videos.VideoInfo, error)
}
