package app

import (
	"github.com/vidgrab/backend/internal/config"
	"github.com/vidgrab/backend/internal/handlers"
	"github.com/vidgrab/backend/internal/videos"
)

// buildDependencies wires together concrete implementations used by the handlers.
func buildDependencies(cfg config.Config) handlers.Dependencies {
	return handlers.Dependencies{
		Metadata:     buildMetadataProvider(cfg),
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
}

func buildMetadataProvider(cfg config.Config) videos.Provider {
	switch cfg.MetadataSource {
	case config.SourcePage:
		return videos.NewCachingProvider(videos.NewPageProvider(cfg.FetchTimeout, cfg.UserAgent), cfg.MetadataCacheTTL)
	case config.SourceYTDLP:
		return videos.NewCachingProvider(videos.NewYTDLPProvider(cfg.YTDLPPath, cfg.YTDLPTimeout), cfg.MetadataCacheTTL)
	default:
		return videos.NewMockProvider()
	}
}
