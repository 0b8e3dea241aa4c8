package videos

import "errors"

var (
	// ErrProviderUnavailable indicates the metadata provider is not configured.
	ErrProviderUnavailable = errors.New("video metadata provider unavailable")
	// ErrEmptyMetadata indicates a live source answered without any usable fields.
	ErrEmptyMetadata = errors.New("video metadata empty")
	// ErrOffPlatformHost indicates a URL mentions a platform without being hosted by it.
	ErrOffPlatformHost = errors.New("url host does not belong to the platform")
)
