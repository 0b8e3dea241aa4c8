package videos

import (
	"net/url"
	"strings"
)

// Platform identifies the site hosting a video.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformShorts    Platform = "shorts"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
)

type platformRule struct {
	platform Platform
	patterns []string
}

// platformDomains are the registrable domains each platform serves from.
var platformDomains = map[Platform][]string{
	PlatformYouTube:   {"youtube.com", "youtu.be"},
	PlatformShorts:    {"youtube.com"},
	PlatformTikTok:    {"tiktok.com"},
	PlatformInstagram: {"instagram.com"},
}

// Rules are evaluated in order; the first match wins. Shorts must precede the
// generic YouTube rule since every Shorts URL also contains youtube.com.
var platformRules = []platformRule{
	{platform: PlatformShorts, patterns: []string{"youtube.com/shorts"}},
	{platform: PlatformYouTube, patterns: []string{"youtube.com", "youtu.be"}},
	{platform: PlatformTikTok, patterns: []string{"tiktok.com"}},
	{platform: PlatformInstagram, patterns: []string{"instagram.com"}},
}

// DetectPlatform classifies a raw URL by substring inspection. The boolean is
// false when no supported platform matches.
func DetectPlatform(rawURL string) (Platform, bool) {
	for _, rule := range platformRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(rawURL, pattern) {
				return rule.platform, true
			}
		}
	}
	return "", false
}

// SupportedPlatforms lists every platform DetectPlatform can return.
func SupportedPlatforms() []Platform {
	out := make([]Platform, 0, len(platformRules))
	for _, rule := range platformRules {
		out = append(out, rule.platform)
	}
	return out
}

// OnPlatformHost reports whether rawURL is an http(s) URL whose host is one of
// the platform's domains or a subdomain of one. DetectPlatform only inspects
// substrings, so anything that is about to be fetched must pass this first.
func OnPlatformHost(rawURL string, platform Platform) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return false
	}
	for _, domain := range platformDomains[platform] {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}
