package videos

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	// DefaultUserAgent is sent when fetching video pages.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	maxPageBytes = 4 << 20
)

// PageProvider reads OpenGraph metadata from the video's public page.
type PageProvider struct {
	client    *resty.Client
	allowHost func(rawURL string, platform Platform) bool
}

// NewPageProvider constructs a Provider that scrapes the target page.
func NewPageProvider(timeout time.Duration, userAgent string) *PageProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5")

	return &PageProvider{client: client, allowHost: OnPlatformHost}
}

// Lookup implements Provider. Fields the page does not expose keep their
// placeholder values.
func (p *PageProvider) Lookup(ctx context.Context, url string, platform Platform) (VideoInfo, error) {
	if p == nil || p.client == nil {
		return VideoInfo{}, ErrProviderUnavailable
	}
	if p.allowHost == nil || !p.allowHost(url, platform) {
		return VideoInfo{}, fmt.Errorf("fetch page: %w", ErrOffPlatformHost)
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("fetch page: %w", err)
	}
	body := resp.RawBody()
	if body == nil {
		return VideoInfo{}, fmt.Errorf("fetch page: empty response")
	}
	defer body.Close()

	if status := resp.StatusCode(); status < http.StatusOK || status >= http.StatusMultipleChoices {
		return VideoInfo{}, fmt.Errorf("fetch page: unexpected status %d", status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(body, maxPageBytes))
	if err != nil {
		return VideoInfo{}, fmt.Errorf("parse page: %w", err)
	}

	return infoFromDocument(doc, url, platform), nil
}

func infoFromDocument(doc *goquery.Document, url string, platform Platform) VideoInfo {
	info := mockInfo(url, platform)

	title := metaContent(doc, "meta[property='og:title']", "meta[name='twitter:title']")
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title != "" {
		info.Title = title
	}

	if thumb := metaContent(doc, "meta[property='og:image']", "meta[name='twitter:image']"); thumb != "" {
		info.Thumbnail = thumb
	}

	raw := metaContent(doc, "meta[property='og:video:duration']", "meta[property='video:duration']", "meta[itemprop='duration']")
	if d := FormatDuration(parseSeconds(raw)); d != "" {
		info.Duration = d
	}

	return info
}

// metaContent returns the first non-empty content attribute among selectors.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}
