package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// CommandRunner executes external commands and returns stdout bytes.
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// YTDLPProvider fetches metadata using the yt-dlp CLI tool.
type YTDLPProvider struct {
	Binary  string
	Args    []string
	Run     CommandRunner
	Timeout time.Duration
}

// NewYTDLPProvider constructs a Provider that shells out to yt-dlp.
func NewYTDLPProvider(binary string, timeout time.Duration) *YTDLPProvider {
	if strings.TrimSpace(binary) == "" {
		binary = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YTDLPProvider{
		Binary:  binary,
		Args:    []string{"--dump-single-json", "--no-warnings", "--no-playlist", "--skip-download"},
		Run:     defaultCommandRunner,
		Timeout: timeout,
	}
}

type ytdlpFormat struct {
	Height int    `json:"height"`
	URL    string `json:"url"`
	VCodec string `json:"vcodec"`
}

type ytdlpPayload struct {
	Title     string        `json:"title"`
	Thumbnail string        `json:"thumbnail"`
	Duration  float64       `json:"duration"`
	Formats   []ytdlpFormat `json:"formats"`
}

// Lookup executes yt-dlp for the provided URL and parses the JSON response.
func (p *YTDLPProvider) Lookup(ctx context.Context, url string, platform Platform) (VideoInfo, error) {
	if p == nil {
		return VideoInfo{}, ErrProviderUnavailable
	}
	if !OnPlatformHost(url, platform) {
		return VideoInfo{}, fmt.Errorf("yt-dlp fetch: %w", ErrOffPlatformHost)
	}
	run := p.Run
	if run == nil {
		run = defaultCommandRunner
	}

	execCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	args := append([]string{}, p.Args...)
	args = append(args, url)

	out, err := run(execCtx, p.Binary, args...)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("yt-dlp fetch: %w", err)
	}

	var payload ytdlpPayload
	if err := json.Unmarshal(out, &payload); err != nil {
		return VideoInfo{}, fmt.Errorf("parse yt-dlp response: %w", err)
	}

	if payload.Title == "" && payload.Thumbnail == "" && payload.Duration <= 0 {
		return VideoInfo{}, fmt.Errorf("yt-dlp: %w", ErrEmptyMetadata)
	}

	info := mockInfo(url, platform)
	if payload.Title != "" {
		info.Title = payload.Title
	}
	if payload.Thumbnail != "" {
		info.Thumbnail = payload.Thumbnail
	}
	if d := FormatDuration(payload.Duration); d != "" {
		info.Duration = d
	}
	if q := qualitiesFromFormats(payload.Formats); len(q) > 0 {
		info.Qualities = q
	}

	return info, nil
}

// qualitiesFromFormats keeps one video rendition per height, highest first.
func qualitiesFromFormats(formats []ytdlpFormat) []Quality {
	byHeight := make(map[int]string)
	for _, f := range formats {
		if f.Height <= 0 || f.URL == "" || f.VCodec == "none" {
			continue
		}
		if _, seen := byHeight[f.Height]; !seen {
			byHeight[f.Height] = f.URL
		}
	}

	heights := make([]int, 0, len(byHeight))
	for h := range byHeight {
		heights = append(heights, h)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	out := make([]Quality, 0, len(heights))
	for _, h := range heights {
		out = append(out, Quality{Quality: fmt.Sprintf("%dp", h), URL: byHeight[h]})
	}
	return out
}

func defaultCommandRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	return cmd.Output()
}
