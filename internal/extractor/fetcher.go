package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/classify"
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
)

// Timeout constants
const (
	DefaultFetchTimeout = 60 * time.Second
)

var ErrNoMetadata = errors.New("engine returned no metadata")

// JSONSource dumps the engine's info dictionary for a URL
type JSONSource interface {
	DumpJSON(ctx context.Context, url string) ([]byte, error)
}

// EngineSource runs yt-dlp with --skip-download --dump-single-json
// --flat-playlist.
type EngineSource struct {
	Engine platform.Engine
}

func (s EngineSource) DumpJSON(ctx context.Context, url string) ([]byte, error) {
	res, err := s.Engine.Command().
		SkipDownload().
		DumpSingleJSON().
		FlatPlaylist().
		NoWarnings().
		Run(ctx, url)
	if err != nil {
		return nil, err
	}
	return []byte(res.Stdout), nil
}

// Fetcher resolves MediaInfo for a URL
type Fetcher struct {
	source  JSONSource
	youtube YouTubeClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewFetcher creates a fetcher. youtube may be nil to disable the native
// YouTube fallback.
func NewFetcher(source JSONSource, youtube YouTubeClient, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		source:  source,
		youtube: youtube,
		timeout: DefaultFetchTimeout,
		logger:  logger.Named("extractor"),
	}
}

// SetTimeout sets the timeout for a single fetch
func (f *Fetcher) SetTimeout(timeout time.Duration) {
	f.timeout = timeout
}

// Fetch returns the metadata of url. When the engine fails on a YouTube URL
// the native client is tried; if both fail, both errors are returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*model.MediaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	info, err := f.fetchEngine(ctx, url)
	if err == nil {
		return info, nil
	}
	if ctx.Err() != nil || f.youtube == nil || !classify.IsYouTube(url) {
		return nil, fmt.Errorf("failed to fetch info: %w", err)
	}

	f.logger.Warn("engine metadata failed, trying native YouTube client", zap.String("url", url), zap.Error(err))
	info, ytErr := fetchYouTube(ctx, f.youtube, url)
	if ytErr == nil {
		return info, nil
	}

	var result *multierror.Error
	result = multierror.Append(result, multierror.Prefix(err, "yt-dlp:"))
	result = multierror.Append(result, multierror.Prefix(ytErr, "youtube:"))
	return nil, fmt.Errorf("failed to fetch info: %w", result.ErrorOrNil())
}

func (f *Fetcher) fetchEngine(ctx context.Context, url string) (*model.MediaInfo, error) {
	data, err := f.source.DumpJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	info, err := ParseInfo(data)
	if err != nil {
		return nil, err
	}
	if info.WebpageURL == "" {
		info.WebpageURL = url
	}
	return info, nil
}

// ParseInfo decodes the info dictionary printed by yt-dlp. Leading log lines
// before the JSON object are ignored. Flat playlist entries without an ID or
// URL are dropped.
func ParseInfo(data []byte) (*model.MediaInfo, error) {
	data = bytes.TrimSpace(data)
	if i := bytes.IndexByte(data, '{'); i > 0 {
		data = data[i:]
	}
	if len(data) == 0 {
		return nil, ErrNoMetadata
	}

	var info model.MediaInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	entries := info.Entries[:0]
	for _, e := range info.Entries {
		if e.ID == "" && e.URL == "" {
			continue
		}
		if e.URL == "" && isYouTubeExtractor(info.Extractor) {
			e.URL = fmt.Sprintf(YouTubeVideoURLTemplate, e.ID)
		}
		entries = append(entries, e)
	}
	info.Entries = entries
	if info.IsPlaylist() && info.Type == "" {
		info.Type = model.MediaTypePlaylist
	}
	return &info, nil
}

func isYouTubeExtractor(name string) bool {
	return name == "youtube" || name == "youtube:tab" || name == "youtube:playlist"
}
