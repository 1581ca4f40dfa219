package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	ytget "github.com/ytget/ytdlp/v2"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	VideoParam     = "v="
	ParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	DefaultPlaylistName = "Unknown Playlist"
	MinPrefixLength     = 10
	PlaylistSuffix      = " Playlist"
)

// ItemsSource lists the videos of a YouTube playlist by ID
type ItemsSource interface {
	Items(ctx context.Context, playlistID string) ([]*model.PlaylistEntry, error)
}

// YTGetItems lists playlist items through the ytget client
type YTGetItems struct{}

func (YTGetItems) Items(ctx context.Context, playlistID string) ([]*model.PlaylistEntry, error) {
	items, err := ytget.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	entries := make([]*model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, &model.PlaylistEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   videoURL(it.VideoID),
		})
	}
	return entries, nil
}

// PlaylistLister lists playlist entries ahead of a download
type PlaylistLister struct {
	items   ItemsSource
	fetcher *Fetcher
	timeout time.Duration
	logger  *zap.Logger
}

// NewPlaylistLister creates a lister. items may be nil, in which case only the
// engine's flat listing is used.
func NewPlaylistLister(items ItemsSource, fetcher *Fetcher, logger *zap.Logger) *PlaylistLister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlaylistLister{
		items:   items,
		fetcher: fetcher,
		timeout: DefaultPlaylistTimeout,
		logger:  logger.Named("playlist"),
	}
}

// SetTimeout sets the timeout for listing operations
func (l *PlaylistLister) SetTimeout(timeout time.Duration) {
	l.timeout = timeout
}

// ListPlaylist lists the entries of url. YouTube list= URLs go through the
// ytget client first, everything else through the engine's flat listing.
func (l *PlaylistLister) ListPlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if id := PlaylistID(url); id != "" && l.items != nil {
		entries, err := l.items.Items(ctx, id)
		if err == nil && len(entries) > 0 {
			playlist := model.NewPlaylist(url)
			playlist.ID = id
			for _, e := range entries {
				playlist.AddEntry(e)
			}
			playlist.Title = guessPlaylistTitle(entries)
			return playlist, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		l.logger.Debug("playlist item listing failed, using engine", zap.String("id", id), zap.Error(err))
	}

	if l.fetcher == nil {
		return nil, fmt.Errorf("could not list playlist: %s", url)
	}
	info, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if !info.IsPlaylist() {
		return nil, fmt.Errorf("not a playlist: %s", url)
	}
	return model.PlaylistFromInfo(url, info), nil
}

// PlaylistID extracts the list= parameter of a URL
func PlaylistID(url string) string {
	return queryParam(url, PlaylistParam)
}

func hasVideoID(url string) bool {
	return queryParam(url, "?"+VideoParam) != "" || queryParam(url, ParamSeparator+VideoParam) != ""
}

func queryParam(url, key string) string {
	parts := strings.SplitN(url, key, 2)
	if len(parts) < 2 {
		return ""
	}
	value := parts[1]
	if i := strings.IndexAny(value, ParamSeparator+"#"); i >= 0 {
		value = value[:i]
	}
	return value
}

func videoURL(id string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, id)
}

// guessPlaylistTitle derives a title when the listing carries none: the
// common prefix of the first two titles, or the first title.
func guessPlaylistTitle(entries []*model.PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		prefix := commonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	r1, r2 := []rune(s1), []rune(s2)
	n := min(len(r1), len(r2))
	for i := 0; i < n; i++ {
		if r1[i] != r2[i] {
			return string(r1[:i])
		}
	}
	return string(r1[:n])
}
