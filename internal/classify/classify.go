package classify

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmptyURL       = errors.New("URL is empty")
	ErrUnsupportedURL = errors.New("URL format not recognized")
)

// Kind is the coarse shape of a media URL
type Kind string

const (
	KindVideo    Kind = "video"
	KindPlaylist Kind = "playlist"
	KindChannel  Kind = "channel"
	KindShort    Kind = "short"
	KindUnknown  Kind = "unknown"
)

// URL markers used by playlist detection
const (
	PlaylistMarker = "playlist"
	ListParam      = "list="
	DefaultScheme  = "https://"
)

type pattern struct {
	re   *regexp.Regexp
	kind Kind
}

// Order matters: the first match decides the kind.
var youtubePatterns = []pattern{
	{regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.|music\.)?youtube\.com/playlist\?list=[\w-]+`), KindPlaylist},
	{regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.|music\.)?youtube\.com/watch\?v=[\w-]+`), KindVideo},
	{regexp.MustCompile(`(?i)^(?:https?://)?youtu\.be/[\w-]+`), KindVideo},
	{regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?youtube\.com/shorts/[\w-]+`), KindShort},
	{regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?youtube\.com/embed/[\w-]+`), KindVideo},
	{regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?youtube\.com/(?:c/|channel/|@)[\w.-]+`), KindChannel},
	{regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|music\.|m\.)?youtube\.com/[\w/?=&-]+`), KindUnknown},
}

// Prober asks the extraction engine whether it can handle a URL without
// downloading anything.
type Prober interface {
	Probe(ctx context.Context, url string) (title string, err error)
}

// Result describes a classified URL
type Result struct {
	URL  string
	Kind Kind
	// Recognized is true when a known YouTube pattern matched
	Recognized bool
	// Probed is true when the engine accepted an unrecognized URL
	Probed bool
	// Forced is true when validation was skipped
	Forced bool
	Title  string
}

// Playlist reports whether the URL should be treated as a playlist
func (r *Result) Playlist() bool {
	return r.Kind == KindPlaylist || LooksLikePlaylist(r.URL)
}

// Classifier validates and normalizes media URLs
type Classifier struct {
	prober Prober
	logger *zap.Logger
}

// New creates a classifier. prober may be nil, in which case unrecognized URLs
// are rejected unless forced.
func New(prober Prober, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{prober: prober, logger: logger.Named("classify")}
}

// Classify normalizes raw and decides whether it can be downloaded. With
// force set, any non-empty input is accepted as is.
func (c *Classifier) Classify(ctx context.Context, raw string, force bool) (*Result, error) {
	url, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	kind, recognized := Match(url)
	res := &Result{URL: url, Kind: kind, Recognized: recognized}
	if recognized {
		return res, nil
	}
	if force {
		c.logger.Warn("accepting unverified URL", zap.String("url", url))
		res.Forced = true
		return res, nil
	}

	if c.prober != nil {
		title, err := c.prober.Probe(ctx, url)
		if err == nil {
			res.Probed = true
			res.Title = title
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Debug("probe rejected URL", zap.String("url", url), zap.Error(err))
	}

	return res, fmt.Errorf("%w: %s", ErrUnsupportedURL, url)
}

// Normalize strips control whitespace and prepends https:// when no scheme is
// given.
func Normalize(raw string) (string, error) {
	url := strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t':
			return -1
		}
		return r
	}, raw)
	url = strings.TrimSpace(url)
	if url == "" {
		return "", ErrEmptyURL
	}
	if !strings.Contains(url, "://") {
		url = DefaultScheme + url
	}
	return url, nil
}

// Match checks url against the known YouTube patterns
func Match(url string) (Kind, bool) {
	for _, p := range youtubePatterns {
		if p.re.MatchString(url) {
			kind := p.kind
			if kind == KindUnknown && LooksLikePlaylist(url) {
				kind = KindPlaylist
			} else if kind == KindUnknown {
				kind = KindVideo
			}
			return kind, true
		}
	}
	return KindUnknown, false
}

// LooksLikePlaylist is the cheap playlist heuristic used before metadata is
// available.
func LooksLikePlaylist(url string) bool {
	return strings.Contains(strings.ToLower(url), PlaylistMarker) || strings.Contains(url, ListParam)
}

// IsYouTube reports whether url points at a YouTube host
func IsYouTube(url string) bool {
	_, ok := Match(url)
	return ok
}
