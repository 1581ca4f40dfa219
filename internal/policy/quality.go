package policy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownQuality = errors.New("unknown quality")
	ErrUnknownFormat  = errors.New("unknown format")
)

// Quality is a requested quality tier
type Quality string

const (
	QualityBest  Quality = "best"
	Quality4K    Quality = "4k"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	QualityAudio Quality = "audio"
)

// Qualities lists the tiers in menu order
var Qualities = []Quality{QualityBest, Quality4K, Quality1080p, Quality720p, QualityAudio}

// MaxHeight returns the height cap of the tier, or 0 when uncapped
func (q Quality) MaxHeight() int {
	switch q {
	case Quality4K:
		return 2160
	case Quality1080p:
		return 1080
	case Quality720p:
		return 720
	}
	return 0
}

// IsAudio reports whether the tier requests audio only
func (q Quality) IsAudio() bool {
	return q == QualityAudio
}

// Label returns a human readable description used by menus
func (q Quality) Label() string {
	switch q {
	case QualityBest:
		return "Best available quality (MP4 preferred)"
	case Quality4K:
		return "4K (2160p)"
	case Quality1080p:
		return "1080p"
	case Quality720p:
		return "720p"
	case QualityAudio:
		return "Audio only (MP3)"
	}
	return string(q)
}

func (q Quality) String() string {
	return string(q)
}

// ParseQuality parses a tier name. An empty string selects QualityBest.
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return QualityBest, nil
	}
	// accept "2160p" as an alias of 4k
	if s == "2160p" {
		return Quality4K, nil
	}
	for _, q := range Qualities {
		if string(q) == s {
			return q, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuality, s)
}

// Format is a preferred output container
type Format string

const (
	FormatMP4  Format = "mp4"
	FormatWebM Format = "webm"
	FormatMKV  Format = "mkv"
	FormatAVI  Format = "avi"
)

// Formats lists the containers in menu order
var Formats = []Format{FormatMP4, FormatWebM, FormatMKV, FormatAVI}

// Label returns a human readable description used by menus
func (f Format) Label() string {
	switch f {
	case FormatMP4:
		return "MP4 (recommended - best compatibility)"
	case FormatWebM:
		return "WebM (smaller file size)"
	case FormatMKV:
		return "MKV (high quality)"
	case FormatAVI:
		return "AVI (legacy compatibility)"
	}
	return string(f)
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a container name. An empty string selects FormatMP4.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if s == "" {
		return FormatMP4, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
