package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder used when a metadata field is missing
const Unknown = "Unknown"

// Media types reported by the extraction engine in the "_type" field
const (
	MediaTypeVideo    = "video"
	MediaTypePlaylist = "playlist"
	MediaTypeURL      = "url"
)

// MediaInfo is the descriptive metadata of a media reference. Field names and
// JSON tags follow the info dictionary printed by yt-dlp so the engine output
// can be decoded directly.
type MediaInfo struct {
	ID            string          `json:"id"`
	Type          string          `json:"_type,omitempty"`
	Title         string          `json:"title"`
	Uploader      string          `json:"uploader,omitempty"`
	Channel       string          `json:"channel,omitempty"`
	Duration      float64         `json:"duration,omitempty"`
	UploadDate    string          `json:"upload_date,omitempty"`
	ViewCount     int64           `json:"view_count,omitempty"`
	Description   string          `json:"description,omitempty"`
	WebpageURL    string          `json:"webpage_url,omitempty"`
	Extractor     string          `json:"extractor,omitempty"`
	Thumbnail     string          `json:"thumbnail,omitempty"`
	// Set on entries of a playlist
	PlaylistTitle string          `json:"playlist_title,omitempty"`
	Entries       []PlaylistEntry `json:"entries,omitempty"`
}

// IsPlaylist reports whether the metadata describes a playlist
func (m *MediaInfo) IsPlaylist() bool {
	return m != nil && (m.Type == MediaTypePlaylist || len(m.Entries) > 0)
}

// DisplayTitle returns the title or the Unknown placeholder
func (m *MediaInfo) DisplayTitle() string {
	if m == nil || strings.TrimSpace(m.Title) == "" {
		return Unknown
	}
	return m.Title
}

// DisplayUploader returns the uploader, falling back to the channel name
func (m *MediaInfo) DisplayUploader() string {
	if m == nil {
		return Unknown
	}
	if m.Uploader != "" {
		return m.Uploader
	}
	if m.Channel != "" {
		return m.Channel
	}
	return Unknown
}

// FormatDuration formats seconds as MM:SS. Minutes are not wrapped into hours,
// so a 65 minute video renders as 65:00. Zero renders as Unknown.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return Unknown
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatUploadDate converts the engine's YYYYMMDD date to YYYY-MM-DD. Any
// other non-empty value is returned unchanged.
func FormatUploadDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" || date == Unknown {
		return Unknown
	}
	if len(date) == 8 && isDigits(date) {
		return date[:4] + "-" + date[4:6] + "-" + date[6:]
	}
	return date
}

// FormatViewCount renders a view count as a plain number
func FormatViewCount(views int64) string {
	if views <= 0 {
		return Unknown
	}
	return strconv.FormatInt(views, 10)
}

// FormatFileSize formats a byte count as a human readable size
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return Unknown
	}
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
