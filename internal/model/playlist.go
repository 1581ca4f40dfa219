package model

import (
	"fmt"
	"time"
)

// PlaylistEntry is a single item of a playlist listing
type PlaylistEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Uploader string  `json:"uploader,omitempty"`
}

// DisplayDuration returns the entry duration formatted as MM:SS
func (e PlaylistEntry) DisplayDuration() string {
	return FormatDuration(int(e.Duration))
}

// Playlist represents a playlist preview listed before downloading
type Playlist struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Entries   []*PlaylistEntry `json:"entries"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewPlaylist creates a new, empty playlist for the given URL
func NewPlaylist(url string) *Playlist {
	return &Playlist{
		URL:       url,
		Entries:   make([]*PlaylistEntry, 0),
		CreatedAt: time.Now(),
	}
}

// AddEntry appends an entry to the playlist
func (p *Playlist) AddEntry(entry *PlaylistEntry) {
	p.Entries = append(p.Entries, entry)
}

// Len returns the number of entries
func (p *Playlist) Len() int {
	return len(p.Entries)
}

// TotalDuration sums the known entry durations
func (p *Playlist) TotalDuration() time.Duration {
	var total float64
	for _, e := range p.Entries {
		total += e.Duration
	}
	return time.Duration(total * float64(time.Second))
}

// DisplayTitle returns the playlist title or a title derived from its ID
func (p *Playlist) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	if p.ID != "" {
		return fmt.Sprintf("Playlist %s", p.ID)
	}
	return "Untitled Playlist"
}

// PlaylistFromInfo converts playlist metadata into a Playlist
func PlaylistFromInfo(url string, info *MediaInfo) *Playlist {
	p := NewPlaylist(url)
	if info == nil {
		return p
	}
	p.ID = info.ID
	p.Title = info.Title
	for i := range info.Entries {
		entry := info.Entries[i]
		p.AddEntry(&entry)
	}
	return p
}
