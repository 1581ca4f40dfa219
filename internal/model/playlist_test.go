package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPlaylist(t *testing.T) {
	p := NewPlaylist("https://www.youtube.com/playlist?list=PL123")

	assert.Equal(t, "https://www.youtube.com/playlist?list=PL123", p.URL)
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.CreatedAt.IsZero())
}

func TestPlaylist_TotalDuration(t *testing.T) {
	p := NewPlaylist("u")
	p.AddEntry(&PlaylistEntry{ID: "a", Duration: 60})
	p.AddEntry(&PlaylistEntry{ID: "b", Duration: 90.5})
	p.AddEntry(&PlaylistEntry{ID: "c"})

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 150500*time.Millisecond, p.TotalDuration())
}

func TestPlaylist_DisplayTitle(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Mix", (&Playlist{Title: "Mix", ID: "PL1"}).DisplayTitle())
	assert.Equal("Playlist PL1", (&Playlist{ID: "PL1"}).DisplayTitle())
	assert.Equal("Untitled Playlist", (&Playlist{}).DisplayTitle())
}

func TestPlaylistFromInfo(t *testing.T) {
	info := &MediaInfo{
		ID:    "PL1",
		Type:  MediaTypePlaylist,
		Title: "Road trip",
		Entries: []PlaylistEntry{
			{ID: "v1", Title: "First", Duration: 120},
			{ID: "v2", Title: "Second"},
		},
	}

	p := PlaylistFromInfo("https://www.youtube.com/playlist?list=PL1", info)

	assert.Equal(t, "PL1", p.ID)
	assert.Equal(t, "Road trip", p.Title)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "02:00", p.Entries[0].DisplayDuration())
	assert.Equal(t, Unknown, p.Entries[1].DisplayDuration())

	// entries are copies, not aliases of the metadata slice
	p.Entries[0].Title = "Changed"
	assert.Equal(t, "First", info.Entries[0].Title)
}
