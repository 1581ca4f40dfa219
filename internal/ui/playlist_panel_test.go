package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
)

func TestPlaylistPanel(t *testing.T) {
	test.NewApp()

	var requested *model.Playlist
	pp := NewPlaylistPanel(NewLocalization(), func(p *model.Playlist) { requested = p })
	if pp.Container().Visible() {
		t.Error("Expected panel to start hidden")
	}

	playlist := model.NewPlaylist("https://www.youtube.com/playlist?list=PL1")
	playlist.Title = "Mix"
	playlist.AddEntry(&model.PlaylistEntry{ID: "a", Title: "First", Duration: 90})
	playlist.AddEntry(&model.PlaylistEntry{ID: "b", Title: "Second", Duration: 30})

	pp.SetPlaylist(playlist)
	if !pp.Container().Visible() {
		t.Error("Expected panel to be visible with entries")
	}
	if !strings.Contains(pp.header.Text, "Mix") || !strings.Contains(pp.header.Text, ": 2") {
		t.Errorf("Unexpected header %q", pp.header.Text)
	}
	if !strings.HasSuffix(pp.header.Text, "02:00") {
		t.Errorf("Expected total duration in header, got %q", pp.header.Text)
	}

	test.Tap(pp.downloadBtn)
	if requested != playlist {
		t.Error("Expected download callback with the shown playlist")
	}

	pp.SetPlaylist(model.NewPlaylist("https://www.youtube.com/playlist?list=PL2"))
	if pp.Container().Visible() {
		t.Error("Expected empty playlist to hide the panel")
	}
}
