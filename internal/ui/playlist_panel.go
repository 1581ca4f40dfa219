package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
)

// PlaylistPanel previews the entries of a playlist before it is downloaded
type PlaylistPanel struct {
	localization *Localization
	playlist     *model.Playlist

	container   *fyne.Container
	header      *widget.Label
	list        *widget.List
	downloadBtn *widget.Button

	onDownload func(*model.Playlist)
}

// NewPlaylistPanel creates a hidden playlist panel
func NewPlaylistPanel(localization *Localization, onDownload func(*model.Playlist)) *PlaylistPanel {
	pp := &PlaylistPanel{
		localization: localization,
		onDownload:   onDownload,
	}
	pp.createUI()
	return pp
}

func (pp *PlaylistPanel) createUI() {
	pp.header = widget.NewLabel("")
	pp.header.TextStyle = fyne.TextStyle{Bold: true}
	pp.header.Truncation = fyne.TextTruncateEllipsis

	pp.list = widget.NewList(
		func() int {
			if pp.playlist == nil {
				return 0
			}
			return pp.playlist.Len()
		},
		func() fyne.CanvasObject {
			title := widget.NewLabel("")
			title.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, nil, widget.NewLabel(""), title)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if pp.playlist == nil || id >= pp.playlist.Len() {
				return
			}
			entry := pp.playlist.Entries[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(fmt.Sprintf("%d. %s", id+1, singleLine(entry.Title)))
			row.Objects[1].(*widget.Label).SetText(entry.DisplayDuration())
		},
	)

	pp.downloadBtn = widget.NewButton(IconPlaylist+" "+pp.localization.GetText(KeyDownload), func() {
		if pp.onDownload != nil && pp.playlist != nil {
			pp.onDownload(pp.playlist)
		}
	})
	pp.downloadBtn.Importance = widget.HighImportance

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(0, PlaylistListHeight))

	pp.container = container.NewBorder(
		container.NewBorder(nil, nil, nil, pp.downloadBtn, pp.header),
		nil, nil, nil,
		container.NewStack(spacer, pp.list),
	)
	pp.container.Hide()
}

// Container returns the panel's canvas object
func (pp *PlaylistPanel) Container() fyne.CanvasObject {
	return pp.container
}

// SetPlaylist shows the given playlist, or hides the panel when it is empty
func (pp *PlaylistPanel) SetPlaylist(playlist *model.Playlist) {
	pp.playlist = playlist
	if playlist == nil || playlist.Len() == 0 {
		pp.container.Hide()
		pp.list.Refresh()
		return
	}

	pp.header.SetText(headerText(pp.localization, playlist))
	pp.list.Refresh()
	pp.container.Show()
}

// Playlist returns the playlist on display
func (pp *PlaylistPanel) Playlist() *model.Playlist {
	return pp.playlist
}

// Clear hides the panel
func (pp *PlaylistPanel) Clear() {
	pp.SetPlaylist(nil)
}

func headerText(localization *Localization, playlist *model.Playlist) string {
	text := fmt.Sprintf("%s %s%s%s: %d",
		IconPlaylist,
		singleLine(playlist.DisplayTitle()),
		MiddleDotSeparator,
		localization.GetText(KeyPlaylistEntries),
		playlist.Len(),
	)
	if total := playlist.TotalDuration(); total > 0 {
		text += MiddleDotSeparator + model.FormatDuration(int(total.Seconds()))
	}
	return text
}
