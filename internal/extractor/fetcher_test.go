package extractor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
)

type fakeSource struct {
	data []byte
	err  error
}

func (f fakeSource) DumpJSON(ctx context.Context, url string) ([]byte, error) {
	return f.data, f.err
}

type fakeYouTube struct {
	video    *youtube.Video
	playlist *youtube.Playlist
	err      error
	calls    []string
}

func (f *fakeYouTube) GetVideoContext(ctx context.Context, url string) (*youtube.Video, error) {
	f.calls = append(f.calls, "video")
	return f.video, f.err
}

func (f *fakeYouTube) GetPlaylistContext(ctx context.Context, url string) (*youtube.Playlist, error) {
	f.calls = append(f.calls, "playlist")
	return f.playlist, f.err
}

const videoJSON = `{
	"id": "dQw4w9WgXcQ",
	"_type": "video",
	"title": "Never Gonna Give You Up",
	"uploader": "Rick Astley",
	"duration": 212,
	"upload_date": "20091025",
	"view_count": 1500000000,
	"description": "The official video",
	"extractor": "youtube"
}`

const playlistJSON = `{
	"id": "PL123",
	"_type": "playlist",
	"title": "Mix",
	"extractor": "youtube:tab",
	"entries": [
		{"id": "a1", "title": "First", "duration": 61},
		{"id": "", "title": "Deleted video"},
		{"id": "b2", "title": "Second", "url": "https://www.youtube.com/watch?v=b2"}
	]
}`

func TestParseInfoVideo(t *testing.T) {
	info, err := ParseInfo([]byte(videoJSON))
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", info.ID)
	assert.Equal(t, "Rick Astley", info.DisplayUploader())
	assert.Equal(t, "03:32", model.FormatDuration(int(info.Duration)))
	assert.Equal(t, "2009-10-25", model.FormatUploadDate(info.UploadDate))
	assert.Equal(t, int64(1500000000), info.ViewCount)
	assert.False(t, info.IsPlaylist())
}

func TestParseInfoPlaylist(t *testing.T) {
	info, err := ParseInfo([]byte("[youtube:tab] Downloading page\n" + playlistJSON))
	require.NoError(t, err)

	assert.True(t, info.IsPlaylist())
	require.Len(t, info.Entries, 2)
	assert.Equal(t, "https://www.youtube.com/watch?v=a1", info.Entries[0].URL)
	assert.Equal(t, "https://www.youtube.com/watch?v=b2", info.Entries[1].URL)
}

func TestParseInfoErrors(t *testing.T) {
	_, err := ParseInfo(nil)
	assert.ErrorIs(t, err, ErrNoMetadata)

	_, err = ParseInfo([]byte("{not json"))
	assert.Error(t, err)
}

func TestFetchEngine(t *testing.T) {
	yt := &fakeYouTube{}
	f := NewFetcher(fakeSource{data: []byte(videoJSON)}, yt, nil)

	info, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", info.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", info.WebpageURL)
	assert.Empty(t, yt.calls)
}

func TestFetchFallbackVideo(t *testing.T) {
	yt := &fakeYouTube{video: &youtube.Video{
		ID:          "abc",
		Title:       "Native",
		Author:      "Someone",
		Duration:    90 * time.Second,
		Views:       42,
		PublishDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	}}
	f := NewFetcher(fakeSource{err: errors.New("yt-dlp exited 1")}, yt, nil)

	info, err := f.Fetch(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"video"}, yt.calls)
	assert.Equal(t, "Native", info.Title)
	assert.Equal(t, "20240309", info.UploadDate)
	assert.Equal(t, float64(90), info.Duration)
	assert.Equal(t, int64(42), info.ViewCount)
}

func TestFetchFallbackPlaylist(t *testing.T) {
	yt := &fakeYouTube{playlist: &youtube.Playlist{
		ID:    "PL1",
		Title: "List",
		Videos: []*youtube.PlaylistEntry{
			{ID: "v1", Title: "One", Duration: time.Minute},
			nil,
		},
	}}
	f := NewFetcher(fakeSource{err: errors.New("boom")}, yt, nil)

	info, err := f.Fetch(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	require.NoError(t, err)
	assert.Equal(t, []string{"playlist"}, yt.calls)
	assert.True(t, info.IsPlaylist())
	require.Len(t, info.Entries, 1)
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", info.Entries[0].URL)
}

func TestFetchBothFail(t *testing.T) {
	yt := &fakeYouTube{err: errors.New("native failed")}
	f := NewFetcher(fakeSource{err: errors.New("engine failed")}, yt, nil)

	_, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine failed")
	assert.Contains(t, err.Error(), "native failed")
}

func TestFetchNonYouTubeSkipsFallback(t *testing.T) {
	yt := &fakeYouTube{}
	f := NewFetcher(fakeSource{err: errors.New("unsupported URL")}, yt, nil)

	_, err := f.Fetch(context.Background(), "https://vimeo.com/1")
	require.Error(t, err)
	assert.Empty(t, yt.calls)
}
