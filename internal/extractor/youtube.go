package extractor

import (
	"context"

	"github.com/kkdai/youtube/v2"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
)

// Upload date layout used by yt-dlp
const UploadDateLayout = "20060102"

// YouTubeClient is the subset of the native YouTube client used for metadata
type YouTubeClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetPlaylistContext(ctx context.Context, url string) (*youtube.Playlist, error)
}

// NewYouTubeClient returns the native YouTube client
func NewYouTubeClient() YouTubeClient {
	return &youtube.Client{}
}

func fetchYouTube(ctx context.Context, client YouTubeClient, url string) (*model.MediaInfo, error) {
	if PlaylistID(url) != "" && !hasVideoID(url) {
		playlist, err := client.GetPlaylistContext(ctx, url)
		if err != nil {
			return nil, err
		}
		return infoFromPlaylist(url, playlist), nil
	}

	video, err := client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return infoFromVideo(url, video), nil
}

func infoFromVideo(url string, v *youtube.Video) *model.MediaInfo {
	info := &model.MediaInfo{
		ID:          v.ID,
		Type:        model.MediaTypeVideo,
		Title:       v.Title,
		Uploader:    v.Author,
		Duration:    v.Duration.Seconds(),
		ViewCount:   int64(v.Views),
		Description: v.Description,
		WebpageURL:  url,
		Extractor:   "youtube",
	}
	if !v.PublishDate.IsZero() {
		info.UploadDate = v.PublishDate.Format(UploadDateLayout)
	}
	return info
}

func infoFromPlaylist(url string, p *youtube.Playlist) *model.MediaInfo {
	info := &model.MediaInfo{
		ID:          p.ID,
		Type:        model.MediaTypePlaylist,
		Title:       p.Title,
		Uploader:    p.Author,
		Description: p.Description,
		WebpageURL:  url,
		Extractor:   "youtube:tab",
	}
	for _, v := range p.Videos {
		if v == nil {
			continue
		}
		info.Entries = append(info.Entries, model.PlaylistEntry{
			ID:       v.ID,
			Title:    v.Title,
			URL:      videoURL(v.ID),
			Duration: v.Duration.Seconds(),
			Uploader: v.Author,
		})
	}
	return info
}
