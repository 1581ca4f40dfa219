package download

import (
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(model.DownloadTask))
	AddTask(req Request) (*model.DownloadTask, error)
	GetTask(id string) (model.DownloadTask, bool)
	GetAllTasks() []model.DownloadTask
	StopTask(id string) error
	RemoveTask(id string) error
	ClearFinished() int

	// SetReporter adds a sink for every task's progress events
	SetReporter(r progress.Reporter)

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)
}

var _ Downloader = (*Service)(nil)
