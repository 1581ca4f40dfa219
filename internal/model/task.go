package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DownloadTask represents a single download task
type DownloadTask struct {
	ID         string
	URL        string
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to the last finished file
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
	Title      string    // media title
	Uploader   string    // channel or uploader name
	Duration   string    // formatted duration
	FileSize   int64     // file size in bytes

	// Requested options, kept for display and restarts
	Quality  string
	Format   string
	Playlist bool
}

// ConversionTask represents a standalone ffmpeg conversion of a finished download
type ConversionTask struct {
	ID           string
	InputPath    string
	OutputPath   string
	TargetFormat string
	Status       TaskStatus
	Progress     float64 // 0.0 to 1.0
	Percent      int     // 0 to 100
	LastError    string  // last error message if any
	StartedAt    time.Time
	FinishedAt   time.Time
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	if dt.OutputPath != "" {
		// Support both / and \ separators regardless of host OS
		name := filepath.Base(strings.ReplaceAll(dt.OutputPath, "\\", "/"))
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		if name != "" && name != "." && name != "/" {
			return name
		}
	}

	return dt.URL
}

// Snapshot returns a copy of the task that is safe to hand to other goroutines
func (dt *DownloadTask) Snapshot() DownloadTask {
	return *dt
}
