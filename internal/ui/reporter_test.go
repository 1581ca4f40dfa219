package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

func TestBoundReporter(t *testing.T) {
	test.NewApp()
	r := NewBoundReporter(NewLocalization())

	status, _ := r.Status.Get()
	if status != "Ready" {
		t.Errorf("Expected initial status Ready, got %s", status)
	}

	r.Report(progress.Event{Kind: progress.KindStarted, Filename: "/tmp/clip.mp4"})
	status, _ = r.Status.Get()
	if !strings.Contains(status, "clip.mp4") {
		t.Errorf("Expected started status to name the file, got %s", status)
	}

	r.Report(progress.Event{Kind: progress.KindProgressing, Downloaded: 50, Total: 200, Percent: 25, Speed: 2 * 1024 * 1024, ETA: 3 * time.Second})
	value, _ := r.Progress.Get()
	if value != 0.25 {
		t.Errorf("Expected progress 0.25, got %f", value)
	}
	status, _ = r.Status.Get()
	if !strings.Contains(status, "25.0%") || !strings.Contains(status, "2.0MB/s") {
		t.Errorf("Expected percent and speed in status, got %s", status)
	}

	// no total: ignored
	r.Report(progress.Event{Kind: progress.KindProgressing, Downloaded: 100})
	value, _ = r.Progress.Get()
	if value != 0.25 {
		t.Errorf("Expected progress to stay at 0.25, got %f", value)
	}

	r.Report(progress.Event{Kind: progress.KindFinished, Filename: "/tmp/clip.mp4"})
	value, _ = r.Progress.Get()
	if value != 1 {
		t.Errorf("Expected progress 1 when finished, got %f", value)
	}

	r.Report(progress.Event{Kind: progress.KindFailed, Err: errors.New("HTTP Error 403")})
	status, _ = r.Status.Get()
	if !strings.Contains(status, "HTTP Error 403") {
		t.Errorf("Expected error in status, got %s", status)
	}
}
