package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2/data/binding"

	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

// BoundReporter renders progress events into data bindings that drive a
// progress bar and a status label
type BoundReporter struct {
	Progress binding.Float
	Status   binding.String

	localization *Localization
}

// NewBoundReporter creates a reporter with fresh bindings
func NewBoundReporter(localization *Localization) *BoundReporter {
	r := &BoundReporter{
		Progress:     binding.NewFloat(),
		Status:       binding.NewString(),
		localization: localization,
	}
	_ = r.Status.Set(localization.GetText(KeyReady))
	return r
}

// Report implements progress.Reporter
func (r *BoundReporter) Report(e progress.Event) {
	name := eventName(e)

	switch e.Kind {
	case progress.KindStarted:
		_ = r.Progress.Set(0)
		_ = r.Status.Set(fmt.Sprintf("%s: %s", r.localization.GetText(KeyDownloading), name))
	case progress.KindProgressing:
		if !e.HasTotal() {
			return
		}
		_ = r.Progress.Set(e.Percent / 100)
		_ = r.Status.Set(r.progressText(e, name))
	case progress.KindPostProcessing:
		_ = r.Progress.Set(1)
		_ = r.Status.Set(fmt.Sprintf("%s %s: %s", IconWorking, r.localization.GetText(KeyPostProcessing), name))
	case progress.KindFinished:
		_ = r.Progress.Set(1)
		_ = r.Status.Set(fmt.Sprintf("%s %s: %s", IconDone, r.localization.GetText(KeyDownloadCompleted), name))
	case progress.KindFailed:
		msg := "unknown error"
		if e.Err != nil {
			msg = e.Err.Error()
		}
		_ = r.Status.Set(fmt.Sprintf("%s %s: %s", IconError, r.localization.GetText(KeyDownloadFailed), msg))
	}
}

func (r *BoundReporter) progressText(e progress.Event, name string) string {
	parts := []string{fmt.Sprintf("%s %.1f%%", r.localization.GetText(KeyDownloading), e.Percent)}
	if speed := e.SpeedString(); speed != "" {
		parts = append(parts, speed)
	}
	if e.ETA > 0 {
		parts = append(parts, "ETA "+e.ETA.String())
	}
	if e.PlaylistCount > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", e.PlaylistIndex, e.PlaylistCount))
	}
	text := strings.Join(parts, MiddleDotSeparator)
	if name != "" {
		text += MiddleDotSeparator + name
	}
	return text
}

func eventName(e progress.Event) string {
	if e.Title != "" {
		return e.Title
	}
	if e.Filename != "" {
		return filepath.Base(e.Filename)
	}
	return ""
}
