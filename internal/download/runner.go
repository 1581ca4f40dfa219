package download

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

// Progress callback interval
const (
	DefaultProgressInterval = 500 * time.Millisecond
)

// The engine prints one line per file once it reaches its final location:
// the prefix followed by a JSON array of title and path.
const (
	OutputLinePrefix = "output:"
	OutputPrint      = "after_move:" + OutputLinePrefix + "[%(title)j,%(filepath)j]"
)

// Outcome is what the engine reports after a successful run
type Outcome struct {
	Title string
	Files []string
}

// Runner executes one engine invocation
type Runner interface {
	Run(ctx context.Context, url string, opts Options, reporter progress.Reporter) (*Outcome, error)
}

// EngineRunner runs yt-dlp through go-ytdlp
type EngineRunner struct {
	Engine   platform.Engine
	Interval time.Duration
}

func (r EngineRunner) Run(ctx context.Context, url string, opts Options, reporter progress.Reporter) (*Outcome, error) {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	cmd := opts.Apply(r.Engine.Command()).
		NoWarnings().
		Print(OutputPrint).
		ProgressFunc(interval, func(update ytdlp.ProgressUpdate) {
			if event, ok := eventFromUpdate(update); ok {
				reporter.Report(event)
			}
		})

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{}
	for _, line := range res.OutputLogs {
		if line.Pipe != "stdout" {
			continue
		}
		title, path, ok := parseOutputLine(line.Line)
		if !ok {
			continue
		}
		if outcome.Title == "" {
			outcome.Title = title
		}
		outcome.Files = append(outcome.Files, path)
	}
	return outcome, nil
}

// parseOutputLine reads a line printed by OutputPrint
func parseOutputLine(line string) (title, path string, ok bool) {
	raw, found := strings.CutPrefix(strings.TrimSpace(line), OutputLinePrefix)
	if !found {
		return "", "", false
	}
	var fields []string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || len(fields) != 2 || fields[1] == "" {
		return "", "", false
	}
	return fields[0], fields[1], true
}

// eventFromUpdate translates an engine progress update. Download ticks with
// no known total are dropped.
func eventFromUpdate(u ytdlp.ProgressUpdate) (progress.Event, bool) {
	event := progress.Event{
		Filename:   u.Filename,
		Downloaded: int64(u.DownloadedBytes),
		Total:      int64(u.TotalBytes),
		ETA:        -1,
	}
	if u.Info != nil {
		if u.Info.Title != nil {
			event.Title = *u.Info.Title
		}
		if u.Info.PlaylistIndex != nil {
			event.PlaylistIndex = *u.Info.PlaylistIndex
		}
		if u.Info.PlaylistCount != nil {
			event.PlaylistCount = *u.Info.PlaylistCount
		}
	}

	switch u.Status {
	case ytdlp.ProgressStatusStarting:
		event.Kind = progress.KindStarted
	case ytdlp.ProgressStatusDownloading:
		percent, ok := progress.Percentage(event.Downloaded, event.Total)
		if !ok {
			return event, false
		}
		event.Kind = progress.KindProgressing
		event.Percent = percent
		if eta := u.ETA(); eta > 0 {
			event.ETA = eta
		}
		if !u.Started.IsZero() {
			if elapsed := time.Since(u.Started).Seconds(); elapsed > 0 {
				event.Speed = float64(event.Downloaded) / elapsed
			}
		}
	case ytdlp.ProgressStatusPostProcessing:
		event.Kind = progress.KindPostProcessing
	case ytdlp.ProgressStatusFinished:
		event.Kind = progress.KindFinished
		event.Percent = 100
	default:
		// errors surface through Run's return value
		return event, false
	}
	return event, true
}
