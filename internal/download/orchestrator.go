package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/history"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

// Retry settings
const (
	DefaultRetries = 1
	DefaultBackoff = 2 * time.Second
)

var ErrEmptyURL = errors.New("download URL is empty")

// Recorder stores finished downloads
type Recorder interface {
	Add(rec *history.Record) error
}

// Result describes a successful download
type Result struct {
	Title string
	Files []string
	Plan  policy.Plan
}

// Orchestrator runs single downloads end to end
type Orchestrator struct {
	runner   Runner
	recorder Recorder
	retries  int
	backoff  time.Duration
	logger   *zap.Logger
}

// NewOrchestrator creates an orchestrator. recorder may be nil.
func NewOrchestrator(runner Runner, recorder Recorder, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		runner:   runner,
		recorder: recorder,
		retries:  DefaultRetries,
		backoff:  DefaultBackoff,
		logger:   logger.Named("download"),
	}
}

// SetRetry configures how often a failed run is retried and the delay between
// attempts
func (o *Orchestrator) SetRetry(retries int, backoff time.Duration) {
	if retries < 0 {
		retries = 0
	}
	o.retries = retries
	o.backoff = backoff
}

// Run downloads req.URL, reporting lifecycle events to reporter. The
// outcome is recorded in history whether or not it succeeds.
func (o *Orchestrator) Run(ctx context.Context, req Request, reporter progress.Reporter) (*Result, error) {
	if reporter == nil {
		reporter = progress.Nop
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrEmptyURL
	}

	started := time.Now()
	opts, plan := BuildOptions(req)
	logger := o.logger.With(zap.String("url", req.URL))
	logger.Info("starting download",
		zap.String("plan", plan.Describe()),
		zap.String("output", opts.Output),
		zap.Bool("playlist", opts.Playlist),
	)

	title := ""
	if req.Info != nil {
		title = req.Info.Title
	}

	if req.OutputDir != "" {
		if err := platform.CreateDirectoryIfNotExists(req.OutputDir); err != nil {
			err = fmt.Errorf("failed to create output directory: %w", err)
			reporter.Report(progress.Event{Kind: progress.KindFailed, Title: title, Err: err})
			o.record(req, title, nil, started, err)
			return nil, err
		}
	}

	reporter.Report(progress.Event{Kind: progress.KindStarted, Title: title, ETA: -1})

	outcome, err := o.runWithRetry(ctx, req.URL, opts, reporter, logger)
	if err != nil {
		reporter.Report(progress.Event{Kind: progress.KindFailed, Title: title, Err: err})
		o.record(req, title, nil, started, err)
		return nil, err
	}

	if outcome.Title != "" {
		title = outcome.Title
	}
	o.record(req, title, outcome.Files, started, nil)
	logger.Info("download complete", zap.Strings("files", outcome.Files))

	return &Result{Title: title, Files: outcome.Files, Plan: plan}, nil
}

// runWithRetry attempts the download with retry logic
func (o *Orchestrator) runWithRetry(ctx context.Context, url string, opts Options, reporter progress.Reporter, logger *zap.Logger) (*Outcome, error) {
	var lastErr error

	for attempt := 0; attempt <= o.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(o.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			logger.Info("retrying download", zap.Int("attempt", attempt+1))
		}

		outcome, err := o.runner.Run(ctx, url, opts, reporter)
		if err == nil {
			if outcome == nil {
				outcome = &Outcome{}
			}
			return outcome, nil
		}

		lastErr = err
		logger.Warn("download attempt failed", zap.Int("attempt", attempt+1), zap.Error(err))

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (o *Orchestrator) record(req Request, title string, files []string, started time.Time, err error) {
	if o.recorder == nil {
		return
	}
	rec := &history.Record{
		URL:        req.URL,
		Title:      title,
		Quality:    string(req.Preference().Quality),
		Format:     string(req.Format),
		Playlist:   req.Playlist,
		OutputDir:  req.OutputDir,
		Files:      files,
		Outcome:    history.OutcomeCompleted,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	switch {
	case errors.Is(err, context.Canceled):
		rec.Outcome = history.OutcomeStopped
	case err != nil:
		rec.Outcome = history.OutcomeFailed
		rec.Error = err.Error()
	}
	if recErr := o.recorder.Add(rec); recErr != nil {
		o.logger.Warn("failed to record history", zap.Error(recErr))
	}
}
