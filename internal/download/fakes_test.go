package download

import (
	"context"
	"sync"

	"github.com/AliEhsanian/YouTube-Downloader/internal/history"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

type fakeRunner struct {
	mu       sync.Mutex
	calls    int
	urls     []string
	lastOpts Options
	errs     []error
	outcome  *Outcome
	events   []progress.Event
	block    chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context, url string, opts Options, reporter progress.Reporter) (*Outcome, error) {
	f.mu.Lock()
	attempt := f.calls
	f.calls++
	f.urls = append(f.urls, url)
	f.lastOpts = opts
	block := f.block
	f.mu.Unlock()

	for _, e := range f.events {
		reporter.Report(e)
	}
	if block != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-block:
		}
	}
	if attempt < len(f.errs) && f.errs[attempt] != nil {
		return nil, f.errs[attempt]
	}
	return f.outcome, nil
}

func (f *fakeRunner) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []*history.Record
}

func (f *fakeRecorder) Add(rec *history.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRecorder) Records() []*history.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*history.Record(nil), f.records...)
}
