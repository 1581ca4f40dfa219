package progress

import (
	"fmt"
	"time"
)

// Kind is the lifecycle stage an Event reports
type Kind string

const (
	KindStarted        Kind = "started"
	KindProgressing    Kind = "progressing"
	KindPostProcessing Kind = "post_processing"
	KindFinished       Kind = "finished"
	KindFailed         Kind = "failed"
)

// Event is a single lifecycle notification for one file of a download
type Event struct {
	Kind     Kind
	Title    string
	Filename string

	Downloaded int64
	// Total is the exact or estimated size, 0 when unknown
	Total   int64
	Percent float64
	// Speed in bytes per second, 0 when unknown
	Speed float64
	// ETA is negative when unknown
	ETA time.Duration

	// Playlist position, 0 for single downloads
	PlaylistIndex int
	PlaylistCount int

	Err error
}

// HasTotal reports whether the event carries a size to compute a percentage from
func (e Event) HasTotal() bool {
	return e.Total > 0
}

// SpeedString formats Speed as MB/s, empty when unknown
func (e Event) SpeedString() string {
	if e.Speed <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1fMB/s", e.Speed/1024/1024)
}

// Percentage computes a clamped percentage from byte counts. ok is false when
// total is unknown.
func Percentage(downloaded, total int64) (percent float64, ok bool) {
	if total <= 0 {
		return 0, false
	}
	percent = float64(downloaded) / float64(total) * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent, true
}

// Reporter receives lifecycle events
type Reporter interface {
	Report(Event)
}

// Func adapts a function to a Reporter
type Func func(Event)

func (f Func) Report(e Event) {
	if f != nil {
		f(e)
	}
}

// Nop discards all events
var Nop Reporter = Func(nil)

type multi []Reporter

func (m multi) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}

// Multi fans events out to every non-nil reporter
func Multi(reporters ...Reporter) Reporter {
	var m multi
	for _, r := range reporters {
		if r != nil {
			m = append(m, r)
		}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}
