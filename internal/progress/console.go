package progress

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Console rendering settings
const (
	ConsoleBarWidth    = 30
	ConsolePercentStep = 2
	ConsoleStage       = "Downloading"
)

// Console renders events as a terminal progress bar. The bar is redrawn only
// when the integer percentage reaches a new multiple of ConsolePercentStep.
type Console struct {
	mu          sync.Mutex
	w           io.Writer
	bar         *progressbar.ProgressBar
	lastPercent int
	stage       string
	showBytes   bool
}

// NewConsole creates a console reporter writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, lastPercent: -1, stage: ConsoleStage, showBytes: true}
}

// WithStage sets the label shown next to the bar
func (c *Console) WithStage(stage string) *Console {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stage = stage
	return c
}

// WithoutBytes renders amounts as a bare percentage, for events whose
// Downloaded and Total are not byte counts
func (c *Console) WithoutBytes() *Console {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showBytes = false
	return c
}

func (c *Console) Report(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Kind {
	case KindStarted:
		c.reset()
	case KindProgressing:
		c.progress(e)
	case KindPostProcessing:
		c.finishBar()
		fmt.Fprintf(c.w, "\n⚙ Post-processing: %s\n", filepath.Base(e.Filename))
	case KindFinished:
		c.finishBar()
		fmt.Fprintf(c.w, "\n✓ Downloaded: %s\n", filepath.Base(e.Filename))
		c.reset()
	case KindFailed:
		c.finishBar()
		msg := "Unknown error"
		if e.Err != nil {
			msg = e.Err.Error()
		}
		fmt.Fprintf(c.w, "\n❌ Error during download: %s\n", msg)
		c.reset()
	}
}

func (c *Console) progress(e Event) {
	percent, ok := Percentage(e.Downloaded, e.Total)
	if !ok {
		return
	}
	current := int(percent)
	if current == c.lastPercent || current%ConsolePercentStep != 0 {
		return
	}
	c.lastPercent = current

	if c.bar == nil {
		c.bar = c.newBar(e.Total)
	} else if c.bar.GetMax64() != e.Total {
		c.bar.ChangeMax64(e.Total)
	}
	_ = c.bar.Set64(e.Downloaded)
}

func (c *Console) newBar(total int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription(c.stage),
		progressbar.OptionSetWidth(ConsoleBarWidth),
		progressbar.OptionShowBytes(c.showBytes),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (c *Console) finishBar() {
	if c.bar != nil {
		_ = c.bar.Finish()
	}
}

func (c *Console) reset() {
	c.bar = nil
	c.lastPercent = -1
}
