package extractor

import (
	"context"
	"fmt"

	"github.com/wader/goutubedl"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
)

// Prober checks whether yt-dlp can extract a URL. It satisfies
// classify.Prober.
type Prober struct {
	logger *zap.Logger
}

// NewProber creates a prober bound to the engine's yt-dlp executable
func NewProber(engine platform.Engine, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	goutubedl.Path = engine.YtDlp()
	return &Prober{logger: logger.Named("probe")}
}

// Probe runs a metadata-only extraction and returns the title on success
func (p *Prober) Probe(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultFetchTimeout)
	defer cancel()

	result, err := goutubedl.New(ctx, url, goutubedl.Options{
		Type:     goutubedl.TypeAny,
		DebugLog: zapPrinter{p.logger},
	})
	if err != nil {
		return "", fmt.Errorf("probing %q: %w", url, err)
	}
	if result.Info.Title != "" {
		return result.Info.Title, nil
	}
	return result.Info.ID, nil
}

// zapPrinter adapts a zap logger to goutubedl's debug printer
type zapPrinter struct {
	logger *zap.Logger
}

func (z zapPrinter) Print(v ...interface{}) {
	z.logger.Debug(fmt.Sprint(v...))
}
