package progress

import (
	"go.uber.org/zap"
)

// Logging writes events to a zap logger. Progress ticks are logged at debug.
type Logging struct {
	logger *zap.Logger
}

// NewLogging creates a logging reporter; a nil logger discards everything
func NewLogging(logger *zap.Logger) *Logging {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logging{logger: logger.Named("progress")}
}

func (l *Logging) Report(e Event) {
	fields := []zap.Field{zap.String("file", e.Filename)}
	if e.PlaylistIndex > 0 {
		fields = append(fields, zap.Int("index", e.PlaylistIndex), zap.Int("count", e.PlaylistCount))
	}

	switch e.Kind {
	case KindStarted:
		l.logger.Info("download started", append(fields, zap.String("title", e.Title))...)
	case KindProgressing:
		if ce := l.logger.Check(zap.DebugLevel, "download progress"); ce != nil {
			ce.Write(append(fields,
				zap.Int64("downloaded", e.Downloaded),
				zap.Int64("total", e.Total),
				zap.Float64("percent", e.Percent),
				zap.Duration("eta", e.ETA),
			)...)
		}
	case KindPostProcessing:
		l.logger.Info("post-processing", fields...)
	case KindFinished:
		l.logger.Info("download finished", fields...)
	case KindFailed:
		l.logger.Error("download failed", append(fields, zap.Error(e.Err))...)
	}
}
