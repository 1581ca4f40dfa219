package main

import (
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AliEhsanian/YouTube-Downloader/internal/classify"
	"github.com/AliEhsanian/YouTube-Downloader/internal/config"
	"github.com/AliEhsanian/YouTube-Downloader/internal/convert"
	"github.com/AliEhsanian/YouTube-Downloader/internal/download"
	"github.com/AliEhsanian/YouTube-Downloader/internal/extractor"
	"github.com/AliEhsanian/YouTube-Downloader/internal/history"
	"github.com/AliEhsanian/YouTube-Downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.github.aliehsanian.youtube-downloader"
	AppName = "YouTube Downloader"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	logger.Info("starting", zap.String("app", AppName), zap.String("version", version))

	cfg, cfgPath, err := config.Load("")
	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		logger.Warn("configuration has problems, using it anyway", zap.String("path", cfgPath), zap.Error(err))
	case err != nil:
		logger.Warn("failed to load configuration, using defaults", zap.String("path", cfgPath), zap.Error(err))
		cfg = config.DefaultConfig()
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettingsWithDefaults(myApp, cfg)
	effective := settings.Config()
	engine := effective.Engine()

	var recorder download.Recorder
	var historyLister ui.HistoryLister
	if store := openHistory(effective, logger); store != nil {
		defer store.Close()
		recorder = store
		historyLister = store
	}

	orchestrator := download.NewOrchestrator(download.EngineRunner{Engine: engine}, recorder, logger)
	orchestrator.SetRetry(effective.Retries, effective.RetryBackoff)
	downloadSvc := download.NewService(orchestrator, effective.MaxParallel, logger)

	fetcher := extractor.NewFetcher(extractor.EngineSource{Engine: engine}, extractor.NewYouTubeClient(), logger)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	ui.NewRootUI(myWindow, settings, ui.Services{
		Downloads:  downloadSvc,
		Converter:  convert.NewService(engine, logger),
		Classifier: classify.New(extractor.NewProber(engine, logger), logger),
		Fetcher:    fetcher,
		Playlists:  extractor.NewPlaylistLister(extractor.YTGetItems{}, fetcher, logger),
		History:    historyLister,
		Logger:     logger,
	})

	if err := engine.Check(); err != nil {
		logger.Warn("missing dependencies", zap.Error(err))
	}

	myWindow.ShowAndRun()
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// openHistory returns nil when history is disabled or cannot be opened
func openHistory(cfg *config.Config, logger *zap.Logger) *history.Store {
	if cfg.NoHistory {
		return nil
	}
	path := cfg.HistoryPath
	if path == "" {
		var err error
		if path, err = history.DefaultPath(); err != nil {
			logger.Warn("history disabled", zap.Error(err))
			return nil
		}
	}
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("history disabled", zap.String("path", path), zap.Error(err))
		return nil
	}
	return store
}
