package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AliEhsanian/YouTube-Downloader/internal/classify"
	"github.com/AliEhsanian/YouTube-Downloader/internal/config"
	"github.com/AliEhsanian/YouTube-Downloader/internal/download"
	"github.com/AliEhsanian/YouTube-Downloader/internal/extractor"
	"github.com/AliEhsanian/YouTube-Downloader/internal/history"
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
	"github.com/AliEhsanian/YouTube-Downloader/internal/prompt"
)

type urlClassifier interface {
	Classify(ctx context.Context, raw string, force bool) (*classify.Result, error)
}

type infoFetcher interface {
	Fetch(ctx context.Context, url string) (*model.MediaInfo, error)
}

type playlistLister interface {
	ListPlaylist(ctx context.Context, url string) (*model.Playlist, error)
}

type requestRunner interface {
	Run(ctx context.Context, req download.Request, reporter progress.Reporter) (*download.Result, error)
}

// env holds the state shared by every command
type env struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg     *config.Config
	cfgPath string
	logger  *zap.Logger
	silent  bool

	store  *history.Store
	prompt *prompt.Prompter

	// backends built from the configuration unless set beforehand
	urls      urlClassifier
	infos     infoFetcher
	playlists playlistLister
	runner    requestRunner
}

func newEnv(in io.Reader, out, errOut io.Writer) *env {
	return &env{in: in, out: out, errOut: errOut, logger: zap.NewNop()}
}

// init loads the configuration and builds the logger
func (e *env) init(c *cli.Context) error {
	cfg, path, err := config.Load(c.String(flagConfig))
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.cfgPath = path
	e.silent = c.Bool(flagSilent)

	level := cfg.LogLevel
	if c.Bool(flagVerbose) {
		level = zapcore.DebugLevel.String()
	}
	logger, err := newLogger(level, e.errOut)
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	e.logger = logger
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	if path != "" {
		logger.Debug("loaded configuration", zap.String("path", path))
	}
	return nil
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("failed to close history", zap.Error(err))
		}
		e.store = nil
	}
	_ = e.logger.Sync()
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core, zap.Development(), zap.AddCaller()), nil
}

// say prints a user facing message unless running silently
func (e *env) say(format string, args ...interface{}) {
	if e.silent {
		return
	}
	fmt.Fprintf(e.out, format+"\n", args...)
}

// prompter returns the single prompter reading from the input
func (e *env) prompter() *prompt.Prompter {
	if e.prompt == nil {
		e.prompt = prompt.New(e.in, e.out)
	}
	return e.prompt
}

func (e *env) classifier() urlClassifier {
	if e.urls == nil {
		e.urls = classify.New(extractor.NewProber(e.cfg.Engine(), e.logger), e.logger)
	}
	return e.urls
}

func (e *env) newFetcher() *extractor.Fetcher {
	fetcher := extractor.NewFetcher(extractor.EngineSource{Engine: e.cfg.Engine()}, extractor.NewYouTubeClient(), e.logger)
	if e.cfg.FetchTimeout > 0 {
		fetcher.SetTimeout(e.cfg.FetchTimeout)
	}
	return fetcher
}

func (e *env) fetcher() infoFetcher {
	if e.infos == nil {
		e.infos = e.newFetcher()
	}
	return e.infos
}

func (e *env) playlistLister() playlistLister {
	if e.playlists == nil {
		lister := extractor.NewPlaylistLister(extractor.YTGetItems{}, e.newFetcher(), e.logger)
		if e.cfg.FetchTimeout > 0 {
			lister.SetTimeout(e.cfg.FetchTimeout)
		}
		e.playlists = lister
	}
	return e.playlists
}

// history opens the history store once. It returns nil when history is
// disabled.
func (e *env) history() (*history.Store, error) {
	if e.store != nil || e.cfg.NoHistory {
		return e.store, nil
	}
	path := e.cfg.HistoryPath
	if path == "" {
		var err error
		if path, err = history.DefaultPath(); err != nil {
			return nil, fmt.Errorf("failed to locate history: %w", err)
		}
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	e.store = store
	return store, nil
}

func (e *env) orchestrator() requestRunner {
	if e.runner != nil {
		return e.runner
	}

	var recorder download.Recorder
	if store, err := e.history(); err != nil {
		e.logger.Warn("history disabled", zap.Error(err))
	} else if store != nil {
		recorder = store
	}

	runner := download.EngineRunner{Engine: e.cfg.Engine()}
	orch := download.NewOrchestrator(runner, recorder, e.logger)
	orch.SetRetry(e.cfg.Retries, e.cfg.RetryBackoff)
	e.runner = orch
	return orch
}

// reporter returns the console progress sink, or a logging only sink when
// silent
func (e *env) reporter(stage string) progress.Reporter {
	return e.consoleReporter(progress.NewConsole(e.out).WithStage(stage))
}

// conversionReporter is like reporter for ffmpeg positions, which are not
// byte counts
func (e *env) conversionReporter() progress.Reporter {
	return e.consoleReporter(progress.NewConsole(e.out).WithStage("Converting").WithoutBytes())
}

func (e *env) consoleReporter(console *progress.Console) progress.Reporter {
	logging := progress.NewLogging(e.logger)
	if e.silent {
		return logging
	}
	return progress.Multi(console, logging)
}
