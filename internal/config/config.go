package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/r3labs/diff/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AliEhsanian/YouTube-Downloader/internal/naming"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

// Default values
const (
	DefaultMaxParallel      = 2
	MaxParallelLimit        = 10
	DefaultRetries          = 1
	DefaultRetryBackoff     = 2 * time.Second
	DefaultFetchTimeout     = 60 * time.Second
	DefaultFilenameTemplate = naming.DefaultFilenameTemplate
	DefaultLanguage         = "system"
	DefaultLogLevel         = "warn"
	FallbackOutputDir       = "downloads"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the user configuration
type Config struct {
	OutputDir        string        `yaml:"output_dir"`
	Quality          string        `yaml:"quality"`
	Format           string        `yaml:"format"`
	ForceConvert     bool          `yaml:"force_convert"`
	FilenameTemplate string        `yaml:"filename_template"`
	MaxParallel      int           `yaml:"max_parallel"`
	Retries          int           `yaml:"retries"`
	RetryBackoff     time.Duration `yaml:"retry_backoff"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
	YtDlpPath        string        `yaml:"ytdlp_path,omitempty"`
	FFmpegPath       string        `yaml:"ffmpeg_path,omitempty"`
	HistoryPath      string        `yaml:"history_path,omitempty"`
	NoHistory        bool          `yaml:"no_history,omitempty"`
	Language         string        `yaml:"language"`
	LogLevel         string        `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	outputDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		outputDir = FallbackOutputDir
	}
	return &Config{
		OutputDir:        outputDir,
		Quality:          string(policy.QualityBest),
		Format:           string(policy.FormatMP4),
		FilenameTemplate: DefaultFilenameTemplate,
		MaxParallel:      DefaultMaxParallel,
		Retries:          DefaultRetries,
		RetryBackoff:     DefaultRetryBackoff,
		FetchTimeout:     DefaultFetchTimeout,
		Language:         DefaultLanguage,
		LogLevel:         DefaultLogLevel,
	}
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	var result error

	if strings.TrimSpace(c.OutputDir) == "" {
		result = multierror.Append(result, errors.New("output_dir is required"))
	}
	if _, err := policy.ParseQuality(c.Quality); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := policy.ParseFormat(c.Format); err != nil {
		result = multierror.Append(result, err)
	}
	if c.MaxParallel < 1 || c.MaxParallel > MaxParallelLimit {
		result = multierror.Append(result, fmt.Errorf("max_parallel must be between 1 and %d", MaxParallelLimit))
	}
	if c.Retries < 0 {
		result = multierror.Append(result, errors.New("retries cannot be negative"))
	}
	if c.RetryBackoff < 0 {
		result = multierror.Append(result, errors.New("retry_backoff cannot be negative"))
	}
	if c.FetchTimeout < 0 {
		result = multierror.Append(result, errors.New("fetch_timeout cannot be negative"))
	}
	if tmpl := strings.TrimSpace(c.FilenameTemplate); tmpl != "" && !strings.Contains(tmpl, "%(") {
		result = multierror.Append(result, fmt.Errorf("filename_template %q has no %%(field)s placeholder", tmpl))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("log_level: %w", err))
	}

	if result != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, result)
	}
	return nil
}

// Preference returns the configured format preference. Validate first.
func (c *Config) Preference() policy.Preference {
	quality, _ := policy.ParseQuality(c.Quality)
	format, _ := policy.ParseFormat(c.Format)
	return policy.Preference{Quality: quality, Format: format, ForceConvert: c.ForceConvert}
}

// Engine returns the external tool locations
func (c *Config) Engine() platform.Engine {
	return platform.Engine{YtDlpPath: c.YtDlpPath, FFmpegPath: c.FFmpegPath}
}

// Clone returns a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// LogChanges logs every field that differs between old and updated
func LogChanges(logger *zap.Logger, old, updated *Config) error {
	changes, err := diff.Diff(old, updated)
	if err != nil {
		return fmt.Errorf("failed to diff configuration: %w", err)
	}
	for _, change := range changes {
		logger.Debug("config changed",
			zap.String("field", strings.Join(change.Path, ".")),
			zap.Any("from", change.From),
			zap.Any("to", change.To),
		)
	}
	return nil
}
