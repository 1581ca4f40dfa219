package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	pref := cfg.Preference()
	assert.Equal(t, policy.QualityBest, pref.Quality)
	assert.Equal(t, policy.FormatMP4, pref.Format)
	assert.False(t, pref.ForceConvert)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = " "
	cfg.Quality = "480p"
	cfg.Format = "flv"
	cfg.MaxParallel = 0
	cfg.Retries = -1
	cfg.FilenameTemplate = "static-name.mp4"
	cfg.LogLevel = "loud"
	cfg.FetchTimeout = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	for _, want := range []string{"output_dir", "480p", "flv", "max_parallel", "retries", "filename_template", "log_level", "fetch_timeout"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", UserConfigName)

	cfg := DefaultConfig()
	cfg.OutputDir = "/media/videos"
	cfg.Quality = "1080p"
	cfg.Format = "mkv"
	cfg.RetryBackoff = 5 * time.Second
	cfg.FetchTimeout = 90 * time.Second
	require.NoError(t, SaveConfigFile(cfg, path))

	loaded, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), LocalConfigName)
	require.NoError(t, os.WriteFile(path, []byte("quality: audio\nretry_backoff: 3s\n"), 0644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "audio", cfg.Quality)
	assert.Equal(t, 3*time.Second, cfg.RetryBackoff)
	assert.Equal(t, DefaultMaxParallel, cfg.MaxParallel)
	assert.Equal(t, DefaultFilenameTemplate, cfg.FilenameTemplate)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: [unclosed"), 0644))
	_, err = LoadConfigFile(path)
	assert.Error(t, err)
}

func TestLoadInvalidReturnsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: flv\n"), 0644))

	cfg, _, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.NotNil(t, cfg)
}

func TestLogChanges(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	old := DefaultConfig()
	updated := old.Clone()
	updated.Format = "webm"
	updated.MaxParallel = 4

	require.NoError(t, LogChanges(zap.New(core), old, updated))
	assert.Equal(t, 2, logs.FilterMessage("config changed").Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("field", "Format")).Len())
}
