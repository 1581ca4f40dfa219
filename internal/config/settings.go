package config

import (
	"fyne.io/fyne/v2"

	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMaxParallel        = "max_parallel_downloads"
	KeyQuality            = "quality"
	KeyFormat             = "format"
	KeyForceConvert       = "force_convert"
	KeyFilenameTemplate   = "filename_template"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values for GUI only settings
const (
	DefaultAutoRevealComplete = true
)

// Settings persists GUI configuration in fyne preferences. Values that are
// unset fall back to the file configuration it was created with.
type Settings struct {
	app      fyne.App
	defaults *Config
}

// NewSettings creates a new settings manager backed by the built-in defaults
func NewSettings(app fyne.App) *Settings {
	return NewSettingsWithDefaults(app, DefaultConfig())
}

// NewSettingsWithDefaults creates a settings manager whose unset values fall
// back to cfg
func NewSettingsWithDefaults(app fyne.App, cfg *Config) *Settings {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Settings{app: app, defaults: cfg}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		dir = s.defaults.OutputDir
		s.SetDownloadDirectory(dir)
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		value = s.defaults.MaxParallel
		if value <= 0 {
			value = DefaultMaxParallel
		}
		s.SetMaxParallelDownloads(value)
		return s.app.Preferences().Int(KeyMaxParallel)
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxParallelLimit {
		count = MaxParallelLimit
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetQuality returns the configured quality tier
func (s *Settings) GetQuality() policy.Quality {
	q, err := policy.ParseQuality(s.app.Preferences().String(KeyQuality))
	if err != nil || s.app.Preferences().String(KeyQuality) == "" {
		q, _ = policy.ParseQuality(s.defaults.Quality)
		s.SetQuality(q)
	}
	return q
}

// SetQuality sets the quality tier
func (s *Settings) SetQuality(q policy.Quality) {
	s.app.Preferences().SetString(KeyQuality, string(q))
}

// GetFormat returns the preferred output container
func (s *Settings) GetFormat() policy.Format {
	f, err := policy.ParseFormat(s.app.Preferences().String(KeyFormat))
	if err != nil || s.app.Preferences().String(KeyFormat) == "" {
		f, _ = policy.ParseFormat(s.defaults.Format)
		s.SetFormat(f)
	}
	return f
}

// SetFormat sets the preferred output container
func (s *Settings) SetFormat(f policy.Format) {
	s.app.Preferences().SetString(KeyFormat, string(f))
}

// GetForceConvert returns whether MP4 downloads are always re-encoded
func (s *Settings) GetForceConvert() bool {
	return s.app.Preferences().BoolWithFallback(KeyForceConvert, s.defaults.ForceConvert)
}

// SetForceConvert sets whether MP4 downloads are always re-encoded
func (s *Settings) SetForceConvert(force bool) {
	s.app.Preferences().SetBool(KeyForceConvert, force)
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		template = s.defaults.FilenameTemplate
		if template == "" {
			template = DefaultFilenameTemplate
		}
		s.SetFilenameTemplate(template)
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		lang = s.defaults.Language
		if lang == "" {
			lang = DefaultLanguage
		}
		s.SetLanguage(lang)
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to auto-reveal completed downloads
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// Config returns the effective configuration: the file defaults overlaid
// with every GUI preference
func (s *Settings) Config() *Config {
	cfg := s.defaults.Clone()
	cfg.OutputDir = s.GetDownloadDirectory()
	cfg.MaxParallel = s.GetMaxParallelDownloads()
	cfg.Quality = string(s.GetQuality())
	cfg.Format = string(s.GetFormat())
	cfg.ForceConvert = s.GetForceConvert()
	cfg.FilenameTemplate = s.GetFilenameTemplate()
	cfg.Language = s.GetLanguage()
	return cfg
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
