package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/AliEhsanian/YouTube-Downloader/internal/config"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

func TestSettingsDialogApply(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	window := test.NewWindow(widget.NewLabel(""))
	defer window.Close()

	settings := config.NewSettings(app)
	var saved *config.Config
	sd := NewSettingsDialog(settings, NewLocalization(), window, nil, func(cfg *config.Config) { saved = cfg })
	sd.loadCurrentSettings()

	if sd.qualitySelect.Selected != policy.QualityBest.Label() {
		t.Errorf("Expected default quality selected, got %q", sd.qualitySelect.Selected)
	}

	sd.downloadDirEntry.SetText("/tmp/videos")
	sd.maxParallelEntry.SetText("4")
	sd.qualitySelect.SetSelected(policy.Quality720p.Label())
	sd.formatSelect.SetSelected(policy.FormatMKV.Label())
	sd.forceConvertCheck.SetChecked(true)
	sd.languageSelect.SetSelected("Русский")
	sd.autoRevealCheck.SetChecked(false)
	sd.apply()

	if got := settings.GetDownloadDirectory(); got != "/tmp/videos" {
		t.Errorf("Expected download dir /tmp/videos, got %s", got)
	}
	if got := settings.GetMaxParallelDownloads(); got != 4 {
		t.Errorf("Expected max parallel 4, got %d", got)
	}
	if got := settings.GetQuality(); got != policy.Quality720p {
		t.Errorf("Expected quality 720p, got %s", got)
	}
	if got := settings.GetFormat(); got != policy.FormatMKV {
		t.Errorf("Expected format mkv, got %s", got)
	}
	if !settings.GetForceConvert() {
		t.Error("Expected force convert to be saved")
	}
	if got := settings.GetLanguage(); got != "ru" {
		t.Errorf("Expected language ru, got %s", got)
	}
	if settings.GetAutoRevealOnComplete() {
		t.Error("Expected auto reveal to be disabled")
	}

	if saved == nil {
		t.Fatal("Expected save callback to be called")
	}
	if saved.MaxParallel != 4 || saved.Quality != "720p" {
		t.Errorf("Unexpected saved config: %+v", saved)
	}
}

func TestSettingsDialogIgnoresInvalidParallel(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	window := test.NewWindow(widget.NewLabel(""))
	defer window.Close()

	settings := config.NewSettings(app)
	sd := NewSettingsDialog(settings, NewLocalization(), window, nil, nil)
	sd.loadCurrentSettings()
	sd.maxParallelEntry.SetText("many")
	sd.apply()

	if got := settings.GetMaxParallelDownloads(); got != config.DefaultMaxParallel {
		t.Errorf("Expected max parallel %d, got %d", config.DefaultMaxParallel, got)
	}
}

func TestLabelLookups(t *testing.T) {
	for _, q := range policy.Qualities {
		if got := qualityFromLabel(q.Label()); got != q {
			t.Errorf("Expected %s, got %s", q, got)
		}
	}
	for _, f := range policy.Formats {
		if got := formatFromLabel(f.Label()); got != f {
			t.Errorf("Expected %s, got %s", f, got)
		}
	}
	if got := qualityFromLabel("nonsense"); got != policy.QualityBest {
		t.Errorf("Expected best fallback, got %s", got)
	}

	names, codes := languageChoices(map[string]string{"ru": "Русский", "en": "English"})
	if len(names) != 2 || names[0] != "English" || codes["Русский"] != "ru" {
		t.Errorf("Unexpected language choices %v %v", names, codes)
	}
}
