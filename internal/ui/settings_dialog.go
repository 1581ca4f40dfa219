package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/config"
	"github.com/AliEhsanian/YouTube-Downloader/internal/naming"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	logger       *zap.Logger
	dialog       *dialog.ConfirmDialog

	// called with the effective configuration after a save
	onSaved func(*config.Config)

	downloadDirEntry  *widget.Entry
	maxParallelEntry  *widget.Entry
	qualitySelect     *widget.Select
	formatSelect      *widget.Select
	forceConvertCheck *widget.Check
	filenameEntry     *widget.Entry
	languageSelect    *widget.Select
	autoRevealCheck   *widget.Check

	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, logger *zap.Logger, onSaved func(*config.Config)) *SettingsDialog {
	if logger == nil {
		logger = zap.NewNop()
	}
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		logger:       logger.Named("settings"),
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-" + strconv.Itoa(config.MaxParallelLimit))

	sd.qualitySelect = widget.NewSelect(qualityLabels(), nil)
	sd.formatSelect = widget.NewSelect(formatLabels(), nil)
	sd.forceConvertCheck = widget.NewCheck(t(KeyForceConvert), nil)

	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder(naming.DefaultFilenameTemplate)

	var languageNames []string
	languageNames, sd.languageCodes = languageChoices(sd.settings.GetLanguageOptions())
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.autoRevealCheck = widget.NewCheck(t(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(t(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(t(KeyMaxParallel), sd.maxParallelEntry),
		widget.NewFormItem(t(KeyQuality), sd.qualitySelect),
		widget.NewFormItem(t(KeyFormat), sd.formatSelect),
		widget.NewFormItem("", sd.forceConvertCheck),
		widget.NewFormItem(t(KeyFilenameTemplate), sd.filenameEntry),
		widget.NewFormItem(t(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.autoRevealCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(t(KeySettings), t(KeySave), t(KeyCancel), form, sd.onSave, sd.window)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.qualitySelect.SetSelected(sd.settings.GetQuality().Label())
	sd.formatSelect.SetSelected(sd.settings.GetFormat().Label())
	sd.forceConvertCheck.SetChecked(sd.settings.GetForceConvert())
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply stores the form values and reports what changed
func (sd *SettingsDialog) apply() {
	old := sd.settings.Config()

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}
	if n, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelDownloads(n)
	}
	if sd.qualitySelect.Selected != "" {
		sd.settings.SetQuality(qualityFromLabel(sd.qualitySelect.Selected))
	}
	if sd.formatSelect.Selected != "" {
		sd.settings.SetFormat(formatFromLabel(sd.formatSelect.Selected))
	}
	sd.settings.SetForceConvert(sd.forceConvertCheck.Checked)
	if sd.filenameEntry.Text != "" {
		sd.settings.SetFilenameTemplate(sd.filenameEntry.Text)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	updated := sd.settings.Config()
	if err := config.LogChanges(sd.logger, old, updated); err != nil {
		sd.logger.Warn("failed to compare settings", zap.Error(err))
	}
	if sd.onSaved != nil {
		sd.onSaved(updated)
	}
}
