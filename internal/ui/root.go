package ui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/classify"
	"github.com/AliEhsanian/YouTube-Downloader/internal/config"
	"github.com/AliEhsanian/YouTube-Downloader/internal/convert"
	"github.com/AliEhsanian/YouTube-Downloader/internal/download"
	"github.com/AliEhsanian/YouTube-Downloader/internal/history"
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

// Classifier validates URLs typed into the form
type Classifier interface {
	Classify(ctx context.Context, raw string, force bool) (*classify.Result, error)
}

// InfoFetcher loads metadata for the info card
type InfoFetcher interface {
	Fetch(ctx context.Context, url string) (*model.MediaInfo, error)
}

// PlaylistLister lists playlist entries for the preview panel
type PlaylistLister interface {
	ListPlaylist(ctx context.Context, url string) (*model.Playlist, error)
}

// HistoryLister lists finished downloads, newest first
type HistoryLister interface {
	List(limit int) ([]*history.Record, error)
}

// Services are the backends the window drives. Playlists and History may be nil.
type Services struct {
	Downloads  download.Downloader
	Converter  convert.Converter
	Classifier Classifier
	Fetcher    InfoFetcher
	Playlists  PlaylistLister
	History    HistoryLister
	Logger     *zap.Logger
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	services     Services
	logger       *zap.Logger

	urlEntry    *widget.Entry
	fetchBtn    *widget.Button
	downloadBtn *widget.Button

	infoCard  *widget.Card
	infoLabel *widget.Label

	qualitySelect     *widget.Select
	formatSelect      *widget.Select
	forceConvertCheck *widget.Check
	playlistCheck     *widget.Check
	outputDirEntry    *widget.Entry
	browseBtn         *widget.Button
	customNameEntry   *widget.Entry
	form              *widget.Form

	reporter      *BoundReporter
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	playlistPanel *PlaylistPanel
	taskList      *widget.List

	// guarded by mu; written on the UI goroutine, read by background fetches
	mu       sync.Mutex
	current  *classify.Result
	info     *model.MediaInfo
	tasks    []model.DownloadTask
	revealed map[string]bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, services Services) *RootUI {
	logger := services.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.Warn("failed to create download directory", zap.Error(err))
	}

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		services:     services,
		logger:       logger.Named("ui"),
		revealed:     make(map[string]bool),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()

	ui.services.Downloads.SetUpdateCallback(ui.onTaskUpdate)
	ui.services.Downloads.SetReporter(progress.Func(func(e progress.Event) {
		fyne.Do(func() { ui.reporter.Report(e) })
	}))
	if ui.services.Converter != nil {
		ui.services.Converter.SetUpdateCallback(ui.onConversionUpdate)
	}
	return ui
}

func (ui *RootUI) setupUI() {
	t := ui.localization.GetText
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onFetchInfoClick() }
	ui.urlEntry.OnChanged = func(string) { ui.onURLChanged() }

	ui.fetchBtn = widget.NewButton(IconSearch+" "+t(KeyFetchInfo), ui.onFetchInfoClick)
	ui.downloadBtn = widget.NewButton(t(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	urlRow := container.NewBorder(nil, nil, settingsBtn, container.NewHBox(ui.fetchBtn, ui.downloadBtn), ui.urlEntry)

	ui.infoLabel = widget.NewLabel("")
	ui.infoLabel.Wrapping = fyne.TextWrapWord
	ui.infoCard = widget.NewCard("", "", ui.infoLabel)
	ui.infoCard.Hide()

	ui.qualitySelect = widget.NewSelect(qualityLabels(), func(string) { ui.updateConvertOptions() })
	ui.formatSelect = widget.NewSelect(formatLabels(), func(string) { ui.updateConvertOptions() })
	ui.forceConvertCheck = widget.NewCheck(t(KeyForceConvert), nil)
	ui.playlistCheck = widget.NewCheck(IconPlaylist+" "+t(KeyPlaylist), nil)

	ui.outputDirEntry = widget.NewEntry()
	ui.browseBtn = widget.NewButton(t(KeyBrowse), ui.onBrowseOutputDir)
	ui.customNameEntry = widget.NewEntry()

	ui.form = widget.NewForm(
		widget.NewFormItem(t(KeyQuality), ui.qualitySelect),
		widget.NewFormItem(t(KeyFormat), container.NewBorder(nil, nil, nil, container.NewHBox(ui.forceConvertCheck, ui.playlistCheck), ui.formatSelect)),
		widget.NewFormItem(t(KeyDownloadDirectory), container.NewBorder(nil, nil, nil, ui.browseBtn, ui.outputDirEntry)),
		widget.NewFormItem(t(KeyCustomFilename), ui.customNameEntry),
	)
	ui.loadDefaults()

	ui.playlistPanel = NewPlaylistPanel(ui.localization, func(p *model.Playlist) {
		ui.queue(p.URL, true)
	})

	ui.reporter = NewBoundReporter(ui.localization)
	ui.progressBar = widget.NewProgressBarWithData(ui.reporter.Progress)
	ui.statusLabel = widget.NewLabelWithData(ui.reporter.Status)
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	ui.taskList = widget.NewList(
		func() int {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			return len(ui.tasks)
		},
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)

	top := container.NewVBox(
		urlRow,
		ui.infoCard,
		ui.form,
		ui.playlistPanel.Container(),
		ui.progressBar,
		ui.statusLabel,
		widget.NewSeparator(),
	)
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.taskList))
}

// loadDefaults fills the form from the saved settings
func (ui *RootUI) loadDefaults() {
	ui.qualitySelect.SetSelected(ui.settings.GetQuality().Label())
	ui.formatSelect.SetSelected(ui.settings.GetFormat().Label())
	ui.forceConvertCheck.SetChecked(ui.settings.GetForceConvert())
	ui.outputDirEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.updateConvertOptions()
}

// updateConvertOptions enables force conversion only where it is a choice:
// audio never converts video and other formats always do
func (ui *RootUI) updateConvertOptions() {
	if ui.forceConvertCheck == nil || ui.formatSelect == nil {
		return
	}
	quality := qualityFromLabel(ui.qualitySelect.Selected)
	if quality.IsAudio() {
		ui.formatSelect.Disable()
		ui.forceConvertCheck.Disable()
		return
	}
	ui.formatSelect.Enable()
	if formatFromLabel(ui.formatSelect.Selected) != policy.FormatMP4 {
		ui.forceConvertCheck.SetChecked(true)
		ui.forceConvertCheck.Disable()
		return
	}
	ui.forceConvertCheck.Enable()
}

func (ui *RootUI) createMenu() {
	t := ui.localization.GetText

	fileMenu := fyne.NewMenu(t(KeyFile),
		fyne.NewMenuItem(t(KeyConvertFile), ui.onConvertFile),
		fyne.NewMenuItem(t(KeyHistory), ui.onShowHistory),
		fyne.NewMenuItem(t(KeyClearFinished), ui.onClearFinished),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeySettings), ui.onShowSettings),
	)

	languageMenu := fyne.NewMenu(t(KeyLanguage))
	names, codes := languageChoices(ui.localization.GetAvailableLanguages())
	for _, name := range names {
		code := codes[name]
		item := fyne.NewMenuItem(name, func() { ui.onLanguageChange(code) })
		item.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, languageMenu))
}

func (ui *RootUI) onLanguageChange(code string) {
	ui.localization.SetLanguage(code)
	ui.settings.SetLanguage(code)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText
	ui.window.SetTitle(t(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.fetchBtn.SetText(IconSearch + " " + t(KeyFetchInfo))
	ui.downloadBtn.SetText(t(KeyDownload))
	ui.browseBtn.SetText(t(KeyBrowse))
	ui.forceConvertCheck.SetText(t(KeyForceConvert))
	ui.playlistCheck.SetText(IconPlaylist + " " + t(KeyPlaylist))

	labels := []string{t(KeyQuality), t(KeyFormat), t(KeyDownloadDirectory), t(KeyCustomFilename)}
	for i, item := range ui.form.Items {
		item.Text = labels[i]
	}
	ui.form.Refresh()
	ui.playlistPanel.downloadBtn.SetText(IconPlaylist + " " + t(KeyDownload))
	ui.taskList.Refresh()
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.logger, func(cfg *config.Config) {
		ui.services.Downloads.SetMaxParallelDownloads(cfg.MaxParallel)
		if ui.localization.GetCurrentLanguage() != cfg.Language {
			ui.localization.SetLanguage(cfg.Language)
			ui.refreshUITexts()
			ui.createMenu()
		}
		ui.loadDefaults()
	}).Show()
}

func (ui *RootUI) onBrowseOutputDir() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.outputDirEntry.SetText(uri.Path())
	}, ui.window)
}

func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	return NewTaskRow(ui.localization, TaskActions{
		Stop:    ui.onStopTask,
		Reveal:  ui.onRevealFile,
		Open:    ui.onOpenFile,
		Convert: ui.onConvertDownloaded,
		Remove:  ui.onRemoveTask,
	})
}

func (ui *RootUI) updateTaskItem(id widget.ListItemID, obj fyne.CanvasObject) {
	ui.mu.Lock()
	if id >= len(ui.tasks) {
		ui.mu.Unlock()
		return
	}
	task := ui.tasks[id]
	ui.mu.Unlock()

	if row, ok := obj.(*TaskRow); ok {
		row.SetLocalization(ui.localization)
		row.UpdateTask(task)
	}
}

func (ui *RootUI) showError(err error) {
	dialog.ShowError(err, ui.window)
}
