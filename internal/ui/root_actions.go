package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/classify"
	"github.com/AliEhsanian/YouTube-Downloader/internal/download"
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/naming"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
)

// onURLChanged forgets metadata fetched for a previous URL
func (ui *RootUI) onURLChanged() {
	ui.mu.Lock()
	stale := ui.current != nil && !sameURL(ui.current.URL, ui.urlEntry.Text)
	if stale {
		ui.current = nil
		ui.info = nil
	}
	ui.mu.Unlock()

	if stale {
		ui.infoCard.Hide()
		ui.playlistPanel.Clear()
		ui.customNameEntry.SetPlaceHolder("")
	}
}

func (ui *RootUI) onFetchInfoClick() {
	raw := ui.urlEntry.Text
	if strings.TrimSpace(raw) == "" {
		dialog.ShowInformation(ui.localization.GetText(KeyInvalidURL), ui.localization.GetText(KeyPleaseEnterURL), ui.window)
		return
	}
	ui.resolve(raw, false, func(res *classify.Result) {
		go ui.fetchInfo(res)
	})
}

func (ui *RootUI) onDownloadClick() {
	raw := ui.urlEntry.Text
	if strings.TrimSpace(raw) == "" {
		dialog.ShowInformation(ui.localization.GetText(KeyInvalidURL), ui.localization.GetText(KeyPleaseEnterURL), ui.window)
		return
	}

	ui.mu.Lock()
	current := ui.current
	ui.mu.Unlock()
	if current != nil && sameURL(current.URL, raw) {
		ui.queue(current.URL, ui.playlistCheck.Checked)
		return
	}

	ui.resolve(raw, false, func(res *classify.Result) {
		ui.setCurrent(res, nil)
		if res.Playlist() {
			ui.playlistCheck.SetChecked(true)
		}
		ui.queue(res.URL, ui.playlistCheck.Checked)
	})
}

// resolve classifies raw in the background and calls next on the UI
// goroutine. Unsupported URLs are confirmed with the user first.
func (ui *RootUI) resolve(raw string, force bool, next func(*classify.Result)) {
	ui.fetchBtn.Disable()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), InfoFetchTimeout)
		defer cancel()

		res, err := ui.services.Classifier.Classify(ctx, raw, force)
		fyne.Do(func() {
			ui.fetchBtn.Enable()
			switch {
			case errors.Is(err, classify.ErrUnsupportedURL):
				ui.confirmUnsupported(raw, next)
			case errors.Is(err, classify.ErrEmptyURL):
				dialog.ShowInformation(ui.localization.GetText(KeyInvalidURL), ui.localization.GetText(KeyPleaseEnterURL), ui.window)
			case err != nil:
				ui.showError(err)
			default:
				next(res)
			}
		})
	}()
}

func (ui *RootUI) confirmUnsupported(raw string, next func(*classify.Result)) {
	t := ui.localization.GetText
	msg := fmt.Sprintf("%s\n%s\n\n%s", t(KeyUnrecognizedURL), singleLine(raw), t(KeyTryAnyway))
	dialog.ShowConfirm(t(KeyInvalidURL), msg, func(ok bool) {
		if ok {
			ui.resolve(raw, true, next)
		}
	}, ui.window)
}

// fetchInfo loads metadata and the playlist preview for a classified URL
func (ui *RootUI) fetchInfo(res *classify.Result) {
	fyne.Do(func() {
		_ = ui.reporter.Status.Set(IconSearch + " " + ui.localization.GetText(KeyFetchingInfo))
	})

	ctx, cancel := context.WithTimeout(context.Background(), InfoFetchTimeout)
	defer cancel()

	info, err := ui.services.Fetcher.Fetch(ctx, res.URL)
	if err != nil {
		ui.logger.Warn("failed to fetch info", zap.String("url", res.URL), zap.Error(err))
		fyne.Do(func() {
			ui.setCurrent(res, nil)
			ui.showInfoUnavailable(err)
		})
		return
	}

	var playlist *model.Playlist
	if ui.services.Playlists != nil && (res.Playlist() || info.IsPlaylist()) {
		playlist, err = ui.services.Playlists.ListPlaylist(ctx, res.URL)
		if err != nil {
			ui.logger.Warn("failed to list playlist", zap.String("url", res.URL), zap.Error(err))
			playlist = model.PlaylistFromInfo(res.URL, info)
		}
	}

	fyne.Do(func() {
		ui.setCurrent(res, info)
		ui.showInfo(res, info, playlist)
	})
}

func (ui *RootUI) setCurrent(res *classify.Result, info *model.MediaInfo) {
	ui.mu.Lock()
	ui.current = res
	ui.info = info
	ui.mu.Unlock()
}

func (ui *RootUI) showInfo(res *classify.Result, info *model.MediaInfo, playlist *model.Playlist) {
	t := ui.localization.GetText

	ui.infoCard.SetTitle(singleLine(info.DisplayTitle()))
	ui.infoCard.SetSubTitle(fmt.Sprintf("%s: %s", t(KeyUploader), singleLine(info.DisplayUploader())))
	ui.infoLabel.SetText(strings.Join([]string{
		fmt.Sprintf("%s: %s", t(KeyDuration), model.FormatDuration(int(info.Duration))),
		fmt.Sprintf("%s: %s", t(KeyUploaded), model.FormatUploadDate(info.UploadDate)),
		fmt.Sprintf("%s: %s", t(KeyViews), model.FormatViewCount(info.ViewCount)),
	}, MiddleDotSeparator))
	ui.infoCard.Show()

	if suggested := naming.SuggestFilename(info.Title); suggested != "" {
		ui.customNameEntry.SetPlaceHolder(suggested)
	}

	isPlaylist := res.Playlist() || info.IsPlaylist()
	ui.playlistCheck.SetChecked(isPlaylist)
	ui.playlistPanel.SetPlaylist(playlist)
	_ = ui.reporter.Status.Set(t(KeyReady))
}

func (ui *RootUI) showInfoUnavailable(err error) {
	ui.infoCard.SetTitle(ui.localization.GetText(KeyInfoUnavailable))
	ui.infoCard.SetSubTitle("")
	ui.infoLabel.SetText(singleLine(err.Error()))
	ui.infoCard.Show()
	ui.playlistPanel.Clear()
	_ = ui.reporter.Status.Set(IconError + " " + ui.localization.GetText(KeyInfoUnavailable))
}

// buildRequest turns the form into a download request
func (ui *RootUI) buildRequest(url string, playlist bool) download.Request {
	quality := qualityFromLabel(ui.qualitySelect.Selected)
	format := formatFromLabel(ui.formatSelect.Selected)

	outputDir := strings.TrimSpace(ui.outputDirEntry.Text)
	if outputDir == "" {
		outputDir = ui.settings.GetDownloadDirectory()
	}

	ui.mu.Lock()
	var info *model.MediaInfo
	if ui.current != nil && ui.current.URL == url {
		info = ui.info
	}
	ui.mu.Unlock()

	return download.Request{
		URL:              url,
		Quality:          quality,
		Format:           format,
		ForceConvert:     ui.forceConvertCheck.Checked,
		Playlist:         playlist,
		OutputDir:        outputDir,
		CustomName:       strings.TrimSpace(ui.customNameEntry.Text),
		FilenameTemplate: ui.settings.GetFilenameTemplate(),
		Info:             info,
	}
}

// queue adds a download task for url using the form settings
func (ui *RootUI) queue(url string, playlist bool) {
	req := ui.buildRequest(url, playlist)
	task, err := ui.services.Downloads.AddTask(req)
	if err != nil {
		if errors.Is(err, download.ErrTaskExists) {
			dialog.ShowInformation(ui.localization.GetText(KeyDownload), ui.localization.GetText(KeyAlreadyInQueue), ui.window)
			return
		}
		ui.showError(err)
		return
	}

	ui.logger.Info("download queued", zap.String("id", task.ID), zap.String("url", url), zap.Bool("playlist", playlist))
	ui.applyTaskUpdate(*task)
	ui.urlEntry.SetText("")
	ui.customNameEntry.SetText("")
	_ = ui.reporter.Status.Set(ui.localization.GetText(KeyDownloadStarted))
}

// onTaskUpdate is called by the download service from its own goroutines
func (ui *RootUI) onTaskUpdate(task model.DownloadTask) {
	fyne.Do(func() { ui.applyTaskUpdate(task) })
}

func (ui *RootUI) applyTaskUpdate(task model.DownloadTask) {
	ui.mu.Lock()
	found := false
	for i := range ui.tasks {
		if ui.tasks[i].ID == task.ID {
			ui.tasks[i] = task
			found = true
			break
		}
	}
	if !found {
		ui.tasks = append(ui.tasks, task)
	}

	reveal := task.Status == model.TaskStatusCompleted && task.OutputPath != "" && !ui.revealed[task.ID]
	if reveal {
		ui.revealed[task.ID] = true
	}
	ui.mu.Unlock()

	ui.taskList.Refresh()

	if reveal && ui.settings.GetAutoRevealOnComplete() {
		ui.onRevealFile(task.OutputPath)
	}
}

func (ui *RootUI) onStopTask(taskID string) {
	if err := ui.services.Downloads.StopTask(taskID); err != nil {
		ui.showError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorStoppingTask), err))
	}
}

func (ui *RootUI) onRemoveTask(taskID string) {
	if err := ui.services.Downloads.RemoveTask(taskID); err != nil {
		ui.showError(err)
		return
	}
	ui.dropTasks(func(t model.DownloadTask) bool { return t.ID == taskID })
}

func (ui *RootUI) onClearFinished() {
	ui.services.Downloads.ClearFinished()
	ui.dropTasks(func(t model.DownloadTask) bool { return t.Status.IsFinished() })
}

func (ui *RootUI) dropTasks(drop func(model.DownloadTask) bool) {
	ui.mu.Lock()
	kept := ui.tasks[:0]
	for _, t := range ui.tasks {
		if drop(t) {
			delete(ui.revealed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	ui.tasks = kept
	ui.mu.Unlock()
	ui.taskList.Refresh()
}

func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.logger.Warn("failed to reveal file", zap.String("path", filePath), zap.Error(err))
		ui.showError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err))
	}
}

func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.logger.Warn("failed to open file", zap.String("path", filePath), zap.Error(err))
		ui.showError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err))
	}
}

// sameURL compares a classified URL with raw entry text
func sameURL(classified, raw string) bool {
	normalized, err := classify.Normalize(raw)
	if err != nil {
		return false
	}
	return normalized == classified
}
