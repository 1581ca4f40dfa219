package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/convert"
	"github.com/AliEhsanian/YouTube-Downloader/internal/history"
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

// History row layout
const (
	HistoryTimeLayout = "2006-01-02 15:04"
)

func (ui *RootUI) onConvertFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		ui.onConvertDownloaded(path)
	}, ui.window)
}

// onConvertDownloaded asks for a target and starts converting filePath
func (ui *RootUI) onConvertDownloaded(filePath string) {
	if ui.services.Converter == nil {
		return
	}
	t := ui.localization.GetText

	options := append(formatLabels(), policy.QualityAudio.Label())
	targetSelect := widget.NewSelect(options, nil)
	targetSelect.SetSelected(options[0])

	content := widget.NewForm(
		widget.NewFormItem(t(KeyFile), widget.NewLabel(filepath.Base(filePath))),
		widget.NewFormItem(t(KeyConvertTo), targetSelect),
	)
	dialog.ShowCustomConfirm(t(KeyConvertFile), t(KeyConvert), t(KeyCancel), content, func(ok bool) {
		if !ok {
			return
		}
		ui.startConversion(filePath, conversionTarget(targetSelect.Selected))
	}, ui.window)
}

func conversionTarget(label string) convert.Target {
	if label == policy.QualityAudio.Label() {
		return convert.Target{Audio: true}
	}
	return convert.Target{Format: formatFromLabel(label)}
}

func (ui *RootUI) startConversion(filePath string, target convert.Target) {
	task, err := ui.services.Converter.StartConversion(filePath, target)
	if err != nil {
		ui.showError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyConversionFailed), err))
		return
	}
	ui.logger.Info("conversion started", zap.String("id", task.ID), zap.String("input", filePath), zap.String("target", target.String()))
	_ = ui.reporter.Progress.Set(0)
	_ = ui.reporter.Status.Set(fmt.Sprintf("%s %s: %s", IconWorking, ui.localization.GetText(KeyConversionStarted), filepath.Base(filePath)))
}

// onConversionUpdate is called by the conversion service from its own goroutines
func (ui *RootUI) onConversionUpdate(task model.ConversionTask) {
	fyne.Do(func() { ui.applyConversionUpdate(task) })
}

func (ui *RootUI) applyConversionUpdate(task model.ConversionTask) {
	t := ui.localization.GetText
	name := filepath.Base(task.InputPath)

	switch task.Status {
	case model.TaskStatusProcessing, model.TaskStatusStarting:
		_ = ui.reporter.Progress.Set(task.Progress)
		_ = ui.reporter.Status.Set(fmt.Sprintf("%s %s: %s%s%d%%", IconWorking, t(KeyConvert), name, MiddleDotSeparator, task.Percent))
	case model.TaskStatusCompleted:
		_ = ui.reporter.Progress.Set(1)
		_ = ui.reporter.Status.Set(fmt.Sprintf("%s %s: %s", IconDone, t(KeyConversionDone), filepath.Base(task.OutputPath)))
		if ui.settings.GetAutoRevealOnComplete() {
			ui.onRevealFile(task.OutputPath)
		}
	case model.TaskStatusError:
		_ = ui.reporter.Status.Set(fmt.Sprintf("%s %s: %s", IconError, t(KeyConversionFailed), singleLine(task.LastError)))
	case model.TaskStatusStopped:
		_ = ui.reporter.Status.Set(fmt.Sprintf("%s %s", IconStop, task.Status.String()))
	}
}

func (ui *RootUI) onShowHistory() {
	t := ui.localization.GetText
	if ui.services.History == nil {
		dialog.ShowInformation(t(KeyHistory), t(KeyNoHistory), ui.window)
		return
	}

	records, err := ui.services.History.List(HistoryLimit)
	if err != nil {
		ui.showError(err)
		return
	}
	if len(records) == 0 {
		dialog.ShowInformation(t(KeyHistory), t(KeyNoHistory), ui.window)
		return
	}

	list := widget.NewList(
		func() int { return len(records) },
		func() fyne.CanvasObject {
			title := widget.NewLabel("")
			title.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, widget.NewLabel(""), nil, title)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(historyTitle(records[id]))
			row.Objects[1].(*widget.Label).SetText(historyStatus(records[id]))
		},
	)

	d := dialog.NewCustom(t(KeyHistory), t(KeyClose), list, ui.window)
	d.Resize(fyne.NewSize(HistoryDialogWidth, HistoryDialogHeight))
	d.Show()
}

func historyStatus(rec *history.Record) string {
	icon := IconDone
	switch rec.Outcome {
	case history.OutcomeFailed:
		icon = IconError
	case history.OutcomeStopped:
		icon = IconStop
	}
	return fmt.Sprintf("%s %s", icon, rec.FinishedAt.Local().Format(HistoryTimeLayout))
}

func historyTitle(rec *history.Record) string {
	title := rec.Title
	if title == "" {
		title = rec.URL
	}
	text := singleLine(title)
	if rec.Quality != "" {
		text += MiddleDotSeparator + rec.Quality + "/" + rec.Format
	}
	if rec.Error != "" {
		text += MiddleDotSeparator + singleLine(rec.Error)
	}
	return text
}
