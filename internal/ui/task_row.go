package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
)

// TaskActions are the callbacks behind the row buttons
type TaskActions struct {
	Stop    func(taskID string)
	Reveal  func(filePath string)
	Open    func(filePath string)
	Convert func(filePath string)
	Remove  func(taskID string)
}

// TaskRow renders one download task
type TaskRow struct {
	widget.BaseWidget

	task         model.DownloadTask
	localization *Localization
	language     string
	actions      TaskActions

	titleLabel    *widget.Label
	detailLabel   *widget.Label
	statusLabel   *widget.Label
	speedEtaLabel *widget.Label
	percentLabel  *widget.Label
	progressBar   *widget.ProgressBar

	stopBtn    *widget.Button
	revealBtn  *widget.Button
	openBtn    *widget.Button
	convertBtn *widget.Button
	removeBtn  *widget.Button
}

// NewTaskRow creates a new task row widget
func NewTaskRow(localization *Localization, actions TaskActions) *TaskRow {
	tr := &TaskRow{
		localization: localization,
		language:     localization.GetCurrentLanguage(),
		actions:      actions,
		task:         model.DownloadTask{Status: model.TaskStatusPending, ETASec: -1},
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task model.DownloadTask) {
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.detailLabel = widget.NewLabel("")
	tr.detailLabel.Truncation = fyne.TextTruncateEllipsis
	tr.detailLabel.Importance = widget.LowImportance

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.speedEtaLabel = widget.NewLabel("")
	tr.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}
	tr.progressBar = widget.NewProgressBar()
	tr.progressBar.TextFormatter = func() string { return "" }
	tr.percentLabel = widget.NewLabel("")
	tr.percentLabel.Alignment = fyne.TextAlignTrailing

	tr.stopBtn = widget.NewButton(tr.localization.GetText(KeyStop), func() {
		if tr.actions.Stop != nil {
			tr.actions.Stop(tr.task.ID)
		}
	})
	tr.revealBtn = widget.NewButton(tr.localization.GetText(KeyReveal), func() {
		if tr.actions.Reveal != nil && tr.task.OutputPath != "" {
			tr.actions.Reveal(tr.task.OutputPath)
		}
	})
	tr.openBtn = widget.NewButton(tr.localization.GetText(KeyOpen), func() {
		if tr.actions.Open != nil && tr.task.OutputPath != "" {
			tr.actions.Open(tr.task.OutputPath)
		}
	})
	tr.convertBtn = widget.NewButton(tr.localization.GetText(KeyConvert), func() {
		if tr.actions.Convert != nil && tr.task.OutputPath != "" {
			tr.actions.Convert(tr.task.OutputPath)
		}
	})
	tr.removeBtn = widget.NewButton(tr.localization.GetText(KeyRemove), func() {
		if tr.actions.Remove != nil {
			tr.actions.Remove(tr.task.ID)
		}
	})
	tr.removeBtn.Importance = widget.LowImportance
}

// SetLocalization re-labels the buttons after a language change
func (tr *TaskRow) SetLocalization(localization *Localization) {
	if tr.localization == localization && tr.language == localization.GetCurrentLanguage() {
		return
	}
	tr.localization = localization
	tr.language = localization.GetCurrentLanguage()
	tr.stopBtn.SetText(localization.GetText(KeyStop))
	tr.revealBtn.SetText(localization.GetText(KeyReveal))
	tr.openBtn.SetText(localization.GetText(KeyOpen))
	tr.convertBtn.SetText(localization.GetText(KeyConvert))
	tr.removeBtn.SetText(localization.GetText(KeyRemove))
}

func (tr *TaskRow) updateFromTask() {
	task := tr.task
	tr.titleLabel.SetText(singleLine(task.GetDisplayTitle()))
	tr.detailLabel.SetText(taskDetails(task))

	switch task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " " + task.Status.String())
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(IconDone + " " + task.Status.String())
	case model.TaskStatusDownloading:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconPlay + " " + task.Status.String())
	case model.TaskStatusProcessing:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconWorking + " " + task.Status.String())
	case model.TaskStatusPending:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconPending + " " + task.Status.String())
	case model.TaskStatusStopped:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconStop + " " + task.Status.String())
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(task.Status.String())
	}

	value := clampProgress(task)
	tr.progressBar.SetValue(value)
	tr.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, int(value*100)))
	tr.speedEtaLabel.SetText(speedEtaText(task))
	tr.updateButtons()
}

func (tr *TaskRow) updateButtons() {
	setEnabled(tr.stopBtn, tr.task.Status == model.TaskStatusPending || (tr.task.Status.IsActive() && tr.task.Status != model.TaskStatusStopping))

	hasFile := tr.task.Status == model.TaskStatusCompleted && tr.task.OutputPath != ""
	setEnabled(tr.revealBtn, hasFile)
	setEnabled(tr.openBtn, hasFile)
	setEnabled(tr.convertBtn, hasFile)
	setEnabled(tr.removeBtn, !tr.task.Status.IsActive())
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewVBox(
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		fixedWidth(SpeedLabelWidth, tr.speedEtaLabel),
	)
	actions := container.NewHBox(tr.stopBtn, tr.revealBtn, tr.openBtn, tr.convertBtn, tr.removeBtn)
	text := container.NewVBox(tr.titleLabel, tr.detailLabel)

	top := container.NewBorder(nil, nil, nil, container.NewHBox(info, actions), text)
	bar := container.NewBorder(nil, nil, nil, fixedWidth(PercentLabelWidth, tr.percentLabel), tr.progressBar)
	content := container.NewVBox(top, bar, widget.NewSeparator())
	return widget.NewSimpleRenderer(content)
}

// MinSize keeps rows readable in narrow windows
func (tr *TaskRow) MinSize() fyne.Size {
	size := tr.BaseWidget.MinSize()
	return fyne.NewSize(fyne.Max(size.Width, RowMinWidth), fyne.Max(size.Height, RowMinHeight))
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

// clampProgress returns the bar value in [0, 1]
func clampProgress(task model.DownloadTask) float64 {
	if task.Status == model.TaskStatusCompleted {
		return 1
	}
	value := task.Progress
	if value <= 0 && task.Percent > 0 {
		value = float64(task.Percent) / 100
	}
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func speedEtaText(task model.DownloadTask) string {
	switch task.Status {
	case model.TaskStatusDownloading:
		var parts []string
		if task.FileSize > 0 {
			parts = append(parts, model.FormatFileSize(task.FileSize))
		}
		if task.Speed != "" {
			parts = append(parts, task.Speed)
		}
		if task.ETASec > 0 {
			parts = append(parts, task.GetETAString())
		}
		if len(parts) == 0 {
			return DashPlaceholder
		}
		return strings.Join(parts, MiddleDotSeparator)
	case model.TaskStatusCompleted:
		if task.FileSize > 0 {
			return model.FormatFileSize(task.FileSize)
		}
	case model.TaskStatusError:
		return singleLine(task.LastError)
	}
	return ""
}

func taskDetails(task model.DownloadTask) string {
	var parts []string
	if task.Uploader != "" && task.Uploader != model.Unknown {
		parts = append(parts, task.Uploader)
	}
	if task.Duration != "" && task.Duration != model.Unknown {
		parts = append(parts, task.Duration)
	}
	if task.Quality != "" {
		parts = append(parts, task.Quality+"/"+task.Format)
	}
	if task.Playlist {
		parts = append(parts, IconPlaylist)
	}
	if len(parts) == 0 {
		return singleLine(task.URL)
	}
	return strings.Join(parts, MiddleDotSeparator)
}

func singleLine(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}
