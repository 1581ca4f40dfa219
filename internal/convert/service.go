package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

const TaskIDPrefix = "convert-"

// Service handles ffmpeg conversions
type Service struct {
	ffmpeg  string
	ffprobe string
	logger  *zap.Logger

	tasks      map[string]*model.ConversionTask
	cancels    map[string]context.CancelFunc
	tasksMutex sync.RWMutex
	onUpdate   func(model.ConversionTask) // callback for UI updates
}

// NewService creates a new conversion service
func NewService(engine platform.Engine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ffmpeg:  engine.FFmpeg(),
		ffprobe: engine.FFprobe(),
		logger:  logger.Named("convert"),
		tasks:   make(map[string]*model.ConversionTask),
		cancels: make(map[string]context.CancelFunc),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(model.ConversionTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// Convert transcodes inputPath into target and returns the output path.
// Partial output is removed on failure.
func (s *Service) Convert(ctx context.Context, inputPath string, target Target, reporter progress.Reporter) (string, error) {
	if reporter == nil {
		reporter = progress.Nop
	}
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file does not exist: %s", inputPath)
	}

	outputPath := OutputPath(inputPath, target)
	args, err := BuildFFmpegArgs(inputPath, outputPath, target)
	if err != nil {
		return "", err
	}

	duration, err := s.probeDuration(ctx, inputPath)
	if err != nil {
		// progress stays unknown, the conversion itself can still succeed
		s.logger.Warn("failed to probe duration", zap.String("file", inputPath), zap.Error(err))
	}

	logger := s.logger.With(zap.String("input", inputPath), zap.String("output", outputPath))
	logger.Info("starting conversion", zap.String("target", target.String()))
	reporter.Report(progress.Event{Kind: progress.KindStarted, Filename: outputPath, ETA: -1})

	cmd := exec.CommandContext(ctx, s.ffmpeg, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	// stderr must be drained before Wait
	monitorProgress(stderr, outputPath, duration, reporter)
	err = cmd.Wait()

	if err != nil {
		os.Remove(outputPath)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ffmpeg failed: %w", err)
	}

	logger.Info("conversion complete")
	return outputPath, nil
}

// StartConversion starts converting a file in the background
func (s *Service) StartConversion(inputPath string, target Target) (*model.ConversionTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.InputPath == inputPath && task.Status.IsActive() {
			return nil, fmt.Errorf("conversion already in progress for file: %s", inputPath)
		}
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	task := &model.ConversionTask{
		ID:           generateTaskID(),
		InputPath:    inputPath,
		OutputPath:   OutputPath(inputPath, target),
		TargetFormat: target.String(),
		Status:       model.TaskStatusStarting,
		StartedAt:    time.Now(),
	}
	s.tasks[task.ID] = task
	s.cancels[task.ID] = cancel

	go s.run(ctx, cancel, task, target)

	snapshot := *task
	return &snapshot, nil
}

func (s *Service) run(ctx context.Context, cancel context.CancelFunc, task *model.ConversionTask, target Target) {
	defer cancel()

	reporter := progress.Func(func(e progress.Event) {
		s.tasksMutex.Lock()
		switch e.Kind {
		case progress.KindStarted:
			if task.Status == model.TaskStatusStarting {
				task.Status = model.TaskStatusProcessing
			}
		case progress.KindProgressing:
			task.Progress = e.Percent / 100.0
			task.Percent = int(e.Percent)
		}
		snapshot := *task
		s.tasksMutex.Unlock()
		s.notify(snapshot)
	})

	_, err := s.Convert(ctx, task.InputPath, target, reporter)

	s.tasksMutex.Lock()
	switch {
	case errors.Is(err, context.Canceled):
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	delete(s.cancels, task.ID)
	snapshot := *task
	s.tasksMutex.Unlock()

	s.notify(snapshot)
}

// StopConversion stops a running conversion task
func (s *Service) StopConversion(taskID string) error {
	s.tasksMutex.Lock()

	task, exists := s.tasks[taskID]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("conversion task not found: %s", taskID)
	}
	if !task.Status.IsActive() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("conversion task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	if cancel, ok := s.cancels[taskID]; ok {
		cancel()
	}
	snapshot := *task
	s.tasksMutex.Unlock()

	s.notify(snapshot)
	return nil
}

// GetTask returns a copy of a conversion task by ID
func (s *Service) GetTask(taskID string) (model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return model.ConversionTask{}, false
	}
	return *task, true
}

// probeDuration gets the duration of a media file using ffprobe
func (s *Service) probeDuration(ctx context.Context, filePath string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, s.ffprobe, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return ParseDuration(string(output))
}

// monitorProgress turns ffmpeg -progress output into progress events
func monitorProgress(stderr io.Reader, outputPath string, total time.Duration, reporter progress.Reporter) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		position, ok := ParseProgressLine(scanner.Text())
		if !ok || total <= 0 {
			continue
		}
		event := progress.Event{
			Kind:       progress.KindProgressing,
			Filename:   outputPath,
			Downloaded: position.Microseconds(),
			Total:      total.Microseconds(),
			ETA:        -1,
		}
		event.Percent, _ = progress.Percentage(event.Downloaded, event.Total)
		reporter.Report(event)
	}
}

// notify calls the update callback if set
func (s *Service) notify(task model.ConversionTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(task)
	}
}

// generateTaskID generates a time ordered unique task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
