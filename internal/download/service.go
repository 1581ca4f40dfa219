package download

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

// Queue defaults
const (
	DefaultMaxParallel = 2
	TaskIDPrefix       = "task-"
)

var ErrTaskExists = errors.New("task already exists")

// Service manages a queue of download tasks
type Service struct {
	orchestrator *Orchestrator
	logger       *zap.Logger

	tasks       map[string]*model.DownloadTask
	requests    map[string]Request
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	onUpdate    func(model.DownloadTask) // callback for UI updates
	reporter    progress.Reporter        // extra sink for every task's events
}

// NewService creates a new download service
func NewService(orchestrator *Orchestrator, maxParallel int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}
	return &Service{
		orchestrator: orchestrator,
		logger:       logger.Named("queue"),
		tasks:        make(map[string]*model.DownloadTask),
		requests:     make(map[string]Request),
		cancels:      make(map[string]context.CancelFunc),
		maxParallel:  maxParallel,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetReporter sets an additional reporter receiving every task's events
func (s *Service) SetReporter(r progress.Reporter) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.reporter = r
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Service) SetMaxParallelDownloads(max int) {
	if max <= 0 {
		max = DefaultMaxParallel
	}
	s.tasksMutex.Lock()
	s.maxParallel = max
	s.tasksMutex.Unlock()
	s.startNextPendingTask()
}

// AddTask adds a new download task
func (s *Service) AddTask(req Request) (*model.DownloadTask, error) {
	if req.URL == "" {
		return nil, ErrEmptyURL
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.URL == req.URL && !task.Status.IsFinished() {
			return nil, fmt.Errorf("%w for URL: %s", ErrTaskExists, req.URL)
		}
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		URL:       req.URL,
		Status:    model.TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
		Quality:   string(req.Quality),
		Format:    string(req.Format),
		Playlist:  req.Playlist,
	}
	if req.Info != nil {
		task.Title = req.Info.Title
		task.Uploader = req.Info.DisplayUploader()
		task.Duration = model.FormatDuration(int(req.Info.Duration))
	}

	s.tasks[task.ID] = task
	s.requests[task.ID] = req

	if s.activeCount < s.maxParallel {
		s.scheduleLocked(task)
	}

	snapshot := task.Snapshot()
	return &snapshot, nil
}

// GetTask returns a copy of a task by ID
func (s *Service) GetTask(id string) (model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.DownloadTask{}, false
	}
	return task.Snapshot(), true
}

// GetAllTasks returns copies of all tasks ordered by creation time
func (s *Service) GetAllTasks() []model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task.Snapshot())
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// StopTask stops a running or pending task
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()

	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}

	if task.Status == model.TaskStatusPending {
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		snapshot := task.Snapshot()
		s.tasksMutex.Unlock()
		s.notify(snapshot)
		return nil
	}

	if !task.Status.IsActive() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	if cancel, ok := s.cancels[id]; ok {
		cancel()
	}
	snapshot := task.Snapshot()
	s.tasksMutex.Unlock()

	s.notify(snapshot)
	return nil
}

// RemoveTask removes a finished or pending task
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if task.Status.IsActive() {
		return fmt.Errorf("cannot remove active task: %s", id)
	}

	delete(s.tasks, id)
	delete(s.requests, id)
	return nil
}

// ClearFinished removes every finished task and returns how many were removed
func (s *Service) ClearFinished() int {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	removed := 0
	for id, task := range s.tasks {
		if task.Status.IsFinished() {
			delete(s.tasks, id)
			delete(s.requests, id)
			removed++
		}
	}
	return removed
}

// startTask downloads a task previously marked Starting by scheduleLocked
func (s *Service) startTask(task *model.DownloadTask) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.tasksMutex.Lock()
	if task.Status != model.TaskStatusStarting {
		// stopped before it got going
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		s.activeCount--
		snapshot := task.Snapshot()
		s.tasksMutex.Unlock()
		s.notify(snapshot)
		s.startNextPendingTask()
		return
	}
	s.cancels[task.ID] = cancel
	req := s.requests[task.ID]
	extra := s.reporter
	snapshot := task.Snapshot()
	s.tasksMutex.Unlock()

	s.notify(snapshot)

	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		delete(s.cancels, task.ID)
		s.tasksMutex.Unlock()

		s.startNextPendingTask()
	}()

	reporter := progress.Multi(progress.Func(func(e progress.Event) {
		s.updateTaskProgress(task, e)
	}), extra)

	result, err := s.orchestrator.Run(ctx, req, reporter)

	s.tasksMutex.Lock()
	switch {
	case err != nil && (errors.Is(err, context.Canceled) || task.Status == model.TaskStatusStopping):
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
		if result.Title != "" {
			task.Title = result.Title
		}
		if n := len(result.Files); n > 0 {
			task.OutputPath = result.Files[n-1]
		}
	}
	task.FinishedAt = time.Now()
	snapshot = task.Snapshot()
	s.tasksMutex.Unlock()

	if err != nil {
		s.logger.Debug("task ended", zap.String("id", task.ID), zap.String("status", snapshot.Status.String()), zap.Error(err))
	}
	s.notify(snapshot)
}

// updateTaskProgress updates task state from a progress event
func (s *Service) updateTaskProgress(task *model.DownloadTask, e progress.Event) {
	s.tasksMutex.Lock()

	if e.Title != "" && task.Title == "" {
		task.Title = e.Title
	}

	switch e.Kind {
	case progress.KindStarted:
		if task.Status == model.TaskStatusStarting {
			task.Status = model.TaskStatusDownloading
		}
	case progress.KindProgressing:
		if task.Status != model.TaskStatusStopping {
			task.Status = model.TaskStatusDownloading
		}
		task.Percent = int(e.Percent)
		task.Progress = e.Percent / 100.0
		task.FileSize = e.Total
		if speed := e.SpeedString(); speed != "" {
			task.Speed = speed
		}
		if e.ETA > 0 {
			task.ETASec = int(e.ETA.Seconds())
		}
	case progress.KindPostProcessing:
		if task.Status != model.TaskStatusStopping {
			task.Status = model.TaskStatusProcessing
		}
	case progress.KindFinished:
		if e.Filename != "" && !platform.IsPartialFile(e.Filename) {
			task.OutputPath = e.Filename
		}
	}

	snapshot := task.Snapshot()
	s.tasksMutex.Unlock()

	s.notify(snapshot)
}

// startNextPendingTask starts pending tasks while there is capacity
func (s *Service) startNextPendingTask() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	var pending []*model.DownloadTask
	for _, task := range s.tasks {
		if task.Status == model.TaskStatusPending {
			pending = append(pending, task)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].StartedAt.Before(pending[j].StartedAt)
	})

	for _, task := range pending {
		if s.activeCount >= s.maxParallel {
			return
		}
		s.scheduleLocked(task)
	}
}

// scheduleLocked reserves a slot and launches the task. Caller holds the lock.
func (s *Service) scheduleLocked(task *model.DownloadTask) {
	s.activeCount++
	task.Status = model.TaskStatusStarting
	go s.startTask(task)
}

// notify calls the update callback if set
func (s *Service) notify(task model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(task)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}
