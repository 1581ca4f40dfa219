package download

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func newTestService(runner Runner, maxParallel int) *Service {
	o := NewOrchestrator(runner, nil, nil)
	o.SetRetry(0, 0)
	return NewService(o, maxParallel, nil)
}

func waitStatus(t *testing.T, s *Service, id string, status model.TaskStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		task, ok := s.GetTask(id)
		return ok && task.Status == status
	}, waitFor, tick, "task %s never reached %s", id, status)
}

func TestNewService(t *testing.T) {
	service := newTestService(&fakeRunner{}, 2)

	if service.maxParallel != 2 {
		t.Errorf("Expected maxParallel to be 2, got %d", service.maxParallel)
	}
	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}

	if NewService(nil, 0, nil).maxParallel != DefaultMaxParallel {
		t.Errorf("Expected default maxParallel %d", DefaultMaxParallel)
	}
}

func TestAddTask(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	defer close(runner.block)
	service := newTestService(runner, 1)

	task1, err := service.AddTask(Request{URL: "https://youtube.com/watch?v=test1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task1.Status != model.TaskStatusPending && task1.Status != model.TaskStatusStarting {
		t.Errorf("Expected status to be Pending or Starting, got %s", task1.Status)
	}

	// Duplicate of an unfinished task
	if _, err = service.AddTask(Request{URL: "https://youtube.com/watch?v=test1"}); !errors.Is(err, ErrTaskExists) {
		t.Errorf("Expected ErrTaskExists for duplicate URL, got %v", err)
	}

	task2, err := service.AddTask(Request{URL: "https://youtube.com/watch?v=test2"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task2.Status != model.TaskStatusPending {
		t.Errorf("Expected second task to wait, got %s", task2.Status)
	}

	if _, err := service.AddTask(Request{}); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("Expected ErrEmptyURL, got %v", err)
	}
}

func TestGetTask(t *testing.T) {
	service := newTestService(&fakeRunner{outcome: &Outcome{}}, 1)

	task, err := service.AddTask(Request{URL: "https://youtube.com/watch?v=test"})
	require.NoError(t, err)

	retrieved, exists := service.GetTask(task.ID)
	if !exists {
		t.Error("Expected task to exist")
	}
	if retrieved.ID != task.ID {
		t.Errorf("Expected task ID to be '%s', got '%s'", task.ID, retrieved.ID)
	}

	if _, exists := service.GetTask("non-existing"); exists {
		t.Error("Expected task to not exist")
	}
}

func TestTaskCompletes(t *testing.T) {
	runner := &fakeRunner{
		outcome: &Outcome{Title: "Clip", Files: []string{"/v/Clip.mp4"}},
		events: []progress.Event{
			{Kind: progress.KindProgressing, Downloaded: 50, Total: 100, Percent: 50, ETA: 3 * time.Second},
			{Kind: progress.KindFinished, Filename: "/v/Clip.f137.mp4"},
		},
	}
	service := newTestService(runner, 1)

	task, err := service.AddTask(Request{URL: "https://youtu.be/abc"})
	require.NoError(t, err)
	waitStatus(t, service, task.ID, model.TaskStatusCompleted)

	got, _ := service.GetTask(task.ID)
	assert.Equal(t, 100, got.Percent)
	assert.Equal(t, "Clip", got.Title)
	assert.Equal(t, "/v/Clip.mp4", got.OutputPath)
	assert.Equal(t, int64(100), got.FileSize)
	assert.False(t, got.FinishedAt.IsZero())
}

func TestTaskKeepsFinishedFileWithoutOutcome(t *testing.T) {
	runner := &fakeRunner{
		outcome: &Outcome{},
		events: []progress.Event{
			{Kind: progress.KindFinished, Filename: "/v/Clip.mp4"},
			{Kind: progress.KindFinished, Filename: "/v/Clip.mp4.part"},
		},
	}
	service := newTestService(runner, 1)

	task, err := service.AddTask(Request{URL: "https://youtu.be/abc"})
	require.NoError(t, err)
	waitStatus(t, service, task.ID, model.TaskStatusCompleted)

	got, _ := service.GetTask(task.ID)
	assert.Equal(t, "/v/Clip.mp4", got.OutputPath)
}

func TestTaskFails(t *testing.T) {
	service := newTestService(&fakeRunner{errs: []error{errors.New("Video unavailable")}}, 1)

	task, err := service.AddTask(Request{URL: "https://youtu.be/gone"})
	require.NoError(t, err)
	waitStatus(t, service, task.ID, model.TaskStatusError)

	got, _ := service.GetTask(task.ID)
	assert.Contains(t, got.LastError, "Video unavailable")
}

func TestQueueRespectsMaxParallel(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{}), outcome: &Outcome{}}
	service := newTestService(runner, 1)

	a, _ := service.AddTask(Request{URL: "https://youtu.be/a"})
	b, _ := service.AddTask(Request{URL: "https://youtu.be/b"})

	require.Eventually(t, func() bool { return runner.Calls() == 1 }, waitFor, tick)
	gotB, _ := service.GetTask(b.ID)
	assert.Equal(t, model.TaskStatusPending, gotB.Status)

	close(runner.block)
	waitStatus(t, service, a.ID, model.TaskStatusCompleted)
	waitStatus(t, service, b.ID, model.TaskStatusCompleted)
	assert.Equal(t, 2, runner.Calls())
}

func TestStopTask(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	defer close(runner.block)
	service := newTestService(runner, 1)

	running, _ := service.AddTask(Request{URL: "https://youtu.be/a"})
	pending, _ := service.AddTask(Request{URL: "https://youtu.be/b"})
	require.Eventually(t, func() bool { return runner.Calls() == 1 }, waitFor, tick)

	require.NoError(t, service.StopTask(pending.ID))
	gotPending, _ := service.GetTask(pending.ID)
	assert.Equal(t, model.TaskStatusStopped, gotPending.Status)

	require.NoError(t, service.StopTask(running.ID))
	waitStatus(t, service, running.ID, model.TaskStatusStopped)

	if err := service.StopTask(running.ID); err == nil {
		t.Error("Expected error stopping a finished task")
	}
	if err := service.StopTask("missing"); err == nil {
		t.Error("Expected error stopping a missing task")
	}

	// the stopped pending task must never have run
	assert.Equal(t, 1, runner.Calls())
}

func TestRemoveAndClearFinished(t *testing.T) {
	runner := &fakeRunner{outcome: &Outcome{}}
	service := newTestService(runner, 2)

	a, _ := service.AddTask(Request{URL: "https://youtu.be/a"})
	b, _ := service.AddTask(Request{URL: "https://youtu.be/b"})
	waitStatus(t, service, a.ID, model.TaskStatusCompleted)
	waitStatus(t, service, b.ID, model.TaskStatusCompleted)

	require.NoError(t, service.RemoveTask(a.ID))
	if _, exists := service.GetTask(a.ID); exists {
		t.Error("Expected removed task to be gone")
	}
	assert.Error(t, service.RemoveTask(a.ID))

	assert.Equal(t, 1, service.ClearFinished())
	assert.Empty(t, service.GetAllTasks())
}

func TestGetAllTasks(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	defer close(runner.block)
	service := newTestService(runner, 1)

	urls := []string{"https://youtu.be/1", "https://youtu.be/2", "https://youtu.be/3"}
	for _, url := range urls {
		if _, err := service.AddTask(Request{URL: url}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	tasks := service.GetAllTasks()
	if len(tasks) != len(urls) {
		t.Fatalf("Expected %d tasks, got %d", len(urls), len(tasks))
	}
	for i, task := range tasks {
		if task.URL != urls[i] {
			t.Errorf("Expected task %d URL %s, got %s", i, urls[i], task.URL)
		}
	}
}

func TestUpdateCallback(t *testing.T) {
	service := newTestService(&fakeRunner{outcome: &Outcome{}}, 1)

	var mu sync.Mutex
	var statuses []model.TaskStatus
	service.SetUpdateCallback(func(task model.DownloadTask) {
		mu.Lock()
		statuses = append(statuses, task.Status)
		mu.Unlock()
	})

	task, err := service.AddTask(Request{URL: "https://youtu.be/cb"})
	require.NoError(t, err)
	waitStatus(t, service, task.ID, model.TaskStatusCompleted)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(statuses) > 0 && statuses[len(statuses)-1] == model.TaskStatusCompleted
	}, waitFor, tick)
}

func TestExtraReporter(t *testing.T) {
	runner := &fakeRunner{outcome: &Outcome{}, events: []progress.Event{{Kind: progress.KindFinished, Filename: "a.mp4"}}}
	service := newTestService(runner, 1)

	var mu sync.Mutex
	var kinds []progress.Kind
	service.SetReporter(progress.Func(func(e progress.Event) {
		mu.Lock()
		kinds = append(kinds, e.Kind)
		mu.Unlock()
	}))

	task, _ := service.AddTask(Request{URL: "https://youtu.be/r"})
	waitStatus(t, service, task.ID, model.TaskStatusCompleted)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []progress.Kind{progress.KindStarted, progress.KindFinished}, kinds)
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}
	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected task ID to start with '%s', got '%s'", TaskIDPrefix, id1)
	}
}
