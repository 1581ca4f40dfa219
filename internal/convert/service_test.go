package convert

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
	"github.com/AliEhsanian/YouTube-Downloader/internal/progress"
)

var missingTools = platform.Engine{FFmpegPath: "/nonexistent/ffmpeg"}

func TestMonitorProgress(t *testing.T) {
	input := strings.NewReader("frame=1\nout_time_us=500000\nout_time_us=1000000\nprogress=end\n")

	var events []progress.Event
	monitorProgress(input, "out.mp4", 2*time.Second, progress.Func(func(e progress.Event) {
		events = append(events, e)
	}))

	require.Len(t, events, 2)
	assert.InDelta(t, 25.0, events[0].Percent, 0.001)
	assert.InDelta(t, 50.0, events[1].Percent, 0.001)
	assert.Equal(t, "out.mp4", events[1].Filename)
}

func TestMonitorProgressUnknownDuration(t *testing.T) {
	called := false
	monitorProgress(strings.NewReader("out_time_us=500000\n"), "out.mp4", 0, progress.Func(func(progress.Event) {
		called = true
	}))
	assert.False(t, called)
}

func TestStartConversion_NonExistentFile(t *testing.T) {
	service := NewService(missingTools, nil)

	_, err := service.StartConversion("/non/existent/file.mp4", Target{Format: policy.FormatMKV})
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestStartConversion_MissingFFmpeg(t *testing.T) {
	input := filepath.Join(t.TempDir(), "clip.webm")
	require.NoError(t, os.WriteFile(input, []byte("not really video"), 0644))

	service := NewService(missingTools, nil)

	var mu sync.Mutex
	var last model.ConversionTask
	service.SetUpdateCallback(func(task model.ConversionTask) {
		mu.Lock()
		last = task
		mu.Unlock()
	})

	task, err := service.StartConversion(input, Target{Format: policy.FormatMP4})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(input), "clip.mp4"), task.OutputPath)
	assert.Equal(t, "mp4", task.TargetFormat)

	require.Eventually(t, func() bool {
		got, _ := service.GetTask(task.ID)
		return got.Status == model.TaskStatusError
	}, 2*time.Second, 5*time.Millisecond)

	got, _ := service.GetTask(task.ID)
	assert.Contains(t, got.LastError, "ffmpeg")
	assert.NoFileExists(t, task.OutputPath)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return last.Status == model.TaskStatusError
	}, 2*time.Second, 5*time.Millisecond)

	if err := service.StopConversion(task.ID); err == nil {
		t.Error("Expected error stopping a finished task")
	}
}

func TestStopConversion_NotFound(t *testing.T) {
	service := NewService(missingTools, nil)
	if err := service.StopConversion("missing"); err == nil {
		t.Error("Expected error for missing task")
	}
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
