package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleFinished(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(Event{Kind: KindStarted, Filename: "/tmp/out/clip.mp4"})
	c.Report(Event{Kind: KindProgressing, Downloaded: 40, Total: 100})
	c.Report(Event{Kind: KindFinished, Filename: "/tmp/out/clip.mp4"})

	assert.Contains(t, buf.String(), "✓ Downloaded: clip.mp4")
}

func TestConsoleFailed(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(Event{Kind: KindFailed, Err: errors.New("HTTP Error 403")})
	assert.Contains(t, buf.String(), "❌ Error during download: HTTP Error 403")
}

func TestConsoleSkipsUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(Event{Kind: KindProgressing, Downloaded: 1024})
	assert.Nil(t, c.bar)
	assert.Empty(t, buf.String())
}

func TestConsoleThrottlesToEvenPercent(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(Event{Kind: KindProgressing, Downloaded: 3, Total: 100})
	assert.Nil(t, c.bar)
	assert.Equal(t, -1, c.lastPercent)

	c.Report(Event{Kind: KindProgressing, Downloaded: 4, Total: 100})
	assert.NotNil(t, c.bar)
	assert.Equal(t, 4, c.lastPercent)

	c.Report(Event{Kind: KindProgressing, Downloaded: 5, Total: 100})
	assert.Equal(t, 4, c.lastPercent)
}

func TestConsoleResetsBetweenFiles(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(Event{Kind: KindProgressing, Downloaded: 50, Total: 100})
	c.Report(Event{Kind: KindFinished, Filename: "a.mp4"})
	assert.Nil(t, c.bar)
	assert.Equal(t, -1, c.lastPercent)
}

func TestConsoleWithoutBytes(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf).WithStage("Converting").WithoutBytes()

	// ffmpeg positions in microseconds
	c.Report(Event{Kind: KindProgressing, Downloaded: 30_000_000, Total: 60_000_000})
	assert.NotNil(t, c.bar)
	assert.Contains(t, buf.String(), "Converting")
	assert.Contains(t, buf.String(), "50%")
	assert.NotContains(t, buf.String(), "MB")
	assert.NotContains(t, buf.String(), "kB")

	buf.Reset()
	b := NewConsole(&buf)
	b.Report(Event{Kind: KindProgressing, Downloaded: 30_000_000, Total: 60_000_000})
	assert.Contains(t, buf.String(), "MB")
}
