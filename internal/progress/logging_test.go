package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewLogging(zap.New(core))

	r.Report(Event{Kind: KindStarted, Filename: "a.mp4", Title: "A"})
	r.Report(Event{Kind: KindProgressing, Downloaded: 1, Total: 2})
	r.Report(Event{Kind: KindFailed, Filename: "a.mp4", Err: errors.New("boom")})

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "download started", entries[0].Message)
		assert.Equal(t, "download failed", entries[1].Message)
		assert.Equal(t, "progress", entries[1].LoggerName)
	}
}

func TestLoggingNilLogger(t *testing.T) {
	assert.NotPanics(t, func() { NewLogging(nil).Report(Event{Kind: KindFinished}) })
}
