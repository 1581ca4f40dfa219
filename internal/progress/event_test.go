package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name       string
		downloaded int64
		total      int64
		expected   float64
		ok         bool
	}{
		{"unknown total", 10, 0, 0, false},
		{"half", 50, 100, 50, true},
		{"complete", 100, 100, 100, true},
		{"overshoot clamped", 150, 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, ok := Percentage(tt.downloaded, tt.total)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, percent, 0.001)
		})
	}
}

func TestEventSpeedString(t *testing.T) {
	assert.Equal(t, "", Event{}.SpeedString())
	assert.Equal(t, "1.5MB/s", Event{Speed: 1.5 * 1024 * 1024}.SpeedString())
}

func TestMulti(t *testing.T) {
	var a, b []Kind
	r := Multi(
		Func(func(e Event) { a = append(a, e.Kind) }),
		nil,
		Func(func(e Event) { b = append(b, e.Kind) }),
	)

	r.Report(Event{Kind: KindStarted})
	r.Report(Event{Kind: KindFailed, Err: errors.New("boom")})

	assert.Equal(t, []Kind{KindStarted, KindFailed}, a)
	assert.Equal(t, a, b)
}

func TestMultiSingle(t *testing.T) {
	only := Func(func(Event) {})
	_, isMulti := Multi(nil, only).(multi)
	assert.False(t, isMulti)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop.Report(Event{Kind: KindFinished}) })
}
