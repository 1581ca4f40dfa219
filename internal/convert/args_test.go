package convert

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		target   Target
		expected string
	}{
		{"/path/to/video.webm", Target{Format: policy.FormatMP4}, "/path/to/video.mp4"},
		{"/path/to/video.mp4", Target{Format: policy.FormatMP4}, "/path/to/video-converted.mp4"},
		{"/path/to/video.MKV", Target{Format: policy.FormatMKV}, "/path/to/video-converted.mkv"},
		{"/path/to/video.mp4", Target{Audio: true}, "/path/to/video.mp3"},
		{"video", Target{Format: policy.FormatAVI}, "video.avi"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.target); got != tt.expected {
			t.Errorf("OutputPath(%q, %s): expected %q, got %q", tt.input, tt.target, tt.expected, got)
		}
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	tests := []struct {
		target   Target
		contains []string
	}{
		{Target{Format: policy.FormatMP4}, []string{"-c:v libx264", "-movflags +faststart", "-c:a aac"}},
		{Target{Format: policy.FormatWebM}, []string{"-c:v libvpx-vp9", "-c:a libopus"}},
		{Target{Format: policy.FormatMKV}, []string{"-c:v libx264", "-c:a aac"}},
		{Target{Format: policy.FormatAVI}, []string{"-c:v mpeg4", "-c:a libmp3lame"}},
		{Target{Audio: true}, []string{"-vn", "-c:a libmp3lame", "-b:a 192k"}},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			args, err := BuildFFmpegArgs("in.mp4", "out"+tt.target.Extension(), tt.target)
			require.NoError(t, err)

			joined := strings.Join(args, " ")
			assert.True(t, strings.HasPrefix(joined, "-y -i in.mp4"))
			assert.True(t, strings.HasSuffix(joined, "-progress pipe:2 -nostats out"+tt.target.Extension()))
			for _, want := range tt.contains {
				assert.Contains(t, joined, want)
			}
		})
	}
}

func TestBuildFFmpegArgsUnknownFormat(t *testing.T) {
	_, err := BuildFFmpegArgs("in.mp4", "out.flv", Target{Format: "flv"})
	assert.True(t, errors.Is(err, policy.ErrUnknownFormat))
}

func TestParseProgressLine(t *testing.T) {
	d, ok := ParseProgressLine("out_time_us=1500000")
	assert.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, d)

	for _, line := range []string{"frame=10", "out_time_us=N/A", "out_time_us=-5", ""} {
		_, ok := ParseProgressLine(line)
		assert.False(t, ok, line)
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("212.345\n")
	require.NoError(t, err)
	assert.Equal(t, 212345*time.Millisecond, d.Round(time.Millisecond))

	_, err = ParseDuration("N/A")
	assert.Error(t, err)
}
