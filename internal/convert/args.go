package convert

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

// FFmpeg constants for conversion settings
const (
	VideoPreset = "medium"
	VideoCRF    = "23"

	AudioBitrate = "128k"
	// MP3 extraction matches the download pipeline's audio tier
	MP3Codec   = "libmp3lame"
	MP3Bitrate = policy.AudioQuality + "k"

	FastStartFlag = "+faststart"

	ConvertedSuffix = "-converted"
	MP3Extension    = "." + policy.AudioCodec

	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	ProgressEndLine     = "progress=end"
)

// Target is the desired output of a conversion
type Target struct {
	Format policy.Format
	// Audio extracts an mp3 track instead of converting the container
	Audio bool
}

func (t Target) String() string {
	if t.Audio {
		return policy.AudioCodec
	}
	return string(t.Format)
}

// Extension returns the output file extension including the dot
func (t Target) Extension() string {
	if t.Audio {
		return MP3Extension
	}
	return "." + string(t.Format)
}

type profile struct {
	videoCodec string
	audioCodec string
	extra      []string
}

var profiles = map[policy.Format]profile{
	policy.FormatMP4:  {"libx264", "aac", []string{"-preset", VideoPreset, "-crf", VideoCRF, "-movflags", FastStartFlag}},
	policy.FormatWebM: {"libvpx-vp9", "libopus", []string{"-crf", "32", "-b:v", "0"}},
	policy.FormatMKV:  {"libx264", "aac", []string{"-preset", VideoPreset, "-crf", VideoCRF}},
	policy.FormatAVI:  {"mpeg4", "libmp3lame", []string{"-q:v", "5"}},
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(inputPath, outputPath string, target Target) ([]string, error) {
	args := []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
	}

	if target.Audio {
		args = append(args,
			"-vn",
			"-c:a", MP3Codec,
			"-b:a", MP3Bitrate,
		)
	} else {
		p, ok := profiles[target.Format]
		if !ok {
			return nil, fmt.Errorf("%w: %s", policy.ErrUnknownFormat, target.Format)
		}
		args = append(args, "-c:v", p.videoCodec)
		args = append(args, p.extra...)
		args = append(args, "-c:a", p.audioCodec, "-b:a", AudioBitrate)
	}

	return append(args,
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats",
		outputPath,
	), nil
}

// OutputPath returns the output file for input converted to target. When the
// extension would not change, a suffix keeps the input intact.
func OutputPath(inputPath string, target Target) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(inputPath, ext)
	out := base + target.Extension()
	if strings.EqualFold(ext, target.Extension()) {
		out = base + ConvertedSuffix + target.Extension()
	}
	return out
}

// ParseProgressLine extracts the output position from an ffmpeg -progress line
func ParseProgressLine(line string) (time.Duration, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ProgressTimePrefix) {
		return 0, false
	}
	us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	return time.Duration(us) * time.Microsecond, true
}

// ParseDuration parses ffprobe's duration output in seconds
func ParseDuration(output string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
