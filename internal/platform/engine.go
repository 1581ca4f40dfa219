package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/lrstanley/go-ytdlp"
)

// Default executable names looked up in PATH
const (
	YtDlpBinary   = "yt-dlp"
	FFmpegBinary  = "ffmpeg"
	FFprobeBinary = "ffprobe"
)

// Engine locates the external tools. Empty paths fall back to PATH lookup.
type Engine struct {
	YtDlpPath  string
	FFmpegPath string
}

// Command returns a fresh yt-dlp command bound to the configured executables
func (e Engine) Command() *ytdlp.Command {
	cmd := ytdlp.New()
	if e.YtDlpPath != "" {
		cmd.SetExecutable(e.YtDlpPath)
	}
	if e.FFmpegPath != "" {
		cmd.FFmpegLocation(e.FFmpegPath)
	}
	return cmd
}

// YtDlp returns the yt-dlp executable to run
func (e Engine) YtDlp() string {
	if e.YtDlpPath != "" {
		return e.YtDlpPath
	}
	return YtDlpBinary
}

// FFmpeg returns the ffmpeg executable to run
func (e Engine) FFmpeg() string {
	if e.FFmpegPath != "" {
		return e.FFmpegPath
	}
	return FFmpegBinary
}

// FFprobe returns the ffprobe executable, looked up next to a configured
// ffmpeg binary
func (e Engine) FFprobe() string {
	if e.FFmpegPath == "" {
		return FFprobeBinary
	}
	dir, name := filepath.Split(e.FFmpegPath)
	if strings.HasPrefix(name, FFmpegBinary) {
		return filepath.Join(dir, FFprobeBinary+strings.TrimPrefix(name, FFmpegBinary))
	}
	return FFprobeBinary
}

// Check verifies that yt-dlp and ffmpeg can be found
func (e Engine) Check() error {
	return CheckDependencies(e.YtDlp(), e.FFmpeg())
}

// CheckDependencies ensures every command is installed or resolvable in PATH.
// All missing commands are reported together.
func CheckDependencies(cmds ...string) error {
	var result error
	for _, cmd := range cmds {
		if _, err := exec.LookPath(cmd); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s is not installed or not found in PATH", cmd))
		}
	}
	return result
}
