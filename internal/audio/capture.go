// Package audio handles the two local device interactions: capturing
// microphone input to a compressed file and playing a synthesized response.
// Both shell out to platform utilities rather than linking audio libraries.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
)

const defaultMaxSeconds = 30

// lookPath is a seam for tests.
var lookPath = exec.LookPath

// Recorder captures microphone input to a file.
type Recorder interface {
	Record(ctx context.Context, outPath string) error
}

// FFmpegRecorder records from the default microphone with ffmpeg. The
// recording runs until MaxSeconds elapse; trailing silence is trimmed so
// the file ends where the speaker stopped.
type FFmpegRecorder struct {
	// MaxSeconds bounds the recording length. Zero means defaultMaxSeconds.
	MaxSeconds int

	binary string
	goos   string
}

// NewRecorder probes for ffmpeg and returns a recorder bound to the
// current platform's default capture device.
func NewRecorder(maxSeconds int) (*FFmpegRecorder, error) {
	bin, err := lookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("microphone capture requires ffmpeg: %w", err)
	}
	return &FFmpegRecorder{MaxSeconds: maxSeconds, binary: bin, goos: runtime.GOOS}, nil
}

// Record overwrites outPath with a new recording.
func (r *FFmpegRecorder) Record(ctx context.Context, outPath string) error {
	args, err := r.args(outPath)
	if err != nil {
		return err
	}
	slog.Debug("starting capture", "out", outPath, "maxSeconds", r.maxSeconds())

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("capture failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

func (r *FFmpegRecorder) maxSeconds() int {
	if r.MaxSeconds > 0 {
		return r.MaxSeconds
	}
	return defaultMaxSeconds
}

// args builds the ffmpeg invocation for the platform's default input device.
func (r *FFmpegRecorder) args(outPath string) ([]string, error) {
	var input []string
	switch r.goos {
	case "darwin":
		input = []string{"-f", "avfoundation", "-i", ":0"}
	case "linux":
		input = []string{"-f", "alsa", "-i", "default"}
	case "windows":
		input = []string{"-f", "dshow", "-i", "audio=default"}
	default:
		return nil, fmt.Errorf("no capture device mapping for %s", r.goos)
	}
	args := append([]string{"-hide_banner", "-loglevel", "error", "-y"}, input...)
	args = append(args,
		"-t", strconv.Itoa(r.maxSeconds()),
		"-af", "silenceremove=stop_periods=1:stop_duration=2:stop_threshold=-40dB",
		"-ac", "1",
		"-ar", "16000",
		outPath,
	)
	return args, nil
}
