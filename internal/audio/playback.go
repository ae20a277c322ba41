package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrNoPlayer is returned when no playback utility exists on this platform.
var ErrNoPlayer = errors.New("no audio playback utility available")

// Player plays an audio file out loud. Playback failures are expected to be
// treated as non-fatal by callers.
type Player interface {
	Play(ctx context.Context, path string) error
	Name() string
}

type afplayPlayer struct{ bin string }

func (p afplayPlayer) Name() string { return "afplay" }
func (p afplayPlayer) Play(ctx context.Context, path string) error {
	return runPlayer(ctx, p.bin, path)
}

type ffplayPlayer struct{ bin string }

func (p ffplayPlayer) Name() string { return "ffplay" }
func (p ffplayPlayer) Play(ctx context.Context, path string) error {
	return runPlayer(ctx, p.bin, "-nodisp", "-autoexit", "-loglevel", "error", path)
}

type mpg123Player struct{ bin string }

func (p mpg123Player) Name() string { return "mpg123" }
func (p mpg123Player) Play(ctx context.Context, path string) error {
	return runPlayer(ctx, p.bin, "-q", path)
}

type powershellPlayer struct{ bin string }

func (p powershellPlayer) Name() string { return "powershell" }
func (p powershellPlayer) Play(ctx context.Context, path string) error {
	script := fmt.Sprintf(`(New-Object Media.SoundPlayer %q).PlaySync();`, path)
	return runPlayer(ctx, p.bin, "-c", script)
}

func runPlayer(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("playback failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// ProbePlayer selects a playback implementation for the current platform.
// The probe runs once at startup; it checks candidates in preference order
// and returns ErrNoPlayer when none is installed.
func ProbePlayer() (Player, error) {
	return probePlayer(runtime.GOOS)
}

func probePlayer(goos string) (Player, error) {
	type candidate struct {
		name  string
		build func(bin string) Player
	}
	var candidates []candidate
	switch goos {
	case "darwin":
		candidates = []candidate{
			{"afplay", func(b string) Player { return afplayPlayer{bin: b} }},
			{"ffplay", func(b string) Player { return ffplayPlayer{bin: b} }},
		}
	case "linux":
		candidates = []candidate{
			{"mpg123", func(b string) Player { return mpg123Player{bin: b} }},
			{"ffplay", func(b string) Player { return ffplayPlayer{bin: b} }},
		}
	case "windows":
		candidates = []candidate{
			{"powershell", func(b string) Player { return powershellPlayer{bin: b} }},
		}
	default:
		return nil, fmt.Errorf("%w: unsupported platform %s", ErrNoPlayer, goos)
	}
	for _, c := range candidates {
		if bin, err := lookPath(c.name); err == nil {
			return c.build(bin), nil
		}
	}
	return nil, ErrNoPlayer
}
