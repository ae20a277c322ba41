package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Fixed artifact names. The layout is deliberately not configurable per
// session; each new interaction overwrites the previous files.
const (
	defaultBaseDir           = "out"
	recordingFilename        = "recording.mp3"
	responseAudioFilename    = "response.mp3"
	savedTranscriptFilename  = "output.txt"
	savedAudioFilename       = "output.mp3"
	consultationMetaFilename = "meta.json"
)

// Builder constructs output paths rooted at Base (default "out").
type Builder struct {
	Base string
}

func New(base string) *Builder {
	if base == "" {
		base = defaultBaseDir
	}
	return &Builder{Base: base}
}

// Recording is the microphone capture target, overwritten each session.
func (b *Builder) Recording() string {
	return filepath.Join(b.Base, recordingFilename)
}

// ResponseAudio is where synthesized speech is written each interaction.
func (b *Builder) ResponseAudio() string {
	return filepath.Join(b.Base, responseAudioFilename)
}

// SavedTranscript is the save-action text file (transcript + response).
func (b *Builder) SavedTranscript() string {
	return filepath.Join(b.Base, savedTranscriptFilename)
}

// SavedAudio is the save-action copy of the synthesized audio.
func (b *Builder) SavedAudio() string {
	return filepath.Join(b.Base, savedAudioFilename)
}

// Meta is the consultation metadata sidecar written on save.
func (b *Builder) Meta() string {
	return filepath.Join(b.Base, consultationMetaFilename)
}

// EnsureOutDir creates the output directory if it does not exist.
func (b *Builder) EnsureOutDir() error {
	return os.MkdirAll(b.Base, 0o755)
}

// CheckOverwrite enforces overwrite behavior. If any path exists and overwrite is false, returns error.
func CheckOverwrite(paths []string, overwrite bool) error {
	if overwrite {
		return nil
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("refusing to overwrite existing file: %s (use --overwrite)", p)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking file: %s: %w", p, err)
		}
	}
	return nil
}
