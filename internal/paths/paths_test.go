package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutPaths(t *testing.T) {
	base := t.TempDir()
	b := New(base)

	if b.Recording() != filepath.Join(base, "recording.mp3") {
		t.Fatalf("Recording path incorrect: %s", b.Recording())
	}
	if b.ResponseAudio() != filepath.Join(base, "response.mp3") {
		t.Fatalf("ResponseAudio path incorrect: %s", b.ResponseAudio())
	}
	if b.SavedTranscript() != filepath.Join(base, "output.txt") {
		t.Fatalf("SavedTranscript path incorrect: %s", b.SavedTranscript())
	}
	if b.SavedAudio() != filepath.Join(base, "output.mp3") {
		t.Fatalf("SavedAudio path incorrect: %s", b.SavedAudio())
	}
	if b.Meta() != filepath.Join(base, "meta.json") {
		t.Fatalf("Meta path incorrect: %s", b.Meta())
	}
}

func TestDefaultBase(t *testing.T) {
	b := New("")
	if b.Base != "out" {
		t.Fatalf("default base: %s", b.Base)
	}
}

func TestEnsureOutDirAndOverwrite(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "out")
	b := New(base)

	if err := b.EnsureOutDir(); err != nil {
		t.Fatalf("EnsureOutDir error: %v", err)
	}
	// Create a file to simulate existing output
	txt := b.SavedTranscript()
	if err := os.WriteFile(txt, []byte("existing"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}
	// Check overwrite guard blocks when overwrite=false
	if err := CheckOverwrite([]string{txt}, false); err == nil {
		t.Fatalf("expected overwrite guard to fail")
	}
	// When overwrite=true it should pass
	if err := CheckOverwrite([]string{txt}, true); err != nil {
		t.Fatalf("overwrite=true should not error: %v", err)
	}
}
