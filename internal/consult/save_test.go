package consult

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"docvoice/internal/paths"
)

func TestSaveWritesTextAndAudio(t *testing.T) {
	b := paths.New(t.TempDir())
	if err := b.EnsureOutDir(); err != nil {
		t.Fatalf("EnsureOutDir: %v", err)
	}
	audio := []byte("responsemp3bytes")
	if err := os.WriteFile(b.ResponseAudio(), audio, 0o644); err != nil {
		t.Fatalf("write response audio: %v", err)
	}

	inter := NewInteraction()
	inter.Transcript = "I have a persistent cough and mild fever"
	inter.Response = "With what I see, I think you may have bronchitis. I recommend rest."
	inter.AudioPath = b.ResponseAudio()

	if err := Save(b, inter); err != nil {
		t.Fatalf("Save: %v", err)
	}

	text, err := os.ReadFile(b.SavedTranscript())
	if err != nil {
		t.Fatalf("read output.txt: %v", err)
	}
	if !strings.Contains(string(text), inter.Transcript) || !strings.Contains(string(text), inter.Response) {
		t.Fatalf("output.txt must contain both transcript and response: %s", text)
	}

	saved, err := os.ReadFile(b.SavedAudio())
	if err != nil {
		t.Fatalf("read output.mp3: %v", err)
	}
	if !bytes.Equal(saved, audio) {
		t.Fatalf("output.mp3 must be identical to response.mp3")
	}

	if _, err := os.Stat(b.Meta()); err != nil {
		t.Fatalf("meta.json missing: %v", err)
	}
}

func TestSaveNilInteraction(t *testing.T) {
	if err := Save(paths.New(t.TempDir()), nil); err == nil {
		t.Fatalf("expected error for nil interaction")
	}
}

// End-to-end scenario: symptom.mp3 -> transcript -> prompt -> diagnosis ->
// response.mp3, then save produces output.txt with both strings and an
// output.mp3 identical to response.mp3.
func TestConsultationScenario(t *testing.T) {
	const transcript = "I have a persistent cough and mild fever"
	const diagnosis = "With what I see, I think you may have a chest infection. I recommend seeing your doctor for a listen."

	stt := &fakeSTT{transcript: transcript}
	brain := &fakeReasoner{response: diagnosis}
	tts := &fakeTTS{audio: []byte("doctor-voice-mp3")}
	p := newTestPipeline(t, stt, brain, tts, nil)

	inter, err := p.Run(context.Background(), Request{AudioPath: writeAudioFixture(t)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantPrompt := "Patient says: I have a persistent cough and mild fever. Image analysis shows: no image provided."
	if brain.lastPrompt != wantPrompt {
		t.Fatalf("prompt mismatch:\n got: %s\nwant: %s", brain.lastPrompt, wantPrompt)
	}

	if err := Save(p.Paths, inter); err != nil {
		t.Fatalf("Save: %v", err)
	}

	text, err := os.ReadFile(p.Paths.SavedTranscript())
	if err != nil {
		t.Fatalf("read output.txt: %v", err)
	}
	if !strings.Contains(string(text), transcript) || !strings.Contains(string(text), diagnosis) {
		t.Fatalf("output.txt missing scenario strings: %s", text)
	}

	orig, _ := os.ReadFile(p.Paths.ResponseAudio())
	saved, _ := os.ReadFile(p.Paths.SavedAudio())
	if !bytes.Equal(orig, saved) {
		t.Fatalf("output.mp3 must be byte-identical to response.mp3")
	}
}
