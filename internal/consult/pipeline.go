package consult

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"docvoice/internal/ai"
	"docvoice/internal/audio"
	"docvoice/internal/image"
	"docvoice/internal/paths"
)

// encodeImage is a seam for tests.
var encodeImage = image.EncodeFile

// Models carries the model identifiers each remote call needs.
type Models struct {
	STT       string
	Reasoning string
	TTS       string
	Voice     string
}

// Pipeline sequences the consultation stages. It is stateless between
// interactions; each Run produces a fresh Interaction and any stage failure
// aborts only that interaction.
type Pipeline struct {
	STT    ai.Transcriber
	Brain  ai.Reasoner
	TTS    ai.TTSClient
	Player audio.Player // nil disables playback
	Paths  *paths.Builder
	Models Models
}

// Request describes one user-triggered interaction. AudioPath may point at
// an already-recorded file; ImagePath is optional.
type Request struct {
	AudioPath string
	ImagePath string
}

// Run executes the blocking stage chain: transcribe, reason, synthesize,
// play. Playback failure is logged and non-fatal; every other failure
// returns immediately.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Interaction, error) {
	inter := NewInteraction()
	inter.RecordingPath = req.AudioPath
	inter.ImagePath = req.ImagePath

	if req.AudioPath == "" && req.ImagePath == "" {
		inter.NoOp = true
		inter.Response = NoInputMessage
		slog.Info("interaction skipped, no input", "id", inter.ID)
		return inter, nil
	}

	if req.AudioPath != "" {
		transcript, err := p.STT.Transcribe(ctx, p.Models.STT, req.AudioPath)
		if err != nil {
			return inter, fmt.Errorf("transcription failed: %w", err)
		}
		inter.Transcript = transcript
		slog.Info("transcribed", "id", inter.ID, "chars", len(transcript))
	}

	var encoded string
	if req.ImagePath != "" {
		var err error
		encoded, err = encodeImage(req.ImagePath)
		if err != nil {
			return inter, fmt.Errorf("image encoding failed: %w", err)
		}
	}

	prompt := BuildPrompt(inter.Transcript, encoded != "")
	response, err := p.Brain.Diagnose(ctx, p.Models.Reasoning, SystemPrompt, prompt, encoded)
	if err != nil {
		return inter, fmt.Errorf("reasoning failed: %w", err)
	}
	inter.Response = response
	slog.Info("response generated", "id", inter.ID, "chars", len(response))

	if err := p.synthesize(ctx, inter); err != nil {
		return inter, err
	}

	if p.Player != nil {
		if err := p.Player.Play(ctx, inter.AudioPath); err != nil {
			// Degraded but not fatal: the text is shown and the file stays.
			slog.Warn("playback failed", "id", inter.ID, "player", p.Player.Name(), "err", err)
		}
	}
	return inter, nil
}

func (p *Pipeline) synthesize(ctx context.Context, inter *Interaction) error {
	if err := p.Paths.EnsureOutDir(); err != nil {
		return err
	}
	outPath := p.Paths.ResponseAudio()
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create response audio: %w", err)
	}
	if err := p.TTS.TTS(ctx, p.Models.TTS, p.Models.Voice, inter.Response, out); err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("speech synthesis failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close response audio: %w", err)
	}
	inter.AudioPath = outPath
	return nil
}
