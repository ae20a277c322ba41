package ai

import (
	"context"
	"io"
)

// Transcriber converts a recorded audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, model, audioPath string) (string, error)
}

// Reasoner submits a prompt, optionally with an encoded image, to a
// multimodal model and returns the generated text. encodedImage is a
// data URL; pass "" for a text-only request.
type Reasoner interface {
	Diagnose(ctx context.Context, model, system, prompt, encodedImage string) (string, error)
}

// TTSClient synthesizes speech audio from text.
type TTSClient interface {
	TTS(ctx context.Context, model, voice, text string, w io.Writer) error
}
