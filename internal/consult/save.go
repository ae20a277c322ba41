package consult

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"docvoice/internal/paths"
)

// Save persists the interaction: one text file holding transcript and
// response, and one copy of the synthesized audio. Paths are fixed by the
// builder; repeated saves overwrite.
func Save(b *paths.Builder, inter *Interaction) error {
	if inter == nil {
		return fmt.Errorf("nothing to save")
	}
	if err := b.EnsureOutDir(); err != nil {
		return err
	}

	text := fmt.Sprintf("Patient: %s\n\nDoctor: %s\n", inter.Transcript, inter.Response)
	if err := os.WriteFile(b.SavedTranscript(), []byte(text), 0o644); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}

	if inter.AudioPath != "" {
		if err := copyFile(inter.AudioPath, b.SavedAudio()); err != nil {
			return fmt.Errorf("save audio: %w", err)
		}
	}

	meta, err := json.MarshalIndent(inter, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(b.Meta(), meta, 0o644); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
