// Package consult runs one spoken consultation: transcribe the patient's
// recording, reason over the transcript plus an optional image, synthesize
// the doctor's reply, and persist the artifacts on request.
package consult

import (
	"time"

	"github.com/google/uuid"
)

// Interaction is the record threaded through each pipeline stage. Every
// stage reads the fields filled in by the previous one, so each stage's
// contract can be tested in isolation.
type Interaction struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`

	RecordingPath string `json:"recordingPath,omitempty"`
	Transcript    string `json:"transcript"`
	ImagePath     string `json:"imagePath,omitempty"`
	Response      string `json:"response"`
	AudioPath     string `json:"audioPath,omitempty"`

	// NoOp marks an interaction that had neither audio nor image input;
	// the pipeline skips the remote services and Response carries a
	// user-visible message instead.
	NoOp bool `json:"noOp,omitempty"`
}

func NewInteraction() *Interaction {
	return &Interaction{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}
