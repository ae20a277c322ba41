package consult

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the model as a doctor speaking directly to the
// patient. For educational use only.
const SystemPrompt = "You are a professional doctor (for educational purposes). " +
	"Analyze what's in this image medically. If you find anything concerning, suggest potential remedies. " +
	"Format your answer as if speaking directly to a patient. " +
	"Begin immediately with your assessment, never with phrases like \"In the image I see\". " +
	"Keep it concise, two to three sentences at most, with no numbering or special characters. " +
	"Use natural doctor-patient language, for example: \"With what I see, I think you may have... I recommend...\""

// NoImageNote is the fixed note used when the patient attached no image.
const NoImageNote = "no image provided"

const withImageNote = "see the attached image"

// NoInputMessage is shown when an interaction has neither audio nor image.
const NoInputMessage = "Please record your symptoms or upload an image to start a consultation."

// BuildPrompt assembles the user prompt from the transcript and image
// presence. An empty transcript still produces a prompt; the reasoning
// stage is never skipped silently.
func BuildPrompt(transcript string, hasImage bool) string {
	note := NoImageNote
	if hasImage {
		note = withImageNote
	}
	return fmt.Sprintf("Patient says: %s. Image analysis shows: %s.", strings.TrimSpace(transcript), note)
}
