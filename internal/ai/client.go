package ai

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultBaseURL points at Groq's OpenAI-compatible endpoint, which serves
// both whisper transcription and the llama multimodal models.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Client wraps the official OpenAI SDK client and exposes the three calls
// the consultation pipeline needs: transcription, multimodal reasoning,
// and speech synthesis.
type Client struct {
	apiKey  string
	baseURL string
	sdk     openai.Client
}

// New constructs a new AI client. The apiKey is required.
// baseURL is optional (empty string uses DefaultBaseURL).
func New(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("GROQ_API_KEY is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}
	sdk := openai.NewClient(opts...)
	return &Client{apiKey: apiKey, baseURL: baseURL, sdk: sdk}, nil
}

func (c *Client) APIKey() string  { return c.apiKey }
func (c *Client) BaseURL() string { return c.baseURL }

// Transcribe uploads the audio file to the Audio Transcriptions API and
// returns the transcript text. An empty transcript is not an error: the
// service returns "" when it detects no speech.
func (c *Client) Transcribe(ctx context.Context, model, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	res, err := c.sdk.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(model),
		File:  openai.File(f, filepath.Base(audioPath), "audio/mpeg"),
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Diagnose calls the Chat Completions API with the system and user prompts.
// When encodedImage is non-empty it is attached as an image content part so
// the model can reason over text and image together; otherwise the request
// carries no image field at all.
func (c *Client) Diagnose(ctx context.Context, model, system, prompt, encodedImage string) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt),
	}
	if encodedImage != "" {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: encodedImage,
		}))
	}
	messages := []openai.ChatCompletionMessageParamUnion{}
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(parts))

	res, err := c.sdk.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("reasoning response contained no choices")
	}
	return res.Choices[0].Message.Content, nil
}

// TTS writes MP3 audio to the provided writer using the Audio Speech API.
// model should be a TTS-capable model and voice a supported voice name.
func (c *Client) TTS(ctx context.Context, model, voice, text string, w io.Writer) error {
	req := openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(model),
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	resp, err := c.sdk.Audio.Speech.New(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(w, resp.Body)
	return err
}
