package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds resolved configuration values after merging file, env, and flags.
type Config struct {
	STTModel         string `json:"sttModel,omitempty"`
	ReasoningModel   string `json:"reasoningModel,omitempty"`
	TTSProvider      string `json:"ttsProvider,omitempty"`
	TTSModel         string `json:"ttsModel,omitempty"`
	Voice            string `json:"voice,omitempty"`
	BaseURL          string `json:"baseURL,omitempty"`
	OutDir           string `json:"outDir,omitempty"`
	MaxRecordSeconds int    `json:"maxRecordSeconds,omitempty"`
	S3Bucket         string `json:"s3Bucket,omitempty"`
	S3Prefix         string `json:"s3Prefix,omitempty"`
	Region           string `json:"region,omitempty"`
	Debug            bool   `json:"debug,omitempty"`
	Overwrite        bool   `json:"overwrite,omitempty"`

	// Not persisted to file; sourced from env only.
	APIKey           string `json:"-"`
	ElevenLabsAPIKey string `json:"-"`
}

// Overrides represents optional overrides from env or flags.
// Only non-nil pointers are applied during merge.
type Overrides struct {
	STTModel         *string
	ReasoningModel   *string
	TTSProvider      *string
	TTSModel         *string
	Voice            *string
	BaseURL          *string
	OutDir           *string
	MaxRecordSeconds *int
	S3Bucket         *string
	S3Prefix         *string
	Region           *string
	Debug            *bool
	Overwrite        *bool
}

// Default models target Groq's OpenAI-compatible API: whisper for speech
// recognition, a llama vision model for reasoning, playai for speech.
func Default() Config {
	return Config{
		STTModel:       "whisper-large-v3",
		ReasoningModel: "meta-llama/llama-4-scout-17b-16e-instruct",
		TTSProvider:    "openai",
		TTSModel:       "playai-tts",
		Voice:          "Fritz-PlayAI",
		OutDir:         "out",
		S3Prefix:       "consultations",
	}
}

// LoadFile reads a JSON config. If file not found, returns defaults and no error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// FromEnv reads env vars and returns overrides plus the provider keys.
// GROQ_API_KEY is preferred; OPENAI_API_KEY works for any OpenAI-compatible
// endpoint.
func FromEnv() (Overrides, string, string) {
	var ov Overrides

	if v, ok := os.LookupEnv("DOCVOICE_STT_MODEL"); ok {
		ov.STTModel = &v
	}
	if v, ok := os.LookupEnv("DOCVOICE_REASONING_MODEL"); ok {
		ov.ReasoningModel = &v
	}
	if v, ok := os.LookupEnv("DOCVOICE_TTS_PROVIDER"); ok {
		ov.TTSProvider = &v
	}
	if v, ok := os.LookupEnv("DOCVOICE_TTS_MODEL"); ok {
		ov.TTSModel = &v
	}
	if v, ok := os.LookupEnv("DOCVOICE_VOICE"); ok {
		ov.Voice = &v
	}
	if v, ok := os.LookupEnv("DOCVOICE_BASE_URL"); ok {
		ov.BaseURL = &v
	}
	if v, ok := os.LookupEnv("DOCVOICE_OUT_DIR"); ok {
		ov.OutDir = &v
	}
	if v, ok := os.LookupEnv("AWS_S3_BUCKET"); ok {
		ov.S3Bucket = &v
	}
	if v, ok := os.LookupEnv("AWS_S3_PREFIX"); ok {
		ov.S3Prefix = &v
	}
	if v, ok := os.LookupEnv("AWS_REGION"); ok {
		ov.Region = &v
	}
	if v, ok := os.LookupEnv("DOCVOICE_DEBUG"); ok {
		if b, err := parseBool(v); err == nil {
			ov.Debug = &b
		}
	}
	if v, ok := os.LookupEnv("DOCVOICE_OVERWRITE"); ok {
		if b, err := parseBool(v); err == nil {
			ov.Overwrite = &b
		}
	}

	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	elevenLabsKey := os.Getenv("ELEVENLABS_API_KEY")
	return ov, apiKey, elevenLabsKey
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return false, fmt.Errorf("empty bool")
	}
	if s == "1" || s == "t" || s == "true" || s == "y" || s == "yes" || s == "on" {
		return true, nil
	}
	if s == "0" || s == "f" || s == "false" || s == "n" || s == "no" || s == "off" {
		return false, nil
	}
	// try strconv
	return strconv.ParseBool(s)
}

// Merge applies overrides in order: file -> env -> flags.
func Merge(fileCfg Config, env Overrides, flags Overrides, apiKey, elevenLabsKey string) Config {
	cfg := fileCfg

	apply := func(ov Overrides) {
		if ov.STTModel != nil {
			cfg.STTModel = *ov.STTModel
		}
		if ov.ReasoningModel != nil {
			cfg.ReasoningModel = *ov.ReasoningModel
		}
		if ov.TTSProvider != nil {
			cfg.TTSProvider = *ov.TTSProvider
		}
		if ov.TTSModel != nil {
			cfg.TTSModel = *ov.TTSModel
		}
		if ov.Voice != nil {
			cfg.Voice = *ov.Voice
		}
		if ov.BaseURL != nil {
			cfg.BaseURL = *ov.BaseURL
		}
		if ov.OutDir != nil {
			cfg.OutDir = *ov.OutDir
		}
		if ov.MaxRecordSeconds != nil {
			cfg.MaxRecordSeconds = *ov.MaxRecordSeconds
		}
		if ov.S3Bucket != nil {
			cfg.S3Bucket = *ov.S3Bucket
		}
		if ov.S3Prefix != nil {
			cfg.S3Prefix = *ov.S3Prefix
		}
		if ov.Region != nil {
			cfg.Region = *ov.Region
		}
		if ov.Debug != nil {
			cfg.Debug = *ov.Debug
		}
		if ov.Overwrite != nil {
			cfg.Overwrite = *ov.Overwrite
		}
	}

	apply(env)
	apply(flags)

	cfg.APIKey = apiKey
	cfg.ElevenLabsAPIKey = elevenLabsKey
	return cfg
}

// Validation helpers
func ValidateForTranscribe(cfg Config) error {
	if cfg.APIKey == "" {
		return errors.New("GROQ_API_KEY is required for transcription")
	}
	if cfg.STTModel == "" {
		return errors.New("stt model is required")
	}
	return nil
}

func ValidateForDiagnose(cfg Config) error {
	if cfg.APIKey == "" {
		return errors.New("GROQ_API_KEY is required for reasoning")
	}
	if cfg.ReasoningModel == "" {
		return errors.New("reasoning model is required")
	}
	return nil
}

func ValidateForSpeak(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.TTSProvider)) {
	case "", "openai":
		if cfg.APIKey == "" {
			return errors.New("GROQ_API_KEY is required for speech synthesis")
		}
	case "elevenlabs":
		if cfg.ElevenLabsAPIKey == "" {
			return errors.New("ELEVENLABS_API_KEY is required for speech synthesis")
		}
	default:
		return fmt.Errorf("unsupported tts provider: %s", cfg.TTSProvider)
	}
	if cfg.TTSModel == "" {
		return errors.New("tts model is required")
	}
	if cfg.Voice == "" {
		return errors.New("voice is required")
	}
	return nil
}

// ValidateForConsult covers the full pipeline.
func ValidateForConsult(cfg Config) error {
	if err := ValidateForTranscribe(cfg); err != nil {
		return err
	}
	if err := ValidateForDiagnose(cfg); err != nil {
		return err
	}
	return ValidateForSpeak(cfg)
}

func ValidateForArchive(cfg Config) error {
	if cfg.S3Bucket == "" {
		return errors.New("S3 bucket is required for archive")
	}
	if cfg.Region == "" {
		return errors.New("AWS region is required for archive")
	}
	return nil
}
