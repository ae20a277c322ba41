package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMergePrecedence(t *testing.T) {
	file := Default()
	file.Voice = "file-voice"
	file.S3Bucket = "file-bucket"

	env := Overrides{}
	env.Voice = strPtr("env-voice")
	env.S3Bucket = strPtr("env-bucket")

	flags := Overrides{}
	flags.Voice = strPtr("flag-voice")

	cfg := Merge(file, env, flags, "gsk-key", "xi-key")
	if cfg.Voice != "flag-voice" {
		t.Fatalf("voice precedence wrong: %s", cfg.Voice)
	}
	if cfg.S3Bucket != "env-bucket" {
		t.Fatalf("bucket precedence wrong: %s", cfg.S3Bucket)
	}
	if cfg.APIKey != "gsk-key" {
		t.Fatalf("apikey not set")
	}
	if cfg.ElevenLabsAPIKey != "xi-key" {
		t.Fatalf("elevenlabs key not set")
	}
}

func TestValidateTranscribeRequiresAPIKey(t *testing.T) {
	cfg := Default()
	if err := ValidateForTranscribe(cfg); err == nil {
		t.Fatalf("expected error without GROQ_API_KEY")
	}
	cfg.APIKey = "gsk-test"
	if err := ValidateForTranscribe(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateSpeakPerProvider(t *testing.T) {
	cfg := Default()
	cfg.APIKey = "gsk-test"
	if err := ValidateForSpeak(cfg); err != nil {
		t.Fatalf("openai provider with key should validate: %v", err)
	}

	cfg.TTSProvider = "elevenlabs"
	if err := ValidateForSpeak(cfg); err == nil {
		t.Fatalf("expected error without ELEVENLABS_API_KEY")
	}
	cfg.ElevenLabsAPIKey = "xi-test"
	if err := ValidateForSpeak(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.TTSProvider = "gtts"
	if err := ValidateForSpeak(cfg); err == nil {
		t.Fatalf("expected error for unsupported provider")
	}
}

func TestValidateArchive(t *testing.T) {
	cfg := Default()
	if err := ValidateForArchive(cfg); err == nil {
		t.Fatalf("expected error without bucket")
	}
	cfg.S3Bucket = "b"
	cfg.Region = "us-east-1"
	if err := ValidateForArchive(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DOCVOICE_VOICE", "env-voice")
	t.Setenv("DOCVOICE_DEBUG", "1")
	t.Setenv("GROQ_API_KEY", "gsk-xyz")
	t.Setenv("ELEVENLABS_API_KEY", "xi-xyz")
	ov, key, xiKey := FromEnv()
	if ov.Voice == nil || *ov.Voice != "env-voice" {
		t.Fatalf("voice not read from env")
	}
	if ov.Debug == nil || *ov.Debug != true {
		t.Fatalf("debug not parsed as true")
	}
	if key != "gsk-xyz" {
		t.Fatalf("apikey not read from env")
	}
	if xiKey != "xi-xyz" {
		t.Fatalf("elevenlabs key not read from env")
	}
}

func TestFromEnvFallsBackToOpenAIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	_, key, _ := FromEnv()
	if key != "sk-fallback" {
		t.Fatalf("expected OPENAI_API_KEY fallback, got %q", key)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	in := Config{Voice: "file-voice", OutDir: "elsewhere"}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Voice != "file-voice" || cfg.OutDir != "elsewhere" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Defaults survive for fields the file omits.
	if cfg.STTModel != Default().STTModel {
		t.Fatalf("default stt model lost: %s", cfg.STTModel)
	}

	// Missing file falls back to defaults without error.
	cfg, err = LoadFile(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Voice != Default().Voice {
		t.Fatalf("defaults not returned for missing file")
	}
}

func strPtr(s string) *string { return &s }
