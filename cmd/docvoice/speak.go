package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"docvoice/internal/ai"
	"docvoice/internal/audio"
	cfgpkg "docvoice/internal/config"
	"docvoice/internal/paths"
)

var newTTSClient = func(cfg cfgpkg.Config) (ai.TTSClient, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.TTSProvider))
	if provider == "" {
		provider = "openai"
	}
	switch provider {
	case "openai":
		return ai.New(cfg.APIKey, cfg.BaseURL)
	case "elevenlabs":
		return ai.NewElevenLabs(cfg.ElevenLabsAPIKey)
	default:
		return nil, fmt.Errorf("unsupported tts provider: %s", cfg.TTSProvider)
	}
}

var newPlayer = func() (audio.Player, error) {
	return audio.ProbePlayer()
}

// docvoice speak
func cmdSpeak(args []string) error {
	var cf commonFlags
	var text, out, voice stringFlag
	var noPlay boolFlag
	fs := flag.NewFlagSet("speak", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&text, "text", "Text to speak (required)")
	fs.Var(&out, "out", "Output audio file (default: out/response.mp3)")
	fs.Var(&voice, "voice", "TTS voice")
	fs.Var(&noPlay, "no-play", "Skip local playback")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if !text.set {
		return errors.New("--text is required")
	}

	var flagOv cfgpkg.Overrides
	if voice.set {
		flagOv.Voice = &voice.v
	}
	cfg, err := loadConfig(cf, flagOv)
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForSpeak(cfg); err != nil {
		return err
	}

	client, err := newTTSClient(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	builder := paths.New(cfg.OutDir)
	outPath := builder.ResponseAudio()
	if out.set {
		outPath = out.v
	}
	if err := builder.EnsureOutDir(); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := client.TTS(ctx, cfg.TTSModel, cfg.Voice, text.v, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("audio generated", "voice", cfg.Voice, "ttsModel", cfg.TTSModel, "ttsProvider", cfg.TTSProvider, "path", outPath)

	if !noPlay.v {
		player, err := newPlayer()
		if err != nil {
			slog.Warn("playback unavailable", "err", err)
			return nil
		}
		if err := player.Play(ctx, outPath); err != nil {
			slog.Warn("playback failed", "player", player.Name(), "err", err)
		}
	}
	return nil
}
