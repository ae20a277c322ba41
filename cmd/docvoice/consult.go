package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"docvoice/internal/audio"
	cfgpkg "docvoice/internal/config"
	"docvoice/internal/consult"
	"docvoice/internal/paths"
)

// buildPipeline wires the remote clients and the playback probe into one
// pipeline. Shared by consult and serve.
func buildPipeline(cfg cfgpkg.Config, withPlayback bool) (*consult.Pipeline, error) {
	stt, err := newTranscriber(cfg)
	if err != nil {
		return nil, err
	}
	brain, err := newReasoner(cfg)
	if err != nil {
		return nil, err
	}
	tts, err := newTTSClient(cfg)
	if err != nil {
		return nil, err
	}
	var player audio.Player
	if withPlayback {
		player, err = newPlayer()
		if err != nil {
			slog.Warn("playback unavailable", "err", err)
			player = nil
		}
	}
	return &consult.Pipeline{
		STT:    stt,
		Brain:  brain,
		TTS:    tts,
		Player: player,
		Paths:  paths.New(cfg.OutDir),
		Models: consult.Models{
			STT:       cfg.STTModel,
			Reasoning: cfg.ReasoningModel,
			TTS:       cfg.TTSModel,
			Voice:     cfg.Voice,
		},
	}, nil
}

// docvoice consult
func cmdConsult(args []string) error {
	var cf commonFlags
	var audioPath, imagePath stringFlag
	var record, save, noPlay boolFlag
	fs := flag.NewFlagSet("consult", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&audioPath, "audio", "Path to an already-recorded audio file")
	fs.Var(&imagePath, "image", "Optional image file")
	fs.Var(&record, "record", "Capture a new recording first")
	fs.Var(&save, "save", "Persist transcript, response, and audio on success")
	fs.Var(&noPlay, "no-play", "Skip local playback")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)

	cfg, err := loadConfig(cf, cfgpkg.Overrides{})
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForConsult(cfg); err != nil {
		return err
	}

	builder := paths.New(cfg.OutDir)
	req := consult.Request{ImagePath: imagePath.v}
	switch {
	case record.v:
		rec, err := newRecorder(cfg.MaxRecordSeconds)
		if err != nil {
			return err
		}
		if err := builder.EnsureOutDir(); err != nil {
			return err
		}
		slog.Info("recording, speak now")
		if err := rec.Record(context.Background(), builder.Recording()); err != nil {
			return err
		}
		req.AudioPath = builder.Recording()
	case audioPath.set:
		req.AudioPath = audioPath.v
	}

	pipeline, err := buildPipeline(cfg, !noPlay.v)
	if err != nil {
		return err
	}

	inter, err := pipeline.Run(context.Background(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Patient: %s\n\nDoctor: %s\n", inter.Transcript, inter.Response)
	if inter.NoOp {
		return nil
	}

	if save.v {
		if err := consult.Save(builder, inter); err != nil {
			return err
		}
		slog.Info("consultation saved", "id", inter.ID, "text", builder.SavedTranscript(), "audio", builder.SavedAudio())
	}
	return nil
}
