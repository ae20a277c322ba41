package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"docvoice/internal/ai"
	cfgpkg "docvoice/internal/config"
)

var newTranscriber = func(cfg cfgpkg.Config) (ai.Transcriber, error) {
	return ai.New(cfg.APIKey, cfg.BaseURL)
}

// docvoice transcribe
func cmdTranscribe(args []string) error {
	var cf commonFlags
	var audioPath, model stringFlag
	fs := flag.NewFlagSet("transcribe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&audioPath, "audio", "Path to recorded audio file (required)")
	fs.Var(&model, "model", "Speech recognition model")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if !audioPath.set {
		return errors.New("--audio is required")
	}

	var flagOv cfgpkg.Overrides
	if model.set {
		flagOv.STTModel = &model.v
	}
	cfg, err := loadConfig(cf, flagOv)
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForTranscribe(cfg); err != nil {
		return err
	}

	client, err := newTranscriber(cfg)
	if err != nil {
		return err
	}
	text, err := client.Transcribe(context.Background(), cfg.STTModel, audioPath.v)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, text)
	return nil
}
