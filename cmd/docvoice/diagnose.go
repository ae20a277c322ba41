package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"docvoice/internal/ai"
	cfgpkg "docvoice/internal/config"
	"docvoice/internal/consult"
	imgpkg "docvoice/internal/image"
)

var newReasoner = func(cfg cfgpkg.Config) (ai.Reasoner, error) {
	return ai.New(cfg.APIKey, cfg.BaseURL)
}

// docvoice diagnose
func cmdDiagnose(args []string) error {
	var cf commonFlags
	var text, imagePath, model stringFlag
	fs := flag.NewFlagSet("diagnose", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&text, "text", "Patient description (required)")
	fs.Var(&imagePath, "image", "Optional image file")
	fs.Var(&model, "model", "Reasoning model")

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
	if model.set {
		flagOv.ReasoningModel = &model.v
	}
	cfg, err := loadConfig(cf, flagOv)
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForDiagnose(cfg); err != nil {
		return err
	}

	var encoded string
	if imagePath.set {
		encoded, err = imgpkg.EncodeFile(imagePath.v)
		if err != nil {
			return err
		}
	}

	client, err := newReasoner(cfg)
	if err != nil {
		return err
	}
	prompt := consult.BuildPrompt(text.v, encoded != "")
	response, err := client.Diagnose(context.Background(), cfg.ReasoningModel, consult.SystemPrompt, prompt, encoded)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, response)
	return nil
}
