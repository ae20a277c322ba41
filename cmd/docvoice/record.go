package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"docvoice/internal/audio"
	cfgpkg "docvoice/internal/config"
	"docvoice/internal/paths"
)

var newRecorder = func(maxSeconds int) (audio.Recorder, error) {
	return audio.NewRecorder(maxSeconds)
}

// docvoice record
func cmdRecord(args []string) error {
	var cf commonFlags
	var out stringFlag
	var maxSeconds intFlag
	var overwrite boolFlag
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&out, "out", "Output audio file (default: out/recording.mp3)")
	fs.Var(&maxSeconds, "max-seconds", "Maximum recording length in seconds")
	fs.Var(&overwrite, "overwrite", "Allow overwriting existing outputs")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)

	var flagOv cfgpkg.Overrides
	if maxSeconds.set {
		flagOv.MaxRecordSeconds = &maxSeconds.v
	}
	if overwrite.set {
		flagOv.Overwrite = &overwrite.v
	}
	cfg, err := loadConfig(cf, flagOv)
	if err != nil {
		return err
	}

	builder := paths.New(cfg.OutDir)
	outPath := builder.Recording()
	if out.set {
		outPath = out.v
	}
	if err := paths.CheckOverwrite([]string{outPath}, cfg.Overwrite); err != nil {
		return err
	}
	if err := builder.EnsureOutDir(); err != nil {
		return err
	}

	rec, err := newRecorder(cfg.MaxRecordSeconds)
	if err != nil {
		return err
	}
	slog.Info("recording, speak now")
	if err := rec.Record(context.Background(), outPath); err != nil {
		return err
	}
	slog.Info("recording saved", "path", outPath)
	return nil
}
