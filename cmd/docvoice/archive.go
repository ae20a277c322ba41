package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	cfgpkg "docvoice/internal/config"
	"docvoice/internal/paths"
	"docvoice/internal/storage"
)

const (
	mp3ContentType  = "audio/mpeg"
	textContentType = "text/plain; charset=utf-8"
	jsonContentType = "application/json"
)

type uploader interface {
	UploadFile(ctx context.Context, key, localPath, contentType string) error
	CopyToLatest(ctx context.Context, srcKey, filename, contentType string) error
	KeyForDate(t time.Time, filename string) string
}

var newUploader = func(ctx context.Context, bucket, prefix, region string) (uploader, error) {
	return storage.New(ctx, bucket, prefix, region)
}

// docvoice archive
func cmdArchive(args []string) error {
	var cf commonFlags
	var bucket, prefix, region stringFlag
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&bucket, "bucket", "S3 bucket name")
	fs.Var(&prefix, "prefix", "S3 key prefix")
	fs.Var(&region, "region", "AWS region (defaults from env)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)

	var flagOv cfgpkg.Overrides
	if bucket.set {
		flagOv.S3Bucket = &bucket.v
	}
	if prefix.set {
		flagOv.S3Prefix = &prefix.v
	}
	if region.set {
		flagOv.Region = &region.v
	}
	cfg, err := loadConfig(cf, flagOv)
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForArchive(cfg); err != nil {
		return err
	}

	up, err := newUploader(context.Background(), cfg.S3Bucket, cfg.S3Prefix, cfg.Region)
	if err != nil {
		return err
	}

	builder := paths.New(cfg.OutDir)
	now := time.Now().UTC()
	ctx := context.Background()

	artifacts := []struct {
		filename    string
		localPath   string
		contentType string
	}{
		{"output.txt", builder.SavedTranscript(), textContentType},
		{"output.mp3", builder.SavedAudio(), mp3ContentType},
		{"meta.json", builder.Meta(), jsonContentType},
	}
	for _, a := range artifacts {
		if err := uploadAndCopy(ctx, up, now, a.filename, a.localPath, a.contentType); err != nil {
			return err
		}
	}

	slog.Info("archive completed", "date", now.Format("2006-01-02"), "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix, "region", cfg.Region)
	return nil
}

func uploadAndCopy(ctx context.Context, up uploader, date time.Time, filename, localPath, contentType string) error {
	if _, err := os.Stat(localPath); err != nil {
		return fmt.Errorf("missing local file %s (run consult --save first): %w", localPath, err)
	}
	key := up.KeyForDate(date, filename)
	if err := up.UploadFile(ctx, key, localPath, contentType); err != nil {
		return err
	}
	return up.CopyToLatest(ctx, key, filename, contentType)
}
