package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"

	cfgpkg "docvoice/internal/config"
)

// set up slog logger according to level; defaults to info.
func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// Common flags for config/log-level across subcommands
type commonFlags struct {
	config   string
	logLevel string
}

func addCommonFlags(fs *flag.FlagSet, cf *commonFlags) {
	fs.StringVar(&cf.config, "config", "config.json", "Path to config file")
	fs.StringVar(&cf.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// loadConfig merges file, env, and per-command flag overrides.
func loadConfig(cf commonFlags, flagOv cfgpkg.Overrides) (cfgpkg.Config, error) {
	fileCfg, err := cfgpkg.LoadFile(cf.config)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	envOv, apiKey, elevenLabsKey := cfgpkg.FromEnv()
	return cfgpkg.Merge(fileCfg, envOv, flagOv, apiKey, elevenLabsKey), nil
}

// stringFlag tracks whether a string flag was explicitly set.
type stringFlag struct {
	v   string
	set bool
}

func (f *stringFlag) String() string { return f.v }
func (f *stringFlag) Set(s string) error {
	f.v = s
	f.set = true
	return nil
}

// boolFlag tracks whether a bool flag was explicitly set.
type boolFlag struct {
	v   bool
	set bool
}

func (f *boolFlag) String() string { return strconv.FormatBool(f.v) }
func (f *boolFlag) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.v = b
	f.set = true
	return nil
}
func (f *boolFlag) IsBoolFlag() bool { return true }

// intFlag tracks whether an int flag was explicitly set.
type intFlag struct {
	v   int
	set bool
}

func (f *intFlag) String() string { return strconv.Itoa(f.v) }
func (f *intFlag) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	f.v = n
	f.set = true
	return nil
}
