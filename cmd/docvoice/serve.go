package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"

	cfgpkg "docvoice/internal/config"
	"docvoice/internal/paths"
	"docvoice/internal/server"
)

// docvoice serve
func cmdServe(args []string) error {
	var cf commonFlags
	var addr stringFlag
	var play boolFlag
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&addr, "addr", "Listen address (default :7860)")
	fs.Var(&play, "play", "Also play responses on the server's speakers")

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

	// The browser plays the response; server-side playback is off unless
	// explicitly wanted.
	pipeline, err := buildPipeline(cfg, play.v)
	if err != nil {
		return err
	}

	listen := ":7860"
	if addr.set {
		listen = addr.v
	}
	srv := server.New(pipeline, paths.New(cfg.OutDir))
	slog.Info("serving", "addr", listen)
	return http.ListenAndServe(listen, srv.Handler())
}
