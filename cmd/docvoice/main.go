package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

var version = "0.1.0"

func main() {
	// Credentials commonly live in a .env during development; absence is fine.
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printUsage()
		return 0
	}

	sub := args[0]
	switch sub {
	case "record":
		if err := cmdRecord(args[1:]); err != nil {
			slog.Error("record failed", "err", err)
			return 1
		}
		return 0
	case "transcribe":
		if err := cmdTranscribe(args[1:]); err != nil {
			slog.Error("transcribe failed", "err", err)
			return 1
		}
		return 0
	case "diagnose":
		if err := cmdDiagnose(args[1:]); err != nil {
			slog.Error("diagnose failed", "err", err)
			return 1
		}
		return 0
	case "speak":
		if err := cmdSpeak(args[1:]); err != nil {
			slog.Error("speak failed", "err", err)
			return 1
		}
		return 0
	case "consult":
		if err := cmdConsult(args[1:]); err != nil {
			slog.Error("consult failed", "err", err)
			return 1
		}
		return 0
	case "archive":
		if err := cmdArchive(args[1:]); err != nil {
			slog.Error("archive failed", "err", err)
			return 1
		}
		return 0
	case "serve":
		if err := cmdServe(args[1:]); err != nil {
			slog.Error("serve failed", "err", err)
			return 1
		}
		return 0
	case "version":
		fmt.Println(version)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n\n", sub)
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `docvoice %s

Usage:
  docvoice <subcommand> [flags]

Subcommands:
  record      Record microphone input to a file
  transcribe  Transcribe an audio file and print the text
  diagnose    Query the doctor model with text and an optional image
  speak       Synthesize speech from text and play it
  consult     Run the full consultation pipeline
  archive     Upload the saved consultation to S3
  serve       Start the web UI
  version     Print version

Run "docvoice <subcommand> -h" for flags.
`, version)
}
