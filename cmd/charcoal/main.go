// Package main is the entry point for the charcoal editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charcoaldev/charcoal/internal/app"
	"github.com/charcoaldev/charcoal/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	terminal, err := term.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(opts, terminal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		terminal.Fini()
		application.Shutdown()
		os.Exit(1)
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool

	flag.IntVar(&opts.Cols, "cols", app.DefaultCols, "Canvas width in character cells")
	flag.IntVar(&opts.Rows, "rows", app.DefaultRows, "Canvas height in character cells")
	flag.StringVar(&opts.SettingsPath, "settings", "", "Path to settings file")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Charcoal - paint pixels, get characters\n\n")
		fmt.Fprintf(os.Stderr, "Usage: charcoal [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  charcoal                    Open a blank canvas\n")
		fmt.Fprintf(os.Stderr, "  charcoal sketch             Open or create sketch.png + sketch.json\n")
		fmt.Fprintf(os.Stderr, "  charcoal -cols 60 -rows 20  Open a larger canvas\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("charcoal %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		// The document is a .png/.json pair addressed by its base path.
		opts.File = strings.TrimSuffix(flag.Arg(0), ".png")
		opts.File = strings.TrimSuffix(opts.File, ".json")
	}
	return opts
}
