package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/serene-interactive/seagreen/pkg/config"
	"github.com/serene-interactive/seagreen/pkg/proctable"
	"github.com/serene-interactive/seagreen/pkg/shell"
	"github.com/serene-interactive/seagreen/pkg/ui"
)

func parseFlags() (cfgPath string, interval time.Duration, noColor bool) {
	path := flag.String("config", "", "path to YAML config file (default ~/.config/seagreen/seagreen.yaml)")
	iv := flag.Duration("interval", 0, "override sampling interval (e.g. 500ms, 2s)")
	nc := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()
	return *path, *iv, *nc
}

func main() {
	cfgPath, interval, noColor := parseFlags()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if interval > 0 {
		cfg.PollInterval = interval
	}
	if noColor {
		cfg.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	reader := proctable.New()
	// The tracker is useless without a readable process table; resolving our
	// own pid proves the OS interface works before entering the loop.
	if _, err := reader.Resolve(int32(os.Getpid())); err != nil {
		log.Fatalf("process table unavailable: %v", err)
	}

	// SIGTERM ends the loop; Ctrl+C is handled per session by the shell.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	render := ui.NewRenderer(isTTY && !cfg.NoColor)
	if isTTY {
		fmt.Print(ui.Banner())
	}

	dispatcher := shell.NewDispatcher(reader, render, cfg, os.Stdout, isTTY)
	if err := dispatcher.Run(ctx, os.Stdin); err != nil {
		log.Fatalf("reading input: %v", err)
	}
}
