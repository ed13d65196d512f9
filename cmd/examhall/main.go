// Package main runs one exam hall session from the command line: it loads
// configuration, wires the application, runs the session to completion, and
// prints the room summary to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"examhall/internal/app"
	"examhall/internal/config"
	"examhall/internal/report"
	"examhall/internal/telemetry"
)

const telemetryShutdownTimeout = 5 * time.Second

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	// STEP 1: Load .env before anything reads the environment. A missing
	// file is the normal case outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	fs := flag.NewFlagSet("examhall", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("EXAMHALL_CONFIG_FILE"), "path to JSON configuration file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// STEP 2: Load configuration with precedence (file > env > defaults).
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// STEP 3: Set up signal handling so Ctrl-C tears the session down
	// instead of stranding participant goroutines.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// STEP 4: Configure telemetry. Disabled telemetry yields a noop shutdown.
	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry setup failed: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Printf("Telemetry shutdown error: %v", err)
		}
	}()

	// STEP 5: Build the application and run the session to completion.
	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	summary, err := application.Run(ctx)
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	fmt.Fprint(out, report.FormatSummary(summary))
	return nil
}
