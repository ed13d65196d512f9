package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"examhall/internal/config"
	"examhall/internal/session"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Session.Population = 6
	cfg.Session.RoomCapacity = 2
	cfg.Session.Duration = 20 * time.Millisecond
	cfg.Report.Console = false
	return cfg
}

func TestNewApplication_NilConfigUsesDefaults(t *testing.T) {
	app, err := NewApplication(nil)
	if err != nil {
		t.Fatalf("NewApplication(nil) failed: %v", err)
	}
	if app.Config().Session.Population != 300 {
		t.Errorf("Population = %d, want default 300", app.Config().Session.Population)
	}
}

func TestNewApplication_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Session.Duration = 0

	if _, err := NewApplication(cfg); err == nil {
		t.Error("Expected error for invalid configuration")
	}
}

func TestApplication_Run(t *testing.T) {
	app, err := NewApplication(smallConfig())
	if err != nil {
		t.Fatalf("NewApplication failed: %v", err)
	}

	summary, err := app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Processed != 6 || summary.Expected != 6 {
		t.Errorf("Processed %d/%d, want 6/6", summary.Processed, summary.Expected)
	}
	if len(summary.Rooms) != 3 {
		t.Errorf("Summary has %d rooms, want 3", len(summary.Rooms))
	}
	if summary.Anomalies != 0 {
		t.Errorf("Anomalies = %d, want 0", summary.Anomalies)
	}
}

func TestApplication_RunIsSingleUse(t *testing.T) {
	app, err := NewApplication(smallConfig())
	if err != nil {
		t.Fatalf("NewApplication failed: %v", err)
	}

	if _, err := app.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if _, err := app.Run(context.Background()); !errors.Is(err, session.ErrAlreadyRun) {
		t.Errorf("Expected ErrAlreadyRun on second run, got %v", err)
	}
}

func TestApplication_RunCancelled(t *testing.T) {
	cfg := smallConfig()
	cfg.Session.Duration = time.Hour

	app, err := NewApplication(cfg)
	if err != nil {
		t.Fatalf("NewApplication failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	if _, err := app.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
