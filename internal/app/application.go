// Package app wires the simulator's components together and drives one
// session run end to end.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"examhall/internal/assignment"
	"examhall/internal/config"
	"examhall/internal/report"
	"examhall/internal/session"
	"examhall/pkg/interfaces"
	"examhall/pkg/types"
)

var tracer = otel.Tracer("examhall/internal/app")

// Application coordinates all system components for a single session run.
type Application struct {
	config      *config.Config
	dispatcher  *report.Dispatcher
	coordinator *session.Coordinator
}

// NewApplication creates an application with all components initialized.
// Component initialization follows dependency order:
// Reporter sink → Dispatcher → Provider → Coordinator.
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Validate configuration before component initialization.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// STEP 1: Choose the reporter sink.
	var sink interfaces.SessionReporter = report.Discard
	if cfg.Report.Console {
		sink = report.NewConsoleReporter(nil)
	}

	// STEP 2: Initialize the dispatcher that decouples participant units
	// from output.
	dispatcher, err := report.NewDispatcher(sink, cfg.Report.EventBuffer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report dispatcher: %w", err)
	}

	// STEP 3: Initialize the assignment provider.
	provider := assignment.NewBlockProvider()

	// STEP 4: Initialize the session coordinator.
	coordinator, err := session.NewCoordinator(
		cfg.Session.Population,
		cfg.Session.RoomCapacity,
		cfg.Session.Duration,
		provider,
		dispatcher,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session coordinator: %w", err)
	}

	return &Application{
		config:      cfg,
		dispatcher:  dispatcher,
		coordinator: coordinator,
	}, nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Run executes the session and returns its summary. An application drives
// exactly one run.
func (app *Application) Run(ctx context.Context) (*types.Summary, error) {
	ctx, span := tracer.Start(ctx, "examhall.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.run_id", app.coordinator.RunID()),
		attribute.Int("session.population", app.config.Session.Population),
		attribute.Int("session.room_capacity", app.config.Session.RoomCapacity),
		attribute.String("session.duration", app.config.Session.Duration.String()),
	)

	log.Printf("Starting examhall run: population=%d capacity=%d rooms=%d duration=%s",
		app.config.Session.Population,
		app.config.Session.RoomCapacity,
		app.config.Session.RoomCount(),
		app.config.Session.Duration)

	if err := app.dispatcher.Start(ctx); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to start report dispatcher: %w", err)
	}

	summary, runErr := app.coordinator.Run(ctx)

	// Stop flushes every queued notification before the summary is
	// rendered, whatever the run outcome was. A cancelled context has
	// already stopped the dispatcher.
	if err := app.dispatcher.Stop(); err != nil && !errors.Is(err, report.ErrDispatcherNotRunning) {
		log.Printf("Report dispatcher shutdown error: %v", err)
	}

	if runErr != nil {
		span.RecordError(runErr)
		return nil, runErr
	}

	span.SetAttributes(
		attribute.Int("session.processed", summary.Processed),
		attribute.Int("session.anomalies", summary.Anomalies),
	)
	log.Printf("Run %s finished: processed=%d/%d anomalies=%d",
		summary.RunID, summary.Processed, summary.Expected, summary.Anomalies)
	return summary, nil
}
