package scenarios

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"examhall/internal/app"
	"examhall/internal/assignment"
	"examhall/internal/config"
	"examhall/internal/report"
	"examhall/internal/session"
	"examhall/pkg/types"
	"examhall/tests/fixtures"
)

func TestCoreWorkflows_StandardSession(t *testing.T) {
	scenario := fixtures.StandardHall()
	runner := fixtures.NewScenarioRunner(t, scenario)
	result := runner.MustRun(t, context.Background())

	fixtures.VerifyAccounting(t, result.Summary, scenario.Population)
	fixtures.VerifyRoomDistribution(t, result.Summary, map[types.RoomID]int{0: 3, 1: 3, 2: 3})

	counts := map[report.EventKind]int{
		report.EventSessionStarted:     1,
		report.EventSessionEnded:       1,
		report.EventParticipantEntered: scenario.Population,
		report.EventParticipantLeft:    scenario.Population,
		report.EventAnomalyDetected:    0,
		report.EventSessionComplete:    1,
	}
	for kind, want := range counts {
		if got := runner.Recorder.Count(kind); got != want {
			t.Errorf("Expected %d %s notifications, got %d", want, kind, got)
		}
	}
}

func TestCoreWorkflows_UnevenLastRoom(t *testing.T) {
	scenario := fixtures.UnevenHall()
	runner := fixtures.NewScenarioRunner(t, scenario)
	result := runner.MustRun(t, context.Background())

	fixtures.VerifyRoomDistribution(t, result.Summary, map[types.RoomID]int{0: 3, 1: 3, 2: 3, 3: 1})
	fixtures.VerifyAccounting(t, result.Summary, scenario.Population)
}

// TestCoreWorkflows_DispatcherPipeline runs a session reporting through the
// asynchronous dispatcher rather than a direct recorder, then checks that
// every notification arrived at the sink in lifecycle order.
func TestCoreWorkflows_DispatcherPipeline(t *testing.T) {
	scenario := fixtures.StandardHall()
	sink := report.NewRecorder()

	dispatcher, err := report.NewDispatcher(sink, 64)
	if err != nil {
		t.Fatalf("Failed to create dispatcher: %v", err)
	}
	if err := dispatcher.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start dispatcher: %v", err)
	}

	coordinator, err := session.NewCoordinator(scenario.Population, scenario.RoomCapacity, scenario.Duration, assignment.NewBlockProvider(), dispatcher)
	if err != nil {
		t.Fatalf("Failed to create coordinator: %v", err)
	}

	summary, err := coordinator.Run(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if err := dispatcher.Stop(); err != nil {
		t.Fatalf("Failed to stop dispatcher: %v", err)
	}

	fixtures.VerifyAccounting(t, summary, scenario.Population)
	fixtures.VerifyEventOrdering(t, sink.Events())
	fixtures.VerifyParticipantFlow(t, sink.Events(), scenario.Population)
}

func TestCoreWorkflows_ConsoleReporting(t *testing.T) {
	scenario := fixtures.StandardHall()

	var buf bytes.Buffer
	reporter := report.NewConsoleReporter(log.New(&buf, "", 0))

	coordinator, err := session.NewCoordinator(scenario.Population, scenario.RoomCapacity, scenario.Duration, assignment.NewBlockProvider(), reporter)
	if err != nil {
		t.Fatalf("Failed to create coordinator: %v", err)
	}
	if _, err := coordinator.Run(context.Background()); err != nil {
		t.Fatalf("Session failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Session started:") {
		t.Error("Console output missing the session start line")
	}
	if got := strings.Count(output, "entered room"); got != scenario.Population {
		t.Errorf("Console output has %d entry lines, want %d", got, scenario.Population)
	}
	if got := strings.Count(output, "leaving room"); got != scenario.Population {
		t.Errorf("Console output has %d departure lines, want %d", got, scenario.Population)
	}
	if !strings.Contains(output, "Session complete:") {
		t.Error("Console output missing the session complete line")
	}
}

func TestCoreWorkflows_ApplicationRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Session.Population = 8
	cfg.Session.RoomCapacity = 4
	cfg.Session.Duration = 25 * time.Millisecond
	cfg.Report.Console = false

	application, err := app.NewApplication(cfg)
	if err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}

	summary, err := application.Run(context.Background())
	if err != nil {
		t.Fatalf("Application run failed: %v", err)
	}

	fixtures.VerifyAccounting(t, summary, 8)
	fixtures.VerifyRoomDistribution(t, summary, map[types.RoomID]int{0: 4, 1: 4})

	rendered := report.FormatSummary(summary)
	if !strings.Contains(rendered, "Total: 8/8 participants") {
		t.Errorf("Rendered summary missing total line:\n%s", rendered)
	}
}
