package fixtures

import (
	"context"
	"testing"
	"time"

	"examhall/internal/assignment"
	"examhall/internal/report"
	"examhall/internal/session"
	"examhall/pkg/interfaces"
	"examhall/pkg/types"
)

// RunResult carries everything a scenario assertion needs after a run.
type RunResult struct {
	Summary  *types.Summary
	Events   []report.Event
	Duration time.Duration
	Err      error
}

// ScenarioRunner wires a coordinator to a recording reporter for one
// scenario run.
type ScenarioRunner struct {
	Scenario    *HallScenario
	Recorder    *report.Recorder
	Coordinator *session.Coordinator
}

// NewScenarioRunner builds a runner with the default block assignment.
func NewScenarioRunner(t *testing.T, scenario *HallScenario) *ScenarioRunner {
	t.Helper()
	return NewScenarioRunnerWithProvider(t, scenario, assignment.NewBlockProvider())
}

// NewScenarioRunnerWithProvider builds a runner with a custom assignment
// provider, usually one of the fault-injecting providers in this package.
func NewScenarioRunnerWithProvider(t *testing.T, scenario *HallScenario, provider interfaces.AssignmentProvider) *ScenarioRunner {
	t.Helper()

	recorder := report.NewRecorder()
	coordinator, err := session.NewCoordinator(scenario.Population, scenario.RoomCapacity, scenario.Duration, provider, recorder)
	if err != nil {
		t.Fatalf("Failed to create coordinator for scenario %q: %v", scenario.Name, err)
	}

	return &ScenarioRunner{
		Scenario:    scenario,
		Recorder:    recorder,
		Coordinator: coordinator,
	}
}

// Run executes the session and collects the recording.
func (sr *ScenarioRunner) Run(ctx context.Context) *RunResult {
	start := time.Now()
	summary, err := sr.Coordinator.Run(ctx)
	return &RunResult{
		Summary:  summary,
		Events:   sr.Recorder.Events(),
		Duration: time.Since(start),
		Err:      err,
	}
}

// MustRun executes the session and fails the test if it does not complete.
func (sr *ScenarioRunner) MustRun(t *testing.T, ctx context.Context) *RunResult {
	t.Helper()

	result := sr.Run(ctx)
	if result.Err != nil {
		t.Fatalf("Scenario %q failed: %v", sr.Scenario.Name, result.Err)
	}
	if result.Summary == nil {
		t.Fatalf("Scenario %q completed without a summary", sr.Scenario.Name)
	}
	return result
}

// WaitForState polls the coordinator until it reaches the wanted state or
// the timeout expires.
func WaitForState(t *testing.T, coordinator *session.Coordinator, want types.SessionState, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if coordinator.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Coordinator did not reach state %s within %v (currently %s)", want, timeout, coordinator.State())
}

// VerifyRoomDistribution checks the summary's per-room occupancy against the
// expected populations.
func VerifyRoomDistribution(t *testing.T, summary *types.Summary, want map[types.RoomID]int) {
	t.Helper()

	if len(summary.Rooms) != len(want) {
		t.Errorf("Expected %d rooms in summary, got %d", len(want), len(summary.Rooms))
	}
	for _, room := range summary.Rooms {
		expected, ok := want[room.Room]
		if !ok {
			t.Errorf("Unexpected room %d in summary", room.Room)
			continue
		}
		if room.Occupancy != expected {
			t.Errorf("Room %d occupancy = %d, want %d", room.Room, room.Occupancy, expected)
		}
	}
}

// VerifyAccounting checks that every participant was counted exactly once:
// processed matches the expected population and the per-room occupancies sum
// to the same figure.
func VerifyAccounting(t *testing.T, summary *types.Summary, population int) {
	t.Helper()

	if summary.Expected != population {
		t.Errorf("Summary expected count = %d, want %d", summary.Expected, population)
	}
	if summary.Processed != population {
		t.Errorf("Summary processed count = %d, want %d", summary.Processed, population)
	}
	if total := summary.TotalOccupancy(); total != population {
		t.Errorf("Room occupancies sum to %d, want %d", total, population)
	}
}

// VerifyEventOrdering checks the notification stream against the session
// lifecycle: no entry before the start notification, no departure before the
// end notification, and the completion notification last.
func VerifyEventOrdering(t *testing.T, events []report.Event) {
	t.Helper()

	if len(events) == 0 {
		t.Fatal("No events recorded")
	}

	started, ended, complete := -1, -1, -1
	for i, ev := range events {
		switch ev.Kind {
		case report.EventSessionStarted:
			if started == -1 {
				started = i
			}
		case report.EventSessionEnded:
			if ended == -1 {
				ended = i
			}
		case report.EventSessionComplete:
			complete = i
		case report.EventParticipantEntered:
			if started == -1 {
				t.Errorf("Participant %d entered before the session started (event %d)", ev.Participant, i)
			}
		case report.EventParticipantLeft:
			if ended == -1 {
				t.Errorf("Participant %d left before the session ended (event %d)", ev.Participant, i)
			}
		}
	}

	if started == -1 {
		t.Error("Missing session started notification")
	}
	if ended == -1 {
		t.Error("Missing session ended notification")
	}
	if complete != len(events)-1 {
		t.Errorf("Completion notification at index %d, want %d (last)", complete, len(events)-1)
	}
}

// VerifyParticipantFlow checks that every participant entered and left
// exactly once.
func VerifyParticipantFlow(t *testing.T, events []report.Event, population int) {
	t.Helper()

	entered := make(map[types.ParticipantID]int)
	left := make(map[types.ParticipantID]int)
	for _, ev := range events {
		switch ev.Kind {
		case report.EventParticipantEntered:
			entered[ev.Participant]++
		case report.EventParticipantLeft:
			left[ev.Participant]++
		}
	}

	if len(entered) != population {
		t.Errorf("Expected %d distinct participants to enter, got %d", population, len(entered))
	}
	if len(left) != population {
		t.Errorf("Expected %d distinct participants to leave, got %d", population, len(left))
	}
	for id, count := range entered {
		if count != 1 {
			t.Errorf("Participant %d entered %d times", id, count)
		}
	}
	for id, count := range left {
		if count != 1 {
			t.Errorf("Participant %d left %d times", id, count)
		}
	}
}
