package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
	if config.Session.Population != 300 {
		t.Errorf("Population = %d, want 300", config.Session.Population)
	}
	if config.Session.RoomCapacity != 30 {
		t.Errorf("RoomCapacity = %d, want 30", config.Session.RoomCapacity)
	}
	if config.Session.Duration != 3*time.Second {
		t.Errorf("Duration = %s, want 3s", config.Session.Duration)
	}
	if !config.Report.Console {
		t.Error("Console reporting should default to enabled")
	}
	if config.Telemetry.Enabled {
		t.Error("Telemetry should default to disabled")
	}
}

func TestSessionConfig_RoomCount(t *testing.T) {
	cases := []struct {
		population, capacity, want int
	}{
		{300, 30, 10},
		{9, 3, 3},
		{10, 3, 4},
		{1, 30, 1},
	}
	for _, tc := range cases {
		s := &SessionConfig{Population: tc.population, RoomCapacity: tc.capacity}
		if got := s.RoomCount(); got != tc.want {
			t.Errorf("RoomCount(%d, %d) = %d, want %d", tc.population, tc.capacity, got, tc.want)
		}
	}
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"nil session", func(c *Config) { c.Session = nil }, "session configuration is required"},
		{"zero population", func(c *Config) { c.Session.Population = 0 }, "population must be positive"},
		{"zero capacity", func(c *Config) { c.Session.RoomCapacity = 0 }, "room capacity must be positive"},
		{"zero duration", func(c *Config) { c.Session.Duration = 0 }, "duration must be positive"},
		{"nil report", func(c *Config) { c.Report = nil }, "report configuration is required"},
		{"negative buffer", func(c *Config) { c.Report.EventBuffer = -1 }, "report buffer cannot be negative"},
		{"nil telemetry", func(c *Config) { c.Telemetry = nil }, "telemetry configuration is required"},
		{"enabled without endpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}, "telemetry endpoint cannot be empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			err := config.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("Error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("EXAMHALL_POPULATION", "12")
	t.Setenv("EXAMHALL_ROOM_CAPACITY", "4")
	t.Setenv("EXAMHALL_SESSION_DURATION", "150ms")
	t.Setenv("EXAMHALL_REPORT_CONSOLE", "false")
	t.Setenv("EXAMHALL_OTEL_ENABLED", "true")
	t.Setenv("EXAMHALL_OTEL_ENDPOINT", "collector:4318")

	config, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if config.Session.Population != 12 {
		t.Errorf("Population = %d, want 12", config.Session.Population)
	}
	if config.Session.RoomCapacity != 4 {
		t.Errorf("RoomCapacity = %d, want 4", config.Session.RoomCapacity)
	}
	if config.Session.Duration != 150*time.Millisecond {
		t.Errorf("Duration = %s, want 150ms", config.Session.Duration)
	}
	if config.Report.Console {
		t.Error("Console should be disabled by environment override")
	}
	if !config.Telemetry.Enabled || config.Telemetry.Endpoint != "collector:4318" {
		t.Errorf("Telemetry = %+v, want enabled with collector endpoint", config.Telemetry)
	}
	// Untouched settings keep their defaults.
	if config.Report.EventBuffer != 1024 {
		t.Errorf("EventBuffer = %d, want default 1024", config.Report.EventBuffer)
	}
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("EXAMHALL_POPULATION", "many")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected parse error for non-numeric population")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"session": {"population": 60, "room_capacity": 20, "duration": "500ms"},
		"report": {"console": false},
		"telemetry": {"enabled": true, "endpoint": "otel:4318"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Session.Population != 60 || config.Session.RoomCapacity != 20 {
		t.Errorf("Session = %+v, want 60/20", config.Session)
	}
	if config.Session.Duration != 500*time.Millisecond {
		t.Errorf("Duration = %s, want 500ms", config.Session.Duration)
	}
	if config.Report.Console {
		t.Error("Console should be disabled by file override")
	}
	if config.Report.EventBuffer != 1024 {
		t.Errorf("EventBuffer = %d, want default 1024 (absent from file)", config.Report.EventBuffer)
	}
	if !config.Telemetry.Enabled {
		t.Error("Telemetry should be enabled by file override")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadFromFile_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestLoadFromFile_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad-duration.json")
	if err := os.WriteFile(path, []byte(`{"session": {"duration": "soon"}}`), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for unparseable duration")
	}
}

func TestLoad_FileBeatsEnvironment(t *testing.T) {
	t.Setenv("EXAMHALL_POPULATION", "12")
	t.Setenv("EXAMHALL_SESSION_DURATION", "1s")

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"session": {"population": 20}}`), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Session.Population != 20 {
		t.Errorf("Population = %d, want 20 (file wins over environment)", config.Session.Population)
	}
	if config.Session.Duration != time.Second {
		t.Errorf("Duration = %s, want 1s (environment survives when file is silent)", config.Session.Duration)
	}
}

func TestLoad_ValidatesResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"session": {"duration": "0s"}}`), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for zero duration")
	}
}

func TestLoad_NoFile(t *testing.T) {
	config, err := Load("")
	if err != nil {
		t.Fatalf("Load without file failed: %v", err)
	}
	if config.Session.Population != 300 {
		t.Errorf("Population = %d, want default 300", config.Session.Population)
	}
}
