// Package config assembles the runtime configuration from defaults,
// environment variables, and an optional JSON file, in that order of
// precedence (file wins).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable this package reads.
const EnvPrefix = "EXAMHALL_"

// Config is the complete runtime configuration.
type Config struct {
	Session   *SessionConfig   `json:"session"`
	Report    *ReportConfig    `json:"report"`
	Telemetry *TelemetryConfig `json:"telemetry"`
}

// SessionConfig sizes one session run.
type SessionConfig struct {
	Population   int           `json:"population" env:"POPULATION"`
	RoomCapacity int           `json:"room_capacity" env:"ROOM_CAPACITY"`
	Duration     time.Duration `json:"duration" env:"SESSION_DURATION"`
}

// RoomCount returns how many rooms a block assignment needs for this
// population and capacity.
func (s *SessionConfig) RoomCount() int {
	return (s.Population + s.RoomCapacity - 1) / s.RoomCapacity
}

// ReportConfig tunes the reporting pipeline.
type ReportConfig struct {
	EventBuffer int  `json:"event_buffer" env:"REPORT_BUFFER"`
	Console     bool `json:"console" env:"REPORT_CONSOLE"`
}

// TelemetryConfig controls the opt-in trace exporter.
type TelemetryConfig struct {
	Enabled     bool   `json:"enabled" env:"OTEL_ENABLED"`
	Endpoint    string `json:"endpoint" env:"OTEL_ENDPOINT"`
	Insecure    bool   `json:"insecure" env:"OTEL_INSECURE"`
	ServiceName string `json:"service_name" env:"OTEL_SERVICE_NAME"`
}

// DefaultConfig returns the built-in configuration: 300 participants in
// rooms of 30, running for 3 seconds, reporting to the console.
func DefaultConfig() *Config {
	return &Config{
		Session: &SessionConfig{
			Population:   300,
			RoomCapacity: 30,
			Duration:     3 * time.Second,
		},
		Report: &ReportConfig{
			EventBuffer: 1024,
			Console:     true,
		},
		Telemetry: &TelemetryConfig{
			Enabled:     false,
			Endpoint:    "localhost:4318",
			Insecure:    true,
			ServiceName: "examhall",
		},
	}
}

// Validate rejects configurations that cannot produce a runnable session.
func (c *Config) Validate() error {
	if c.Session == nil {
		return fmt.Errorf("session configuration is required")
	}
	if c.Session.Population <= 0 {
		return fmt.Errorf("session population must be positive")
	}
	if c.Session.RoomCapacity <= 0 {
		return fmt.Errorf("room capacity must be positive")
	}
	if c.Session.Duration <= 0 {
		return fmt.Errorf("session duration must be positive")
	}

	if c.Report == nil {
		return fmt.Errorf("report configuration is required")
	}
	if c.Report.EventBuffer < 0 {
		return fmt.Errorf("report buffer cannot be negative")
	}

	if c.Telemetry == nil {
		return fmt.Errorf("telemetry configuration is required")
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry endpoint cannot be empty when telemetry is enabled")
	}

	return nil
}

// LoadFromEnv returns the defaults with environment overrides applied.
func LoadFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment configuration: %w", err)
	}
	return config, nil
}

// ConfigFile is the JSON shape for file-based configuration. Durations are
// strings ("3s", "500ms"); absent fields keep their current values.
type ConfigFile struct {
	Session   *SessionConfigFile   `json:"session"`
	Report    *ReportConfigFile    `json:"report"`
	Telemetry *TelemetryConfigFile `json:"telemetry"`
}

type SessionConfigFile struct {
	Population   int    `json:"population"`
	RoomCapacity int    `json:"room_capacity"`
	Duration     string `json:"duration"`
}

type ReportConfigFile struct {
	EventBuffer int   `json:"event_buffer"`
	Console     *bool `json:"console"`
}

type TelemetryConfigFile struct {
	Enabled     *bool  `json:"enabled"`
	Endpoint    string `json:"endpoint"`
	Insecure    *bool  `json:"insecure"`
	ServiceName string `json:"service_name"`
}

// applyFile overlays the JSON file at path onto the config.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file ConfigFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.Session != nil {
		if file.Session.Population > 0 {
			c.Session.Population = file.Session.Population
		}
		if file.Session.RoomCapacity > 0 {
			c.Session.RoomCapacity = file.Session.RoomCapacity
		}
		if file.Session.Duration != "" {
			duration, err := time.ParseDuration(file.Session.Duration)
			if err != nil {
				return fmt.Errorf("invalid session duration in %s: %w", path, err)
			}
			c.Session.Duration = duration
		}
	}

	if file.Report != nil {
		if file.Report.EventBuffer > 0 {
			c.Report.EventBuffer = file.Report.EventBuffer
		}
		if file.Report.Console != nil {
			c.Report.Console = *file.Report.Console
		}
	}

	if file.Telemetry != nil {
		if file.Telemetry.Enabled != nil {
			c.Telemetry.Enabled = *file.Telemetry.Enabled
		}
		if file.Telemetry.Endpoint != "" {
			c.Telemetry.Endpoint = file.Telemetry.Endpoint
		}
		if file.Telemetry.Insecure != nil {
			c.Telemetry.Insecure = *file.Telemetry.Insecure
		}
		if file.Telemetry.ServiceName != "" {
			c.Telemetry.ServiceName = file.Telemetry.ServiceName
		}
	}

	return nil
}

// LoadFromFile returns the defaults with the JSON file at path applied and
// validated.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.applyFile(path); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return config, nil
}

// Load builds the effective configuration: defaults, then environment
// overrides, then the optional JSON file at path. An empty path skips the
// file step.
func Load(path string) (*Config, error) {
	config, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
