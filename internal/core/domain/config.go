package domain

import (
	"time"

	"go.trai.ch/zerr"
)

const (
	// SystemMock is the single-worker-identity builder backend that builds each
	// component completely inside the submitting worker.
	SystemMock = "mock"
	// SystemLocal is the asynchronous local process builder backend.
	SystemLocal = "local"
)

// Config holds the runtime configuration of the scheduler and its adapters.
type Config struct {
	System                        string          `yaml:"system" env:"SYSTEM"`
	NumConcurrentBuilds           int             `yaml:"num_concurrent_builds" env:"NUM_CONCURRENT_BUILDS"`
	NumThreadsForBuildSubmissions int             `yaml:"num_threads_for_build_submissions" env:"NUM_THREADS_FOR_BUILD_SUBMISSIONS"`
	RebuildStrategy               RebuildStrategy `yaml:"rebuild_strategy" env:"REBUILD_STRATEGY"`
	StatePath                     string          `yaml:"state_path" env:"STATE_PATH"`
	BuildCommand                  []string        `yaml:"build_command" env:"BUILD_COMMAND" envSeparator:" "`
	PollInterval                  time.Duration   `yaml:"poll_interval" env:"POLL_INTERVAL"`
	LogFormat                     string          `yaml:"log_format" env:"LOG_FORMAT"`
	Telemetry                     string          `yaml:"telemetry" env:"TELEMETRY"`
}

// DefaultConfig returns the configuration used when no file or environment overrides are present.
func DefaultConfig() Config {
	return Config{
		System:                        SystemMock,
		NumConcurrentBuilds:           0,
		NumThreadsForBuildSubmissions: 5,
		RebuildStrategy:               RebuildChangedAndAfter,
		StatePath:                     ".mbs/state.json",
		BuildCommand:                  []string{"true"},
		PollInterval:                  2 * time.Second,
		LogFormat:                     "text",
		Telemetry:                     "none",
	}
}

// Validate reports unusable configuration values as ErrInvalidConfig.
func (c *Config) Validate() error {
	var problem string
	switch {
	case c.System != SystemMock && c.System != SystemLocal:
		problem = "unknown system"
	case c.NumConcurrentBuilds < 0:
		problem = "num_concurrent_builds must not be negative"
	case c.NumThreadsForBuildSubmissions < 1:
		problem = "num_threads_for_build_submissions must be at least 1"
	case !c.RebuildStrategy.Valid():
		problem = "unknown rebuild_strategy"
	case c.StatePath == "":
		problem = "state_path must not be empty"
	case len(c.BuildCommand) == 0:
		problem = "build_command must not be empty"
	case c.PollInterval <= 0:
		problem = "poll_interval must be positive"
	default:
		return nil
	}
	return zerr.With(zerr.Wrap(ErrInvalidConfig, problem), "system", c.System)
}
