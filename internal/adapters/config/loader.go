// Package config loads the mbs runtime configuration and module definition files.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the configuration file read when no path is given.
	DefaultPath = "mbs.yaml"
	// EnvPrefix prefixes every environment override, e.g. MBS_NUM_CONCURRENT_BUILDS.
	EnvPrefix = "MBS_"
)

// Loader implements ports.ConfigLoader using a YAML file and environment overrides.
type Loader struct {
	// Environment replaces the process environment when set.
	Environment map[string]string
}

// NewLoader creates a Loader that reads the process environment.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration file at path on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an error.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if l.Environment != nil {
		opts.Environment = l.Environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, zerr.Wrap(err, "failed to apply environment overrides")
	}

	if err := cfg.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return &cfg, nil
}
