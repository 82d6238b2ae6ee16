package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mbs/internal/adapters/config"
	"go.trai.ch/mbs/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loader(environment map[string]string) *config.Loader {
	if environment == nil {
		environment = map[string]string{}
	}
	return &config.Loader{Environment: environment}
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loader(nil).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	want := domain.DefaultConfig()
	assert.Equal(t, &want, cfg)
}

func TestLoader_ReadsFile(t *testing.T) {
	path := writeFile(t, "mbs.yaml", `
system: local
num_concurrent_builds: 4
num_threads_for_build_submissions: 2
rebuild_strategy: only-changed
state_path: /var/lib/mbs/state.json
build_command: ["rpmbuild", "-bb"]
poll_interval: 500ms
log_format: json
telemetry: progrock
`)

	cfg, err := loader(nil).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.SystemLocal, cfg.System)
	assert.Equal(t, 4, cfg.NumConcurrentBuilds)
	assert.Equal(t, 2, cfg.NumThreadsForBuildSubmissions)
	assert.Equal(t, domain.RebuildOnlyChanged, cfg.RebuildStrategy)
	assert.Equal(t, "/var/lib/mbs/state.json", cfg.StatePath)
	assert.Equal(t, []string{"rpmbuild", "-bb"}, cfg.BuildCommand)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "progrock", cfg.Telemetry)
}

func TestLoader_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "mbs.yaml", "system: local\nnum_concurrent_builds: 4\n")

	cfg, err := loader(map[string]string{
		"MBS_NUM_CONCURRENT_BUILDS": "9",
		"MBS_BUILD_COMMAND":         "make -j4",
		"MBS_POLL_INTERVAL":         "1m",
		"MBS_REBUILD_STRATEGY":      "all",
	}).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.SystemLocal, cfg.System)
	assert.Equal(t, 9, cfg.NumConcurrentBuilds)
	assert.Equal(t, []string{"make", "-j4"}, cfg.BuildCommand)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, domain.RebuildAll, cfg.RebuildStrategy)
}

func TestLoader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown system", "system: koji\n"},
		{"negative builds", "num_concurrent_builds: -1\n"},
		{"zero workers", "num_threads_for_build_submissions: 0\n"},
		{"unknown strategy", "rebuild_strategy: sometimes\n"},
		{"empty command", "build_command: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "mbs.yaml", tt.content)
			_, err := loader(nil).Load(path)
			require.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoader_MalformedYAML(t *testing.T) {
	path := writeFile(t, "mbs.yaml", "system: [unterminated\n")
	_, err := loader(nil).Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
