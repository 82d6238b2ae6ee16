package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moduleContent = `
name: perl
components:
  - {package: perl, scm_url: "git://perl#v1", batch: 1}
  - {package: perl-Foo, scm_url: "git://perl-Foo#v1", batch: 2}
`

func setup(t *testing.T, buildCommand string) (configPath, modulePath string) {
	t.Helper()
	tmpDir := t.TempDir()

	configPath = filepath.Join(tmpDir, "mbs.yaml")
	configContent := "system: mock\n" +
		"state_path: " + filepath.Join(tmpDir, "state.json") + "\n" +
		"build_command: " + buildCommand + "\n" +
		"poll_interval: 10ms\n"
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	modulePath = filepath.Join(tmpDir, "perl.yaml")
	require.NoError(t, os.WriteFile(modulePath, []byte(moduleContent), 0o600))
	return configPath, modulePath
}

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		buildCommand string
		args         func(configPath, modulePath string) []string
		expectedExit int
		expectedOut  []string
	}{
		{
			name:         "Build succeeds",
			buildCommand: `["true"]`,
			args: func(c, m string) []string {
				return []string{"-c", c, "build", m}
			},
			expectedExit: 0,
			expectedOut:  []string{"STATE", "done", "module-build-macros", "perl-Foo"},
		},
		{
			name:         "Build fails",
			buildCommand: `["false"]`,
			args: func(c, m string) []string {
				return []string{"-c", c, "build", m}
			},
			expectedExit: 1,
			expectedOut:  []string{"failed", "Some components failed to build"},
		},
		{
			name:         "Missing module file",
			buildCommand: `["true"]`,
			args: func(c, _ string) []string {
				return []string{"-c", c, "build", filepath.Join(filepath.Dir(c), "missing.yaml")}
			},
			expectedExit: 1,
		},
		{
			name:         "Status of unknown module",
			buildCommand: `["true"]`,
			args: func(c, _ string) []string {
				return []string{"-c", c, "status", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}
			},
			expectedExit: 1,
		},
		{
			name:         "Status lists nothing",
			buildCommand: `["true"]`,
			args: func(c, _ string) []string {
				return []string{"-c", c, "status"}
			},
			expectedExit: 0,
			expectedOut:  []string{"ID", "NAME", "STATE"},
		},
		{
			name:         "Version skips initialization",
			buildCommand: `["true"]`,
			args: func(_, _ string) []string {
				return []string{"-c", "/nonexistent/dir/mbs.yaml", "version"}
			},
			expectedExit: 0,
			expectedOut:  []string{"mbs version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath, modulePath := setup(t, tt.buildCommand)

			var stdout, stderr bytes.Buffer
			exitCode := run(tt.args(configPath, modulePath), &stdout, &stderr)

			assert.Equal(t, tt.expectedExit, exitCode)
			for _, want := range tt.expectedOut {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mbs.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("system: koji\n"), 0o600))

	var stdout, stderr bytes.Buffer
	exitCode := run([]string{"-c", configPath, "status"}, &stdout, &stderr)

	assert.Equal(t, 1, exitCode)
	assert.True(t, strings.HasPrefix(stderr.String(), "Error: "))
	assert.Contains(t, stderr.String(), "invalid configuration")
}

func TestRun_SubmitThenRun(t *testing.T) {
	configPath, modulePath := setup(t, `["true"]`)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-c", configPath, "submit", modulePath}, &stdout, &stderr))
	id := strings.TrimSpace(stdout.String())
	require.NotEmpty(t, id)

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-c", configPath, "status", id}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "wait")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-c", configPath, "run", id}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "done")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-c", configPath, "status"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), id)
}
