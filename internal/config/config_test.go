package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "replayfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
capacity: 1000
required_free: 400
threshold: 50
include_empty: true
conflict_policy: last-write-wins
log_level: debug
environment: production
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), cfg.Capacity)
	assert.Equal(t, uint64(400), cfg.RequiredFree)
	assert.Equal(t, uint64(50), cfg.Threshold)
	assert.True(t, cfg.IncludeEmpty)
	assert.Equal(t, "last-write-wins", cfg.ConflictPolicy)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "threshold: 50\nlog_level: debug\n")
	t.Setenv(EnvThreshold, "75")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvIncludeEmpty, "yes")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(75), cfg.Threshold)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.IncludeEmpty)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown key", body: "capacity: 10\nbogus: 1\n", wantErr: "failed to parse config"},
		{name: "zero capacity", body: "capacity: 0\nrequired_free: 0\n", wantErr: "capacity must be greater than 0"},
		{name: "required exceeds capacity", body: "capacity: 10\nrequired_free: 20\n", wantErr: "required_free must not exceed capacity"},
		{name: "bad policy", body: "conflict_policy: merge\n", wantErr: "conflict_policy must be one of"},
		{name: "bad level", body: "log_level: loud\n", wantErr: "log_level must be one of"},
		{name: "bad env size", env: map[string]string{EnvCapacity: "-1"}, wantErr: EnvCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistant.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "required_free", toSnake("RequiredFree"))
	assert.Equal(t, "capacity", toSnake("Capacity"))
}
