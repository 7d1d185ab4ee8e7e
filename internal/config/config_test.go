package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envFrom(map[string]string{
		"PORT":               "9000",
		"MODE":               "worker",
		"APP_ENV":            "development",
		"JUDGE0_URL":         "https://judge0-ce.p.rapidapi.com",
		"X_RAPIDAPI_KEY":     "k",
		"X_RAPIDAPI_HOST":    "judge0-ce.p.rapidapi.com",
		"POLL_MAX_ATTEMPTS":  "5",
		"POLL_BASE_DELAY":    "100ms",
		"POLL_MAX_DELAY":     "1s",
		"WORKER_CONCURRENCY": "2",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "worker", cfg.Mode)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 5, cfg.Poll.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Poll.BaseDelay)
	assert.Equal(t, time.Second, cfg.Poll.MaxDelay)
	assert.Equal(t, 2, cfg.WorkerConcurrency)
	assert.NoError(t, cfg.ValidateEngine())
}

func TestApplyEnv_Invalid(t *testing.T) {
	assert.Error(t, Default().applyEnv(envFrom(map[string]string{"POLL_MAX_ATTEMPTS": "zero"})))
	assert.Error(t, Default().applyEnv(envFrom(map[string]string{"POLL_BASE_DELAY": "-1s"})))
}

func TestValidate_MissingIsConfigurationError(t *testing.T) {
	cfg := Default()
	err := cfg.ValidateEngine()
	assert.ErrorIs(t, err, ErrConfigurationMissing)

	err = cfg.ValidateServer()
	require.ErrorIs(t, err, ErrConfigurationMissing)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codepad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
database_url: postgres://localhost/codepad
jwt_secret: from-file
judge0:
  url: http://judge0:2358
  api_key: file-key
  api_host: judge0
poll:
  max_attempts: 4
  base_delay: 50ms
`), 0o600))

	t.Setenv("CODEPAD_CONFIG", path)
	t.Setenv("X_RAPIDAPI_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "http://judge0:2358", cfg.Judge0.URL)
	assert.Equal(t, "env-key", cfg.Judge0.APIKey, "environment overrides the file")
	assert.Equal(t, 4, cfg.Poll.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Poll.BaseDelay)
	assert.Equal(t, 2*time.Second, cfg.Poll.MaxDelay, "unset fields keep defaults")
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_BadFile(t *testing.T) {
	t.Setenv("CODEPAD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
