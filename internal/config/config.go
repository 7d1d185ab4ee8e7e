package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gsarma/codepad/internal/code"
)

// ErrConfigurationMissing is code.ErrConfigurationMissing, re-exported so
// callers that only load configuration need not import the engine package.
var ErrConfigurationMissing = code.ErrConfigurationMissing

// Config is the process configuration. Values come from an optional YAML
// file named by CODEPAD_CONFIG and are then overridden by the environment.
type Config struct {
	Port              string            `yaml:"port"`
	Mode              string            `yaml:"mode"`
	Env               string            `yaml:"env"`
	LogLevel          string            `yaml:"log_level"`
	DatabaseURL       string            `yaml:"database_url"`
	RedisAddr         string            `yaml:"redis_addr"`
	RedisPassword     string            `yaml:"redis_password"`
	JWTSecret         string            `yaml:"jwt_secret"`
	WorkerConcurrency int               `yaml:"worker_concurrency"`
	Judge0            code.Judge0Config `yaml:"judge0"`
	Poll              code.PollConfig   `yaml:"poll"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Port:              "8080",
		LogLevel:          "info",
		RedisAddr:         "localhost:6379",
		WorkerConcurrency: 5,
		Poll:              code.DefaultPollConfig(),
	}
}

// Load reads CODEPAD_CONFIG (if set) and then the environment.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CODEPAD_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the YAML document at path into c.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"PORT":              &c.Port,
		"MODE":              &c.Mode,
		"APP_ENV":           &c.Env,
		"LOG_LEVEL":         &c.LogLevel,
		"DATABASE_URL":      &c.DatabaseURL,
		"REDIS_ADDR":        &c.RedisAddr,
		"REDIS_PASSWORD":    &c.RedisPassword,
		"JWT_SECRET":        &c.JWTSecret,
		"JUDGE0_URL":        &c.Judge0.URL,
		"X_RAPIDAPI_KEY":    &c.Judge0.APIKey,
		"X_RAPIDAPI_HOST":   &c.Judge0.APIHost,
		"JUDGE0_AUTH_TOKEN": &c.Judge0.AuthToken,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORKER_CONCURRENCY": &c.WorkerConcurrency,
		"POLL_MAX_ATTEMPTS":  &c.Poll.MaxAttempts,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("%s must be a positive integer", key)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"POLL_BASE_DELAY": &c.Poll.BaseDelay,
		"POLL_MAX_DELAY":  &c.Poll.MaxDelay,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return fmt.Errorf("%s must be a positive duration (e.g. 250ms)", key)
			}
			*dst = d
		}
	}
	return nil
}

// ValidateEngine checks the execution engine settings.
func (c *Config) ValidateEngine() error {
	return c.Judge0.Validate()
}

// ValidateServer checks everything the HTTP server and worker need.
func (c *Config) ValidateServer() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}
	return c.ValidateEngine()
}
