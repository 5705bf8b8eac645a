package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Policy decides what an aggregation does when one of its upstream calls fails.
type Policy string

const (
	// PolicyTolerate keeps the batch going and leaves a null hole for the failed entry.
	PolicyTolerate Policy = "tolerate"
	// PolicyAbort fails the whole request on the first failed entry.
	PolicyAbort Policy = "abort"
)

const (
	DefaultEnvFile      = ".environment.env"
	DefaultHostFormat   = "https://%s.api.riotgames.com"
	DefaultMatchRouting = "europe"
	DefaultMatchCount   = 10
	DefaultBasePath     = "/api"
	DefaultPort         = 3000
	DefaultAllowOrigins = "https://riftradar.vercel.app"
	devAllowOrigins     = "http://localhost:3000"
)

var ErrMissingAPIKey = errors.New("riot API key is not configured")

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	APIKey         string
	HostFormat     string
	MatchRouting   string
	MatchCount     int
	RequestTimeout time.Duration

	BasePath     string
	Port         int
	Env          string
	AllowOrigins string

	LogLevel  string
	LogFormat string

	MatchFailurePolicy Policy
	RankFailurePolicy  Policy
}

// IsDev reports whether the process runs in the local development environment.
func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

// Load reads the configuration from the environment.
// Values from the dotenv file named by ENV_FILE fill in whatever the environment leaves blank.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", DefaultEnvFile)

	fileValues := map[string]string{}
	if _, err := os.Stat(envFile); err == nil {
		if fileValues, err = godotenv.Read(envFile); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	return fromLookup(func(key string) (string, bool) {
		return os.LookupEnv(key)
	}, fileValues)
}

// fromLookup builds the config from a variable lookup and the raw dotenv values.
func fromLookup(lookup func(string) (string, bool), fileValues map[string]string) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v := strings.TrimSpace(fileValues[key]); v != "" {
			return v
		}
		return fallback
	}

	// The legacy env file carries the key as a lowercase api_key line.
	apiKey := get("RIOT_API_KEY", strings.TrimSpace(fileValues["api_key"]))
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &Config{
		APIKey:       apiKey,
		HostFormat:   get("RIOT_HOST_FORMAT", DefaultHostFormat),
		MatchRouting: strings.ToLower(get("RIOT_MATCH_ROUTING", DefaultMatchRouting)),
		BasePath:     get("BASE_PATH", DefaultBasePath),
		Env:          get("ENV", "prod"),
		LogLevel:     get("LOG_LEVEL", "info"),
		LogFormat:    get("LOG_FORMAT", "text"),
	}

	if !strings.Contains(cfg.HostFormat, "%s") {
		return nil, fmt.Errorf("RIOT_HOST_FORMAT must contain a %%s routing placeholder, got %q", cfg.HostFormat)
	}

	var err error
	if cfg.MatchCount, err = parseInt(get("RIOT_MATCH_COUNT", ""), DefaultMatchCount); err != nil {
		return nil, fmt.Errorf("invalid RIOT_MATCH_COUNT: %w", err)
	}
	if cfg.MatchCount <= 0 {
		return nil, fmt.Errorf("invalid RIOT_MATCH_COUNT: %d", cfg.MatchCount)
	}
	if cfg.Port, err = parseInt(get("PORT", ""), DefaultPort); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	if raw := get("RIOT_REQUEST_TIMEOUT", ""); raw != "" {
		if cfg.RequestTimeout, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("invalid RIOT_REQUEST_TIMEOUT: %w", err)
		}
	}

	allowOrigins := DefaultAllowOrigins
	if cfg.IsDev() {
		allowOrigins = devAllowOrigins
	}
	cfg.AllowOrigins = get("ALLOW_ORIGINS", allowOrigins)

	if cfg.MatchFailurePolicy, err = parsePolicy(get("MATCH_FAILURE_POLICY", "")); err != nil {
		return nil, fmt.Errorf("invalid MATCH_FAILURE_POLICY: %w", err)
	}
	if cfg.RankFailurePolicy, err = parsePolicy(get("RANK_FAILURE_POLICY", "")); err != nil {
		return nil, fmt.Errorf("invalid RANK_FAILURE_POLICY: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func parsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(raw)) {
	case "", PolicyTolerate:
		return PolicyTolerate, nil
	case PolicyAbort:
		return PolicyAbort, nil
	}
	return "", fmt.Errorf("unknown policy %q", raw)
}
