// Package config loads service configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds everything the API server and CLI need.
type Config struct {
	ListenAddr         string `yaml:"listen_addr"`
	SECUserAgent       string `yaml:"sec_user_agent"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`

	// Derived from HTTPTimeoutSeconds after load.
	HTTPTimeout time.Duration `yaml:"-"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		ListenAddr:         ":8080",
		SECUserAgent:       "",
		HTTPTimeoutSeconds: 60,
		HTTPTimeout:        60 * time.Second,
	}
}

// Load reads the YAML file at path (missing file is fine), then applies
// environment overrides: LISTEN_ADDR, SEC_USER_AGENT, HTTP_TIMEOUT_SECONDS.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.SECUserAgent = getEnv("SEC_USER_AGENT", cfg.SECUserAgent)
	cfg.HTTPTimeoutSeconds = getInt("HTTP_TIMEOUT_SECONDS", cfg.HTTPTimeoutSeconds)

	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 60
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
