// Package config loads service configuration from an optional YAML file and
// TAKEOFF_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines takeoff configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Estimate EstimateConfig `yaml:"estimate"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Mode  string `yaml:"mode"`
}

// CatalogConfig points at the CSV files preloaded into the server's catalogs.
type CatalogConfig struct {
	RebarMasterlistPath string `yaml:"rebar_masterlist_path"`
	ResourcesPath       string `yaml:"resources_path"`
}

type EstimateConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Address returns host:port for the HTTP listener.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
			Mode:  "dev",
		},
		Estimate: EstimateConfig{
			Concurrency: 4,
		},
		Tracing: TracingConfig{
			ServiceName: "takeoff",
			SampleRatio: 0.1,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("TAKEOFF_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects values the service can not run with.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Estimate.Concurrency < 1 {
		return fmt.Errorf("estimate.concurrency must be positive, got %d", c.Estimate.Concurrency)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be within [0, 1], got %v", c.Tracing.SampleRatio)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("TAKEOFF_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TAKEOFF_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid TAKEOFF_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if level := os.Getenv("TAKEOFF_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mode := os.Getenv("TAKEOFF_LOG_MODE"); mode != "" {
		cfg.Log.Mode = mode
	}
	if path := os.Getenv("TAKEOFF_REBAR_MASTERLIST_PATH"); path != "" {
		cfg.Catalog.RebarMasterlistPath = path
	}
	if path := os.Getenv("TAKEOFF_RESOURCES_PATH"); path != "" {
		cfg.Catalog.ResourcesPath = path
	}
	if concStr := os.Getenv("TAKEOFF_ESTIMATE_CONCURRENCY"); concStr != "" {
		conc, err := strconv.Atoi(concStr)
		if err != nil {
			return fmt.Errorf("invalid TAKEOFF_ESTIMATE_CONCURRENCY: %w", err)
		}
		cfg.Estimate.Concurrency = conc
	}
	if enabled := os.Getenv("TAKEOFF_TRACING_ENABLED"); enabled != "" {
		cfg.Tracing.Enabled = parseBool(enabled)
	}
	if name := os.Getenv("TAKEOFF_TRACING_SERVICE_NAME"); name != "" {
		cfg.Tracing.ServiceName = name
	}
	if endpoint := os.Getenv("TAKEOFF_TRACING_ENDPOINT"); endpoint != "" {
		cfg.Tracing.Endpoint = endpoint
	}
	if insecure := os.Getenv("TAKEOFF_TRACING_INSECURE"); insecure != "" {
		cfg.Tracing.Insecure = parseBool(insecure)
	}
	if ratioStr := os.Getenv("TAKEOFF_TRACING_SAMPLE_RATIO"); ratioStr != "" {
		ratio, err := strconv.ParseFloat(ratioStr, 64)
		if err != nil {
			return fmt.Errorf("invalid TAKEOFF_TRACING_SAMPLE_RATIO: %w", err)
		}
		cfg.Tracing.SampleRatio = ratio
	}
	return nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
