package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/wmww/wifi-sync/pkg/nmcli"
)

// Store file defaults. The store lives under the user configuration
// directory unless WIFI_SYNC_FILE points somewhere else.
const (
	defaultConfigSubdir  = "wifi-sync"
	DefaultStoreFileName = "networks.json"
)

// Config represents the application configuration
type Config struct {
	// nmcli configuration
	NmcliPath    string        `env:"WIFI_SYNC_NMCLI_PATH" default:"/usr/bin/nmcli"`
	NmcliTimeout time.Duration `env:"WIFI_SYNC_NMCLI_TIMEOUT" default:"30s"`

	// Profile store configuration. StorePath has no static default; when
	// WIFI_SYNC_FILE is unset it resolves under the user config directory.
	StorePath   string `env:"WIFI_SYNC_FILE"`
	StoreFormat string `env:"WIFI_SYNC_FORMAT" validate:"oneof=json yaml" default:"json"`
	GitHistory  bool   `env:"WIFI_SYNC_GIT_HISTORY" default:"false"`

	// Application configuration
	LogLevel  string `env:"WIFI_SYNC_LOG_LEVEL" validate:"oneof=debug info warn error" default:"info"`
	LogFormat string `env:"WIFI_SYNC_LOG_FORMAT" validate:"oneof=text json" default:"text"`
}

// Provider defines the interface for configuration management
// This enables dependency injection and easy testing
type Provider interface {
	Load() (*Config, error)
	Validate(*Config) error
	LoadFromEnv() (*Config, error)
}

// Loader implements the Provider interface
type Loader struct {
	envLoader EnvLoader
}

// EnvLoader defines interface for environment variable loading
// This allows for testing with mock environment variables
type EnvLoader interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
}

// OSEnvLoader implements EnvLoader using os package
type OSEnvLoader struct{}

func (o *OSEnvLoader) Getenv(key string) string {
	return os.Getenv(key)
}

func (o *OSEnvLoader) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// NewLoader creates a new configuration loader
func NewLoader() Provider {
	return &Loader{
		envLoader: &OSEnvLoader{},
	}
}

// NewLoaderWithEnv creates a loader with custom environment loader (for testing)
func NewLoaderWithEnv(envLoader EnvLoader) Provider {
	return &Loader{
		envLoader: envLoader,
	}
}

// Load loads configuration from environment variables
func (l *Loader) Load() (*Config, error) {
	return l.LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func (l *Loader) LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Load nmcli configuration with defaults
	config.NmcliPath = l.getEnvWithDefault("WIFI_SYNC_NMCLI_PATH", nmcli.DefaultBinPath)
	config.NmcliTimeout = l.getDurationWithDefault("WIFI_SYNC_NMCLI_TIMEOUT", nmcli.DefaultTimeout)

	// Load store configuration
	storePath, err := l.resolveStorePath(l.envLoader.Getenv("WIFI_SYNC_FILE"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path: %w", err)
	}
	config.StorePath = storePath
	config.StoreFormat = l.getEnvWithDefault("WIFI_SYNC_FORMAT", "json")
	config.GitHistory = l.getBoolWithDefault("WIFI_SYNC_GIT_HISTORY", false)

	// Load application configuration with defaults
	config.LogLevel = l.getEnvWithDefault("WIFI_SYNC_LOG_LEVEL", "info")
	config.LogFormat = l.getEnvWithDefault("WIFI_SYNC_LOG_FORMAT", "text")

	// Validate configuration
	if err := l.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// resolveStorePath expands an explicit store path, or falls back to the
// default location under the user configuration directory. An explicit
// path may start with ~ for the home directory.
func (l *Loader) resolveStorePath(explicit string) (string, error) {
	if explicit != "" {
		expanded, err := homedir.Expand(explicit)
		if err != nil {
			return "", fmt.Errorf("cannot expand store path %q: %w", explicit, err)
		}
		return expanded, nil
	}

	if xdgConfig := l.envLoader.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, defaultConfigSubdir, DefaultStoreFileName), nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", defaultConfigSubdir, DefaultStoreFileName), nil
}

// Validate validates the configuration
func (l *Loader) Validate(config *Config) error {
	var errors []string

	// Validate nmcli configuration
	if config.NmcliPath == "" {
		errors = append(errors, "WIFI_SYNC_NMCLI_PATH cannot be empty")
	}
	if config.NmcliTimeout <= 0 {
		errors = append(errors, "WIFI_SYNC_NMCLI_TIMEOUT must be greater than zero")
	}

	// Validate store configuration
	if config.StorePath == "" {
		errors = append(errors, "WIFI_SYNC_FILE cannot be empty")
	}
	if err := l.validateStoreFormat(config.StoreFormat); err != nil {
		errors = append(errors, fmt.Sprintf("WIFI_SYNC_FORMAT is invalid: %v", err))
	}

	// Validate application configuration
	if err := l.validateLogLevel(config.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("WIFI_SYNC_LOG_LEVEL is invalid: %v", err))
	}

	if err := l.validateLogFormat(config.LogFormat); err != nil {
		errors = append(errors, fmt.Sprintf("WIFI_SYNC_LOG_FORMAT is invalid: %v", err))
	}

	if len(errors) > 0 {
		return &ValidationError{Errors: errors}
	}

	return nil
}

// ValidationError represents configuration validation errors
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Helper methods

func (l *Loader) getEnvWithDefault(key, defaultValue string) string {
	if value := l.envLoader.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (l *Loader) validateStoreFormat(format string) error {
	validFormats := []string{"json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(validFormats, ", "))
}

func (l *Loader) validateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, valid := range validLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(validLevels, ", "))
}

func (l *Loader) validateLogFormat(format string) error {
	validFormats := []string{"text", "json"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(validFormats, ", "))
}

// getDurationWithDefault gets a duration from environment with fallback to default
func (l *Loader) getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr := l.envLoader.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}

// getBoolWithDefault gets a boolean from environment with fallback to default
func (l *Loader) getBoolWithDefault(key string, defaultValue bool) bool {
	valueStr := l.envLoader.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}

	return defaultValue
}
