// Package config loads create-vclight settings with viper. Values come from
// defaults, an optional YAML file, CREATE_VCLIGHT_* environment variables,
// and finally command line flags bound by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/jakoblorz/create-vclight/internal/registry"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. CREATE_VCLIGHT_REGISTRY_URL
	EnvPrefix = "CREATE_VCLIGHT"

	fileName = ".create-vclight"
	fileType = "yaml"
)

// Keys understood in the config file and environment.
const (
	KeyRegistryURL     = "registry.url"
	KeyRegistryTimeout = "registry.timeout"
	KeyConcurrency     = "concurrency"
	KeyPinned          = "pinned"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 8
)

// Config is the resolved configuration of a run.
type Config struct {
	RegistryURL string
	Timeout     time.Duration
	Concurrency int

	// Pinned maps package names to versions written to the manifest as-is
	Pinned map[string]string
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRegistryURL, registry.DefaultURL)
	v.SetDefault(KeyRegistryTimeout, DefaultTimeout)
	v.SetDefault(KeyConcurrency, DefaultConcurrency)
	v.SetDefault(KeyPinned, map[string]string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads file into v. An empty file searches the home directory
// for .create-vclight.yaml and ignores it when absent.
func ReadFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(home)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Resolve validates the settings held by v.
func Resolve(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		RegistryURL: strings.TrimRight(v.GetString(KeyRegistryURL), "/"),
		Timeout:     v.GetDuration(KeyRegistryTimeout),
		Concurrency: v.GetInt(KeyConcurrency),
		Pinned:      v.GetStringMapString(KeyPinned),
	}

	if cfg.RegistryURL == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyRegistryURL)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %s", KeyRegistryTimeout, cfg.Timeout)
	}
	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", KeyConcurrency, cfg.Concurrency)
	}
	if err := ValidatePinned(cfg.Pinned); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidatePinned checks that every pinned version is a valid semver
// version or range.
func ValidatePinned(pinned map[string]string) error {
	names := make([]string, 0, len(pinned))
	for name := range pinned {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name == "" {
			return errors.New("pinned package name must not be empty")
		}
		if _, err := semver.NewConstraint(pinned[name]); err != nil {
			return fmt.Errorf("invalid pinned version %q for %s: %w", pinned[name], name, err)
		}
	}
	return nil
}

// ParsePin splits a "name@version" flag value. Scoped names such as
// "@vercel/node@3.0.0" keep their leading "@".
func ParsePin(s string) (string, string, error) {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return "", "", fmt.Errorf("invalid pin %q (expected name@version)", s)
	}

	name, version := s[:at], s[at+1:]
	if _, err := semver.NewConstraint(version); err != nil {
		return "", "", fmt.Errorf("invalid pinned version %q for %s: %w", version, name, err)
	}
	return name, version, nil
}
