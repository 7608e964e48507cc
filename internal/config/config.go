// Package config loads the optional checkin configuration file.
//
// TOML is the default format; files ending in .yaml or .yml are parsed as
// YAML. ${VAR} references are expanded from the environment before parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/utils"
)

type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Storage StorageConfig `toml:"storage" yaml:"storage"`
	Auth    AuthConfig    `toml:"auth" yaml:"auth"`
	Habits  HabitsConfig  `toml:"habits" yaml:"habits"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type GeneralConfig struct {
	// Timezone decides which calendar day counts as "today". Empty means local.
	Timezone string `toml:"timezone" yaml:"timezone"`
}

type StorageConfig struct {
	Backend constants.StorageBackend `toml:"backend" yaml:"backend"`
	// Path is a file path for sqlite/json or a connection string for postgres.
	Path string `toml:"path" yaml:"path"`
}

type AuthConfig struct {
	Digest constants.DigestAlgorithm `toml:"digest" yaml:"digest"`
}

type HabitsConfig struct {
	StreakPolicy constants.StreakPolicy `toml:"streak_policy" yaml:"streak_policy"`
}

type LoggingConfig struct {
	Debug bool `toml:"debug" yaml:"debug"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: constants.BackendSQLite,
			Path:    constants.DefaultDBPath,
		},
		Auth:   AuthConfig{Digest: constants.DigestSHA256},
		Habits: HabitsConfig{StreakPolicy: constants.StreakResetOnGap},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := Parse(expanded, data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Parse decodes data into cfg, choosing the format from name's extension.
func Parse(name string, data []byte, cfg *Config) error {
	content := expandEnvVars(string(data))

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	default:
		md, err := toml.Decode(content, cfg)
		if err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parsing config file: unknown key %q", undecoded[0].String())
		}
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the variable's value, or "" when unset.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendJSON, constants.BackendPostgres, constants.BackendMemory:
	default:
		return fmt.Errorf("storage.backend %q is not one of sqlite, json, postgres, memory", c.Storage.Backend)
	}

	switch c.Auth.Digest {
	case constants.DigestSHA256, constants.DigestBlake2b:
	default:
		return fmt.Errorf("auth.digest %q is not one of sha256, blake2b", c.Auth.Digest)
	}

	switch c.Habits.StreakPolicy {
	case constants.StreakResetOnGap, constants.StreakAlwaysIncrement:
	default:
		return fmt.Errorf("habits.streak_policy %q is not one of reset_on_gap, always_increment", c.Habits.StreakPolicy)
	}

	if !utils.ValidateTimezone(c.General.Timezone) {
		return fmt.Errorf("general.timezone %q is not a valid IANA timezone", c.General.Timezone)
	}

	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
