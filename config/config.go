package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 1.0
)

// Config is the top-level configuration for recall.
type Config struct {
	Sync    SyncConfig    `yaml:"sync"`
	Storage StorageConfig `yaml:"storage"`
}

// SyncConfig controls the git-backed synchronization engine.
type SyncConfig struct {
	Enabled       bool    `yaml:"enabled"`
	RemoteURL     string  `yaml:"remote_url"`     // May embed ${ENV_VAR} credentials
	RetryAttempts int     `yaml:"retry_attempts"` // Attempts per git command, >= 1
	RetryDelay    float64 `yaml:"retry_delay"`    // Backoff base in seconds
}

// StorageConfig describes where memory records (and the git repository that
// backs them) live on disk.
type StorageConfig struct {
	RepoDir string `yaml:"repo_dir"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment variable
// references inside the remote URL and applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Sync.RemoteURL = ExpandEnv(cfg.Sync.RemoteURL)
	applyDefaults(&cfg)

	if validateErr := validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// Default returns a configuration without reading any file: sync disabled,
// records stored under ~/.recall/memories.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{"."}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".recall.yaml",
		".recall.yml",
		"recall.yaml",
		"recall.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ExpandEnv expands ${ENV_VAR} references in the given string. Unset
// variables expand to the empty string with a warning, so a remote URL with
// a missing credential fails loudly at the git layer instead of silently
// keeping the placeholder.
func ExpandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func applyDefaults(cfg *Config) {
	if cfg.Sync.RetryAttempts < 1 {
		cfg.Sync.RetryAttempts = defaultRetryAttempts
	}
	if cfg.Sync.RetryDelay <= 0 {
		cfg.Sync.RetryDelay = defaultRetryDelay
	}
	if cfg.Storage.RepoDir == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			cfg.Storage.RepoDir = filepath.Join(homeDir, ".recall", "memories")
		} else {
			cfg.Storage.RepoDir = filepath.Join(".", ".recall", "memories")
		}
	}
}

// validate checks for required configuration values.
func validate(cfg *Config) error {
	if cfg.Storage.RepoDir == "" {
		return errors.New("storage.repo_dir is required")
	}
	if cfg.Sync.RetryAttempts < 1 {
		return fmt.Errorf("sync.retry_attempts must be >= 1, got %d", cfg.Sync.RetryAttempts)
	}
	return nil
}
