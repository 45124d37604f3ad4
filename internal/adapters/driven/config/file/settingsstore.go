package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// Environment variables that override file-stored secrets. Secrets read
// from the environment are never written back to the config file.
const (
	envTogetherAPIKey  = "TOGETHER_API_KEY"
	envPinataAPIKey    = "PINATA_API_KEY"
	envPinataSecretKey = "PINATA_SECRET_API_KEY"
)

// SettingsStore is a TOML-backed implementation of driven.SettingsStore.
// Settings live in a single config.toml inside the medichain config
// directory.
type SettingsStore struct {
	mu        sync.Mutex
	configDir string
	filePath  string
}

// NewSettingsStore creates a TOML settings store rooted at configDir.
// If configDir is empty, defaults to ~/.medichain.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".medichain")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	return &SettingsStore{
		configDir: configDir,
		filePath:  filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from config.toml. A missing file yields the
// defaults. Secrets from the environment override file values.
func (s *SettingsStore) Load() (*domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.defaults()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	} else if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	s.fillDefaults(settings)
	applyEnvOverrides(settings)
	return settings, nil
}

// Save persists settings to config.toml with restricted permissions.
func (s *SettingsStore) Save(settings *domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// defaults returns a fresh Settings populated with defaults.
func (s *SettingsStore) defaults() *domain.Settings {
	settings := &domain.Settings{}
	s.fillDefaults(settings)
	return settings
}

// fillDefaults replaces zero values with defaults so a partial config
// file still yields usable settings.
func (s *SettingsStore) fillDefaults(settings *domain.Settings) {
	if settings.DataDir == "" {
		settings.DataDir = filepath.Join(s.configDir, "data")
	}
	if settings.LLM.Provider == "" {
		settings.LLM.Provider = domain.LLMProviderTogether
	}
	if settings.Wallet.KeystoreDir == "" {
		settings.Wallet.KeystoreDir = filepath.Join(s.configDir, "keystore")
	}
}

// applyEnvOverrides layers environment-supplied secrets over the loaded
// settings.
func applyEnvOverrides(settings *domain.Settings) {
	if key := os.Getenv(envTogetherAPIKey); key != "" {
		settings.LLM.APIKey = key
	}
	if key := os.Getenv(envPinataAPIKey); key != "" {
		settings.Pinning.APIKey = key
	}
	if key := os.Getenv(envPinataSecretKey); key != "" {
		settings.Pinning.SecretKey = key
	}
}
