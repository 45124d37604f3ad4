package driven

import "github.com/medichain-labs/medichain-cli/internal/core/domain"

// SettingsStore persists application settings.
// Implementations handle storage (e.g. TOML files) and environment
// overrides for secrets.
type SettingsStore interface {
	// Load reads settings from storage, applying defaults for absent
	// values and environment-variable overrides for secrets.
	Load() (*domain.Settings, error)

	// Save persists the given settings.
	Save(settings *domain.Settings) error

	// Path returns the settings file path.
	Path() string
}
