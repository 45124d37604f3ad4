package domain

// LLMProvider identifies a hosted or local generative model provider.
type LLMProvider string

// Available LLM providers.
const (
	// LLMProviderTogether is the Together AI cloud API.
	LLMProviderTogether LLMProvider = "together"

	// LLMProviderOllama is a local Ollama instance.
	LLMProviderOllama LLMProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p LLMProvider) IsValid() bool {
	switch p {
	case LLMProviderTogether, LLMProviderOllama:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p LLMProvider) String() string {
	return string(p)
}

// RequiresAPIKey returns true if the provider needs an API key.
func (p LLMProvider) RequiresAPIKey() bool {
	return p == LLMProviderTogether
}

// LLMSettings configures the generative explanation service.
type LLMSettings struct {
	// Provider selects the model provider (default: together).
	Provider LLMProvider `toml:"provider"`

	// APIKey authenticates against cloud providers. May also be supplied
	// via the TOGETHER_API_KEY environment variable.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider's API base URL.
	BaseURL string `toml:"base_url"`

	// Model is the model identifier to use.
	Model string `toml:"model"`
}

// PinningSettings configures the Pinata pinning gateway client.
type PinningSettings struct {
	// APIKey is the Pinata API key. May also be supplied via the
	// PINATA_API_KEY environment variable.
	APIKey string `toml:"api_key"`

	// SecretKey is the Pinata secret API key. May also be supplied via the
	// PINATA_SECRET_API_KEY environment variable.
	SecretKey string `toml:"secret_key"`

	// BaseURL overrides the Pinata API base URL.
	BaseURL string `toml:"base_url"`

	// GatewayURL overrides the public content gateway used for fetches.
	GatewayURL string `toml:"gateway_url"`
}

// WalletSettings configures the local keystore signer.
type WalletSettings struct {
	// KeystoreDir is the directory holding encrypted key files
	// (default: <config dir>/keystore).
	KeystoreDir string `toml:"keystore_dir"`

	// Address selects the signing account when the keystore holds more
	// than one key.
	Address string `toml:"address"`
}

// Settings is the full application configuration.
type Settings struct {
	// DataDir is where appointment records are staged before upload and
	// where the record cache lives (default: <config dir>/data).
	DataDir string `toml:"data_dir"`

	LLM     LLMSettings     `toml:"llm"`
	Pinning PinningSettings `toml:"pinning"`
	Wallet  WalletSettings  `toml:"wallet"`
}

// Validate checks the settings are usable for booking.
func (s *Settings) Validate() error {
	if !s.LLM.Provider.IsValid() {
		return ErrInvalidInput
	}
	if s.LLM.Provider.RequiresAPIKey() && s.LLM.APIKey == "" {
		return ErrInvalidInput
	}
	return nil
}
