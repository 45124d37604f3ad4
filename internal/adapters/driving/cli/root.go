// Package cli implements the medichain command line interface.
// Commands talk to the core services through the driving ports; wiring of
// concrete adapters happens once in initServices.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/medichain-labs/medichain-cli/internal/adapters/driven/config/file"
	"github.com/medichain-labs/medichain-cli/internal/adapters/driven/llm/ollama"
	"github.com/medichain-labs/medichain-cli/internal/adapters/driven/llm/together"
	"github.com/medichain-labs/medichain-cli/internal/adapters/driven/pinning/pinata"
	"github.com/medichain-labs/medichain-cli/internal/adapters/driven/storage/sqlite"
	walletks "github.com/medichain-labs/medichain-cli/internal/adapters/driven/wallet/keystore"
	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driving"
	"github.com/medichain-labs/medichain-cli/internal/core/services"
	"github.com/medichain-labs/medichain-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Services wired by initServices. Commands nil-check these so individual
// commands stay testable with fakes.
var (
	bookingService       driving.BookingService
	appointmentDirectory driving.AppointmentDirectory
	signatureService     driving.SignatureService
	settingsStore        driven.SettingsStore
	settings             *domain.Settings

	// Held directly so commands can ping the model before a booking and
	// Execute can release both when the command finishes.
	llmService  driven.LLMService
	recordCache driven.RecordCache
)

var rootCmd = &cobra.Command{
	Use:   "medichain",
	Short: "Patient appointment assistant with verifiable records",
	Long: `MediChain books medical appointments: it checks your symptoms with a
medical language model, generates a plain-language explanation with home
remedies, and pins the appointment record to IPFS so you can prove what
was recorded and when.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.medichain)")
}

// Execute wires the adapters and runs the root command.
func Execute() error {
	cobra.OnInitialize(func() {
		if err := initServices(); err != nil {
			logger.Warn("Service initialisation failed: %v", err)
		}
	})
	defer closeServices()
	return rootCmd.Execute()
}

// closeServices releases adapter resources. Safe to call with partial
// wiring; close failures are only worth a warning on the way out.
func closeServices() {
	if llmService != nil {
		if err := llmService.Close(); err != nil {
			logger.Warn("Closing LLM service: %v", err)
		}
	}
	if recordCache != nil {
		if err := recordCache.Close(); err != nil {
			logger.Warn("Closing record cache: %v", err)
		}
	}
}

// initServices builds the adapter stack from settings. Failures leave the
// affected service nil; commands report the missing capability when used.
func initServices() error {
	store, err := configfile.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	settingsStore = store

	loaded, err := store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings = loaded

	llm, err := newLLMService(loaded)
	if err != nil {
		logger.Warn("LLM unavailable: %v", err)
		llm = nil
	}
	llmService = llm

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		logger.Warn("Prompt store unavailable: %v", err)
	}

	advisor := services.NewAdvisorService(llm)
	if prompts != nil {
		advisor.SetPromptStore(prompts)
	}

	pins, err := pinata.NewClient(pinata.Config{
		APIKey:     loaded.Pinning.APIKey,
		SecretKey:  loaded.Pinning.SecretKey,
		BaseURL:    loaded.Pinning.BaseURL,
		GatewayURL: loaded.Pinning.GatewayURL,
	})
	if err != nil {
		logger.Warn("Pinning gateway unavailable: %v", err)
	} else {
		if c, cacheErr := sqlite.NewRecordCache(loaded.DataDir); cacheErr != nil {
			logger.Warn("Record cache unavailable, fetches will not be cached: %v", cacheErr)
		} else {
			recordCache = c
		}

		directory := services.NewAppointmentDirectory(pins, recordCache, loaded.DataDir)
		appointmentDirectory = directory
		bookingService = services.NewBookingService(advisor, directory)
	}

	// Verify works without a signer; Sign builds one on demand.
	signatureService = services.NewSignatureService(nil)

	return nil
}

// newLLMService builds the configured model adapter.
func newLLMService(s *domain.Settings) (driven.LLMService, error) {
	switch s.LLM.Provider {
	case domain.LLMProviderTogether:
		if s.LLM.APIKey == "" {
			return nil, fmt.Errorf("together: %w: set llm.api_key or TOGETHER_API_KEY", domain.ErrInvalidInput)
		}
		return together.NewLLMService(together.LLMConfig{
			APIKey:  s.LLM.APIKey,
			BaseURL: s.LLM.BaseURL,
			Model:   s.LLM.Model,
		})
	case domain.LLMProviderOllama:
		return ollama.NewLLMService(ollama.LLMConfig{
			BaseURL: s.LLM.BaseURL,
			Model:   s.LLM.Model,
		}), nil
	default:
		return nil, fmt.Errorf("llm provider %q: %w", s.LLM.Provider, domain.ErrInvalidInput)
	}
}

// connectWallet opens the configured keystore and returns a signer plus a
// signature service bound to it. The passphrase prompt runs per signing
// request, mirroring a wallet approval dialog.
func connectWallet() (*walletks.Signer, driving.SignatureService, error) {
	if settings == nil {
		return nil, nil, fmt.Errorf("settings not loaded: %w", domain.ErrWalletUnavailable)
	}

	signer, err := walletks.NewSigner(settings.Wallet.KeystoreDir, settings.Wallet.Address, promptPassphrase)
	if err != nil {
		return nil, nil, err
	}
	return signer, services.NewSignatureService(signer), nil
}

// walletAddress resolves the patient's wallet address without unlocking
// the key: the configured address if set, otherwise the keystore's sole
// account.
func walletAddress() (string, error) {
	if settings == nil {
		return "", fmt.Errorf("settings not loaded: %w", domain.ErrWalletUnavailable)
	}
	if settings.Wallet.Address != "" {
		return settings.Wallet.Address, nil
	}

	accounts := walletks.ListAccounts(settings.Wallet.KeystoreDir)
	switch len(accounts) {
	case 0:
		return "", fmt.Errorf("%w: no wallet found; run 'medichain wallet new'", domain.ErrWalletUnavailable)
	case 1:
		return accounts[0], nil
	default:
		return "", fmt.Errorf("%d wallets present, set wallet.address in %s", len(accounts), settingsStore.Path())
	}
}

// promptPassphrase reads a passphrase without echo, falling back to plain
// stdin when not attached to a terminal.
func promptPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
