package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show application settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settings == nil || settingsStore == nil {
		return errors.New("settings not loaded")
	}

	cmd.Printf("Config file: %s\n", settingsStore.Path())
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider)
	if settings.LLM.Model != "" {
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Println()

	cmd.Println("[Pinning]")
	if settings.Pinning.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Pinning.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	if settings.Pinning.SecretKey != "" {
		cmd.Printf("  Secret Key: %s\n", maskAPIKey(settings.Pinning.SecretKey))
	} else {
		cmd.Printf("  Secret Key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Wallet]")
	cmd.Printf("  Keystore: %s\n", settings.Wallet.KeystoreDir)
	if settings.Wallet.Address != "" {
		cmd.Printf("  Address: %s\n", settings.Wallet.Address)
	}
	cmd.Println()

	cmd.Printf("Data directory: %s\n", settings.DataDir)

	if err := settings.Validate(); err != nil {
		cmd.Println()
		cmd.Println("Warning: configuration is incomplete; booking will fail until fixed.")
	}
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
