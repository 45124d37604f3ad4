package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	walletks "github.com/medichain-labs/medichain-cli/internal/adapters/driven/wallet/keystore"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage your local wallet",
	Long: `Manages the local keystore that stands in for a browser wallet.
Keys are stored encrypted under the medichain config directory and never
leave your machine.`,
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new wallet key",
	RunE:  runWalletNew,
}

var walletAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show your wallet address",
	RunE:  runWalletAddress,
}

func init() {
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletAddressCmd)
	rootCmd.AddCommand(walletCmd)
}

func runWalletNew(cmd *cobra.Command, _ []string) error {
	if settings == nil {
		return errors.New("settings not loaded")
	}

	passphrase, err := promptPassphrase("New wallet passphrase: ")
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	if passphrase == "" {
		return errors.New("passphrase must not be empty")
	}

	confirm, err := promptPassphrase("Repeat passphrase: ")
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	if confirm != passphrase {
		return errors.New("passphrases do not match")
	}

	address, err := walletks.CreateAccount(settings.Wallet.KeystoreDir, passphrase)
	if err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}

	cmd.Printf("Created wallet %s\n", address)
	cmd.Printf("Keystore: %s\n", settings.Wallet.KeystoreDir)
	cmd.Println("Back up the keystore file; losing it means losing the key.")
	return nil
}

func runWalletAddress(cmd *cobra.Command, _ []string) error {
	if settings == nil {
		return errors.New("settings not loaded")
	}

	accounts := walletks.ListAccounts(settings.Wallet.KeystoreDir)
	if len(accounts) == 0 {
		return errors.New("no wallet found; run 'medichain wallet new'")
	}

	for _, address := range accounts {
		marker := ""
		if settings.Wallet.Address != "" && !strings.EqualFold(address, settings.Wallet.Address) {
			marker = " (not selected)"
		}
		cmd.Printf("%s%s\n", address, marker)
	}
	return nil
}
