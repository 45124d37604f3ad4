package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [message] [signature] [address]",
	Short: "Verify a signature proof",
	Long: `Checks that signature was produced over message by the holder of
address. The signature is hex-encoded, with or without a 0x prefix.
Verification is local; no wallet or network access is needed.`,
	Args: cobra.ExactArgs(3),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if signatureService == nil {
		return errors.New("signature service not configured")
	}

	message := args[0]
	signature, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
	if err != nil {
		return fmt.Errorf("invalid signature hex: %w", err)
	}
	address := args[2]

	if !signatureService.Verify(message, signature, address) {
		return fmt.Errorf("signature does not verify for %s", address)
	}

	cmd.Printf("Signature valid: %s signed %q\n", address, message)
	return nil
}
