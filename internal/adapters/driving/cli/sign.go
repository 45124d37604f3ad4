package cli

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var signJSON bool

var signCmd = &cobra.Command{
	Use:   "sign [content-id]",
	Short: "Sign a record's content ID with your wallet",
	Long: `Signs the given content ID with your wallet key, producing a proof
that the wallet holder vouches for that exact record. Anyone can check the
proof with 'medichain verify' without contacting you.`,
	Args: cobra.ExactArgs(1),
	RunE: runSign,
}

func init() {
	signCmd.Flags().BoolVar(&signJSON, "json", false, "output proof as JSON")
	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	contentID := args[0]

	_, sigService, err := connectWallet()
	if err != nil {
		return fmt.Errorf("connect wallet: %w", err)
	}

	proof, err := sigService.Sign(context.Background(), contentID)
	if err != nil {
		return fmt.Errorf("sign failed: %w", err)
	}
	if proof == nil {
		cmd.Println("Signature request denied.")
		return nil
	}

	if signJSON {
		data, err := json.MarshalIndent(proof, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal proof: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Content ID: %s\n", proof.ContentID)
	cmd.Printf("Signer:     %s\n", proof.SignerAddress)
	cmd.Printf("Signature:  0x%s\n", hex.EncodeToString(proof.Signature))
	return nil
}
