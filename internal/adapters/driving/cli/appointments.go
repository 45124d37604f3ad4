package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

var (
	appointmentsWallet string
	appointmentsJSON   bool
)

var appointmentsCmd = &cobra.Command{
	Use:   "appointments",
	Short: "Browse your appointment records",
	Long: `Lists and inspects appointment records pinned under your wallet.
Records are fetched from the public gateway and cached locally; content
addressing means a cached record never goes stale.`,
	RunE: runAppointmentsList,
}

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records pinned under your wallet",
	RunE:  runAppointmentsList,
}

var appointmentsShowCmd = &cobra.Command{
	Use:   "show [content-id]",
	Short: "Show one record by content ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runAppointmentsShow,
}

func init() {
	appointmentsCmd.PersistentFlags().StringVar(&appointmentsWallet, "wallet", "", "wallet address (default: configured wallet)")
	appointmentsCmd.PersistentFlags().BoolVar(&appointmentsJSON, "json", false, "output as JSON")
	appointmentsCmd.AddCommand(appointmentsListCmd)
	appointmentsCmd.AddCommand(appointmentsShowCmd)
	rootCmd.AddCommand(appointmentsCmd)
}

func runAppointmentsList(cmd *cobra.Command, _ []string) error {
	if appointmentDirectory == nil {
		return errors.New("appointment directory not configured")
	}

	wallet := appointmentsWallet
	if wallet == "" {
		resolved, err := walletAddress()
		if err != nil {
			return err
		}
		wallet = resolved
	}

	records, err := appointmentDirectory.ListByWallet(context.Background(), wallet)
	if err != nil {
		return fmt.Errorf("list appointments: %w", err)
	}

	if appointmentsJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Printf("No appointments found for %s.\n", wallet)
		return nil
	}

	cmd.Printf("Appointments for %s:\n\n", wallet)
	for i := range records {
		printRecord(cmd, i+1, &records[i])
	}
	return nil
}

func runAppointmentsShow(cmd *cobra.Command, args []string) error {
	if appointmentDirectory == nil {
		return errors.New("appointment directory not configured")
	}

	contentID := args[0]
	record, err := appointmentDirectory.Fetch(context.Background(), contentID)
	if err != nil {
		return fmt.Errorf("fetch record: %w", err)
	}
	if record == nil {
		return fmt.Errorf("record %s: %w", contentID, domain.ErrNotFound)
	}

	if appointmentsJSON {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printRecord(cmd, 0, record)
	return nil
}

func printRecord(cmd *cobra.Command, index int, record *domain.PersistedAppointment) {
	if index > 0 {
		cmd.Printf("  [%d] %s with %s\n", index, record.ScheduledAt, record.Doctor)
	} else {
		cmd.Printf("%s with %s\n", record.ScheduledAt, record.Doctor)
	}
	cmd.Printf("      Patient:  %s\n", record.User)
	cmd.Printf("      Symptoms: %s\n", record.Symptoms)
	if record.Explanation != "" {
		cmd.Printf("      %s\n", record.Explanation)
	}
	cmd.Println()
}
