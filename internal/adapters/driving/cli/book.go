package cli

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

var (
	bookName     string
	bookDoctor   string
	bookSymptoms string
	bookAt       string
	bookJSON     bool
	bookSign     bool
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book an appointment",
	Long: `Books a medical appointment. The symptoms are checked by a medical
language model; valid symptoms get a plain-language explanation with home
remedies, and the appointment record is pinned to IPFS under your wallet.

The record never includes your wallet address. Pass --sign to additionally
sign the record's content ID, proving you authored it.`,
	RunE: runBook,
}

func init() {
	bookCmd.Flags().StringVar(&bookName, "name", "", "patient name (required)")
	bookCmd.Flags().StringVar(&bookDoctor, "doctor", "", "doctor name (required)")
	bookCmd.Flags().StringVar(&bookSymptoms, "symptoms", "", "symptom description (required)")
	bookCmd.Flags().StringVar(&bookAt, "at", "", "appointment time, RFC3339 (default now)")
	bookCmd.Flags().BoolVar(&bookJSON, "json", false, "output result as JSON")
	bookCmd.Flags().BoolVar(&bookSign, "sign", false, "sign the content ID after booking")
	rootCmd.AddCommand(bookCmd)
}

// pingTimeout bounds the pre-booking reachability check.
const pingTimeout = 10 * time.Second

func runBook(cmd *cobra.Command, _ []string) error {
	if bookingService == nil {
		return errors.New("booking service not configured")
	}

	request, err := buildBookRequest()
	if err != nil {
		return err
	}

	// Fail fast on an unreachable model instead of partway into the run.
	if llmService != nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := llmService.Ping(pingCtx); err != nil {
			return fmt.Errorf("medical model unreachable: %w", err)
		}
	}

	state, err := bookingService.Book(context.Background(), *request)
	if err != nil {
		return fmt.Errorf("booking failed: %w", err)
	}

	var proof *domain.SignatureProof
	if bookSign && !state.Rejected() && state.Archived() {
		proof, err = signContentID(cmd, state.ContentID)
		if err != nil {
			return err
		}
	}

	if bookJSON {
		return outputBookJSON(cmd, state, proof)
	}
	return outputBookText(cmd, state, proof)
}

// buildBookRequest validates the flags and resolves the wallet. All four
// fields are required; the pipeline itself assumes a complete request.
func buildBookRequest() (*domain.AppointmentRequest, error) {
	name := strings.TrimSpace(bookName)
	doctor := strings.TrimSpace(bookDoctor)
	symptoms := strings.TrimSpace(bookSymptoms)
	if name == "" || doctor == "" || symptoms == "" {
		return nil, errors.New("--name, --doctor and --symptoms are required")
	}

	scheduledAt := time.Now()
	if bookAt != "" {
		parsed, err := time.Parse(time.RFC3339, bookAt)
		if err != nil {
			return nil, fmt.Errorf("invalid --at value %q, want RFC3339: %w", bookAt, err)
		}
		scheduledAt = parsed
	}

	wallet, err := walletAddress()
	if err != nil {
		return nil, err
	}

	return &domain.AppointmentRequest{
		User:        name,
		Doctor:      doctor,
		Symptoms:    symptoms,
		ScheduledAt: scheduledAt,
		Wallet:      wallet,
	}, nil
}

// signContentID connects the wallet and signs the content ID. A denied
// signature is not an error; the booking stands unsigned.
func signContentID(cmd *cobra.Command, contentID string) (*domain.SignatureProof, error) {
	_, sigService, err := connectWallet()
	if err != nil {
		return nil, fmt.Errorf("connect wallet: %w", err)
	}

	proof, err := sigService.Sign(context.Background(), contentID)
	if err != nil {
		return nil, fmt.Errorf("sign content ID: %w", err)
	}
	if proof == nil {
		cmd.Println("Signature request denied; the record is pinned but unsigned.")
	}
	return proof, nil
}

func outputBookText(cmd *cobra.Command, state *domain.AppointmentState, proof *domain.SignatureProof) error {
	if state.Rejected() {
		cmd.Println("These are not valid medical symptoms. Please enter symptoms a doctor can act on.")
		return nil
	}

	cmd.Printf("Appointment booked for %s with %s\n", state.User, state.Doctor)
	cmd.Println()
	cmd.Println(state.Explanation)
	cmd.Println()

	if !state.Archived() {
		cmd.Println("Warning: uploading the record failed. The appointment is noted locally only.")
		return nil
	}

	cmd.Printf("Record pinned: %s\n", state.ContentID)
	if proof != nil {
		cmd.Printf("Signed by %s: %s\n", proof.SignerAddress, hex.EncodeToString(proof.Signature))
	}
	return nil
}

func outputBookJSON(cmd *cobra.Command, state *domain.AppointmentState, proof *domain.SignatureProof) error {
	out := struct {
		Valid       bool                        `json:"valid_symptoms"`
		Explanation string                      `json:"explanation,omitempty"`
		ContentID   string                      `json:"content_id,omitempty"`
		Signature   *domain.SignatureProof      `json:"signature,omitempty"`
		Record      domain.PersistedAppointment `json:"record"`
	}{
		Valid:       state.IsSymptomValid,
		Explanation: state.Explanation,
		ContentID:   state.ContentID,
		Signature:   proof,
		Record:      state.Record(),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
