package driving

import (
	"context"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

// SignatureService produces and verifies signature proofs binding a wallet
// identity to a content identifier.
type SignatureService interface {
	// Sign asks the configured signer to sign a content identifier.
	// A declined signing request returns (nil, nil): absence of a proof,
	// not an error. Callers must treat a nil proof as "unsigned".
	Sign(ctx context.Context, contentID string) (*domain.SignatureProof, error)

	// Verify reports whether signature over message recovers the claimed
	// address (compared case-insensitively). It is pure and local, and
	// returns false for any malformed input; it never fails.
	Verify(message string, signature []byte, claimedAddress string) bool
}
