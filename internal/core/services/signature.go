package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driving"
	"github.com/medichain-labs/medichain-cli/internal/logger"
)

// Ensure SignatureService implements the interface.
var _ driving.SignatureService = (*SignatureService)(nil)

// signatureLength is the length of a recoverable secp256k1 signature:
// 32 bytes R, 32 bytes S, 1 byte recovery ID.
const signatureLength = 65

// SignatureService produces and verifies signature proofs over content
// identifiers. Signing delegates to the configured signer; verification is
// pure EIP-191 personal-message recovery and needs no signer at all.
type SignatureService struct {
	signer driven.Signer
}

// NewSignatureService creates a new signature service. The signer may be
// nil, in which case only Verify is usable.
func NewSignatureService(signer driven.Signer) *SignatureService {
	return &SignatureService{signer: signer}
}

// Sign asks the signer to sign a content identifier. A declined request
// yields (nil, nil): the proof is simply absent and signing may be retried
// later, independently of the booking that produced the identifier.
func (s *SignatureService) Sign(ctx context.Context, contentID string) (*domain.SignatureProof, error) {
	if s.signer == nil {
		return nil, domain.ErrWalletUnavailable
	}

	signature, err := s.signer.SignMessage(ctx, contentID)
	if errors.Is(err, domain.ErrSignatureDenied) {
		logger.Info("Signing declined for %s", contentID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", contentID, err)
	}

	return &domain.SignatureProof{
		ContentID:     contentID,
		Signature:     signature,
		SignerAddress: s.signer.Address(),
	}, nil
}

// Verify reports whether signature over message recovers claimedAddress.
// Address comparison is case-insensitive. Malformed input of any kind
// yields false; verification failure is a common, expected outcome and is
// never surfaced as an error.
func (s *SignatureService) Verify(message string, signature []byte, claimedAddress string) bool {
	if len(signature) != signatureLength || claimedAddress == "" {
		return false
	}

	// Wallets emit the recovery ID as 27/28 per the original Ethereum
	// convention; crypto.SigToPub expects 0/1.
	sig := make([]byte, signatureLength)
	copy(sig, signature)
	if sig[signatureLength-1] >= 27 {
		sig[signatureLength-1] -= 27
	}
	if sig[signatureLength-1] > 1 {
		return false
	}

	hash := accounts.TextHash([]byte(message))
	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return false
	}

	recovered := crypto.PubkeyToAddress(*pubKey)
	return strings.EqualFold(recovered.Hex(), claimedAddress)
}
