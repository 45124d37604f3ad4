package driven

import "context"

// Signer is an externally-controlled wallet identity capable of producing
// message signatures. The core never sees private key material; it only
// receives signatures and the signer's address.
//
// Implementations may include:
//   - A local encrypted keystore (CLI)
//   - A browser-injected provider relayed by an outer surface
type Signer interface {
	// Address returns the wallet address of the signing identity.
	Address() string

	// SignMessage signs msg using EIP-191 personal-message signing and
	// returns the 65-byte signature. A declined or cancelled signing
	// request returns domain.ErrSignatureDenied.
	SignMessage(ctx context.Context, msg string) ([]byte, error)
}
