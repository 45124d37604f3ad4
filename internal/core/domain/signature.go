package domain

// SignatureProof binds a wallet identity to a content identifier. It is
// verifiable on its own at any later time: recovering the signer address
// from (ContentID, Signature) must yield SignerAddress.
type SignatureProof struct {
	// ContentID is the signed message: the content identifier of a pinned
	// appointment record.
	ContentID string

	// Signature is the 65-byte secp256k1 signature over the EIP-191
	// personal-message hash of ContentID.
	Signature []byte

	// SignerAddress is the wallet address that produced the signature.
	SignerAddress string
}
