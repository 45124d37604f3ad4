package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or incomplete input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExternalService indicates the generative model endpoint failed
	// (transport, auth, rate limit, malformed response). Fatal to the
	// booking run that hit it; the whole booking may be retried.
	ErrExternalService = errors.New("external service failure")

	// ErrUploadFailed indicates the pinning gateway rejected or never
	// received an upload. Recoverable: the booking still returns its
	// explanation and marks the state with ContentIDUploadFailed.
	ErrUploadFailed = errors.New("upload failed")

	// ErrSignatureDenied indicates the signer declined to sign. This is
	// absence of a signature, not a failure; signing may be retried
	// independently of the booking.
	ErrSignatureDenied = errors.New("signature denied")

	// ErrLLMUnavailable indicates no generative model service is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrWalletUnavailable indicates no signer is configured, so sign
	// operations cannot be performed.
	ErrWalletUnavailable = errors.New("wallet unavailable")
)
