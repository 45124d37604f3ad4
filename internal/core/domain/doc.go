// Package domain defines the core business entities for MediChain.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AppointmentRequest: A validated booking request
//   - AppointmentState: The accumulator carried through the booking pipeline
//   - PersistedAppointment: The immutable record pinned to the content store
//   - SignatureProof: A wallet signature binding an identity to a content ID
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
