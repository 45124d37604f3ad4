package driving

import (
	"context"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

// BookingService runs the appointment booking pipeline.
type BookingService interface {
	// Book runs a request through intake, symptom validation, explanation
	// and persistence, returning the terminal state.
	//
	// A rejected symptom description is a normal outcome: the returned
	// state has IsSymptomValid false and a nil error. Generative model
	// failures abort the run with an error wrapping
	// domain.ErrExternalService. Upload failures do not abort; they leave
	// domain.ContentIDUploadFailed in the state.
	Book(ctx context.Context, req domain.AppointmentRequest) (*domain.AppointmentState, error)
}

// Advisor provides the two generative operations the pipeline needs.
type Advisor interface {
	// ClassifySymptoms reports whether the free text plausibly describes
	// medical symptoms. Only a reply containing "yes" (after trimming and
	// lowercasing) accepts; anything else, including ambiguous replies,
	// rejects.
	ClassifySymptoms(ctx context.Context, symptoms string) (bool, error)

	// Explain produces a point-form explanation of the symptoms with home
	// remedy suggestions.
	Explain(ctx context.Context, symptoms string) (string, error)
}
