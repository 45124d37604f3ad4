package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driving"
	"github.com/medichain-labs/medichain-cli/internal/logger"
)

// Ensure BookingService implements the interface.
var _ driving.BookingService = (*BookingService)(nil)

// BookingService coordinates the appointment booking pipeline. The pipeline
// is a sequential state machine with a single conditional branch: a request
// that fails symptom validation terminates early without persistence.
type BookingService struct {
	advisor   driving.Advisor
	directory driving.AppointmentDirectory
}

// NewBookingService creates a new booking service.
func NewBookingService(advisor driving.Advisor, directory driving.AppointmentDirectory) *BookingService {
	return &BookingService{
		advisor:   advisor,
		directory: directory,
	}
}

// Book runs a request through the pipeline and returns the terminal state.
//
// Failure handling is deliberately asymmetric. Classifier and explainer
// failures abort the run: without an explanation the appointment has no
// value to the patient. A persistence failure does not abort: the patient
// still gets the explanation, and the state carries the upload-failed
// sentinel instead of a content identifier.
func (s *BookingService) Book(ctx context.Context, req domain.AppointmentRequest) (*domain.AppointmentState, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("booking request: %w", err)
	}

	runID := uuid.NewString()
	logger.Section("Booking Pipeline")
	logger.Debug("Run %s: user=%q doctor=%q wallet=%s", runID, req.User, req.Doctor, req.Wallet)

	state := domain.NewAppointmentState(req)
	stage := domain.StageIntake

	for stage != domain.StageDone {
		// Cancellation is honoured at stage boundaries only; a stage that
		// already started runs to completion.
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("booking run %s cancelled at %s: %w", runID, stage, err)
		}

		next, err := s.step(ctx, stage, state)
		if err != nil {
			return nil, fmt.Errorf("booking run %s failed at %s: %w", runID, stage, err)
		}
		logger.Debug("Run %s: %s -> %s", runID, stage, next)
		stage = next
	}

	return state, nil
}

// step executes one pipeline stage against the state and returns the next
// stage. Stages only append to the state; none clears an earlier field.
func (s *BookingService) step(ctx context.Context, stage domain.Stage, state *domain.AppointmentState) (domain.Stage, error) {
	switch stage {
	case domain.StageIntake:
		// The caller already enforced non-empty fields; intake passes the
		// state through unchanged.
		return domain.StageValidate, nil

	case domain.StageValidate:
		valid, err := s.advisor.ClassifySymptoms(ctx, state.Symptoms)
		if err != nil {
			// No silent default validity: a classifier failure fails the run.
			return stage, fmt.Errorf("classify symptoms: %w", err)
		}
		state.IsSymptomValid = valid
		if !valid {
			logger.Info("Symptoms rejected by classifier")
			return domain.StageDone, nil
		}
		return domain.StageExplain, nil

	case domain.StageExplain:
		explanation, err := s.advisor.Explain(ctx, state.Symptoms)
		if err != nil {
			return stage, fmt.Errorf("explain symptoms: %w", err)
		}
		state.Explanation = explanation
		return domain.StagePersist, nil

	case domain.StagePersist:
		contentID, err := s.directory.Save(ctx, state.Wallet, state.Record())
		if err != nil {
			logger.Warn("Archival failed, returning explanation anyway: %v", err)
			state.ContentID = domain.ContentIDUploadFailed
			return domain.StageDone, nil
		}
		state.ContentID = contentID
		logger.Info("Appointment pinned: %s", contentID)
		return domain.StageDone, nil

	default:
		return stage, fmt.Errorf("unexpected pipeline stage %d", stage)
	}
}
