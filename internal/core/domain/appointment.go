package domain

import (
	"strings"
	"time"
)

// ContentIDUploadFailed is the sentinel ContentID written when pinning the
// appointment record fails. Callers must compare against this constant (or
// use AppointmentState.Archived) rather than treating any non-empty ContentID
// as a real identifier.
const ContentIDUploadFailed = "Upload failed"

// AppointmentRequest is a booking request as accepted from the caller.
// All fields are required and non-empty; the driving adapter validates
// them before the request enters the pipeline.
type AppointmentRequest struct {
	// User is the patient's display name.
	User string

	// Doctor is the chosen practitioner's name.
	Doctor string

	// Symptoms is the patient's free-text symptom description.
	Symptoms string

	// ScheduledAt is the requested appointment time.
	ScheduledAt time.Time

	// Wallet is the owning wallet address. It partitions storage and is
	// never embedded in the persisted record body.
	Wallet string
}

// Validate reports whether the request is complete enough to book.
func (r AppointmentRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.User) == "":
		return ErrInvalidInput
	case strings.TrimSpace(r.Doctor) == "":
		return ErrInvalidInput
	case strings.TrimSpace(r.Symptoms) == "":
		return ErrInvalidInput
	case r.ScheduledAt.IsZero():
		return ErrInvalidInput
	case strings.TrimSpace(r.Wallet) == "":
		return ErrInvalidInput
	}
	return nil
}

// AppointmentState is the accumulator carried through the booking pipeline.
// Stages only ever add to it; a later stage never clears a field written by
// an earlier one.
type AppointmentState struct {
	AppointmentRequest

	// IsSymptomValid is the classifier verdict. It defaults to true and is
	// only meaningful once the Validate stage has run.
	IsSymptomValid bool

	// Explanation is the generated medical explanation. Populated only when
	// IsSymptomValid is true.
	Explanation string

	// ContentID is the content identifier assigned by the pinning gateway,
	// or ContentIDUploadFailed when archival failed. Populated only after
	// an explanation was produced.
	ContentID string
}

// NewAppointmentState creates the initial pipeline state for a request.
func NewAppointmentState(req AppointmentRequest) *AppointmentState {
	return &AppointmentState{
		AppointmentRequest: req,
		IsSymptomValid:     true,
	}
}

// Rejected reports whether the run terminated on the invalid-symptoms branch.
func (s *AppointmentState) Rejected() bool {
	return !s.IsSymptomValid
}

// Archived reports whether the record was successfully pinned.
func (s *AppointmentState) Archived() bool {
	return s.ContentID != "" && s.ContentID != ContentIDUploadFailed
}

// Record builds the immutable persisted form of the state. The wallet is
// deliberately excluded; ownership is encoded in the storage name, not in
// the record body.
func (s *AppointmentState) Record() PersistedAppointment {
	return PersistedAppointment{
		User:        s.User,
		Doctor:      s.Doctor,
		Symptoms:    s.Symptoms,
		ScheduledAt: s.ScheduledAt.Format(time.RFC3339),
		Explanation: s.Explanation,
	}
}

// PersistedAppointment is the appointment record as pinned to the content
// store. Once uploaded it is logically immutable: any edit produces a new
// content identifier.
//
// The JSON keys are the wire contract with already-pinned records and must
// not change.
type PersistedAppointment struct {
	User        string `json:"user"`
	Doctor      string `json:"doctor"`
	Symptoms    string `json:"symptoms"`
	ScheduledAt string `json:"datetime"`
	Explanation string `json:"explanation"`
}

// appointmentNamespace is the per-wallet folder suffix under which records
// are named and listed. The staging file name and the pin metadata tag use
// the same convention so prefix listing keeps working.
const appointmentNamespace = "_appointments"

// WalletPrefix returns the listing prefix for a wallet's appointment records.
func WalletPrefix(wallet string) string {
	return wallet + appointmentNamespace + "/"
}

// timestampReplacer strips the characters that are unsafe in file names from
// an RFC 3339 timestamp.
var timestampReplacer = strings.NewReplacer(":", "-", ".", "-", "+", "-")

// AppointmentName builds the storage name for a record created at t, e.g.
// "0xabc_appointments/appointment_2026-01-02T15-04-05-000000001Z".
func AppointmentName(wallet string, t time.Time) string {
	ts := timestampReplacer.Replace(t.Format("2006-01-02T15:04:05.000000000Z07:00"))
	return WalletPrefix(wallet) + "appointment_" + ts
}

// Stage identifies a step of the booking pipeline. The pipeline is linear
// with a single conditional branch out of StageValidate.
type Stage int

// Pipeline stages in execution order.
const (
	StageIntake Stage = iota
	StageValidate
	StageExplain
	StagePersist
	StageDone
)

// String returns the stage name for logging.
func (st Stage) String() string {
	switch st {
	case StageIntake:
		return "intake"
	case StageValidate:
		return "validate"
	case StageExplain:
		return "explain"
	case StagePersist:
		return "persist"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}
