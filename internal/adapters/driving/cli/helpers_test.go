package cli

import (
	"context"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
)

// fakeLLM satisfies the model port with canned replies; Ping and Close
// record their calls.
type fakeLLM struct {
	reply      string
	pingErr    error
	pingCalls  int
	closeCalls int
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return f.reply, nil
}

func (f *fakeLLM) ModelName() string { return "fake-model" }

func (f *fakeLLM) Ping(_ context.Context) error {
	f.pingCalls++
	return f.pingErr
}

func (f *fakeLLM) Close() error {
	f.closeCalls++
	return nil
}

// fakeBooking returns a canned pipeline outcome.
type fakeBooking struct {
	state    *domain.AppointmentState
	err      error
	lastReq  domain.AppointmentRequest
	bookCall int
}

func (f *fakeBooking) Book(_ context.Context, req domain.AppointmentRequest) (*domain.AppointmentState, error) {
	f.bookCall++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if f.state != nil {
		return f.state, nil
	}
	state := domain.NewAppointmentState(req)
	state.Explanation = "Rest and fluids."
	state.ContentID = "QmFake"
	return state, nil
}

// fakeDirectory serves canned records.
type fakeDirectory struct {
	records map[string][]domain.PersistedAppointment
	byCID   map[string]*domain.PersistedAppointment
	err     error
}

func (f *fakeDirectory) Save(_ context.Context, _ string, _ domain.PersistedAppointment) (string, error) {
	return "QmFake", f.err
}

func (f *fakeDirectory) ListByWallet(_ context.Context, wallet string) ([]domain.PersistedAppointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[wallet], nil
}

func (f *fakeDirectory) Fetch(_ context.Context, contentID string) (*domain.PersistedAppointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCID[contentID], nil
}

// fakeSignature verifies with a fixed verdict.
type fakeSignature struct {
	proof   *domain.SignatureProof
	err     error
	verdict bool
}

func (f *fakeSignature) Sign(_ context.Context, contentID string) (*domain.SignatureProof, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.proof != nil {
		f.proof.ContentID = contentID
	}
	return f.proof, nil
}

func (f *fakeSignature) Verify(_ string, _ []byte, _ string) bool {
	return f.verdict
}

// setupTestServices swaps the package services for fakes and returns a
// cleanup restoring the previous wiring.
func setupTestServices() func() {
	prevBooking := bookingService
	prevDirectory := appointmentDirectory
	prevSignature := signatureService
	prevSettings := settings
	prevLLM := llmService
	prevCache := recordCache

	bookingService = &fakeBooking{}
	appointmentDirectory = &fakeDirectory{}
	signatureService = &fakeSignature{verdict: true}
	settings = &domain.Settings{
		Wallet: domain.WalletSettings{Address: "0xPatient"},
	}
	llmService = nil
	recordCache = nil

	return func() {
		bookingService = prevBooking
		appointmentDirectory = prevDirectory
		signatureService = prevSignature
		settings = prevSettings
		llmService = prevLLM
		recordCache = prevCache
	}
}
