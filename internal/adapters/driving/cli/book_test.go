package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

func resetBookFlags() {
	bookName = ""
	bookDoctor = ""
	bookSymptoms = ""
	bookAt = ""
	bookJSON = false
	bookSign = false
}

func TestBookCmd_Use(t *testing.T) {
	assert.Equal(t, "book", bookCmd.Use)
}

func TestBookCmd_Short(t *testing.T) {
	assert.Equal(t, "Book an appointment", bookCmd.Short)
}

func TestBookCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"name", "doctor", "symptoms", "at", "json", "sign"} {
		assert.NotNil(t, bookCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestBookCmd_RequiresFields(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetBookFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"book", "--name", "Ada"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--symptoms")
}

func TestBookCmd_BooksAndPrintsContentID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetBookFlags()

	fake := &fakeBooking{}
	bookingService = fake

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{
		"book",
		"--name", "Ada",
		"--doctor", "Dr. Wong",
		"--symptoms", "fever and cough",
		"--at", "2026-03-04T10:00:00Z",
	})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, 1, fake.bookCall)
	assert.Equal(t, "Ada", fake.lastReq.User)
	assert.Equal(t, "0xPatient", fake.lastReq.Wallet)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), fake.lastReq.ScheduledAt)

	out := buf.String()
	assert.Contains(t, out, "Appointment booked for Ada with Dr. Wong")
	assert.Contains(t, out, "Rest and fluids.")
	assert.Contains(t, out, "Record pinned: QmFake")
}

func TestBookCmd_InvalidSymptomsMessage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetBookFlags()

	state := domain.NewAppointmentState(domain.AppointmentRequest{
		User: "Ada", Doctor: "Dr. Wong", Symptoms: "xyzzy",
		ScheduledAt: time.Now(), Wallet: "0xPatient",
	})
	state.IsSymptomValid = false
	bookingService = &fakeBooking{state: state}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"book", "--name", "Ada", "--doctor", "Dr. Wong", "--symptoms", "xyzzy"})
	defer func() { rootCmd.SetArgs(nil) }()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "not valid medical symptoms")
	assert.NotContains(t, buf.String(), "Record pinned")
}

func TestBookCmd_UploadFailureWarning(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetBookFlags()

	state := domain.NewAppointmentState(domain.AppointmentRequest{
		User: "Ada", Doctor: "Dr. Wong", Symptoms: "fever",
		ScheduledAt: time.Now(), Wallet: "0xPatient",
	})
	state.Explanation = "Rest."
	state.ContentID = domain.ContentIDUploadFailed
	bookingService = &fakeBooking{state: state}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"book", "--name", "Ada", "--doctor", "Dr. Wong", "--symptoms", "fever"})
	defer func() { rootCmd.SetArgs(nil) }()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "uploading the record failed")
	assert.NotContains(t, buf.String(), "Record pinned")
}

func TestBookCmd_FailsFastWhenModelUnreachable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetBookFlags()

	fake := &fakeBooking{}
	bookingService = fake
	llm := &fakeLLM{pingErr: errors.New("connection refused")}
	llmService = llm

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"book", "--name", "Ada", "--doctor", "Dr. Wong", "--symptoms", "fever"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "medical model unreachable")
	assert.Equal(t, 1, llm.pingCalls)
	assert.Equal(t, 0, fake.bookCall, "pipeline must not start when the model is down")
}

func TestBookCmd_PingsModelBeforeBooking(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetBookFlags()

	llm := &fakeLLM{}
	llmService = llm

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"book", "--name", "Ada", "--doctor", "Dr. Wong", "--symptoms", "fever"})
	defer func() { rootCmd.SetArgs(nil) }()

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 1, llm.pingCalls)
}

func TestBookCmd_InvalidAtFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetBookFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"book", "--name", "Ada", "--doctor", "Dr. Wong", "--symptoms", "fever", "--at", "tomorrow"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RFC3339")
}

func TestBookCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetBookFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"book", "--name", "Ada", "--doctor", "Dr. Wong", "--symptoms", "fever", "--json"})
	defer func() { rootCmd.SetArgs(nil) }()

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, `"valid_symptoms": true`)
	assert.Contains(t, out, `"content_id": "QmFake"`)
	// The record body never carries the wallet.
	assert.NotContains(t, out, "0xPatient")
}
