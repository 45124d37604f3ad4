package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestDebug_SilentByDefault(t *testing.T) {
	defer reset()
	buf := new(bytes.Buffer)
	SetOutput(buf)

	Debug("should not appear %d", 1)

	assert.Empty(t, buf.String())
}

func TestDebug_PrintsWhenVerbose(t *testing.T) {
	defer reset()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(true)

	Debug("pinned %s", "QmXyz")

	assert.Equal(t, "[DEBUG] pinned QmXyz\n", buf.String())
}

func TestSection_PrintsHeader(t *testing.T) {
	defer reset()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(true)

	Section("Booking Pipeline")

	assert.Contains(t, buf.String(), "=== Booking Pipeline ===")
}

func TestIsVerbose(t *testing.T) {
	defer reset()

	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
}
