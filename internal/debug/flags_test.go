package debug

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	defer log.SetDefault(log.Root())

	var buf bytes.Buffer
	require.NoError(t, setup(&buf, "json", 3, false))
	log.Info("Solved", "x", 5)
	log.Debug("Hidden at info level")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "Solved", entry["msg"])
	assert.Equal(t, float64(5), entry["x"])
}

func TestSetupTerminalVerbosity(t *testing.T) {
	defer log.SetDefault(log.Root())

	var buf bytes.Buffer
	require.NoError(t, setup(&buf, "terminal", 4, false))
	log.Debug("Calculating l-value table", "entries", 4)
	assert.Contains(t, buf.String(), "Calculating l-value table")
	assert.Contains(t, buf.String(), "entries=4")
}

func TestSetupInvalid(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, setup(&buf, "xml", 3, false))
	assert.Error(t, setup(&buf, "terminal", 9, false))
}
