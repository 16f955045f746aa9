package utils

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFatalf(t *testing.T) {
	if os.Getenv("BSGS_TEST_FATALF") == "1" {
		Fatalf("Failed to solve: %v", "boom")
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=^TestFatalf$")
	cmd.Env = append(os.Environ(), "BSGS_TEST_FATALF=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected exit error, got %v", err)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "Fatal: Failed to solve: boom")
}
