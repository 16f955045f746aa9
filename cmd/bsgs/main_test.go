package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/bsgs/cmd/utils"
)

// runBsgs runs a fresh copy of the application and returns what it wrote to
// its standard output.
func runBsgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"bsgs", "--verbosity", "0"}, args...))
	return out.String(), err
}

func TestSolve(t *testing.T) {
	out, err := runBsgs(t, "solve", "--p", "13", "--g", "2", "--h", "6", "--bound", "4")
	require.NoError(t, err)
	assert.Equal(t, "x = 5\n", out)
}

func TestSolveHexInput(t *testing.T) {
	out, err := runBsgs(t, "solve", "--p", "0x3fb", "--g", "2", "--h", "0x224", "-B", "32")
	require.NoError(t, err)
	// 2^100 mod 1019 = 548
	assert.Equal(t, "x = 100\n", out)
}

func TestSolveJSON(t *testing.T) {
	out, err := runBsgs(t, "solve", "--p", "13", "--g", "2", "--h", "6", "--bound", "4", "--json")
	require.NoError(t, err)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, true, res["found"])
	assert.Equal(t, "5", res["x"])
	assert.Equal(t, float64(1), res["giantStep"])
	assert.Equal(t, float64(1), res["babyStep"])
	assert.NotContains(t, res, "stats")
}

func TestSolveNotFound(t *testing.T) {
	// 2^500 mod 1019 = 611, out of reach of a table of 10 entries.
	out, err := runBsgs(t, "solve", "--p", "1019", "--g", "2", "--h", "611", "--bound", "10")
	require.NoError(t, err)
	assert.Equal(t, "no solution found in [0, 10²)\n", out)

	out, err = runBsgs(t, "solve", "--p", "1019", "--g", "2", "--h", "611", "--bound", "10", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"found": false}`, out)
}

func TestSolveZeroIndex(t *testing.T) {
	// 2^4 = 3 (mod 13) is met at x0 = 1, x1 = 0.
	out, err := runBsgs(t, "solve", "--p", "13", "--g", "2", "--h", "3", "--bound", "4")
	require.NoError(t, err)
	assert.Equal(t, "no solution found in [0, 4²)\n", out)

	out, err = runBsgs(t, "solve", "--p", "13", "--g", "2", "--h", "3", "--bound", "4", "--accept-zero-index")
	require.NoError(t, err)
	assert.Equal(t, "x = 4\n", out)
}

func TestSolveStats(t *testing.T) {
	out, err := runBsgs(t, "solve", "--p", "13", "--g", "3", "--h", "9", "--bound", "4", "--backend", "big", "--stats")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "no solution found"), out)
	assert.Contains(t, out, "Table size")
	assert.Contains(t, out, "Collisions")
	assert.Contains(t, out, "big")
	assert.Contains(t, out, "Resident memory")
	assert.Contains(t, out, "Memory growth")

	out, err = runBsgs(t, "solve", "--p", "13", "--g", "3", "--h", "9", "--bound", "4", "--json", "--stats")
	require.NoError(t, err)
	var res struct {
		Found bool
		Stats solveStats
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Found)
	assert.Equal(t, 3, res.Stats.TableSize)
	assert.Equal(t, uint64(1), res.Stats.Collisions)
	assert.True(t, res.Stats.Matched)
	assert.NotEmpty(t, res.Stats.Memory)
	assert.NotEmpty(t, res.Stats.Growth)
}

func TestSignedSize(t *testing.T) {
	assert.Equal(t, "0.00 B", signedSize(0))
	assert.Equal(t, "2.00 KiB", signedSize(2048))
	assert.Equal(t, "-2.00 KiB", signedSize(-2048))
}

func TestSolveProgress(t *testing.T) {
	app := newApp()
	var out, progress bytes.Buffer
	app.Writer, app.ErrWriter = &out, &progress
	err := app.Run([]string{"bsgs", "--verbosity", "0", "solve", "--p", "1019", "--g", "2", "--h", "548",
		"--bound", "32", "--check-interval", "4", "--progress"})
	require.NoError(t, err)
	assert.Equal(t, "x = 100\n", out.String())
}

func TestSolveTimeout(t *testing.T) {
	_, err := runBsgs(t, "solve", "--p", "1019", "--g", "2", "--h", "611", "--bound", "1000", "--timeout", "1ns")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "%v", err)
	assert.Equal(t, 1, exitCode(err))
}

func TestSolveInputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing h", []string{"--p", "13", "--g", "2"}},
		{"modulus too small", []string{"--p", "2", "--g", "1", "--h", "1"}},
		{"base out of range", []string{"--p", "13", "--g", "13", "--h", "6"}},
		{"target not a number", []string{"--p", "13", "--g", "2", "--h", "six"}},
		{"negative", []string{"--p", "13", "--g", "-2", "--h", "6"}},
		{"zero bound", []string{"--p", "13", "--g", "2", "--h", "6", "--bound", "0"}},
		{"huge bound", []string{"--p", "13", "--g", "2", "--h", "6", "--bound", "8589934592"}},
		{"unknown backend", []string{"--p", "13", "--g", "2", "--h", "6", "--backend", "gmp"}},
		{"bad bound", []string{"--p", "13", "--g", "2", "--h", "6", "--bound", "four"}},
		{"unknown flag", []string{"--p", "13", "--g", "2", "--h", "6", "--frobnicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runBsgs(t, append([]string{"solve"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(err), "%v", err)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(&utils.InputError{Name: "p", Reason: "missing value"}))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestModPowModInv(t *testing.T) {
	out, err := runBsgs(t, "modpow", "2", "10", "1000")
	require.NoError(t, err)
	assert.Equal(t, "24\n", out)

	out, err = runBsgs(t, "modpow", "0x10", "2", "100")
	require.NoError(t, err)
	assert.Equal(t, "56\n", out)

	out, err = runBsgs(t, "modinv", "3", "7")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	_, err = runBsgs(t, "modinv", "14", "21")
	assert.Equal(t, 2, exitCode(err), "%v", err)

	_, err = runBsgs(t, "modpow", "2", "10", "0")
	assert.Equal(t, 2, exitCode(err), "%v", err)

	_, err = runBsgs(t, "modpow", "2", "10")
	assert.Equal(t, 2, exitCode(err), "%v", err)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "bsgs.toml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestSolveConfigFile(t *testing.T) {
	file := writeConfig(t, `
[Group]
P = "13"
G = "2"
H = "6"

[Solver]
Bound = 4
`)
	out, err := runBsgs(t, "solve", "--config", file)
	require.NoError(t, err)
	assert.Equal(t, "x = 5\n", out)

	// Flags take precedence over the file.
	out, err = runBsgs(t, "solve", "--config", file, "--h", "3", "--accept-zero-index")
	require.NoError(t, err)
	assert.Equal(t, "x = 4\n", out)
}

type fixedPrompter struct {
	answers []string
}

func (f *fixedPrompter) PromptInput(string) (string, error) {
	if len(f.answers) == 0 {
		return "", io.EOF
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fixedPrompter) Close() error { return nil }

func usePrompter(t *testing.T, answers ...string) {
	t.Helper()
	saved := newPrompter
	newPrompter = func() utils.Prompter { return &fixedPrompter{answers: answers} }
	t.Cleanup(func() { newPrompter = saved })
}

func TestPrompt(t *testing.T) {
	usePrompter(t, "13", "2", "6")
	out, err := runBsgs(t, "prompt", "--bound", "4")
	require.NoError(t, err)
	assert.Equal(t, "x = 5\n", out)

	usePrompter(t, "13", "13", "6")
	_, err = runBsgs(t, "prompt", "--bound", "4")
	assert.Equal(t, 2, exitCode(err), "%v", err)
}

// TestPromptConfigFile checks that the prompt command takes the solver
// settings from the config file but never its group.
func TestPromptConfigFile(t *testing.T) {
	file := writeConfig(t, `
[Group]
P = "13"
G = "2"
H = "6"

[Solver]
Bound = 32
`)
	usePrompter(t, "1019", "2", "548")
	out, err := runBsgs(t, "prompt", "--config", file)
	require.NoError(t, err)
	assert.Equal(t, "x = 100\n", out)
}

func TestLoadConfig(t *testing.T) {
	var cfg bsgsConfig
	require.NoError(t, loadConfig(writeConfig(t, "[Solver]\nBound = 64\nBackend = \"big\"\n"), &cfg))
	assert.Equal(t, uint64(64), cfg.Solver.Bound)
	assert.Equal(t, "big", string(cfg.Solver.Backend))

	err := loadConfig(writeConfig(t, "[Solver]\nBuond = 64\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not defined")

	_, err = runBsgs(t, "solve", "--config", writeConfig(t, "[Solver]\nBuond = 64\n"), "--p", "13", "--g", "2", "--h", "6")
	assert.Equal(t, 2, exitCode(err), "%v", err)

	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "missing.toml"), &cfg))
}

func TestDumpConfig(t *testing.T) {
	out, err := runBsgs(t, "dumpconfig", "--p", "13", "--bound", "16", "--backend", "u256")
	require.NoError(t, err)
	assert.Contains(t, out, "[Solver]")
	assert.Contains(t, out, "Bound = 16")
	assert.Contains(t, out, `Backend = "u256"`)
	assert.Contains(t, out, `P = "13"`)

	// The dump must load back into the same configuration.
	var cfg bsgsConfig
	require.NoError(t, loadConfig(writeConfig(t, out), &cfg))
	assert.Equal(t, uint64(16), cfg.Solver.Bound)
	assert.Equal(t, "13", cfg.Group.P)
}

func TestVersion(t *testing.T) {
	out, err := runBsgs(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Bsgs")
	assert.Contains(t, out, "Version:")
}
