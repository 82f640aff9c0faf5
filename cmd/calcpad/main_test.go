package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with a config file that does not exist, so that the
// user's own configuration cannot affect results.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	return runWithConfig(t, cfg, stdin, args...)
}

func runWithConfig(t *testing.T, cfg, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", filepath.Dir(cfg))
	t.Setenv("HOME", filepath.Dir(cfg))
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalArgs(t *testing.T) {
	out, err := run(t, "", "eval", "3+4*2", "(1+2)*3", "8-3-2", "sin(0)", "2^3^2")
	require.NoError(t, err)
	assert.Equal(t, "11\n9\n3\n0\n64\n", out)
}

func TestEvalStdinLines(t *testing.T) {
	out, err := run(t, "1/4\n\n√(16)\n", "eval", "-n")
	require.NoError(t, err)
	assert.Equal(t, "0.25\n4\n", out)
}

func TestEvalStdinWhole(t *testing.T) {
	out, err := run(t, "1 +\n 2\n", "eval")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestEvalErrors(t *testing.T) {
	out, err := run(t, "", "eval", "(1+2", "1+", "2$", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 of 4")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "missing parenthesis")
	assert.Contains(t, lines[1], "calculation error")
	assert.Contains(t, lines[2], "invalid")
	assert.Equal(t, "5", lines[3])
}

func TestEvalEchoFormat(t *testing.T) {
	out, err := run(t, "", "eval", "--echo", "--fmt", "%.3f", "1+2*-3")
	require.NoError(t, err)
	assert.Equal(t, "1 2 -3 * + : -5.000\n", out)
}

func TestEvalFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(name, []byte("2*3\n10/4\n"), 0o644))
	out, err := run(t, "", "eval", "-n", "--in", name)
	require.NoError(t, err)
	assert.Equal(t, "6\n2.5\n", out)
}

func TestKeys(t *testing.T) {
	out, err := run(t, "", "keys", "1", ".", ".", "5", "+", "=")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "1    1", lines[0])
	assert.Contains(t, lines[2], "(ignored)")
	assert.Equal(t, "5    1.5", lines[3])
	assert.Contains(t, lines[5], "calculation error")
}

func TestKeysChain(t *testing.T) {
	out, err := run(t, "2 * 3 = + 1 =", "keys", "--chain")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "=      = 6", lines[3])
	assert.Equal(t, "+    6+", lines[4])
	assert.Equal(t, "=      = 7", lines[6])
}

func TestLoan(t *testing.T) {
	out, err := run(t, "", "loan", "--years", "1", "--amount", "100000", "--rate", "12", "--method", "principal", "--schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "monthly payment: 9333.33\n")
	assert.Contains(t, out, "total interest:  6500.00\n")
	assert.Contains(t, out, "total payment:   106500.00\n")
	// Header plus twelve months.
	assert.Equal(t, 3+1+12, strings.Count(out, "\n"))

	_, err = run(t, "", "loan", "--method", "balloon")
	assert.Error(t, err)

	_, err = run(t, "", "loan", "--years", "1e15", "--amount", "1000", "--rate", "5", "--schedule")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "calcpad.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("chain: true\nformat: \"%.1f\"\n"), 0o644))
	out, err := runWithConfig(t, cfg, "", "--config", cfg, "keys", "1", "=", "+", "1", "=")
	require.NoError(t, err)
	assert.Contains(t, out, "= 2")

	out, err = runWithConfig(t, cfg, "", "--config", cfg, "eval", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "0.3\n", out)

	// Flags override the file.
	out, err = runWithConfig(t, cfg, "", "--config", cfg, "--chain=false", "keys", "1", "=", "+")
	require.NoError(t, err)
	assert.Contains(t, out, "(ignored)")
}

func TestConfigMissing(t *testing.T) {
	_, err := run(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "eval", "1")
	assert.Error(t, err)
}
