package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/contract-audit/pkg/config"
)

const vulnerableReport = `{"success": true, "results": {"detectors": [{"check":"reentrancy","impact":"Medium","description":"Reentrancy in Bank.withdraw()"},{"check":"suicidal","impact":"High","description":"Bank.kill() is unprotected"}]}}`

// isolate points HOME at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{config.EnvSlitherBinary, config.EnvSolcVersion, config.EnvContractPath, config.EnvFailOn} {
		t.Setenv(key, "")
	}
	return home
}

func fakeSlither(t *testing.T, stdout string, code int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake slither script needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "slither")
	script := "#!/bin/sh\nprintf '%s' '" + stdout + "'\nexit " + strconv.Itoa(code) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func contractFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Vulnerable.sol")
	require.NoError(t, os.WriteFile(path, []byte("contract Bank {}\n"), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeVulnerableContract(t *testing.T) {
	isolate(t)
	bin := fakeSlither(t, vulnerableReport, 1)
	contract := contractFile(t)

	out, err := run(t, "analyze", contract, "--slither-bin", bin, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "[*] Starting Slither analysis for: "+contract)
	assert.Contains(t, out, "Found 2 potential vulnerabilities")
	assert.Less(t, strings.Index(out, "IMPACT: HIGH"), strings.Index(out, "IMPACT: MEDIUM"))
}

func TestAnalyzeMissingContractExitsCleanly(t *testing.T) {
	isolate(t)
	out, err := run(t, "analyze", "contracts/DoesNotExist.sol", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "File not found: contracts/DoesNotExist.sol")
	assert.Contains(t, out, "failed or returned no valid results")
	assert.NotContains(t, out, "AUDIT REPORT")
}

func TestAnalyzeStrict(t *testing.T) {
	isolate(t)
	_, err := run(t, "analyze", "contracts/DoesNotExist.sol", "--strict", "--no-color")
	require.ErrorIs(t, err, errAnalysisFailed)

	bin := fakeSlither(t, "not-json", 1)
	out, err := run(t, "analyze", contractFile(t), "--slither-bin", bin, "--strict", "--no-color")
	require.ErrorIs(t, err, errAnalysisFailed)
	assert.Contains(t, out, "not valid JSON")
}

func TestAnalyzeFailOn(t *testing.T) {
	isolate(t)
	bin := fakeSlither(t, vulnerableReport, 1)
	contract := contractFile(t)

	_, err := run(t, "analyze", contract, "--slither-bin", bin, "--fail-on", "high", "--no-color")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 finding(s) at or above High impact")

	_, err = run(t, "analyze", contract, "--slither-bin", bin, "--fail-on", "Medium", "--no-color")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 finding(s)")

	_, err = run(t, "analyze", contract, "--slither-bin", bin, "--fail-on", "none", "--no-color")
	require.NoError(t, err)

	_, err = run(t, "analyze", contract, "--slither-bin", bin, "--fail-on", "critical", "--no-color")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestAnalyzeCleanContractWithFailOn(t *testing.T) {
	isolate(t)
	bin := fakeSlither(t, `{"success": true, "results": {"detectors": []}}`, 0)

	out, err := run(t, "analyze", contractFile(t), "--slither-bin", bin, "--fail-on", "informational", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "No vulnerabilities found")
}

func TestAnalyzeUsesEnvironment(t *testing.T) {
	isolate(t)
	bin := fakeSlither(t, vulnerableReport, 1)
	t.Setenv(config.EnvSlitherBinary, bin)
	t.Setenv(config.EnvContractPath, contractFile(t))

	out, err := run(t, "analyze", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 potential vulnerabilities")
}

func TestAnalyzeInvalidSolc(t *testing.T) {
	isolate(t)
	_, err := run(t, "analyze", contractFile(t), "--solc", "latest")
	require.Error(t, err)
}

func TestConfigSetAndShow(t *testing.T) {
	home := isolate(t)

	out, err := run(t, "config", "set", "--solc", "0.8.19", "--fail-on", "HIGH")
	require.NoError(t, err)
	assert.Contains(t, out, "solc=0.8.19")
	assert.Contains(t, out, "fail-on=high")

	_, err = os.Stat(filepath.Join(home, ".contract-audit", "config.yaml"))
	require.NoError(t, err)

	out, err = run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "solc_version: 0.8.19")
	assert.Contains(t, out, "fail_on: high")
	assert.Contains(t, out, "slither_binary: slither")
}

func TestConfigSetRequiresAFlag(t *testing.T) {
	isolate(t)
	_, err := run(t, "config", "set")
	require.Error(t, err)

	_, err = run(t, "config", "set", "--fail-on", "critical")
	require.Error(t, err)
}
