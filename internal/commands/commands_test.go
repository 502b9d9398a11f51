package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerkit/teller/internal/commands"
	"github.com/tellerkit/teller/internal/config"
)

func runTeller(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// workspace runs `teller init` in a temp dir and returns a function that
// runs further commands against that workspace's config.
func workspace(t *testing.T) (string, func(args ...string) (string, string, error)) {
	t.Helper()
	dir := t.TempDir()
	_, _, err := runTeller(t, "init", dir)
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, config.FileName)
	return dir, func(args ...string) (string, string, error) {
		return runTeller(t, append([]string{"--config", cfgPath}, args...)...)
	}
}

func accountNumber(t *testing.T, createOutput string) string {
	t.Helper()
	for _, line := range strings.Split(createOutput, "\n") {
		if after, ok := strings.CutPrefix(line, "Account number: "); ok {
			return strings.TrimSpace(after)
		}
	}
	t.Fatalf("no account number in output:\n%s", createOutput)
	return ""
}

func TestInit_CreatesWorkspace(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runTeller(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized teller workspace")

	data, err := os.ReadFile(filepath.Join(dir, "teller.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "path: database.json")

	ledgerData, err := os.ReadFile(filepath.Join(dir, "database.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(ledgerData))
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runTeller(t, "init", dir)
	require.NoError(t, err)

	_, _, err = runTeller(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runTeller(t, "init", dir, "--force")
	require.NoError(t, err)
}

func TestInit_KeepsExistingLedger(t *testing.T) {
	dir, teller := workspace(t)
	out, _, err := teller("create", "--name", "Ann", "--email", "a@x.com", "--phone", "1234567890", "--pin", "1234")
	require.NoError(t, err)
	no := accountNumber(t, out)

	_, _, err = runTeller(t, "init", dir, "--force")
	require.NoError(t, err)

	_, _, err = teller("details", "--account", no, "--pin", "1234")
	assert.NoError(t, err, "re-init must not wipe accounts")
}

func TestCLIScenario(t *testing.T) {
	dir, teller := workspace(t)

	out, _, err := teller("create", "--name", "Ann", "--email", "a@x.com", "--phone", "1234567890", "--pin", "1234")
	require.NoError(t, err)
	assert.Contains(t, out, "Account created successfully.")
	no := accountNumber(t, out)

	out, _, err = teller("deposit", "--account", no, "--pin", "1234", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance: 500")

	_, _, err = teller("withdraw", "--account", no, "--pin", "1234", "10001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per-transaction limit")

	_, _, err = teller("withdraw", "--account", no, "--pin", "1234", "600")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")

	out, _, err = teller("withdraw", "--account", no, "--pin", "1234", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance: 0")

	_, _, err = teller("delete", "--account", no, "--pin", "9999", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")

	out, _, err = teller("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total accounts: 1")

	_, _, err = teller("delete", "--account", no, "--pin", "1234", "--yes")
	require.NoError(t, err)

	_, _, err = teller("details", "--account", no, "--pin", "1234")
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "database.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestCreate_InvalidPhone(t *testing.T) {
	_, teller := workspace(t)
	_, _, err := teller("create", "--name", "Ann", "--email", "a@x.com", "--phone", "12345", "--pin", "1234")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid phone")
}

func TestCreate_RequiresFlags(t *testing.T) {
	_, teller := workspace(t)
	_, _, err := teller("create", "--name", "Ann")
	require.Error(t, err)
}

func TestDeposit_RejectsFraction(t *testing.T) {
	_, teller := workspace(t)
	out, _, err := teller("create", "--name", "Ann", "--email", "a@x.com", "--phone", "1234567890", "--pin", "1234")
	require.NoError(t, err)
	no := accountNumber(t, out)

	_, _, err = teller("deposit", "--account", no, "--pin", "1234", "10.50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a whole amount")
}

func TestDetails_PrintsRecord(t *testing.T) {
	_, teller := workspace(t)
	out, _, err := teller("create", "--name", "Ann", "--email", "a@x.com", "--phone", "1234567890", "--pin", "1234")
	require.NoError(t, err)
	no := accountNumber(t, out)

	out, _, err = teller("details", "--account", no, "--pin", "1234")
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Ann", rec["name"])
	assert.Equal(t, no, rec["Account no."])
	assert.InDelta(t, 0, rec["Balance"], 0)
}

func TestUpdate_WarnsOnIgnoredField(t *testing.T) {
	_, teller := workspace(t)
	out, _, err := teller("create", "--name", "Ann", "--email", "a@x.com", "--phone", "1234567890", "--pin", "1234")
	require.NoError(t, err)
	no := accountNumber(t, out)

	out, stderr, err := teller("update", "--account", no, "--pin", "1234", "--new-name", "Ann Lee", "--new-phone", "123")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: new phone ignored")
	assert.Contains(t, out, `"name": "Ann Lee"`)
	assert.Contains(t, out, `"phone no.": 1234567890`)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	_, teller := workspace(t)
	out, _, err := teller("create", "--name", "Ann", "--email", "a@x.com", "--phone", "1234567890", "--pin", "1234")
	require.NoError(t, err)
	no := accountNumber(t, out)

	_, _, err = teller("delete", "--account", no, "--pin", "1234")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	_, _, err = teller("details", "--account", no, "--pin", "1234")
	assert.NoError(t, err)
}

func TestCorruptLedgerWarns(t *testing.T) {
	dir, teller := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "database.json"), []byte("{broken"), 0o644))

	out, stderr, err := teller("status")
	require.NoError(t, err)
	assert.Contains(t, stderr, "continuing with an empty ledger")
	assert.Contains(t, out, "Total accounts: 0")
}

func TestStatus_ReportsIntegrityProblems(t *testing.T) {
	dir, teller := workspace(t)
	data := `[
    {"name": "Ann", "email": "a@x.com", "phone no.": 1234567890, "pin": 1234, "Account no.": "ab1CD2e34", "Balance": 5},
    {"name": "Bob", "email": "b@x.com", "phone no.": 1234567890, "pin": 4321, "Account no.": "ab1CD2e34", "Balance": -3}
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "database.json"), []byte(data), 0o644))

	out, _, err := teller("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total accounts: 2")
	assert.Contains(t, out, "Integrity: 2 problem(s)")
	assert.Contains(t, out, "duplicate of record 0")
	assert.Contains(t, out, "negative balance -3")
}

func TestStatus_Clean(t *testing.T) {
	_, teller := workspace(t)
	out, _, err := teller("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Integrity: ok")
	assert.Contains(t, out, "Limits: deposit 100000, withdrawal 10000 per transaction")
}

func TestDBFlagOverridesConfig(t *testing.T) {
	_, teller := workspace(t)
	other := filepath.Join(t.TempDir(), "other.json")

	_, _, err := teller("--db", other, "create", "--name", "Ann", "--email", "a@x.com", "--phone", "1234567890", "--pin", "1234")
	require.NoError(t, err)

	_, err = os.Stat(other)
	require.NoError(t, err)

	out, _, err := teller("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total accounts: 0")
}

func TestMissingConfigFlagFails(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nope", config.FileName)

	_, _, err := runTeller(t, "--config", cfgPath, "create", "--name", "Ann", "--email", "a@x.com", "--phone", "1234567890", "--pin", "1234")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no ledger may be written when the config is missing")
}
