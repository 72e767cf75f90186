package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/nitecrawlers/pkg/dictionary"
	"github.com/jwebster45206/nitecrawlers/pkg/ledger"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
)

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "cli.db"))
	t.Setenv("CATALOG_PATH", filepath.Join(dir, "missing.json"))
	t.Setenv("ADVICE_URL", "")
	t.Setenv("STORE_NAMESPACE", "cli-test")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func runJSON[T any](t *testing.T, args ...string) T {
	t.Helper()
	out, err := run(t, append(args, "--json")...)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCLI_PlaySession(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Money:      $50")
	assert.Contains(t, out, "Onboarded:  false")

	_, err = run(t, "onboard", "20", "-f", "monthly")
	require.NoError(t, err)

	st := runJSON[statusView](t, "status")
	assert.True(t, st.Profile.Onboarded)
	assert.Equal(t, 20, st.Profile.Money)
	assert.Equal(t, profile.FrequencyMonthly, st.Profile.AllowanceFrequency)

	out, err = run(t, "decide", "skip", "Bubble Tea")
	require.NoError(t, err)
	assert.Contains(t, out, "Super saver! By skipping the Bubble Tea, you kept $8 in your pocket!")
	assert.Contains(t, out, "keep $32 a month")
	assert.Contains(t, out, "Tip: By saying 'No' today")

	out, err = run(t, "decide", "buy", "Lamp", "--price", "30", "--category", "home")
	require.NoError(t, err)
	assert.Contains(t, out, "You don't have enough money for the Lamp.")

	txs := runJSON[[]ledger.Transaction](t, "ledger")
	require.Len(t, txs, 2)
	assert.Equal(t, 1, txs[0].Day)
	assert.Equal(t, 2, txs[1].Day)
	assert.Equal(t, 20, txs[1].BalanceAfter)

	entries := runJSON[[]dictionary.Entry](t, "dictionary")
	require.Len(t, entries, 2)
	assert.Equal(t, "Bubble Tea", entries[0].Name)
	assert.Equal(t, "Lamp", entries[1].Name)

	out, err = run(t, "similar", "bubble")
	require.NoError(t, err)
	assert.Contains(t, out, "You already found Bubble Tea.")

	st = runJSON[statusView](t, "status")
	assert.Equal(t, 43, st.Profile.Literacy)
	assert.Equal(t, 3, st.Profile.GrowthStage)
	assert.Equal(t, 3, st.Profile.Day)
	assert.Equal(t, 1, st.Statistics.Skipped)
}

func TestCLI_Errors(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "decide", "steal", "Lamp")
	assert.ErrorContains(t, err, "unrecognized action")

	_, err = run(t, "onboard", "lots")
	assert.ErrorContains(t, err, "whole number")

	_, err = run(t, "onboard", "10", "-f", "daily")
	assert.ErrorIs(t, err, profile.ErrInvalidFrequency)

	_, err = run(t, "decide", "buy", "Refund", "--price", "-3")
	assert.Error(t, err)

	_, err = run(t, "reset")
	assert.ErrorContains(t, err, "--yes")

	_, err = run(t, "status", "--backend", "postgres")
	assert.ErrorContains(t, err, "STORAGE_BACKEND")

	st := runJSON[statusView](t, "status")
	assert.Equal(t, profile.Default(), st.Profile)
}

func TestCLI_Reset(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "onboard", "5")
	require.NoError(t, err)
	_, err = run(t, "decide", "later")
	require.NoError(t, err)

	out, err := run(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress erased.")

	st := runJSON[statusView](t, "status")
	assert.Equal(t, profile.Default(), st.Profile)
	assert.Empty(t, runJSON[[]ledger.Transaction](t, "ledger"))
}

func TestCLI_Scan(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "You spotted")

	_, err = run(t, "scan", "--decide", "skip")
	require.NoError(t, err)
	assert.Len(t, runJSON[[]ledger.Transaction](t, "ledger"), 1)
}
