package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/fluxfee"
	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fluxfee version "+strings.TrimSpace(fluxfee.Version)+"\n", out)
}

func TestActionsCommand(t *testing.T) {
	out, err := execute(t, "actions")
	require.NoError(t, err)
	assert.Contains(t, out, domain.ActionSubmitFeePayment)
	assert.Contains(t, out, domain.ActionSubmitFeeClaim)
	assert.Contains(t, out, "priorityFee: number")
}

func TestActionsCommand_JSON(t *testing.T) {
	t.Cleanup(func() { _ = actionsCmd.Flags().Set("json", "false") })
	out, err := execute(t, "actions", "--json")
	require.NoError(t, err)

	var infos []domain.ActionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, domain.ActionSubmitFeeClaim, infos[0].Name)
}

func TestCallCommand_RequiresKeypair(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FLUXFEE_WALLET_KEYPAIR_PATH", "")
	t.Setenv("FLUXFEE_WALLET_PRIVATE_KEY", "")

	_, err := execute(t, "call", domain.ActionSubmitFeeClaim, "{}")
	assert.ErrorContains(t, err, "keypair")
}

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("unused"), []string{"action", `{"a":1}`})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)

	got, err = readInput(strings.NewReader("  {\"b\":2}\n"), []string{"action"})
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, got)

	got, err = readInput(strings.NewReader(`{"c":3}`), []string{"action", "-"})
	require.NoError(t, err)
	assert.Equal(t, `{"c":3}`, got)
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, domain.Success("ok", "5xSig"))
	assert.Equal(t, "✔ success 5xSig\n", buf.String(), "no colour when not a terminal")

	buf.Reset()
	printStatus(&buf, domain.Failure("Insufficient balance", "INSUFFICIENT_FUNDS"))
	assert.Equal(t, "✘ INSUFFICIENT_FUNDS Insufficient balance\n", buf.String())
}
