package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Davincible/rscodec/pkg/config"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloCodeword = "48656c6c6f9298cb83"

func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RSCODEC_CONFIG", filepath.Join(dir, "config.json"))
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand("test", nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--no-color"))

	err := root.Execute()
	return out.String(), err
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestEncodeCommand(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "encode", "--json", "-n", "4", "Hello")
	require.NoError(t, err)

	res := decodeJSON[EncodeResult](t, out)
	assert.Equal(t, helloCodeword, res.Hex)
	assert.Equal(t, "SGVsbG+SmMuD", res.Base64)
	assert.Equal(t, "9298cb83", res.Parity)
	assert.Equal(t, "Hello", res.Message)
	assert.Equal(t, 2, res.Capacity)
	assert.Equal(t, 9, res.Length)
	assert.Empty(t, res.Saved)
}

func TestEncodeFromStdinAndHex(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "Hello\n", "encode", "--json", "--stdin")
	require.NoError(t, err)
	assert.Equal(t, helloCodeword, decodeJSON[EncodeResult](t, out).Hex)

	out, err = runCLI(t, "", "encode", "--json", "--hex", "48656c6c6f")
	require.NoError(t, err)
	assert.Equal(t, helloCodeword, decodeJSON[EncodeResult](t, out).Hex)
}

func TestEncodeTextOutput(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "encode", "Hello")
	require.NoError(t, err)
	assert.Contains(t, out, "REED-SOLOMON CODEWORD")
	assert.Contains(t, out, helloCodeword)
	assert.Contains(t, out, "48 65 6c 6c 6f 92 98 cb 83")
}

func TestEncodeRejectsOversizedMessage(t *testing.T) {
	setupConfig(t)

	_, err := runCLI(t, "", "encode", "-n", "10", strings.Repeat("x", 250))
	assert.Error(t, err)

	_, err = runCLI(t, "", "encode", "-n", "0", "Hello")
	assert.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "decode", "--json", "-n", "4", helloCodeword)
	require.NoError(t, err)
	res := decodeJSON[DecodeResult](t, out)
	assert.False(t, res.Corrected)
	assert.Empty(t, res.Positions)
	assert.Equal(t, "Hello", res.Message)

	out, err = runCLI(t, "", "decode", "--json", "-n", "4", "--flip", "2", helloCodeword)
	require.NoError(t, err)
	res = decodeJSON[DecodeResult](t, out)
	assert.True(t, res.Corrected)
	assert.Equal(t, []int{2}, res.Positions)
	assert.Equal(t, "01", res.Magnitudes)
	assert.Equal(t, "Hello", res.Message)
	require.NotNil(t, res.Flipped)
	assert.Equal(t, 2, *res.Flipped)
	assert.Equal(t, "48656d6c6f9298cb83", res.Received)
}

func TestDecodeBase64WithTwoErrors(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "corrupt", "--json", "--positions", "0,7", "--bit", "5", helloCodeword)
	require.NoError(t, err)
	corrupted := decodeJSON[CorruptResult](t, out)
	assert.Equal(t, []int{0, 7}, corrupted.Positions)

	out, err = runCLI(t, "", "decode", "--json", "-n", "4", corrupted.Base64)
	require.NoError(t, err)
	res := decodeJSON[DecodeResult](t, out)
	assert.Equal(t, []int{0, 7}, res.Positions)
	assert.Equal(t, "2020", res.Magnitudes)
	assert.Equal(t, "48656c6c6f", res.MessageHex)
}

func TestDecodeUncorrectable(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "corrupt", "--json", "--positions", "0,1,2", helloCodeword)
	require.NoError(t, err)
	corrupted := decodeJSON[CorruptResult](t, out)

	_, err = runCLI(t, "", "decode", "-n", "4", corrupted.Hex)
	assert.ErrorIs(t, err, rs.ErrUncorrectable)
}

func TestDecodeInvalidInput(t *testing.T) {
	setupConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{"No codeword", []string{"decode"}},
		{"Garbage", []string{"decode", "!!"}},
		{"Flip out of range", []string{"decode", "--flip", "9", helloCodeword}},
		{"Bad bit", []string{"decode", "--flip", "1", "--bit", "8", helloCodeword}},
		{"Shorter than parity", []string{"decode", "-n", "10", helloCodeword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSessionWorkflow(t *testing.T) {
	dir := setupConfig(t)

	_, err := runCLI(t, "", "decode", "--session")
	assert.Error(t, err, "no session saved yet")

	out, err := runCLI(t, "", "encode", "--json", "--save", "-n", "6", "Hello")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "session.json"), decodeJSON[EncodeResult](t, out).Saved)

	out, err = runCLI(t, "", "decode", "--json", "--session", "--flip", "4", "--bit", "7")
	require.NoError(t, err)
	res := decodeJSON[DecodeResult](t, out)
	assert.Equal(t, []int{4}, res.Positions)
	assert.Equal(t, "80", res.Magnitudes)
	assert.Equal(t, "Hello", res.Message)
	require.NotNil(t, res.Matches)
	assert.True(t, *res.Matches)

	// the session keeps the clean codeword
	out, err = runCLI(t, "", "decode", "--json", "--session")
	require.NoError(t, err)
	assert.False(t, decodeJSON[DecodeResult](t, out).Corrected)
}

func TestEncryptedSession(t *testing.T) {
	setupConfig(t)
	t.Setenv(passphraseEnv, "hunter2")

	_, err := runCLI(t, "", "encode", "--encrypt", "Hello")
	require.NoError(t, err)

	out, err := runCLI(t, "", "decode", "--json", "--session", "--flip", "0")
	require.NoError(t, err)
	assert.Equal(t, "Hello", decodeJSON[DecodeResult](t, out).Message)

	t.Setenv(passphraseEnv, "wrong")
	_, err = runCLI(t, "", "decode", "--session")
	assert.Error(t, err)
}

func TestSweepCommand(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "sweep", "--json", "-n", "4", "Hello")
	require.NoError(t, err)
	res := decodeJSON[SweepResult](t, out)
	assert.Equal(t, 72, res.Trials)
	assert.Equal(t, 72, res.Recovered)
	assert.Zero(t, res.Failures)

	out, err = runCLI(t, "", "sweep", "--json", "-n", "4", "--errors", "3", "--samples", "50", "Hello")
	require.NoError(t, err)
	res = decodeJSON[SweepResult](t, out)
	assert.Equal(t, 50, res.Recovered+res.Detected+res.Miscorrected)

	out, err = runCLI(t, "", "sweep", "-n", "2", "Hi")
	require.NoError(t, err)
	assert.Contains(t, out, "Every pattern within capacity was recovered")
}

func TestInfoCommand(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "info", "--json", "-n", "4", "--length", "5")
	require.NoError(t, err)
	res := decodeJSON[InfoResult](t, out)
	assert.Equal(t, 2, res.Capacity)
	assert.Equal(t, 251, res.MaxMessageLength)
	assert.Equal(t, 9, res.CodewordLength)
	assert.Equal(t, "010f367840", res.Generator)

	_, err = runCLI(t, "", "info", "-n", "255")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	dir := setupConfig(t)

	out, err := runCLI(t, "", "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "config.json"))
	assert.Contains(t, out, filepath.Join(dir, "session.json"))

	out, err = runCLI(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"nsym": 4`)

	_, err = runCLI(t, "", "config", "init")
	require.NoError(t, err)
}

func TestExampleCommand(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "example")
	require.NoError(t, err)
	assert.Contains(t, out, "rscodec example bitflip")

	out, err = runCLI(t, "", "example", "bitflip")
	require.NoError(t, err)
	assert.Contains(t, out, "Located errors at [2] with values 01")
	assert.Contains(t, out, `Recovered "Hello"`)

	out, err = runCLI(t, "", "example", "limit")
	require.NoError(t, err)
	assert.Contains(t, out, rs.ErrUncorrectable.Error())

	_, err = runCLI(t, "", "example", "nope")
	assert.Error(t, err)
}

func TestCodewordInputFormat(t *testing.T) {
	setupConfig(t)

	out, err := runCLI(t, "", "decode", "--json", "--format", "base64", "SGVsbG+SmMuD")
	require.NoError(t, err)
	assert.Equal(t, "Hello", decodeJSON[DecodeResult](t, out).Message)

	// hex text is not valid base64 here and must not fall back to hex
	_, err = runCLI(t, "", "decode", "--format", "base64", helloCodeword)
	assert.Error(t, err)

	_, err = runCLI(t, "", "decode", "--format", "hex", "SGVsbG+SmMuD")
	assert.Error(t, err)

	out, err = runCLI(t, "", "corrupt", "--json", "--format", "base64", "--positions", "2", "SGVsbG+SmMuD")
	require.NoError(t, err)
	assert.Equal(t, "48656d6c6f9298cb83", decodeJSON[CorruptResult](t, out).Hex)

	_, err = runCLI(t, "", "corrupt", "--format", "ascii85", helloCodeword)
	assert.Error(t, err)
}

func TestConfiguredOutputFormat(t *testing.T) {
	dir := setupConfig(t)

	out, err := runCLI(t, "", "encode", "Hello")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Hex:"), strings.Index(out, "Base64:"))

	cm, err := config.NewConfigManagerAt(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	cm.GetConfig().Defaults.Format = "base64"
	require.NoError(t, cm.SaveConfig())

	out, err = runCLI(t, "", "encode", "Hello")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Base64:"), strings.Index(out, "Hex:"))

	out, err = runCLI(t, "", "corrupt", helloCodeword)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Base64: "), out)
}

func TestConfigInitRepairsInvalidFile(t *testing.T) {
	dir := setupConfig(t)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"defaults": {"nsym": 0}}`), 0600))

	_, err := runCLI(t, "", "config", "show")
	assert.Error(t, err)

	_, err = runCLI(t, "", "config", "init")
	require.NoError(t, err)

	out, err := runCLI(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"nsym": 4`)
}

func TestClearSession(t *testing.T) {
	dir := setupConfig(t)

	out, err := runCLI(t, "", "config", "clear-session")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved session")

	_, err = runCLI(t, "", "encode", "--save", "Hello")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "session.json"))

	out, err = runCLI(t, "", "config", "clear-session")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted session")
	assert.NoFileExists(t, filepath.Join(dir, "session.json"))

	_, err = runCLI(t, "", "decode", "--session")
	assert.Error(t, err)
}
