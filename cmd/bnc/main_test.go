package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/bc-1a2b/internal/engine"
)

func fixSecret(t *testing.T, secret engine.Code) {
	t.Helper()
	prev := secretSource
	secretSource = func() engine.Code { return secret }
	t.Cleanup(func() { secretSource = prev })
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestPlay_Win(t *testing.T) {
	fixSecret(t, "1234")

	out, err := run(t, "5678\n\n1243\n1234\n", "play", "--mode", "easy")
	require.NoError(t, err)

	assert.Contains(t, out, "0A0B  pool 360")
	assert.Contains(t, out, "impossible: 5, 6, 7, 8")
	assert.Contains(t, out, "solved in 3 guesses")
	assert.Contains(t, out, "perfect decode")
	assert.Contains(t, out, "ruled out 5, 6, 7, 8")
}

func TestPlay_HardModeShowsNoHints(t *testing.T) {
	fixSecret(t, "1234")

	out, err := run(t, "5678\n1234\n", "play", "-m", "hard")
	require.NoError(t, err)
	assert.NotContains(t, out, "impossible:")
	assert.Contains(t, out, "solved in 2 guesses")
}

func TestPlay_InvalidGuessKeepsPlaying(t *testing.T) {
	fixSecret(t, "1234")

	out, err := run(t, "1123\n12a4\n1234\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, `invalid code "1123"`)
	assert.Contains(t, out, `invalid code "12a4"`)
	assert.Contains(t, out, "solved in 1 guesses")
}

func TestPlay_QuitAndEOFGiveUp(t *testing.T) {
	fixSecret(t, "9876")

	out, err := run(t, "1234\nquit\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "gave up, the secret was 9876")

	out, err = run(t, "", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "gave up, the secret was 9876")
	assert.Contains(t, out, "no guesses to review")
}

func TestPlay_UnknownMode(t *testing.T) {
	_, err := run(t, "", "play", "--mode", "insane")
	require.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	out, err := run(t, "", "analyze", "5678:0A0B")
	require.NoError(t, err)
	assert.Contains(t, out, "5040 → 360")
	assert.Contains(t, out, "360 candidates remain")
	assert.Contains(t, out, "impossible digits: 5, 6, 7, 8")
	assert.NotContains(t, out, "candidates:")

	out, err = run(t, "", "analyze", "1234:4A0B")
	require.NoError(t, err)
	assert.Contains(t, out, "1 candidates remain")
	assert.Contains(t, out, "candidates: 1234")
}

func TestAnalyze_Contradiction(t *testing.T) {
	_, err := run(t, "", "analyze", "1234:4A0B", "1243:4A0B")
	require.ErrorIs(t, err, engine.ErrContradictoryFeedback)
}

func TestParseObservation(t *testing.T) {
	r, err := parseObservation("0123:1a2b")
	require.NoError(t, err)
	assert.Equal(t, engine.Code("0123"), r.Guess)
	assert.Equal(t, engine.Feedback{A: 1, B: 2}, r.Feedback)

	for _, bad := range []string{"0123", "0123:5A0B", "0012:1A0B", ":1A0B", "0123:AB"} {
		_, err := parseObservation(bad)
		assert.Error(t, err, bad)
	}
}

func TestReview_File(t *testing.T) {
	dir := t.TempDir()

	bare := filepath.Join(dir, "bare.json")
	require.NoError(t, os.WriteFile(bare, []byte(`[
		{"guess":"5678","feedback":{"a":0,"b":0}},
		{"guess":"1234","feedback":{"a":4,"b":0}}
	]`), 0o600))

	out, err := run(t, "", "review", bare)
	require.NoError(t, err)
	assert.Contains(t, out, "ruled out 5, 6, 7, 8")
	assert.Contains(t, out, "perfect decode")

	wrapped := filepath.Join(dir, "entry.json")
	require.NoError(t, os.WriteFile(wrapped, []byte(`{"nickname":"x","log":[{"guess":"1234","feedback":{"a":4,"b":0}}]}`), 0o600))
	out, err = run(t, "", "review", wrapped)
	require.NoError(t, err)
	assert.Contains(t, out, "perfect decode")
}

func TestDecodeLog_Invalid(t *testing.T) {
	_, err := decodeLog([]byte(`[{"guess":"1123","feedback":{"a":0,"b":0}}]`))
	require.ErrorIs(t, err, engine.ErrInvalidCode)

	_, err = decodeLog([]byte(`[{"guess":"1234","feedback":{"a":3,"b":3}}]`))
	require.ErrorIs(t, err, engine.ErrInvalidCode)

	_, err = decodeLog([]byte(`not json`))
	require.Error(t, err)
}
