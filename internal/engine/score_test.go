package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		guesses int
		elapsed int
		mode    Mode
		want    int
	}{
		{"first guess is free", 1, 0, ModeEasy, 10000},
		{"normal", 5, 30, ModeNormal, 11175},
		{"hard", 10, 100, ModeHard, 11800},
		{"floored at zero", 20, 2000, ModeEasy, 0},
		{"unknown mode scores as normal", 5, 30, Mode("weird"), 11175},
		{"negative elapsed ignored", 1, -10, ModeEasy, 10000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.guesses, tc.elapsed, tc.mode)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeNormal, m)

	m, err = ParseMode("hard")
	require.NoError(t, err)
	require.Equal(t, ModeHard, m)

	_, err = ParseMode("insane")
	require.Error(t, err)
}
