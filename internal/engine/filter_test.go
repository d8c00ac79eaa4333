package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterPool_Scenarios(t *testing.T) {
	u := GenerateUniverse()

	t.Run("exact guess leaves only the secret", func(t *testing.T) {
		got := FilterPool(u, "1234", Evaluate("1234", "1234"))
		require.Equal(t, Pool{"1234"}, got)
	})

	t.Run("swapped tail keeps the secret", func(t *testing.T) {
		fb := Evaluate("1234", "1243")
		require.Equal(t, Feedback{A: 2, B: 2}, fb)

		got := FilterPool(u, "1243", fb)
		assert.Less(t, got.Len(), UniverseSize)
		assert.True(t, got.Contains("1234"))
		// permutations of {1,2,3,4} with exactly two fixed points
		assert.Len(t, got, 6)
	})

	t.Run("zero feedback removes the guessed digits", func(t *testing.T) {
		got := FilterPool(u, "1234", Feedback{})
		assert.Len(t, got, 6*5*4*3)
		for _, c := range got {
			assert.Equal(t, Feedback{}, Evaluate(c, "1234"))
		}
	})

	t.Run("input pool untouched", func(t *testing.T) {
		in := Pool{"1234", "5678", "1243"}
		_ = FilterPool(in, "1234", Feedback{A: 4})
		require.Equal(t, Pool{"1234", "5678", "1243"}, in)
	})
}

func TestFilterPool_SubsetAndIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	u := GenerateUniverse()
	for i := 0; i < 20; i++ {
		guess := pickSecret(r.IntN)
		secret := pickSecret(r.IntN)
		fb := Evaluate(secret, guess)

		once := FilterPool(u, guess, fb)
		require.LessOrEqual(t, once.Len(), u.Len())
		require.True(t, once.Contains(secret), "secret %s dropped by %s %s", secret, guess, fb)
		for _, c := range once {
			require.True(t, u.Contains(c))
		}

		twice := FilterPool(once, guess, fb)
		require.Equal(t, once, twice)
	}
}

func TestFilterPool_FeedbackPartitionsPool(t *testing.T) {
	u := GenerateUniverse()
	guess := MustCode("0369")
	total := 0
	for a := 0; a <= CodeLen; a++ {
		for b := 0; a+b <= CodeLen; b++ {
			total += FilterPool(u, guess, Feedback{A: a, B: b}).Len()
		}
	}
	require.Equal(t, UniverseSize, total)
}

func TestNarrow_Contradiction(t *testing.T) {
	pool := FilterPool(GenerateUniverse(), "1234", Feedback{A: 4})

	_, err := Narrow(pool, "5678", Feedback{A: 1})
	require.ErrorIs(t, err, ErrContradictoryFeedback)

	var ce *ContradictoryFeedbackError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 1, ce.Before)

	next, err := Narrow(pool, "5678", Feedback{})
	require.NoError(t, err)
	require.Equal(t, Pool{"1234"}, next)
}

func TestFilterPool_EmptyPool(t *testing.T) {
	got := FilterPool(nil, "1234", Feedback{A: 1})
	require.Empty(t, got)
}
