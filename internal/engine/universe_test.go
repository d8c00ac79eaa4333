package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniverse(t *testing.T) {
	u := GenerateUniverse()
	require.Len(t, u, UniverseSize)

	seen := make(map[Code]bool, len(u))
	for _, c := range u {
		_, err := ParseCode(string(c))
		require.NoError(t, err, "member %q", c)
		require.False(t, seen[c], "duplicate %q", c)
		seen[c] = true
	}
	assert.Equal(t, Code("0123"), u[0])
	assert.Equal(t, Code("9876"), u[len(u)-1])
}

func TestGenerateUniverse_FreshSlice(t *testing.T) {
	a := GenerateUniverse()
	a[0] = "xxxx"
	b := GenerateUniverse()
	require.Equal(t, Code("0123"), b[0])
}

func TestPickSecret(t *testing.T) {
	first := func(n int) int { return 0 }
	last := func(n int) int { return n - 1 }
	assert.Equal(t, Code("0123"), pickSecret(first))
	assert.Equal(t, Code("9876"), pickSecret(last))

	for i := 0; i < 500; i++ {
		s := PickSecret()
		_, err := ParseCode(string(s))
		require.NoError(t, err)
	}
}

// Every sequence of draws (10*9*8*7 of them) must map to a distinct code, so
// a uniform intn gives a uniform secret.
func TestPickSecret_CoversUniverseOnce(t *testing.T) {
	seen := make(map[Code]int, UniverseSize)
	for a := range 10 {
		for b := range 9 {
			for c := range 8 {
				for d := range 7 {
					draws := []int{a, b, c, d}
					next := func(n int) int {
						v := draws[0]
						draws = draws[1:]
						require.Less(t, v, n)
						return v
					}
					seen[pickSecret(next)]++
				}
			}
		}
	}
	require.Len(t, seen, UniverseSize)
	for code, n := range seen {
		require.Equal(t, 1, n, code)
		_, err := ParseCode(string(code))
		require.NoError(t, err)
	}
}
