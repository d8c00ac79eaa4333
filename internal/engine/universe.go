package engine

import (
	"math/rand/v2"
	"slices"
	"sync"
)

// UniverseSize is 10*9*8*7.
const UniverseSize = 5040

var universe = sync.OnceValue(func() Pool {
	out := make(Pool, 0, UniverseSize)
	var buf [CodeLen]byte
	for n := 0; n < 10000; n++ {
		v := n
		var seen DigitSet
		ok := true
		for i := CodeLen - 1; i >= 0; i-- {
			d := v % 10
			v /= 10
			if seen.Has(d) {
				ok = false
				break
			}
			seen = seen.Add(d)
			buf[i] = byte('0' + d)
		}
		if ok {
			out = append(out, Code(buf[:]))
		}
	}
	return out
})

// GenerateUniverse returns every valid code in ascending order.
// The result is a fresh slice; callers may keep or discard it freely.
func GenerateUniverse() Pool {
	return slices.Clone(universe())
}

// PickSecret draws a code uniformly at random.
func PickSecret() Code {
	return pickSecret(rand.IntN)
}

// pickSecret samples four digits without replacement; intn(n) must return a value in [0, n).
func pickSecret(intn func(n int) int) Code {
	digits := []byte("0123456789")
	var out [CodeLen]byte
	for i := 0; i < CodeLen; i++ {
		j := intn(len(digits))
		out[i] = digits[j]
		digits = append(digits[:j], digits[j+1:]...)
	}
	return Code(out[:])
}
