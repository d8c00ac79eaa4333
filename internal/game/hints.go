package game

import "example.com/bc-1a2b/internal/engine"

const (
	positionalHintMax = 50 // positional possibilities shown at or below this pool size
	candidateListMax  = 20 // remaining candidates listed below this pool size
)

// buildHints applies the per-mode hint policy:
// easy sees everything, normal sees impossible digits and confirmed
// positions, hard sees only the pool size.
func buildHints(mode engine.Mode, pool engine.Pool) Hints {
	var h Hints
	if mode == engine.ModeHard {
		return h
	}

	impossible := engine.ImpossibleDigits(pool)
	h.ImpossibleDigits = &impossible
	h.ConfirmedPositions = engine.ConfirmedPositions(pool)
	if mode != engine.ModeEasy {
		return h
	}

	probs := engine.DigitProbabilities(pool)
	h.DigitProbabilities = &probs
	if len(pool) <= positionalHintMax {
		pp := engine.PositionalPossibilities(pool)
		h.PositionalPossibilities = &pp
	}
	if len(pool) < candidateListMax {
		h.Candidates = pool.Sample(len(pool))
	}
	return h
}

func excludedPercent(poolSize int) float64 {
	return (1 - float64(poolSize)/engine.UniverseSize) * 100
}
