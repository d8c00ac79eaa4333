package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Review tags.
const (
	TagPerfectDecode   = "perfect decode"
	TagUniqueCandidate = "unique candidate"
	TagContradiction   = "contradiction"
	TagDecisive        = "decisive"
	TagStrong          = "strong"
	TagUseful          = "useful"
	TagMinor           = "minor"
	TagNoProgress      = "no progress"
)

// ReviewStep describes what one guess of a finished game taught the player.
type ReviewStep struct {
	Index            int         `json:"index"`
	Guess            Code        `json:"guess"`
	Feedback         Feedback    `json:"feedback"`
	PoolBefore       int         `json:"poolBefore"`
	PoolAfter        int         `json:"poolAfter"`
	ReductionPercent float64     `json:"reductionPercent"`
	NewlyImpossible  DigitSet    `json:"newlyImpossible"`
	NewlyConfirmed   map[int]int `json:"newlyConfirmed"`
	Tag              string      `json:"tag"`
	Insight          string      `json:"insight"`
}

type poolFacts struct {
	impossible DigitSet
	confirmed  map[int]int
}

func factsOf(p Pool) poolFacts {
	return poolFacts{impossible: ImpossibleDigits(p), confirmed: ConfirmedPositions(p)}
}

// ReconstructReview replays log from the full universe. It never looks at a
// live game's pool, so the i-th step always sees the same pool as Replay(log)[i-1].
func ReconstructReview(log []GuessRecord) []ReviewStep {
	steps := make([]ReviewStep, 0, len(log))
	pool := GenerateUniverse()
	before := factsOf(pool)

	for i, r := range log {
		next := FilterPool(pool, r.Guess, r.Feedback)
		after := factsOf(next)

		step := ReviewStep{
			Index:            i + 1,
			Guess:            r.Guess,
			Feedback:         r.Feedback,
			PoolBefore:       len(pool),
			PoolAfter:        len(next),
			ReductionPercent: reductionPercent(len(pool), len(next)),
			NewlyImpossible:  after.impossible &^ before.impossible,
			NewlyConfirmed:   newlyConfirmed(before.confirmed, after.confirmed),
		}
		step.Tag = tagFor(step)
		step.Insight = insightFor(step)
		steps = append(steps, step)

		pool, before = next, after
	}
	return steps
}

func reductionPercent(before, after int) float64 {
	if before == 0 {
		return 0
	}
	return float64(before-after) / float64(before) * 100
}

func newlyConfirmed(before, after map[int]int) map[int]int {
	out := make(map[int]int)
	for d, pos := range after {
		if prev, ok := before[d]; ok && prev == pos {
			continue
		}
		out[d] = pos
	}
	return out
}

func tagFor(s ReviewStep) string {
	switch {
	case s.Feedback.Solved():
		return TagPerfectDecode
	case s.PoolAfter == 1:
		return TagUniqueCandidate
	case s.PoolAfter == 0:
		return TagContradiction
	case s.ReductionPercent >= 90:
		return TagDecisive
	case s.ReductionPercent >= 70:
		return TagStrong
	case s.ReductionPercent >= 40:
		return TagUseful
	case s.ReductionPercent > 0:
		return TagMinor
	default:
		return TagNoProgress
	}
}

func insightFor(s ReviewStep) string {
	var parts []string
	if s.NewlyImpossible != 0 {
		parts = append(parts, "ruled out "+s.NewlyImpossible.String())
	}
	if len(s.NewlyConfirmed) > 0 {
		pins := make([]string, 0, len(s.NewlyConfirmed))
		for _, d := range slices.Sorted(maps.Keys(s.NewlyConfirmed)) {
			pins = append(pins, fmt.Sprintf("%d at position %d", d, s.NewlyConfirmed[d]+1))
		}
		parts = append(parts, "confirmed "+strings.Join(pins, ", "))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("pool narrowed to %d", s.PoolAfter)
	}
	return strings.Join(parts, "; ")
}
