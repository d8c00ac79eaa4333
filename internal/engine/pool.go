package engine

import "slices"

// Pool is a set of candidate codes. Pools are values: every operation in this
// package returns a new slice and never writes to its input.
type Pool []Code

func (p Pool) Len() int { return len(p) }

func (p Pool) Contains(c Code) bool { return slices.Contains(p, c) }

// Sample returns up to n members from the front of the pool.
func (p Pool) Sample(n int) []Code {
	if n > len(p) {
		n = len(p)
	}
	return slices.Clone(p[:n])
}

// GuessRecord is one entry of a game's append-only log.
type GuessRecord struct {
	Guess    Code     `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// ValidateLog checks every guess of a stored log at the input boundary.
func ValidateLog(log []GuessRecord) error {
	for _, r := range log {
		if _, err := ParseCode(string(r.Guess)); err != nil {
			return err
		}
		if !r.Feedback.Valid() {
			return &InvalidInputError{Input: r.Feedback.String(), Reason: "feedback out of range"}
		}
	}
	return nil
}
