package engine

import "fmt"

// FilterPool keeps the candidates that would have produced fb for guess.
func FilterPool(pool Pool, guess Code, fb Feedback) Pool {
	out := make(Pool, 0, len(pool)/2)
	for _, c := range pool {
		if Evaluate(c, guess) == fb {
			out = append(out, c)
		}
	}
	return out
}

// ContradictoryFeedbackError is returned when feedback leaves no candidate.
type ContradictoryFeedbackError struct {
	Guess    Code
	Feedback Feedback
	Before   int
}

func (e *ContradictoryFeedbackError) Error() string {
	return fmt.Sprintf("feedback %s for %s is inconsistent with all %d candidates", e.Feedback, e.Guess, e.Before)
}

func (e *ContradictoryFeedbackError) Unwrap() error { return ErrContradictoryFeedback }

// Narrow is FilterPool for callers that must not continue with an empty pool.
func Narrow(pool Pool, guess Code, fb Feedback) (Pool, error) {
	next := FilterPool(pool, guess, fb)
	if len(next) == 0 {
		return nil, &ContradictoryFeedbackError{Guess: guess, Feedback: fb, Before: len(pool)}
	}
	return next, nil
}

// Replay filters the universe through log and returns the pool after each entry.
func Replay(log []GuessRecord) []Pool {
	out := make([]Pool, 0, len(log))
	pool := GenerateUniverse()
	for _, r := range log {
		pool = FilterPool(pool, r.Guess, r.Feedback)
		out = append(out, pool)
	}
	return out
}
