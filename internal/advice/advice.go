// Package advice asks an external language model for a short, free-text hint.
// Nothing here is trusted: answers are shown verbatim and never feed back into
// the game.
package advice

import (
	"context"
	"fmt"
	"strings"

	"example.com/bc-1a2b/internal/engine"
)

// Fallback is shown when the oracle is unavailable.
const Fallback = "No hint available right now. Try a guess that reuses your best-scoring digits in new positions."

// sampleMax is the pool size at or below which candidates are shown to the model.
const sampleMax = 10

type Request struct {
	Log      []engine.GuessRecord
	PoolSize int
	Sample   []engine.Code
}

type Oracle interface {
	Advise(ctx context.Context, req Request) (string, error)
}

// Noop is used when no API key is configured.
type Noop struct{}

func (Noop) Advise(context.Context, Request) (string, error) { return Fallback, nil }

const systemPrompt = "You are a logic puzzle expert coaching a Bulls and Cows (1A2B) player. Be brief, friendly and encouraging."

// BuildPrompt renders the game so far for the model.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("The player is guessing a 4-digit number with no repeated digits.\n\n")
	b.WriteString("Guesses so far:\n")
	if len(req.Log) == 0 {
		b.WriteString("(none yet)\n")
	}
	for i, r := range req.Log {
		fmt.Fprintf(&b, "Round %d: guessed %s, result %s\n", i+1, r.Guess, r.Feedback)
	}
	fmt.Fprintf(&b, "\n%d possible answers remain.\n", req.PoolSize)
	if req.PoolSize <= sampleMax && len(req.Sample) > 0 {
		codes := make([]string, len(req.Sample))
		for i, c := range req.Sample {
			codes[i] = string(c)
		}
		fmt.Fprintf(&b, "Some possible answers: %s\n", strings.Join(codes, ", "))
	}
	b.WriteString("\nDo not reveal the answer unless only one remains. ")
	b.WriteString("Give a logical hint or strategy for the next guess and explain why some digits are good or bad choices.")
	return b.String()
}
