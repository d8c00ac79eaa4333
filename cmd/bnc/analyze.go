package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"example.com/bc-1a2b/internal/engine"
)

func newAnalyzeCmd() *cobra.Command {
	var show int
	cmd := &cobra.Command{
		Use:   "analyze <guess:AB>...",
		Short: "Narrow the candidate pool by observed feedback",
		Example: `  bnc analyze 1234:1A2B 5678:0A1B
  bnc analyze --show 50 0123:0A0B`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := make([]engine.GuessRecord, 0, len(args))
			for _, arg := range args {
				r, err := parseObservation(arg)
				if err != nil {
					return err
				}
				log = append(log, r)
			}
			return runAnalyze(cmd.OutOrStdout(), log, show)
		},
	}
	cmd.Flags().IntVarP(&show, "show", "n", 20, "list remaining candidates when the pool is at most this size")
	return cmd
}

// parseObservation reads "1234:1A2B".
func parseObservation(s string) (engine.GuessRecord, error) {
	g, f, ok := strings.Cut(s, ":")
	if !ok {
		return engine.GuessRecord{}, fmt.Errorf("%q: want guess:feedback, e.g. 1234:1A2B", s)
	}
	guess, err := engine.ParseCode(g)
	if err != nil {
		return engine.GuessRecord{}, err
	}
	fb, err := engine.ParseFeedback(f)
	if err != nil {
		return engine.GuessRecord{}, fmt.Errorf("%q: %w", s, err)
	}
	return engine.GuessRecord{Guess: guess, Feedback: fb}, nil
}

func runAnalyze(w io.Writer, log []engine.GuessRecord, show int) error {
	pool := engine.GenerateUniverse()
	for _, r := range log {
		next, err := engine.Narrow(pool, r.Guess, r.Feedback)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s  %d → %d\n", r.Guess, r.Feedback, len(pool), len(next))
		pool = next
	}

	fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("%d candidates remain", len(pool))))
	if d := engine.ImpossibleDigits(pool); d.Len() > 0 {
		fmt.Fprintf(w, "impossible digits: %s\n", d)
	}
	if c := engine.ConfirmedPositions(pool); len(c) > 0 {
		fmt.Fprintf(w, "confirmed: %s\n", formatConfirmed(c))
	}
	for pos, set := range engine.PositionalPossibilities(pool) {
		fmt.Fprintf(w, "position %d: %s\n", pos+1, set)
	}
	fmt.Fprintf(w, "digit rates: %s\n", formatRates(engine.DigitProbabilities(pool)))
	if len(pool) <= show {
		fmt.Fprintf(w, "candidates: %s\n", formatCodes(pool))
	}
	return nil
}
