package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"example.com/bc-1a2b/internal/engine"
	"example.com/bc-1a2b/internal/game"
)

// secretSource is replaced in tests.
var secretSource = engine.PickSecret

func newPlayCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game against a random secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := engine.ParseMode(mode)
			if err != nil {
				return err
			}
			return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), m, interactive())
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", string(engine.ModeNormal), "difficulty: easy|normal|hard")
	return cmd
}

func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runPlay(in io.Reader, out io.Writer, mode engine.Mode, prompt bool) error {
	g := game.NewGame("local", mode, secretSource())

	fmt.Fprintln(out, styles.Title.Render("Bulls & Cows ("+string(mode)+")"))
	fmt.Fprintln(out, styles.Muted.Render("guess 4 distinct digits; type quit to give up"))

	sc := bufio.NewScanner(in)
	for g.State().Status == game.StatusPlaying {
		if prompt {
			fmt.Fprint(out, "guess> ")
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read guess: %w", err)
			}
			// end of input gives up
			_ = g.Abandon()
			break
		}

		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "quit", "q":
			_ = g.Abandon()
			continue
		}

		res, err := g.SubmitGuess(line)
		if err != nil {
			fmt.Fprintln(out, styles.Error.Render(err.Error()))
			continue
		}
		fmt.Fprintf(out, "%s  %s  pool %d\n", res.Guess, styles.Highlight.Render(res.Feedback.String()), res.PoolSize)
		if res.Status == game.StatusPlaying {
			renderHints(out, g.State().Hints)
		}
	}

	st := g.State()
	switch st.Status {
	case game.StatusWon:
		fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("solved in %d guesses, score %d", len(st.History), *st.Score)))
	default:
		fmt.Fprintln(out, styles.Warning.Render("gave up, the secret was "+string(st.Secret)))
	}

	steps, err := g.Review()
	if err != nil {
		return err
	}
	renderReview(out, steps)
	return nil
}
