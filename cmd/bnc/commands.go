package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bnc",
		Short: "Bulls & Cows (1A2B) in the terminal",
		Long: `bnc plays 4-digit Bulls & Cows against a random secret and
explains how each guess narrows the pool of consistent candidates.`,
		SilenceUsage: true,
	}
	root.AddCommand(newPlayCmd(), newReviewCmd(), newAnalyzeCmd())
	return root
}
