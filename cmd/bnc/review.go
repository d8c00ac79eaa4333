package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"example.com/bc-1a2b/internal/engine"
)

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <file.json>",
		Short: "Print the guess-by-guess review of a saved game log",
		Long: `review reads a JSON guess log, either a bare array of
{"guess":"1234","feedback":{"a":1,"b":2}} records or an object carrying it
under "log" (leaderboard entry) or "history" (game state).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			log, err := decodeLog(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			renderReview(cmd.OutOrStdout(), engine.ReconstructReview(log))
			return nil
		},
	}
}

func decodeLog(raw []byte) ([]engine.GuessRecord, error) {
	raw = bytes.TrimSpace(raw)

	var log []engine.GuessRecord
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &log); err != nil {
			return nil, fmt.Errorf("decode log: %w", err)
		}
	} else {
		var wrapped struct {
			Log     []engine.GuessRecord `json:"log"`
			History []engine.GuessRecord `json:"history"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("decode log: %w", err)
		}
		log = wrapped.Log
		if log == nil {
			log = wrapped.History
		}
	}

	if err := engine.ValidateLog(log); err != nil {
		return nil, err
	}
	return log, nil
}
