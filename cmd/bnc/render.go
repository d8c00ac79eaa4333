package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"example.com/bc-1a2b/internal/engine"
	"example.com/bc-1a2b/internal/game"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorWarn   = lipgloss.Color("#F4D03F")
	colorError  = lipgloss.Color("#E74C3C")
)

var styles = struct {
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Header    lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted:     lipgloss.NewStyle().Foreground(colorMuted),
	Highlight: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Warning:   lipgloss.NewStyle().Foreground(colorWarn),
	Error:     lipgloss.NewStyle().Foreground(colorError),
	Header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
}

// renderHints prints whatever the mode let through; nil fields are skipped.
func renderHints(w io.Writer, h game.Hints) {
	if h.ImpossibleDigits != nil && h.ImpossibleDigits.Len() > 0 {
		fmt.Fprintf(w, "  impossible: %s\n", h.ImpossibleDigits)
	}
	if len(h.ConfirmedPositions) > 0 {
		fmt.Fprintf(w, "  confirmed:  %s\n", formatConfirmed(h.ConfirmedPositions))
	}
	if h.PositionalPossibilities != nil {
		for pos, set := range h.PositionalPossibilities {
			fmt.Fprintf(w, "  position %d: %s\n", pos+1, set)
		}
	}
	if h.DigitProbabilities != nil {
		fmt.Fprintf(w, "  digit rates: %s\n", formatRates(*h.DigitProbabilities))
	}
	if len(h.Candidates) > 0 {
		fmt.Fprintf(w, "  candidates: %s\n", formatCodes(h.Candidates))
	}
}

func renderReview(w io.Writer, steps []engine.ReviewStep) {
	if len(steps) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("no guesses to review"))
		return
	}
	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		rows = append(rows, []string{
			strconv.Itoa(s.Index),
			string(s.Guess),
			s.Feedback.String(),
			fmt.Sprintf("%d → %d", s.PoolBefore, s.PoolAfter),
			fmt.Sprintf("%.1f%%", s.ReductionPercent),
			s.Tag,
			s.Insight,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("#", "guess", "result", "pool", "cut", "tag", "insight").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func formatConfirmed(m map[int]int) string {
	parts := make([]string, 0, len(m))
	for _, d := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, fmt.Sprintf("%d at position %d", d, m[d]+1))
	}
	return strings.Join(parts, ", ")
}

func formatRates(r engine.DigitRates) string {
	parts := make([]string, 0, len(r))
	for d, p := range r {
		parts = append(parts, fmt.Sprintf("%d:%.0f%%", d, p*100))
	}
	return strings.Join(parts, " ")
}

func formatCodes(codes []engine.Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}
