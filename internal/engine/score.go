package engine

import "fmt"

// Mode is the difficulty a game is played at.
type Mode string

const (
	ModeEasy   Mode = "easy"
	ModeNormal Mode = "normal"
	ModeHard   Mode = "hard"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeEasy, ModeNormal, ModeHard:
		return m, nil
	case "":
		return ModeNormal, nil
	}
	return "", fmt.Errorf("unknown mode %q (want easy|normal|hard)", s)
}

const (
	BaseScore   = 10000
	TimePenalty = 5 // per elapsed second
)

type modeScoring struct {
	guessPenalty int
	multiplier   int // percent
}

var scoring = map[Mode]modeScoring{
	ModeEasy:   {guessPenalty: 800, multiplier: 100},
	ModeNormal: {guessPenalty: 600, multiplier: 150},
	ModeHard:   {guessPenalty: 400, multiplier: 200},
}

// Score rates a won game. The first guess is free; unknown modes score as normal.
func Score(guessCount, elapsedSeconds int, mode Mode) int {
	ms, ok := scoring[mode]
	if !ok {
		ms = scoring[ModeNormal]
	}
	penalized := max(guessCount-1, 0)
	raw := BaseScore - penalized*ms.guessPenalty - max(elapsedSeconds, 0)*TimePenalty
	if raw <= 0 {
		return 0
	}
	return raw * ms.multiplier / 100
}
