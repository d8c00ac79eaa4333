package game

import (
	"encoding/json"

	"example.com/bc-1a2b/internal/engine"
)

// Envelope WS envelope: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// incoming

type CreateGamePayload struct {
	Mode string `json:"mode"`
}

type SubmitGuessPayload struct {
	Guess string `json:"guess"`
}

// outgoing

type Status string

const (
	StatusPlaying   Status = "playing"
	StatusWon       Status = "won"
	StatusAbandoned Status = "abandoned"
)

type GuessResultPayload struct {
	Guess    engine.Code     `json:"guess"`
	Feedback engine.Feedback `json:"feedback"`
	PoolSize int             `json:"poolSize"`
	Status   Status          `json:"status"`
}

// Hints carries only what the game's mode allows; absent fields are omitted.
type Hints struct {
	ImpossibleDigits        *engine.DigitSet                 `json:"impossibleDigits,omitempty"`
	ConfirmedPositions      map[int]int                      `json:"confirmedPositions,omitempty"`
	PositionalPossibilities *[engine.CodeLen]engine.DigitSet `json:"positionalPossibilities,omitempty"`
	DigitProbabilities      *engine.DigitRates               `json:"digitProbabilities,omitempty"`
	Candidates              []engine.Code                    `json:"candidates,omitempty"`
}

type StatePayload struct {
	GameID          string               `json:"gameId"`
	Mode            engine.Mode          `json:"mode"`
	Status          Status               `json:"status"`
	History         []engine.GuessRecord `json:"history"`
	PoolSize        int                  `json:"poolSize"`
	ExcludedPercent float64              `json:"excludedPercent"`
	ElapsedSeconds  int                  `json:"elapsedSeconds"`
	Hints           Hints                `json:"hints"`
	Secret          engine.Code          `json:"secret,omitempty"` // only once finished
	Score           *int                 `json:"score,omitempty"`  // only once won
}

type AdvicePayload struct {
	Advice string `json:"advice"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
