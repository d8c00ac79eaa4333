package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/bc-1a2b/internal/engine"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// newTestGame returns a game whose clock reads t0+elapsed.
func newTestGame(mode engine.Mode, secret engine.Code, elapsed time.Duration) *Game {
	g := NewGame("g1", mode, secret)
	g.startedAt = t0
	g.now = func() time.Time { return t0.Add(elapsed) }
	return g
}

func TestGame_WinFlow(t *testing.T) {
	g := newTestGame(engine.ModeNormal, "1234", 30*time.Second)

	res, err := g.SubmitGuess("5678")
	require.NoError(t, err)
	assert.Equal(t, engine.Feedback{}, res.Feedback)
	assert.Equal(t, 360, res.PoolSize)
	assert.Equal(t, StatusPlaying, res.Status)

	st := g.State()
	assert.Empty(t, st.Secret, "secret hidden while playing")
	assert.Nil(t, st.Score)
	assert.InDelta(t, 92.857, st.ExcludedPercent, 0.01)

	res, err = g.SubmitGuess(" 1234 ")
	require.NoError(t, err)
	assert.True(t, res.Feedback.Solved())
	assert.Equal(t, 1, res.PoolSize)
	assert.Equal(t, StatusWon, res.Status)

	st = g.State()
	assert.Equal(t, engine.Code("1234"), st.Secret)
	require.NotNil(t, st.Score)
	// (10000 - 1*600 - 30*5) * 1.5
	assert.Equal(t, 13875, *st.Score)
	assert.Equal(t, 30, st.ElapsedSeconds)
	assert.Len(t, st.History, 2)

	_, err = g.SubmitGuess("5678")
	require.ErrorIs(t, err, ErrGameFinished)
}

func TestGame_InvalidGuessLeavesStateUntouched(t *testing.T) {
	g := newTestGame(engine.ModeEasy, "1234", 0)

	for _, raw := range []string{"", "123", "12345", "1123", "12a4"} {
		_, err := g.SubmitGuess(raw)
		require.ErrorIs(t, err, engine.ErrInvalidCode, raw)
	}
	st := g.State()
	assert.Empty(t, st.History)
	assert.Equal(t, engine.UniverseSize, st.PoolSize)
	assert.NotNil(t, st.History, "history is [] not null")
}

func TestGame_Abandon(t *testing.T) {
	g := newTestGame(engine.ModeHard, "9876", 5*time.Second)
	_, err := g.SubmitGuess("1234")
	require.NoError(t, err)

	require.NoError(t, g.Abandon())
	require.ErrorIs(t, g.Abandon(), ErrGameFinished)

	st := g.State()
	assert.Equal(t, StatusAbandoned, st.Status)
	assert.Equal(t, engine.Code("9876"), st.Secret)
	assert.Nil(t, st.Score)

	_, err = g.ClaimResult()
	require.ErrorIs(t, err, ErrGameNotWon)
}

func TestGame_Review(t *testing.T) {
	g := newTestGame(engine.ModeNormal, "1234", 0)
	_, err := g.SubmitGuess("5678")
	require.NoError(t, err)

	_, err = g.Review()
	require.ErrorIs(t, err, ErrGameNotFinished)

	_, err = g.SubmitGuess("1234")
	require.NoError(t, err)
	steps, err := g.Review()
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, engine.TagPerfectDecode, steps[1].Tag)
	assert.Equal(t, 360, steps[0].PoolAfter)
}

func TestGame_ClaimResultOnce(t *testing.T) {
	g := newTestGame(engine.ModeEasy, "1234", 10*time.Second)
	_, err := g.ClaimResult()
	require.ErrorIs(t, err, ErrGameNotWon)

	_, err = g.SubmitGuess("1234")
	require.NoError(t, err)

	r, err := g.ClaimResult()
	require.NoError(t, err)
	assert.Equal(t, 1, r.GuessCount)
	assert.Equal(t, engine.Score(1, 10, engine.ModeEasy), r.Score)
	assert.Equal(t, engine.ModeEasy, r.Mode)

	_, err = g.ClaimResult()
	require.ErrorIs(t, err, ErrAlreadySubmitted)

	g.ReleaseResult()
	_, err = g.ClaimResult()
	require.NoError(t, err)
}

func TestGame_BroadcastsToAttachedClients(t *testing.T) {
	g := newTestGame(engine.ModeNormal, "1234", 0)
	cc := &ClientConn{send: make(chan []byte, 8)}
	g.Attach(cc)

	_, err := g.SubmitGuess("5678")
	require.NoError(t, err)

	var types []string
	for len(cc.send) > 0 {
		var env Envelope
		require.NoError(t, json.Unmarshal(<-cc.send, &env))
		types = append(types, env.Type)
	}
	assert.Equal(t, []string{"guess_result", "state"}, types)

	g.Detach(cc)
	_, err = g.SubmitGuess("1234")
	require.NoError(t, err)
	assert.Empty(t, cc.send)
	cc.Close()
	cc.Close()
}

func TestGame_AdviceRequestHidesSecret(t *testing.T) {
	g := newTestGame(engine.ModeNormal, "1234", 0)
	_, err := g.SubmitGuess("1243")
	require.NoError(t, err)

	req := g.AdviceRequest(3)
	assert.Equal(t, 6, req.PoolSize)
	assert.Len(t, req.Sample, 3)
	assert.Len(t, req.Log, 1)
}

func TestBuildHints(t *testing.T) {
	universe := engine.GenerateUniverse()
	small := engine.FilterPool(universe, "1243", engine.Feedback{A: 2, B: 2})
	require.Len(t, small, 6)

	t.Run("hard", func(t *testing.T) {
		assert.Equal(t, Hints{}, buildHints(engine.ModeHard, small))
	})
	t.Run("normal", func(t *testing.T) {
		h := buildHints(engine.ModeNormal, small)
		require.NotNil(t, h.ImpossibleDigits)
		assert.Equal(t, []int{0, 5, 6, 7, 8, 9}, h.ImpossibleDigits.Digits())
		assert.Nil(t, h.DigitProbabilities)
		assert.Nil(t, h.PositionalPossibilities)
		assert.Nil(t, h.Candidates)
	})
	t.Run("easy large pool", func(t *testing.T) {
		h := buildHints(engine.ModeEasy, universe)
		require.NotNil(t, h.DigitProbabilities)
		assert.InDelta(t, 0.4, h.DigitProbabilities[3], 1e-9)
		assert.Nil(t, h.PositionalPossibilities)
		assert.Nil(t, h.Candidates)
	})
	t.Run("easy small pool", func(t *testing.T) {
		h := buildHints(engine.ModeEasy, small)
		require.NotNil(t, h.PositionalPossibilities)
		assert.ElementsMatch(t, small, h.Candidates)
	})
}

func TestSnapshotRestore(t *testing.T) {
	g := newTestGame(engine.ModeEasy, "1234", 0)
	g.ownerID = "u1"
	for _, raw := range []string{"5678", "1243"} {
		_, err := g.SubmitGuess(raw)
		require.NoError(t, err)
	}
	g.mu.Lock()
	snap := g.snapshotLocked()
	g.mu.Unlock()

	// through JSON, as the stores do
	b, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded GameSnapshot
	require.NoError(t, json.Unmarshal(b, &decoded))

	r := NewGame("g1", "", "")
	require.NoError(t, r.restoreLocked(decoded))

	assert.Equal(t, g.pool, r.pool)
	assert.Equal(t, g.log, r.log)
	assert.Equal(t, "u1", r.ownerID)
	assert.Equal(t, engine.ModeEasy, r.mode)
	assert.Equal(t, g.startedAt.UnixMilli(), r.startedAt.UnixMilli())
	assert.True(t, r.finishedAt.IsZero())
}

func TestSnapshotRestore_Rejects(t *testing.T) {
	base := GameSnapshot{GameID: "g1", Mode: "normal", Secret: "1234", Status: "playing"}

	cases := map[string]func(s *GameSnapshot){
		"mode":   func(s *GameSnapshot) { s.Mode = "insane" },
		"secret": func(s *GameSnapshot) { s.Secret = "1123" },
		"status": func(s *GameSnapshot) { s.Status = "paused" },
		"log": func(s *GameSnapshot) {
			s.Log = []engine.GuessRecord{{Guess: "12", Feedback: engine.Feedback{}}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := base
			mutate(&s)
			require.Error(t, NewGame("g1", "", "").restoreLocked(s))
		})
	}
}
