package game

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"example.com/bc-1a2b/internal/advice"
	"example.com/bc-1a2b/internal/engine"
	"example.com/bc-1a2b/internal/metrics"
)

var (
	ErrGameFinished     = errors.New("game already finished")
	ErrGameNotFinished  = errors.New("game is still in progress")
	ErrGameNotWon       = errors.New("only won games can be submitted")
	ErrAlreadySubmitted = errors.New("result already submitted")
)

// Game is one single-player session. The secret never leaves the game until
// it has finished; pool and log are replaced, never edited in place.
type Game struct {
	id string
	mu sync.Mutex

	mode    engine.Mode
	secret  engine.Code
	ownerID string // "" for guests

	pool   engine.Pool
	log    []engine.GuessRecord
	status Status

	startedAt  time.Time
	finishedAt time.Time
	submitted  bool

	now       func() time.Time
	conns     map[*ClientConn]struct{}
	onPersist func(GameSnapshot)
}

func NewGame(id string, mode engine.Mode, secret engine.Code) *Game {
	return &Game{
		id:        id,
		mode:      mode,
		secret:    secret,
		pool:      engine.GenerateUniverse(),
		status:    StatusPlaying,
		startedAt: time.Now(),
		now:       time.Now,
		conns:     make(map[*ClientConn]struct{}),
	}
}

func (g *Game) ID() string { return g.id }

func (g *Game) OwnerID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ownerID
}

func (g *Game) Attach(cc *ClientConn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.conns[cc] = struct{}{}
}

func (g *Game) Detach(cc *ClientConn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.conns, cc)
}

// SubmitGuess validates raw, scores it against the secret and narrows the pool.
func (g *Game) SubmitGuess(raw string) (GuessResultPayload, error) {
	guess, err := engine.ParseCode(raw)
	if err != nil {
		return GuessResultPayload{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusPlaying {
		return GuessResultPayload{}, ErrGameFinished
	}

	fb := engine.Evaluate(g.secret, guess)
	next, err := engine.Narrow(g.pool, guess, fb)
	if err != nil {
		// unreachable against a real secret; pool and log stay as they were
		metrics.ContradictoryFeedback.Inc()
		return GuessResultPayload{}, err
	}

	g.log = append(g.log, engine.GuessRecord{Guess: guess, Feedback: fb})
	g.pool = next
	if fb.Solved() {
		g.status = StatusWon
		g.finishedAt = g.now()
		metrics.GamesWon.WithLabelValues(string(g.mode)).Inc()
	}
	metrics.Guesses.Inc()
	metrics.PoolSizeAfterGuess.Observe(float64(len(next)))

	res := GuessResultPayload{Guess: guess, Feedback: fb, PoolSize: len(next), Status: g.status}
	g.broadcastLocked(Envelope{Type: "guess_result", Payload: mustJSON(res)})
	g.broadcastStateLocked()
	g.persistLocked()
	return res, nil
}

// Abandon gives up and reveals the secret. No score is awarded.
func (g *Game) Abandon() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusPlaying {
		return ErrGameFinished
	}
	g.status = StatusAbandoned
	g.finishedAt = g.now()

	g.broadcastStateLocked()
	g.persistLocked()
	return nil
}

func (g *Game) State() StatePayload {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buildStateLocked()
}

func (g *Game) Log() []engine.GuessRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.log)
}

// Review replays the finished game's log from scratch.
func (g *Game) Review() ([]engine.ReviewStep, error) {
	g.mu.Lock()
	if g.status == StatusPlaying {
		g.mu.Unlock()
		return nil, ErrGameNotFinished
	}
	log := slices.Clone(g.log)
	g.mu.Unlock()

	return engine.ReconstructReview(log), nil
}

// AdviceRequest is what the advice oracle is allowed to see.
func (g *Game) AdviceRequest(sampleSize int) advice.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return advice.Request{
		Log:      slices.Clone(g.log),
		PoolSize: len(g.pool),
		Sample:   g.pool.Sample(sampleSize),
	}
}

// Result is a won game as stored on the leaderboard.
type Result struct {
	Mode           engine.Mode
	GuessCount     int
	ElapsedSeconds int
	Score          int
	Log            []engine.GuessRecord
}

// ClaimResult hands out the result of a won game exactly once.
func (g *Game) ClaimResult() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusWon {
		return Result{}, ErrGameNotWon
	}
	if g.submitted {
		return Result{}, ErrAlreadySubmitted
	}
	g.submitted = true
	g.persistLocked()

	elapsed := g.elapsedLocked()
	return Result{
		Mode:           g.mode,
		GuessCount:     len(g.log),
		ElapsedSeconds: elapsed,
		Score:          engine.Score(len(g.log), elapsed, g.mode),
		Log:            slices.Clone(g.log),
	}, nil
}

// ReleaseResult undoes ClaimResult when the result could not be stored.
func (g *Game) ReleaseResult() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitted = false
	g.persistLocked()
}

func (g *Game) SendErrorTo(cc *ClientConn, code, message string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sendLocked(cc, Envelope{
		Type:    "error",
		Payload: mustJSON(ErrorPayload{Code: code, Message: message}),
	})
}

func (g *Game) SendStateTo(cc *ClientConn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sendLocked(cc, Envelope{Type: "state", Payload: mustJSON(g.buildStateLocked())})
}

func (g *Game) broadcastStateLocked() {
	if len(g.conns) == 0 {
		return
	}
	g.broadcastLocked(Envelope{Type: "state", Payload: mustJSON(g.buildStateLocked())})
}

func (g *Game) buildStateLocked() StatePayload {
	st := StatePayload{
		GameID:          g.id,
		Mode:            g.mode,
		Status:          g.status,
		History:         slices.Clone(g.log),
		PoolSize:        len(g.pool),
		ExcludedPercent: excludedPercent(len(g.pool)),
		ElapsedSeconds:  g.elapsedLocked(),
		Hints:           buildHints(g.mode, g.pool),
	}
	if st.History == nil {
		st.History = []engine.GuessRecord{}
	}
	if g.status != StatusPlaying {
		st.Secret = g.secret
	}
	if g.status == StatusWon {
		score := engine.Score(len(g.log), st.ElapsedSeconds, g.mode)
		st.Score = &score
	}
	return st
}

func (g *Game) elapsedLocked() int {
	end := g.finishedAt
	if end.IsZero() {
		end = g.now()
	}
	d := end.Sub(g.startedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func (g *Game) sendLocked(conn *ClientConn, env Envelope) {
	if conn == nil {
		return
	}
	b, _ := json.Marshal(env)
	select {
	case conn.send <- b:
	default:
		// slow reader: drop, the next state message supersedes this one
	}
}

func (g *Game) broadcastLocked(env Envelope) {
	for cc := range g.conns {
		g.sendLocked(cc, env)
	}
}

func (g *Game) persistLocked() {
	if g.onPersist == nil {
		return
	}
	g.onPersist(g.snapshotLocked())
}
