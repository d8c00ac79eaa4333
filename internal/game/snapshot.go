package game

import (
	"fmt"
	"slices"
	"time"

	"example.com/bc-1a2b/internal/engine"
)

// GameSnapshot is the serializable state of a game. The pool is not stored:
// it is rebuilt by replaying the log from the universe.
type GameSnapshot struct {
	GameID  string `json:"gameId"`
	Mode    string `json:"mode"`
	Secret  string `json:"secret"`
	OwnerID string `json:"ownerId,omitempty"`
	Status  string `json:"status"`

	Log []engine.GuessRecord `json:"log"`

	StartedAtMs  int64 `json:"startedAtMs"`
	FinishedAtMs int64 `json:"finishedAtMs"` // 0 while playing
	Submitted    bool  `json:"submitted"`
}

func (g *Game) snapshotLocked() GameSnapshot {
	return GameSnapshot{
		GameID:  g.id,
		Mode:    string(g.mode),
		Secret:  string(g.secret),
		OwnerID: g.ownerID,
		Status:  string(g.status),

		Log: slices.Clone(g.log),

		StartedAtMs:  toMs(g.startedAt),
		FinishedAtMs: toMs(g.finishedAt),
		Submitted:    g.submitted,
	}
}

func (g *Game) restoreLocked(s GameSnapshot) error {
	mode, err := engine.ParseMode(s.Mode)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", s.GameID, err)
	}
	secret, err := engine.ParseCode(s.Secret)
	if err != nil {
		return fmt.Errorf("snapshot %s: secret: %w", s.GameID, err)
	}
	if err := engine.ValidateLog(s.Log); err != nil {
		return fmt.Errorf("snapshot %s: log: %w", s.GameID, err)
	}

	switch st := Status(s.Status); st {
	case StatusPlaying, StatusWon, StatusAbandoned:
		g.status = st
	default:
		return fmt.Errorf("snapshot %s: unknown status %q", s.GameID, s.Status)
	}

	g.mode = mode
	g.secret = secret
	g.ownerID = s.OwnerID
	g.log = slices.Clone(s.Log)

	g.pool = engine.GenerateUniverse()
	if pools := engine.Replay(g.log); len(pools) > 0 {
		g.pool = pools[len(pools)-1]
	}

	g.startedAt = fromMs(s.StartedAtMs)
	g.finishedAt = fromMs(s.FinishedAtMs)
	g.submitted = s.Submitted
	return nil
}

func toMs(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMs(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
