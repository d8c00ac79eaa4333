package game

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"example.com/bc-1a2b/internal/engine"
	"example.com/bc-1a2b/internal/metrics"
)

const persistTimeout = 3 * time.Second

// GameService owns:
// - the in-memory cache of live games
// - restoring games from persistent storage (Redis)
type GameService struct {
	mu sync.Mutex
	in map[string]*Game

	cfg     Config
	persist GamePersistence
	log     *slog.Logger

	secrets func() engine.Code
}

func NewGameService(cfg Config, persist GamePersistence, log *slog.Logger) *GameService {
	if log == nil {
		log = slog.Default()
	}
	return &GameService{
		in:      make(map[string]*Game),
		cfg:     cfg,
		persist: persist,
		log:     log,
		secrets: engine.PickSecret,
	}
}

// Create starts a new game with a fresh random secret.
func (s *GameService) Create(ctx context.Context, mode engine.Mode, ownerID string) (*Game, error) {
	gameID := randID(10)
	g := NewGame(gameID, mode, s.secrets())
	g.ownerID = ownerID
	g.onPersist = s.persistHook(gameID)

	g.mu.Lock()
	snap := g.snapshotLocked()
	g.mu.Unlock()
	if err := s.persist.Save(ctx, gameID, snap); err != nil {
		return nil, fmt.Errorf("save game %s: %w", gameID, err)
	}

	s.mu.Lock()
	s.in[gameID] = g
	s.mu.Unlock()

	metrics.GamesStarted.WithLabelValues(string(mode)).Inc()
	s.log.Info("game created", "gameId", gameID, "mode", mode)
	return g, nil
}

func (s *GameService) GetOrLoad(ctx context.Context, gameID string) (*Game, bool, error) {
	s.mu.Lock()
	g, ok := s.in[gameID]
	s.mu.Unlock()
	if ok {
		return g, true, nil
	}

	snap, found, err := s.persist.Load(ctx, gameID)
	if err != nil || !found {
		return nil, false, err
	}

	g = NewGame(gameID, "", "")
	g.mu.Lock()
	err = g.restoreLocked(snap)
	g.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	g.onPersist = s.persistHook(gameID)

	s.mu.Lock()
	// another request may have restored it meanwhile
	if cur, ok := s.in[gameID]; ok {
		g = cur
	} else {
		s.in[gameID] = g
	}
	s.mu.Unlock()

	return g, true, nil
}

// persistHook saves every change. A failed save is logged and never blocks play.
func (s *GameService) persistHook(gameID string) func(GameSnapshot) {
	return func(snap GameSnapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.persist.Save(ctx, gameID, snap); err != nil {
			s.log.Warn("persist game snapshot", "gameId", gameID, "err", err)
		}
	}
}

func randID(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}

// ValidGameID reports whether id has the shape of a generated game id
// (lowercase letters and digits, at most 64 bytes).
func ValidGameID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
