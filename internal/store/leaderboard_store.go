package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/bc-1a2b/internal/engine"
)

var ErrEntryNotFound = errors.New("leaderboard entry not found")

// Entry is one finished game on the leaderboard. Log is kept for replay.
type Entry struct {
	ID             string               `json:"id"`
	UserID         string               `json:"-"`
	Nickname       string               `json:"nickname"`
	Score          int                  `json:"score"`
	Mode           engine.Mode          `json:"mode"`
	GuessCount     int                  `json:"guessCount"`
	ElapsedSeconds int                  `json:"elapsedSeconds"`
	Log            []engine.GuessRecord `json:"log,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

type LeaderboardStore struct {
	db *pgxpool.Pool
}

func NewLeaderboardStore(db *pgxpool.Pool) *LeaderboardStore {
	return &LeaderboardStore{db: db}
}

// Submit stores e and returns its new id.
func (s *LeaderboardStore) Submit(ctx context.Context, e Entry) (string, error) {
	logJSON, err := json.Marshal(e.Log)
	if err != nil {
		return "", fmt.Errorf("encode log: %w", err)
	}
	id := uuid.NewString()

	var userID *string
	if e.UserID != "" {
		userID = &e.UserID
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO leaderboard (id, user_id, nickname, score, mode, guess_count, elapsed_seconds, log)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, userID, e.Nickname, e.Score, string(e.Mode), e.GuessCount, e.ElapsedSeconds, logJSON)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Top lists the best scores, earlier submissions first on ties. Logs are not loaded.
func (s *LeaderboardStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, nickname, score, mode, guess_count, elapsed_seconds, created_at
		FROM leaderboard
		ORDER BY score DESC, created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var mode string
		if err := rows.Scan(&e.ID, &e.Nickname, &e.Score, &mode, &e.GuessCount, &e.ElapsedSeconds, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Mode = engine.Mode(mode)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *LeaderboardStore) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	var mode string
	var logJSON []byte
	var userID *string
	err := s.db.QueryRow(ctx, `
		SELECT id::text, user_id::text, nickname, score, mode, guess_count, elapsed_seconds, log, created_at
		FROM leaderboard
		WHERE id = $1
	`, id).Scan(&e.ID, &userID, &e.Nickname, &e.Score, &mode, &e.GuessCount, &e.ElapsedSeconds, &logJSON, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrEntryNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	if userID != nil {
		e.UserID = *userID
	}
	e.Mode = engine.Mode(mode)
	if err := json.Unmarshal(logJSON, &e.Log); err != nil {
		return Entry{}, fmt.Errorf("decode log of %s: %w", id, err)
	}
	return e, nil
}
