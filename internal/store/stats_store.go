package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerStats struct {
	UserID       string
	GamesWon     int
	BestScore    int
	TotalGuesses int
	UpdatedAt    time.Time
}

// AverageGuesses is 0 for players without a win.
func (s PlayerStats) AverageGuesses() float64 {
	if s.GamesWon == 0 {
		return 0
	}
	return float64(s.TotalGuesses) / float64(s.GamesWon)
}

type StatsStore struct {
	db *pgxpool.Pool
}

func NewStatsStore(db *pgxpool.Pool) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) InitForUser(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (user_id, games_won, best_score, total_guesses)
		VALUES ($1, 0, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}

func (s *StatsStore) RecordWin(ctx context.Context, userID string, score, guesses int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (user_id, games_won, best_score, total_guesses, updated_at)
		VALUES ($1, 1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET
			games_won     = player_stats.games_won + 1,
			best_score    = GREATEST(player_stats.best_score, EXCLUDED.best_score),
			total_guesses = player_stats.total_guesses + EXCLUDED.total_guesses,
			updated_at    = now()
	`, userID, score, guesses)
	return err
}

func (s *StatsStore) Get(ctx context.Context, userID string) (PlayerStats, error) {
	var st PlayerStats
	err := s.db.QueryRow(ctx, `
		SELECT user_id::text, games_won, best_score, total_guesses, updated_at
		FROM player_stats
		WHERE user_id=$1
	`, userID).Scan(&st.UserID, &st.GamesWon, &st.BestScore, &st.TotalGuesses, &st.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// no row yet: a player without wins
		return PlayerStats{UserID: userID}, nil
	}
	if err != nil {
		return PlayerStats{}, err
	}
	return st, nil
}
