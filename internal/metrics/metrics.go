// Package metrics holds the Prometheus collectors of the game service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GamesStarted counts new games by mode.
	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bnc_games_started_total",
		Help: "Games started by difficulty mode",
	}, []string{"mode"})

	GamesWon = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bnc_games_won_total",
		Help: "Games won by difficulty mode",
	}, []string{"mode"})

	Guesses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bnc_guesses_total",
		Help: "Accepted guesses",
	})

	// ContradictoryFeedback should stay at zero; anything else is a bug.
	ContradictoryFeedback = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bnc_contradictory_feedback_total",
		Help: "Guesses whose feedback emptied the candidate pool",
	})

	PoolSizeAfterGuess = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bnc_pool_size_after_guess",
		Help:    "Candidate pool size after each guess",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 250, 500, 1000, 2500, 5040},
	})

	// AdviceRequests labels: "ok", "error".
	AdviceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bnc_advice_requests_total",
		Help: "Advice oracle requests by result",
	}, []string{"result"})

	LeaderboardSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bnc_leaderboard_submissions_total",
		Help: "Scores stored on the leaderboard",
	})
)

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
