package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"example.com/bc-1a2b/internal/advice"
	"example.com/bc-1a2b/internal/auth"
	"example.com/bc-1a2b/internal/config"
	"example.com/bc-1a2b/internal/game"
	"example.com/bc-1a2b/internal/httpapi"
	"example.com/bc-1a2b/internal/metrics"
	"example.com/bc-1a2b/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	db  *pgxpool.Pool
	rdb *redis.Client // nil when GAME_STORE=memory

	srv *http.Server
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	// --- Postgres ---
	dbpool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	// Quick connectivity checks (fail fast).
	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	// --- Game persistence ---
	var (
		rdb     *redis.Client
		persist game.GamePersistence
	)
	switch cfg.Game.Store {
	case "memory":
		log.Warn("game snapshots kept in memory; restarts lose active games")
		persist = game.NewMemoryGameStore()
	default:
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			dbpool.Close()
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping (%s db=%d): %w", cfg.Redis.Addr, cfg.Redis.DB, err)
		}
		persist = game.NewRedisGameStore(rdb, cfg.Redis.GameTTL)
	}

	// --- Auth service ---
	authSvc := auth.NewService([]byte(cfg.Auth.Secret))

	// --- Stores ---
	users := store.NewUserStore(dbpool)
	stats := store.NewStatsStore(dbpool)
	board := store.NewLeaderboardStore(dbpool)

	// --- Advice ---
	var oracle advice.Oracle = advice.Noop{}
	if cfg.Advice.APIKey != "" {
		oracle = advice.NewOpenAIOracle(cfg.Advice.APIKey, cfg.Advice.Model, cfg.Advice.BaseURL, log)
	} else {
		log.Info("OPENAI_API_KEY not set; advice returns fallback text")
	}

	// --- Game ---
	gameCfg := game.Config{
		DefaultMode:      cfg.Game.DefaultMode,
		AdviceTimeout:    cfg.Advice.Timeout,
		AdviceSampleSize: cfg.Advice.SampleSize,
	}
	gameSvc := game.NewGameService(gameCfg, persist, log)
	gameSrv := game.NewServer(gameCfg, gameSvc, authSvc, oracle, log)

	authH := &httpapi.AuthHandler{
		Users:    users,
		Stats:    stats,
		Auth:     authSvc,
		TokenTTL: cfg.Auth.TokenTTL,
		Log:      log,
	}
	boardH := &httpapi.LeaderboardHandler{
		Board: board,
		Stats: stats,
		Games: gameSvc,
		Limit: cfg.Leaderboard.Limit,
		Log:   log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	gameSrv.RegisterRoutes(mux)

	// --- auth routes ---
	mux.HandleFunc("POST /api/auth/register", authH.Register)
	mux.HandleFunc("POST /api/auth/login", authH.Login)
	mux.Handle("GET /api/me", httpapi.AuthMiddleware(authSvc)(http.HandlerFunc(authH.Me)))

	// --- leaderboard ---
	optional := httpapi.OptionalAuth(authSvc)
	mux.Handle("POST /api/leaderboard", optional(http.HandlerFunc(boardH.Submit)))
	mux.HandleFunc("GET /api/leaderboard", boardH.Top)
	mux.HandleFunc("GET /api/leaderboard/{id}/replay", boardH.Replay)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return &App{cfg: cfg, log: log, db: dbpool, rdb: rdb, srv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	a.log.Info("http server starting", "addr", a.cfg.HTTP.Addr, "game_store", a.cfg.Game.Store)

	g.Go(func() error {
		err := a.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.log.Info("http server shutting down")
		_ = a.srv.Shutdown(shutdownCtx)
		return nil
	})

	err := g.Wait()
	_ = a.Close(context.Background())
	return err
}

func (a *App) Close(ctx context.Context) error {
	// best-effort
	if a.db != nil {
		a.db.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	return nil
}
