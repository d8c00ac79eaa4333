package game

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"example.com/bc-1a2b/internal/advice"
	"example.com/bc-1a2b/internal/auth"
	"example.com/bc-1a2b/internal/engine"
	"example.com/bc-1a2b/internal/metrics"
)

// maxBodyBytes bounds JSON request bodies; game requests are a few bytes.
const maxBodyBytes = 16 << 10

type Config struct {
	DefaultMode      engine.Mode
	AdviceTimeout    time.Duration // 0 => no timeout
	AdviceSampleSize int
}

// TokenVerifier is satisfied by *auth.Service.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type Server struct {
	cfg    Config
	games  *GameService
	auth   TokenVerifier
	oracle advice.Oracle
	log    *slog.Logger
}

func NewServer(cfg Config, games *GameService, verifier TokenVerifier, oracle advice.Oracle, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if oracle == nil {
		oracle = advice.Noop{}
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = engine.ModeNormal
	}
	return &Server{
		cfg:    cfg,
		games:  games,
		auth:   verifier,
		oracle: oracle,
		log:    log,
	}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/games/{id}/guesses", s.handleGuess)
	mux.HandleFunc("POST /api/games/{id}/abandon", s.handleAbandon)
	mux.HandleFunc("GET /api/games/{id}/review", s.handleReview)
	mux.HandleFunc("POST /api/games/{id}/advice", s.handleAdvice)
	mux.HandleFunc("GET /ws/{id}", s.handleWS)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGamePayload
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}
	mode := s.cfg.DefaultMode
	if req.Mode != "" {
		m, err := engine.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_input", err.Error())
			return
		}
		mode = m
	}

	var ownerID string
	if claims, ok := s.claims(r); ok {
		ownerID = claims.UserID
	}

	g, err := s.games.Create(r.Context(), mode, ownerID)
	if err != nil {
		s.log.Error("create game", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to create game")
		return
	}

	writeJSON(w, http.StatusCreated, g.State())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.State())
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var p SubmitGuessPayload
	if !decodeBody(w, r, &p) {
		return
	}
	res, err := g.SubmitGuess(p.Guess)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	if err := g.Abandon(); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.State())
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	steps, err := g.Review()
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"gameId": g.ID(),
		"steps":  steps,
	})
}

// handleAdvice asks the external oracle for a hint. Oracle failures are
// answered with a fallback text and never touch the game.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	req := g.AdviceRequest(s.cfg.AdviceSampleSize)

	ctx := r.Context()
	if s.cfg.AdviceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AdviceTimeout)
		defer cancel()
	}

	text, err := s.oracle.Advise(ctx, req)
	if err != nil {
		s.log.Warn("advice oracle failed", "gameId", g.ID(), "err", err)
		metrics.AdviceRequests.WithLabelValues("error").Inc()
		text = advice.Fallback
	} else {
		metrics.AdviceRequests.WithLabelValues("ok").Inc()
	}
	writeJSON(w, http.StatusOK, AdvicePayload{Advice: text})
}

// loadGame resolves {id}, loads the game and checks ownership.
// It writes the error response itself and reports whether to continue.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (*Game, bool) {
	gameID := r.PathValue("id")
	if !ValidGameID(gameID) {
		writeError(w, http.StatusBadRequest, "bad_input", "invalid game id")
		return nil, false
	}

	g, ok, err := s.games.GetOrLoad(r.Context(), gameID)
	if err != nil {
		s.log.Error("load game", "gameId", gameID, "err", err)
		writeError(w, http.StatusInternalServerError, "storage", "storage error")
		return nil, false
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "game not found")
		return nil, false
	}

	if owner := g.OwnerID(); owner != "" {
		claims, ok := s.claims(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "game requires login")
			return nil, false
		}
		if claims.UserID != owner {
			writeError(w, http.StatusForbidden, "forbidden", "not your game")
			return nil, false
		}
	}
	return g, true
}

// claims reads a bearer token from the Authorization header, or from the
// token query parameter for browsers opening a websocket.
func (s *Server) claims(r *http.Request) (*auth.Claims, bool) {
	if s.auth == nil {
		return nil, false
	}
	token := r.URL.Query().Get("token")
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	}
	if token == "" {
		return nil, false
	}
	c, err := s.auth.Verify(token)
	if err != nil {
		return nil, false
	}
	return c, true
}

func writeGameError(w http.ResponseWriter, err error) {
	code, status := gameErrorCode(err)
	writeError(w, status, code, err.Error())
}

func gameErrorCode(err error) (string, int) {
	switch {
	case errors.Is(err, engine.ErrInvalidCode):
		return "bad_input", http.StatusBadRequest
	case errors.Is(err, engine.ErrContradictoryFeedback):
		return "contradictory_feedback", http.StatusUnprocessableEntity
	case errors.Is(err, ErrGameFinished), errors.Is(err, ErrGameNotFinished):
		return "wrong_phase", http.StatusConflict
	case errors.Is(err, ErrGameNotWon), errors.Is(err, ErrAlreadySubmitted):
		return "not_submittable", http.StatusConflict
	}
	return "internal", http.StatusInternalServerError
}

// decodeBody reads a JSON body of at most maxBodyBytes into v. On failure
// it answers 400 itself and reports false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, ErrorPayload{Code: errCode, Message: msg})
}
