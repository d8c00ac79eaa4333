package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"example.com/bc-1a2b/internal/engine"
	"example.com/bc-1a2b/internal/game"
	"example.com/bc-1a2b/internal/metrics"
	"example.com/bc-1a2b/internal/store"
)

const (
	maxNicknameLen  = 20
	maxLeaderboardN = 100
	defaultTopLimit = 10
)

// Leaderboard is implemented by *store.LeaderboardStore.
type Leaderboard interface {
	Submit(ctx context.Context, e store.Entry) (string, error)
	Top(ctx context.Context, limit int) ([]store.Entry, error)
	Get(ctx context.Context, id string) (store.Entry, error)
}

type WinRecorder interface {
	RecordWin(ctx context.Context, userID string, score, guesses int) error
}

type GameFinder interface {
	GetOrLoad(ctx context.Context, gameID string) (*game.Game, bool, error)
}

type LeaderboardHandler struct {
	Board Leaderboard
	Stats WinRecorder // optional
	Games GameFinder
	Limit int
	Log   *slog.Logger
}

type SubmitScoreRequest struct {
	GameID   string `json:"gameId"`
	Nickname string `json:"nickname"`
}

type SubmitScoreResponse struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitScoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	claims, authed := ClaimsFromContext(r.Context())
	nickname := strings.TrimSpace(req.Nickname)
	if authed && claims.DisplayName != "" {
		nickname = claims.DisplayName
	}
	if !validNickname(nickname) {
		writeError(w, http.StatusBadRequest, "bad_request", "nickname must be 1-20 characters")
		return
	}

	if !game.ValidGameID(req.GameID) {
		writeError(w, http.StatusNotFound, "not_found", "game not found")
		return
	}
	g, ok, err := h.Games.GetOrLoad(r.Context(), req.GameID)
	if err != nil {
		h.Log.Error("load game for leaderboard", "gameId", req.GameID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "storage error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "game not found")
		return
	}
	var userID string
	if authed {
		userID = claims.UserID
	}
	if owner := g.OwnerID(); owner != "" && owner != userID {
		writeError(w, http.StatusForbidden, "forbidden", "not your game")
		return
	}

	res, err := g.ClaimResult()
	if err != nil {
		code := "not_submittable"
		if errors.Is(err, game.ErrAlreadySubmitted) {
			code = "already_submitted"
		}
		writeError(w, http.StatusConflict, code, err.Error())
		return
	}

	id, err := h.Board.Submit(r.Context(), store.Entry{
		UserID:         userID,
		Nickname:       nickname,
		Score:          res.Score,
		Mode:           res.Mode,
		GuessCount:     res.GuessCount,
		ElapsedSeconds: res.ElapsedSeconds,
		Log:            res.Log,
	})
	if err != nil {
		g.ReleaseResult()
		h.Log.Error("submit score", "gameId", g.ID(), "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to store score")
		return
	}
	metrics.LeaderboardSubmissions.Inc()

	if userID != "" && h.Stats != nil {
		if err := h.Stats.RecordWin(r.Context(), userID, res.Score, res.GuessCount); err != nil {
			h.Log.Warn("record win", "userId", userID, "err", err)
		}
	}

	writeJSON(w, http.StatusCreated, SubmitScoreResponse{ID: id, Score: res.Score})
}

func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := h.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLeaderboardN {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be 1-100")
			return
		}
		limit = n
	}

	entries, err := h.Board.Top(r.Context(), limit)
	if err != nil {
		h.Log.Error("load leaderboard", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"top": entries})
}

// Replay rebuilds the deduction trace of a stored game from its log alone.
func (h *LeaderboardHandler) Replay(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "entry not found")
		return
	}

	e, err := h.Board.Get(r.Context(), id)
	if errors.Is(err, store.ErrEntryNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "entry not found")
		return
	}
	if err != nil {
		h.Log.Error("load leaderboard entry", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load entry")
		return
	}
	if err := engine.ValidateLog(e.Log); err != nil {
		h.Log.Warn("stored log is malformed", "id", id, "err", err)
		writeError(w, http.StatusUnprocessableEntity, "bad_log", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entry": e,
		"steps": engine.ReconstructReview(e.Log),
	})
}

func validNickname(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= maxNicknameLen
}
