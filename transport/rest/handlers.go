package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type gameUseCase interface {
	MakeTurn(ctx context.Context, pos entity.Position) (*usecase.TurnResult, error)
	Reset(ctx context.Context) (tictactoe.Snapshot, error)
	SetStrategy(ctx context.Context, kind strategy.Kind, seed *int64) (tictactoe.Snapshot, error)
	Game() tictactoe.Snapshot
	Scores(ctx context.Context, limit int) ([]*entity.ScoreEntry, error)
	Stats(ctx context.Context) (entity.ScoreStats, error)
	ClearScores(ctx context.Context) error
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type strategyRequest struct {
	Kind string `json:"kind"`
	Seed *int64 `json:"seed,omitempty"`
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

// NewRouter builds the HTTP API. A non-nil ws is mounted at /ws.
func NewRouter(logger *slog.Logger, game gameUseCase, ws http.Handler) http.Handler {
	h := &handlers{
		logger: logger.With("component", "rest"),
		game:   game,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Route("/game", func(r chi.Router) {
		r.Get("/", h.getGame)
		r.Post("/turn", h.makeTurn)
		r.Post("/reset", h.reset)
		r.Put("/strategy", h.setStrategy)
	})

	r.Route("/scores", func(r chi.Router) {
		r.Get("/", h.listScores)
		r.Get("/stats", h.stats)
		r.Delete("/", h.clearScores)
	})

	if ws != nil {
		r.Handle("/ws", ws)
	}

	return r
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, r, http.StatusOK, that.game.Game())
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, r, fmt.Errorf("%w: row and col are required", errBadRequest))
		return
	}

	turn, err := that.game.MakeTurn(r.Context(), entity.Position{Row: *req.Row, Col: *req.Col})
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, r, http.StatusOK, turn)
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	game, err := that.game.Reset(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, r, http.StatusOK, game)
}

func (that *handlers) setStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	kind, err := strategy.ParseKind(req.Kind)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	game, err := that.game.SetStrategy(r.Context(), kind, req.Seed)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, r, http.StatusOK, game)
}

func (that *handlers) listScores(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil {
			that.writeError(w, r, fmt.Errorf("%w: limit %q", errBadRequest, raw))
			return
		}
	}

	entries, err := that.game.Scores(r.Context(), limit)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	if entries == nil {
		entries = []*entity.ScoreEntry{}
	}

	that.writeJSON(w, r, http.StatusOK, entries)
}

func (that *handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.game.Stats(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, r, http.StatusOK, stats)
}

func (that *handlers) clearScores(w http.ResponseWriter, r *http.Request) {
	if err := that.game.ClearScores(r.Context()); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	}

	that.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "path", r.URL.Path, "error", err)
	}
}
