package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	EventMove  = "game:move"
	EventReset = "game:reset"
)

type scoreRepo interface {
	Save(ctx context.Context, entry *entity.ScoreEntry) error
	List(ctx context.Context, limit int) ([]*entity.ScoreEntry, error)
	Clear(ctx context.Context) error
}

type publisher interface {
	Publish(event string, payload any)
}

// nodeCounter is implemented by searching strategies.
type nodeCounter interface {
	NodesExplored() int
}

// TurnResult is what one human turn produced: the human move and the agent reply, if any.
type TurnResult struct {
	Moves []tictactoe.MoveResult `json:"moves"`
	Game  tictactoe.Snapshot     `json:"game"`
}

// GameManager hosts the single match of the process. Every controller call goes through it.
type GameManager struct {
	logger *slog.Logger

	mu         sync.Mutex
	controller *tictactoe.GameController
	matchID    string

	scores scoreRepo
	events publisher
	now    func() time.Time
}

func NewGameManager(logger *slog.Logger, controller *tictactoe.GameController, scores scoreRepo, events publisher) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game-manager"),
		controller: controller,
		matchID:    uuid.NewString(),
		scores:     scores,
		events:     events,
		now:        time.Now,
	}
}

// Start makes the opening agent move when the agent has the first mark.
func (that *GameManager) Start(ctx context.Context) (tictactoe.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := that.agentReply(ctx); err != nil {
		return tictactoe.Snapshot{}, err
	}

	return that.controller.Snapshot(), nil
}

// MakeTurn applies the human move and, while the match goes on, the agent reply.
func (that *GameManager) MakeTurn(ctx context.Context, pos entity.Position) (*TurnResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeTurn", "match", that.matchID)

	result, err := that.controller.ApplyMove(pos)
	if err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	log.Debug("human moved", "position", result.Move.String(), "mark", result.Mark.String())
	that.moved(ctx, result)

	turn := &TurnResult{Moves: []tictactoe.MoveResult{result}}

	reply, err := that.agentReply(ctx)
	if err != nil {
		return nil, err
	}

	if reply != nil {
		turn.Moves = append(turn.Moves, *reply)
	}

	turn.Game = that.controller.Snapshot()

	return turn, nil
}

// agentReply plays the agent's move if it is the agent's turn. It returns nil otherwise.
func (that *GameManager) agentReply(ctx context.Context) (*tictactoe.MoveResult, error) {
	if !that.controller.IsAgentTurn() {
		return nil, nil
	}

	log := that.logger.With("method", "agentReply", "match", that.matchID)

	reply, err := that.controller.ApplyAgentMove()
	if err != nil {
		return nil, fmt.Errorf("failed to apply agent move: %w", err)
	}

	attrs := []any{"position", reply.Move.String(), "strategy", that.controller.Agent().Strategy().Name()}
	if counter, ok := that.controller.Agent().Strategy().(nodeCounter); ok {
		attrs = append(attrs, "nodes", counter.NodesExplored())
	}

	if reply.NoMovesAvailable {
		log.Warn("agent has no move", attrs...)
	} else {
		log.Debug("agent moved", attrs...)
	}

	that.moved(ctx, reply)

	return &reply, nil
}

// moved publishes a move and records the match once it is over.
func (that *GameManager) moved(ctx context.Context, result tictactoe.MoveResult) {
	that.events.Publish(EventMove, result)

	if result.GameOver {
		that.record(ctx)
	}
}

func (that *GameManager) record(ctx context.Context) {
	log := that.logger.With("method", "record", "match", that.matchID)

	entry := &entity.ScoreEntry{
		ID:           that.matchID,
		PlayerName:   that.controller.Human().Name(),
		OpponentName: that.controller.Agent().Name(),
		Result:       that.controller.Outcome(),
		MoveCount:    that.controller.MoveCount(),
		PlayedAt:     that.now(),
	}

	log.Info("match finished", "result", entry.Result, "moves", entry.MoveCount, "opponent", entry.OpponentName)

	if err := that.scores.Save(ctx, entry); err != nil {
		log.Error("failed to save score", "error", err)
	}
}

// Reset starts a new match with the current strategy.
func (that *GameManager) Reset(ctx context.Context) (tictactoe.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.reset(ctx)
}

// SetStrategy swaps the agent strategy and starts a new match.
func (that *GameManager) SetStrategy(ctx context.Context, kind strategy.Kind, seed *int64) (tictactoe.Snapshot, error) {
	s, err := strategy.New(kind, seed)
	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to build strategy: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.controller.SetAgentStrategy(s)
	that.logger.Info("strategy changed", "strategy", s.Name())

	return that.reset(ctx)
}

func (that *GameManager) reset(ctx context.Context) (tictactoe.Snapshot, error) {
	that.controller.Reset()
	that.matchID = uuid.NewString()
	that.logger.Debug("match reset", "match", that.matchID)

	that.events.Publish(EventReset, that.controller.Snapshot())

	if _, err := that.agentReply(ctx); err != nil {
		return tictactoe.Snapshot{}, err
	}

	return that.controller.Snapshot(), nil
}

// Game returns the current match.
func (that *GameManager) Game() tictactoe.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.controller.Snapshot()
}

// Scores lists the last limit completed matches, oldest first; limit <= 0 lists all.
func (that *GameManager) Scores(ctx context.Context, limit int) ([]*entity.ScoreEntry, error) {
	entries, err := that.scores.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	return entries, nil
}

func (that *GameManager) Stats(ctx context.Context) (entity.ScoreStats, error) {
	entries, err := that.scores.List(ctx, 0)
	if err != nil {
		return entity.ScoreStats{}, fmt.Errorf("failed to list scores: %w", err)
	}

	return entity.Summarize(entries), nil
}

func (that *GameManager) ClearScores(ctx context.Context) error {
	if err := that.scores.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear scores: %w", err)
	}

	that.logger.Info("scores cleared")

	return nil
}
