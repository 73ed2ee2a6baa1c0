package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
)

// State is the turn state of a match.
type State string

const (
	StateAwaitingX State = "awaiting_x"
	StateAwaitingO State = "awaiting_o"
	StateOver      State = "over"
)

const (
	statusAgentTurn = "Computer's turn..."
	statusHumanWin  = "You win!"
	statusAgentWin  = "Computer wins!"
	statusDraw      = "It's a tie!"
	statusNoMoves   = "No moves available!"
)

// MoveResult describes one applied move for rendering and bookkeeping.
type MoveResult struct {
	Move             entity.Move   `json:"move"`
	Mark             entity.Cell   `json:"mark"`
	GameOver         bool          `json:"game_over"`
	WinningLine      *entity.Line  `json:"winning_line,omitempty"`
	Status           string        `json:"status"`
	Result           entity.Result `json:"result"`
	NoMovesAvailable bool          `json:"no_moves_available,omitempty"`
}

// Snapshot is a read-only view of the controller.
type Snapshot struct {
	Board       [entity.Size][entity.Size]entity.Cell `json:"board"`
	State       State                                 `json:"state"`
	Status      string                                `json:"status"`
	Result      entity.Result                         `json:"result"`
	WinningLine *entity.Line                          `json:"winning_line,omitempty"`
	Human       entity.PlayerState                    `json:"human"`
	Agent       entity.PlayerState                    `json:"agent"`
	Strategy    string                                `json:"strategy"`
	MoveCount   int                                   `json:"move_count"`
}

// GameController runs one match between a human and an agent.
// It holds no locks: callers must serialize access.
type GameController struct {
	board *entity.Board
	human *Human
	agent *Agent

	firstMark entity.Cell
	state     State
	status    string
}

// NewGameController starts a match. The agent's mark must be the human's opponent and
// firstMark decides who moves first.
func NewGameController(human *Human, agent *Agent, firstMark entity.Cell) (*GameController, error) {
	if !human.Mark().IsMark() || agent.Mark() != human.Mark().Opponent() {
		return nil, fmt.Errorf("%w: human %s, agent %s", apperror.ErrInvalidMark, human.Mark(), agent.Mark())
	}

	if !firstMark.IsMark() {
		return nil, fmt.Errorf("%w: first mark %s", apperror.ErrInvalidMark, firstMark)
	}

	controller := &GameController{
		board:     entity.NewBoard(),
		human:     human,
		agent:     agent,
		firstMark: firstMark,
	}
	controller.Reset()

	return controller, nil
}

// Reset empties the board and hands the turn back to the first mark. The agent strategy is kept.
func (that *GameController) Reset() {
	that.board.Reset()
	that.human.resetMoves()
	that.agent.resetMoves()
	that.state = awaiting(that.firstMark)
	that.status = that.turnStatus()
}

// SetAgentStrategy swaps the agent strategy; it is used from the next agent move on.
func (that *GameController) SetAgentStrategy(s strategy.Strategy) {
	that.agent.SetStrategy(s)
}

// ApplyMove places the human's mark at pos.
func (that *GameController) ApplyMove(pos entity.Position) (MoveResult, error) {
	if err := that.confirmTurn(that.human); err != nil {
		return MoveResult{}, err
	}

	return that.place(&that.human.basePlayer, pos)
}

// ApplyAgentMove asks the agent strategy for a move and places it. When the strategy has no
// move the match ends and the result reports NoMovesAvailable without an error.
func (that *GameController) ApplyAgentMove() (MoveResult, error) {
	if err := that.confirmTurn(that.agent); err != nil {
		return MoveResult{}, err
	}

	move, ok := that.agent.ChooseMove(that.board)
	if !ok {
		that.state = StateOver
		that.status = statusNoMoves

		return MoveResult{
			Mark:             that.agent.Mark(),
			GameOver:         true,
			Status:           that.status,
			Result:           that.Outcome(),
			NoMovesAvailable: true,
		}, nil
	}

	return that.place(&that.agent.basePlayer, move)
}

func (that *GameController) confirmTurn(player Player) error {
	if that.state == StateOver {
		return apperror.ErrGameOver
	}

	if that.state != awaiting(player.Mark()) {
		return fmt.Errorf("%w: %s to move", apperror.ErrWrongTurn, that.CurrentMark())
	}

	return nil
}

func (that *GameController) place(player *basePlayer, pos entity.Position) (MoveResult, error) {
	if err := that.board.Place(pos, player.Mark()); err != nil {
		return MoveResult{}, fmt.Errorf("invalid turn: %w", err)
	}

	player.incrementMoves()
	that.updateGameState(player.Mark())

	return MoveResult{
		Move:        pos,
		Mark:        player.Mark(),
		GameOver:    that.state == StateOver,
		WinningLine: that.WinningLine(),
		Status:      that.status,
		Result:      that.Outcome(),
	}, nil
}

// updateGameState re-derives the outcome after mark has moved.
func (that *GameController) updateGameState(mark entity.Cell) {
	switch outcome := that.board.Outcome(); outcome.Kind {
	case entity.OutcomeWin:
		that.state = StateOver
		if outcome.Winner == that.human.Mark() {
			that.status = statusHumanWin
		} else {
			that.status = statusAgentWin
		}
	case entity.OutcomeDraw:
		that.state = StateOver
		that.status = statusDraw
	default:
		that.state = awaiting(mark.Opponent())
		that.status = that.turnStatus()
	}
}

func (that *GameController) turnStatus() string {
	if that.IsHumanTurn() {
		return fmt.Sprintf("Your move (%s)", that.human.Mark())
	}
	return statusAgentTurn
}

// Outcome reports the match result from the human's point of view.
func (that *GameController) Outcome() entity.Result {
	result := entity.ResultFor(that.board.Outcome(), that.human.Mark())
	if result == entity.ResultInProgress && that.state == StateOver {
		// ended without a winner and without a full board
		return entity.ResultDraw
	}

	return result
}

// WinningLine returns the line to highlight, if any.
func (that *GameController) WinningLine() *entity.Line {
	winner := that.board.Winner()
	if winner == entity.Empty {
		return nil
	}

	line, _ := that.board.WinningLine(winner)
	return &line
}

func (that *GameController) State() State {
	return that.state
}

func (that *GameController) Status() string {
	return that.status
}

func (that *GameController) IsOver() bool {
	return that.state == StateOver
}

func (that *GameController) IsHumanTurn() bool {
	return that.state == awaiting(that.human.Mark())
}

func (that *GameController) IsAgentTurn() bool {
	return that.state == awaiting(that.agent.Mark())
}

// CurrentMark is the mark to move, or Empty once the match is over.
func (that *GameController) CurrentMark() entity.Cell {
	switch that.state {
	case StateAwaitingX:
		return entity.X
	case StateAwaitingO:
		return entity.O
	default:
		return entity.Empty
	}
}

// Board returns a copy of the live board.
func (that *GameController) Board() *entity.Board {
	return that.board.Copy()
}

// MoveCount is the number of marks placed in this match.
func (that *GameController) MoveCount() int {
	return that.board.MoveCount()
}

func (that *GameController) Human() *Human {
	return that.human
}

func (that *GameController) Agent() *Agent {
	return that.agent
}

func (that *GameController) Snapshot() Snapshot {
	return Snapshot{
		Board:       that.board.Rows(),
		State:       that.state,
		Status:      that.status,
		Result:      that.Outcome(),
		WinningLine: that.WinningLine(),
		Human:       that.human.State(),
		Agent:       that.agent.State(),
		Strategy:    that.agent.Strategy().Name(),
		MoveCount:   that.board.MoveCount(),
	}
}

func awaiting(mark entity.Cell) State {
	if mark == entity.O {
		return StateAwaitingO
	}
	return StateAwaitingX
}
