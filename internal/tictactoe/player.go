package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
)

// Player is one side of a match.
type Player interface {
	Mark() entity.Cell
	Name() string
	IsHuman() bool
	MovesMade() int

	// ChooseMove returns false when the move is supplied from outside or no cell is empty.
	ChooseMove(board *entity.Board) (entity.Move, bool)
}

type basePlayer struct {
	state entity.PlayerState
}

func (that *basePlayer) Mark() entity.Cell {
	return that.state.Mark
}

func (that *basePlayer) Name() string {
	return that.state.Name
}

func (that *basePlayer) MovesMade() int {
	return that.state.Moves
}

func (that *basePlayer) State() entity.PlayerState {
	return that.state
}

func (that *basePlayer) incrementMoves() {
	that.state.Moves++
}

func (that *basePlayer) resetMoves() {
	that.state.Moves = 0
}

// Human gets its moves from the caller.
type Human struct {
	basePlayer
}

func NewHuman(mark entity.Cell, name string) *Human {
	if name == "" {
		name = "You"
	}

	return &Human{basePlayer{state: entity.PlayerState{Mark: mark, Name: name}}}
}

func (that *Human) IsHuman() bool {
	return true
}

func (that *Human) ChooseMove(*entity.Board) (entity.Move, bool) {
	return entity.Move{}, false
}

// Agent delegates move choice to a strategy.
type Agent struct {
	basePlayer
	strategy strategy.Strategy
}

func NewAgent(mark entity.Cell, s strategy.Strategy) *Agent {
	return &Agent{
		basePlayer: basePlayer{state: entity.PlayerState{Mark: mark, Name: agentName(s)}},
		strategy:   s,
	}
}

func (that *Agent) IsHuman() bool {
	return false
}

// ChooseMove runs the strategy on a copy so the strategy never sees the live board.
func (that *Agent) ChooseMove(board *entity.Board) (entity.Move, bool) {
	return that.strategy.Choose(board.Copy(), that.state.Mark)
}

func (that *Agent) Strategy() strategy.Strategy {
	return that.strategy
}

func (that *Agent) SetStrategy(s strategy.Strategy) {
	that.strategy = s
	that.state.Name = agentName(s)
}

func agentName(s strategy.Strategy) string {
	return "Computer (" + s.Name() + ")"
}
