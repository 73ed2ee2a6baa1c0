package strategy

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const winScore = 10

// Minimax searches the whole remaining game tree without pruning.
// Wins score 10-depth and losses depth-10, so faster wins and slower losses are preferred.
type Minimax struct {
	aiMark       entity.Cell
	opponentMark entity.Cell

	nodesExplored int
}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (that *Minimax) Choose(board *entity.Board, mark entity.Cell) (entity.Move, bool) {
	that.aiMark = mark
	that.opponentMark = mark.Opponent()
	that.nodesExplored = 0

	var (
		bestMove  entity.Move
		bestScore = math.MinInt
		found     bool
	)

	for _, move := range board.EmptyCells() {
		scratch := board.Copy()
		if err := scratch.Place(move, that.aiMark); err != nil {
			continue
		}

		// first strictly greater score wins ties
		if score := that.minimax(scratch, 0, false); score > bestScore {
			bestScore = score
			bestMove = move
			found = true
		}
	}

	return bestMove, found
}

// NodesExplored is the number of positions scored by the last Choose call.
func (that *Minimax) NodesExplored() int {
	return that.nodesExplored
}

func (that *Minimax) Name() string {
	return "Impossible (Minimax)"
}

func (that *Minimax) minimax(board *entity.Board, depth int, isMaximizing bool) int {
	that.nodesExplored++

	switch {
	case board.CheckWin(that.aiMark):
		return winScore - depth
	case board.CheckWin(that.opponentMark):
		return depth - winScore
	case board.IsFull():
		return 0
	}

	mark, best, pick := that.opponentMark, math.MaxInt, minInt
	if isMaximizing {
		mark, best, pick = that.aiMark, math.MinInt, maxInt
	}

	for _, move := range board.EmptyCells() {
		scratch := board.Copy()
		if err := scratch.Place(move, mark); err != nil {
			continue
		}

		best = pick(best, that.minimax(scratch, depth+1, !isMaximizing))
	}

	return best
}

func maxInt(a, b int) int { return max(a, b) }

func minInt(a, b int) int { return min(a, b) }
