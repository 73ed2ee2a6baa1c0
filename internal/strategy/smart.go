package strategy

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

var (
	center  = entity.Position{Row: 1, Col: 1}
	corners = []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
	edges   = []entity.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}
)

// Smart follows a fixed ladder: win, block, center, corner, edge, first empty cell.
type Smart struct{}

func NewSmart() *Smart {
	return &Smart{}
}

func (that *Smart) Choose(board *entity.Board, mark entity.Cell) (entity.Move, bool) {
	if move, ok := findWinningMove(board, mark); ok {
		return move, true
	}

	if move, ok := findWinningMove(board, mark.Opponent()); ok {
		return move, true
	}

	if board.IsEmpty(center) {
		return center, true
	}

	if move, ok := firstEmpty(board, corners); ok {
		return move, true
	}

	if move, ok := firstEmpty(board, edges); ok {
		return move, true
	}

	return firstEmpty(board, board.EmptyCells())
}

func (that *Smart) Name() string {
	return "Medium (Smart)"
}

// findWinningMove tries mark on every empty cell of a scratch copy.
func findWinningMove(board *entity.Board, mark entity.Cell) (entity.Move, bool) {
	for _, move := range board.EmptyCells() {
		scratch := board.Copy()
		if err := scratch.Place(move, mark); err != nil {
			continue
		}

		if scratch.CheckWin(mark) {
			return move, true
		}
	}

	return entity.Move{}, false
}

func firstEmpty(board *entity.Board, candidates []entity.Position) (entity.Move, bool) {
	for _, pos := range candidates {
		if board.IsEmpty(pos) {
			return pos, true
		}
	}

	return entity.Move{}, false
}
