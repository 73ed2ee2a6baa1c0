package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Board is the 3x3 grid. The zero value is an empty board.
type Board struct {
	cells [Size][Size]Cell
}

func NewBoard() *Board {
	return &Board{}
}

// BoardFromRows builds a board from a row-major grid, mostly for tests and look-ahead setups.
func BoardFromRows(rows [Size][Size]Cell) *Board {
	return &Board{cells: rows}
}

// Reset empties every cell.
func (that *Board) Reset() {
	that.cells = [Size][Size]Cell{}
}

func (that *Board) At(pos Position) (Cell, error) {
	if !pos.InBounds() {
		return Empty, fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, pos)
	}

	return that.cells[pos.Row][pos.Col], nil
}

// IsEmpty reports whether pos is on the board and unoccupied.
func (that *Board) IsEmpty(pos Position) bool {
	return pos.InBounds() && that.cells[pos.Row][pos.Col] == Empty
}

// Place puts mark at pos. The board is left untouched on any error.
func (that *Board) Place(pos Position, mark Cell) error {
	if !pos.InBounds() {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, pos)
	}

	if that.cells[pos.Row][pos.Col] != Empty {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, pos)
	}

	if !mark.IsMark() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	that.cells[pos.Row][pos.Col] = mark

	return nil
}

// EmptyCells returns the empty positions in row-major order.
func (that *Board) EmptyCells() []Position {
	empty := make([]Position, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			if that.cells[row][col] == Empty {
				empty = append(empty, Position{Row: row, Col: col})
			}
		}
	}

	return empty
}

func (that *Board) CheckWin(mark Cell) bool {
	_, ok := that.WinningLine(mark)
	return ok
}

// WinningLine returns the first line fully owned by mark, in WinLines order.
func (that *Board) WinningLine(mark Cell) (Line, bool) {
	if !mark.IsMark() {
		return Line{}, false
	}

	for _, line := range WinLines {
		if that.owns(line, mark) {
			return line, true
		}
	}

	return Line{}, false
}

func (that *Board) owns(line Line, mark Cell) bool {
	for _, pos := range line {
		if that.cells[pos.Row][pos.Col] != mark {
			return false
		}
	}
	return true
}

// Winner returns the mark holding three in a row, or Empty.
func (that *Board) Winner() Cell {
	switch {
	case that.CheckWin(X):
		return X
	case that.CheckWin(O):
		return O
	default:
		return Empty
	}
}

func (that *Board) IsFull() bool {
	for row := range Size {
		for col := range Size {
			if that.cells[row][col] == Empty {
				return false
			}
		}
	}
	return true
}

func (that *Board) IsDraw() bool {
	return that.IsFull() && !that.CheckWin(X) && !that.CheckWin(O)
}

func (that *Board) IsGameOver() bool {
	return that.CheckWin(X) || that.CheckWin(O) || that.IsFull()
}

// Outcome derives the game state from the cells.
func (that *Board) Outcome() Outcome {
	if winner := that.Winner(); winner != Empty {
		return Outcome{Kind: OutcomeWin, Winner: winner}
	}

	if that.IsFull() {
		return Outcome{Kind: OutcomeDraw}
	}

	return Outcome{Kind: OutcomeInProgress}
}

// Copy returns an independent board with the same cells.
func (that *Board) Copy() *Board {
	return &Board{cells: that.cells}
}

// MoveCount is the number of marks on the board.
func (that *Board) MoveCount() int {
	count := 0
	for row := range Size {
		for col := range Size {
			if that.cells[row][col] != Empty {
				count++
			}
		}
	}
	return count
}

// Rows returns a snapshot of the grid.
func (that *Board) Rows() [Size][Size]Cell {
	return that.cells
}

func (that *Board) String() string {
	var sb strings.Builder
	for row := range Size {
		cells := make([]string, 0, Size)
		for col := range Size {
			cells = append(cells, that.cells[row][col].String())
		}
		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < Size-1 {
			sb.WriteString("-----------\n")
		}
	}
	return sb.String()
}
