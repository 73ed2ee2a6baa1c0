package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var drawRows = [Size][Size]Cell{
	{X, O, X},
	{X, O, O},
	{O, X, X},
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places a mark on an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: X is placed in the center
		err := board.Place(Position{Row: 1, Col: 1}, X)

		// Then: the cell holds X
		require.NoError(t, err)
		cell, err := board.At(Position{Row: 1, Col: 1})
		require.NoError(t, err)
		assert.Equal(t, X, cell)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board with X at (0,0)
		board := NewBoard()
		require.NoError(t, board.Place(Position{Row: 0, Col: 0}, X))
		before := board.Rows()

		// When: O tries to take the same cell
		err := board.Place(Position{Row: 0, Col: 0}, O)

		// Then: ErrCellOccupied is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, board.Rows())
	})

	t.Run("Error on position out of bounds", func(t *testing.T) {
		board := NewBoard()

		for _, pos := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {20, 20}} {
			err := board.Place(pos, X)
			assert.ErrorIs(t, err, apperror.ErrOutOfBounds, "position %s", pos)
		}
		assert.Equal(t, Size*Size, len(board.EmptyCells()))
	})

	t.Run("Error on invalid mark", func(t *testing.T) {
		board := NewBoard()

		err := board.Place(Position{Row: 0, Col: 0}, Empty)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)

		err = board.Place(Position{Row: 0, Col: 0}, Cell(7))
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
		assert.True(t, board.IsEmpty(Position{Row: 0, Col: 0}))
	})

	t.Run("Bounds are checked before occupancy", func(t *testing.T) {
		board := BoardFromRows(drawRows)

		err := board.Place(Position{Row: 3, Col: 3}, X)

		assert.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	t.Run("Row-major order", func(t *testing.T) {
		// Given: a board with marks at (0,1) and (2,2)
		board := BoardFromRows([Size][Size]Cell{
			{Empty, X, Empty},
			{Empty, Empty, Empty},
			{Empty, Empty, O},
		})

		// When: listing empty cells
		cells := board.EmptyCells()

		// Then: they come out row by row
		expected := []Position{{0, 0}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {2, 0}, {2, 1}}
		assert.Equal(t, expected, cells)
	})

	t.Run("Snapshot is not a live view", func(t *testing.T) {
		board := NewBoard()
		cells := board.EmptyCells()

		require.NoError(t, board.Place(Position{Row: 0, Col: 0}, X))

		assert.Len(t, cells, 9)
		assert.Len(t, board.EmptyCells(), 8)
	})

	t.Run("Full board has no empty cells", func(t *testing.T) {
		board := BoardFromRows(drawRows)

		assert.Empty(t, board.EmptyCells())
	})
}

func TestBoard_WinningLine(t *testing.T) {
	tests := []struct {
		name string
		rows [Size][Size]Cell
		mark Cell
		line Line
	}{
		{
			name: "row 1",
			rows: [Size][Size]Cell{{O, O, Empty}, {X, X, X}, {Empty, Empty, Empty}},
			mark: X,
			line: Line{{1, 0}, {1, 1}, {1, 2}},
		},
		{
			name: "column 2",
			rows: [Size][Size]Cell{{X, X, O}, {Empty, Empty, O}, {X, Empty, O}},
			mark: O,
			line: Line{{0, 2}, {1, 2}, {2, 2}},
		},
		{
			name: "main diagonal",
			rows: [Size][Size]Cell{{X, O, Empty}, {Empty, X, O}, {Empty, Empty, X}},
			mark: X,
			line: Line{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name: "anti diagonal",
			rows: [Size][Size]Cell{{X, X, O}, {Empty, O, Empty}, {O, Empty, X}},
			mark: O,
			line: Line{{0, 2}, {1, 1}, {2, 0}},
		},
		{
			name: "row wins over column when both are complete",
			rows: [Size][Size]Cell{{X, X, X}, {X, O, O}, {X, O, O}},
			mark: X,
			line: Line{{0, 0}, {0, 1}, {0, 2}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			board := BoardFromRows(tc.rows)

			line, ok := board.WinningLine(tc.mark)

			require.True(t, ok)
			assert.Equal(t, tc.line, line)
			assert.True(t, board.CheckWin(tc.mark))
			assert.Equal(t, tc.mark, board.Winner())
		})
	}

	t.Run("No line for the other mark", func(t *testing.T) {
		board := BoardFromRows([Size][Size]Cell{{X, X, X}, {O, O, Empty}, {Empty, Empty, Empty}})

		_, ok := board.WinningLine(O)

		assert.False(t, ok)
		assert.False(t, board.CheckWin(O))
	})

	t.Run("Empty is never a winner", func(t *testing.T) {
		board := NewBoard()

		_, ok := board.WinningLine(Empty)

		assert.False(t, ok)
		assert.Equal(t, Empty, board.Winner())
	})
}

func TestBoard_TerminalStates(t *testing.T) {
	t.Run("Draw", func(t *testing.T) {
		board := BoardFromRows(drawRows)

		assert.True(t, board.IsFull())
		assert.True(t, board.IsDraw())
		assert.True(t, board.IsGameOver())
		assert.Equal(t, Outcome{Kind: OutcomeDraw}, board.Outcome())
	})

	t.Run("Win on a full board is not a draw", func(t *testing.T) {
		board := BoardFromRows([Size][Size]Cell{{X, X, X}, {O, O, X}, {X, O, O}})

		assert.True(t, board.IsFull())
		assert.False(t, board.IsDraw())
		assert.Equal(t, Outcome{Kind: OutcomeWin, Winner: X}, board.Outcome())
	})

	t.Run("In progress", func(t *testing.T) {
		board := BoardFromRows([Size][Size]Cell{{X, O, Empty}, {Empty, X, Empty}, {Empty, Empty, O}})

		assert.False(t, board.IsGameOver())
		assert.False(t, board.Outcome().IsTerminal())
		assert.Equal(t, 4, board.MoveCount())
	})
}

func TestBoard_Copy(t *testing.T) {
	t.Run("Mutating the copy leaves the original untouched", func(t *testing.T) {
		// Given: a board with one mark and its copy
		original := NewBoard()
		require.NoError(t, original.Place(Position{Row: 0, Col: 0}, X))
		clone := original.Copy()

		// When: the copy is modified
		require.NoError(t, clone.Place(Position{Row: 1, Col: 1}, O))

		// Then: the original still has a single mark
		assert.True(t, original.IsEmpty(Position{Row: 1, Col: 1}))
		assert.Equal(t, 1, original.MoveCount())
		assert.Equal(t, 2, clone.MoveCount())
	})

	t.Run("Mutating the original leaves the copy untouched", func(t *testing.T) {
		original := NewBoard()
		clone := original.Copy()

		require.NoError(t, original.Place(Position{Row: 2, Col: 2}, O))
		original.Reset()
		require.NoError(t, original.Place(Position{Row: 0, Col: 1}, X))

		assert.Equal(t, 0, clone.MoveCount())
	})
}

func TestBoard_String(t *testing.T) {
	board := BoardFromRows([Size][Size]Cell{{X, Empty, Empty}, {Empty, O, Empty}, {Empty, Empty, Empty}})

	expected := " X | - | -\n-----------\n - | O | -\n-----------\n - | - | -\n"

	assert.Equal(t, expected, board.String())
}

func TestParseMark(t *testing.T) {
	mark, err := ParseMark("x")
	require.NoError(t, err)
	assert.Equal(t, X, mark)
	assert.Equal(t, O, mark.Opponent())

	_, err = ParseMark("Z")
	assert.ErrorIs(t, err, apperror.ErrInvalidMark)
}
