package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Size is the number of rows and columns of the board.
const Size = 3

// Cell is the state of one board cell: empty or one of the two marks.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// IsMark reports whether c is one of the two playable marks.
func (c Cell) IsMark() bool {
	return c == X || c == O
}

// Opponent returns the other mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "-"
	}
}

func (c Cell) MarshalText() ([]byte, error) {
	if c == Empty {
		return []byte(""), nil
	}
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Empty
		return nil
	}

	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}
	*c = mark

	return nil
}

// ParseMark converts "X" or "O" (any case) into a mark.
func ParseMark(s string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

// Position is a (row, column) pair on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move identifies a placement on the board.
type Move = Position

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Line is an ordered triple of positions forming a row, column or diagonal.
type Line [Size]Position

// WinLines lists every line in the order they are checked: rows, columns, main diagonal, anti-diagonal.
var WinLines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}
