package strategy

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Strategy picks a move for mark on board. It returns false when no cell is empty.
// Implementations must not modify board.
type Strategy interface {
	Choose(board *entity.Board, mark entity.Cell) (entity.Move, bool)
	Name() string
}

type Kind string

const (
	KindRandom  Kind = "random"
	KindSmart   Kind = "smart"
	KindMinimax Kind = "minimax"
)

// ParseKind accepts a strategy kind in any case.
func ParseKind(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(s))); kind {
	case KindRandom, KindSmart, KindMinimax:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, s)
	}
}

// New builds a strategy of the given kind. Seed is only used by the random strategy;
// a nil seed gives an unseeded source.
func New(kind Kind, seed *int64) (Strategy, error) {
	switch kind {
	case KindRandom:
		if seed != nil {
			return NewSeededRandom(*seed), nil
		}
		return NewRandom(), nil
	case KindSmart:
		return NewSmart(), nil
	case KindMinimax:
		return NewMinimax(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, kind)
	}
}
