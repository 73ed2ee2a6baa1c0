package apperror

import "errors"

var (
	ErrOutOfBounds  = errors.New("position is out of bounds")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrWrongTurn    = errors.New("it's not your turn")
	ErrGameOver     = errors.New("game is already finished")

	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnknownStorage  = errors.New("unknown storage")
)
