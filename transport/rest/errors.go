package rest

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrWrongTurn),
		errors.Is(err, apperror.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
