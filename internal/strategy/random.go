package strategy

import (
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Random plays a uniformly chosen empty cell.
type Random struct {
	rnd *rand.Rand
}

func NewRandom() *Random {
	return NewSeededRandom(time.Now().UnixNano())
}

// NewSeededRandom gives a reproducible sequence of choices for the same seed.
func NewSeededRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))} //nolint: gosec // it's ok
}

func (that *Random) Choose(board *entity.Board, _ entity.Cell) (entity.Move, bool) {
	emptyCells := board.EmptyCells()
	if len(emptyCells) == 0 {
		return entity.Move{}, false
	}

	return emptyCells[that.rnd.Intn(len(emptyCells))], true
}

func (that *Random) Name() string {
	return "Easy (Random)"
}
