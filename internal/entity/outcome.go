package entity

// OutcomeKind classifies a board: still playing, won by a mark, or drawn.
type OutcomeKind uint8

const (
	OutcomeInProgress OutcomeKind = iota
	OutcomeWin
	OutcomeDraw
)

// Outcome is derived from the board on demand. Winner is set only for OutcomeWin.
type Outcome struct {
	Kind   OutcomeKind
	Winner Cell
}

func (that Outcome) IsTerminal() bool {
	return that.Kind != OutcomeInProgress
}

// Result is the outcome of a match as seen by the human.
type Result string

const (
	ResultInProgress Result = "in_progress"
	ResultWin        Result = "win"
	ResultLoss       Result = "loss"
	ResultDraw       Result = "draw"
)

// ResultFor maps an outcome onto the perspective of the given mark.
func ResultFor(outcome Outcome, mark Cell) Result {
	switch outcome.Kind {
	case OutcomeWin:
		if outcome.Winner == mark {
			return ResultWin
		}
		return ResultLoss
	case OutcomeDraw:
		return ResultDraw
	default:
		return ResultInProgress
	}
}
