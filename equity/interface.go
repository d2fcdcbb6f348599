package equity

import (
	"github.com/domino14/othelloai/board"
)

// Scorer is the slice of the rules engine the evaluator needs.
type Scorer interface {
	Score(b board.Board) (dark, light int)
}

// Calculator values a position from one player's point of view. The
// search calls it at every leaf.
type Calculator interface {
	Equity(b board.Board, c board.Color) int
}
