package equity

import (
	"github.com/domino14/othelloai/board"
)

// Utility is the disk differential for c: own disks minus opponent disks.
// It is antisymmetric, Utility(b, Dark) == -Utility(b, Light), and bounded
// by the number of squares.
func Utility(s Scorer, b board.Board, c board.Color) int {
	dark, light := s.Score(b)
	if c == board.Dark {
		return dark - light
	}
	return light - dark
}

// UtilityCalculator is the Calculator the search uses by default.
type UtilityCalculator struct {
	scorer Scorer
}

func NewUtilityCalculator(s Scorer) *UtilityCalculator {
	return &UtilityCalculator{scorer: s}
}

func (u *UtilityCalculator) Equity(b board.Board, c board.Color) int {
	return Utility(u.scorer, b, c)
}
