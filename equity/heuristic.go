package equity

import (
	"github.com/samber/lo"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/game"
)

type candidate struct {
	move        board.Move
	next        board.Board
	improvement int
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// HeuristicMove is a one-ply suggestion. It keeps the moves that do not
// leave the opponent with a larger magnitude of advantage than c has now,
// and picks the one that shrinks that magnitude the most. The first move
// in rules-engine order wins ties. It returns board.Pass and the current
// utility when c has no move or no move survives the filter; otherwise
// the chosen move and the utility for c after playing it.
func HeuristicMove(r game.Rules, b board.Board, c board.Color) (board.Move, int) {
	current := Utility(r, b, c)
	moves := r.LegalMoves(b, c)
	if len(moves) == 0 {
		return board.Pass, current
	}
	opp := c.Opponent()

	var survivors []candidate
	for _, m := range moves {
		next, err := r.ApplyMove(b, c, m)
		if err != nil {
			// skip moves the rules engine will not apply
			continue
		}
		oppUtil := abs(Utility(r, next, opp))
		if len(r.LegalMoves(next, opp)) == 0 && oppUtil < abs(current) {
			continue
		}
		improvement := abs(current) - oppUtil
		if improvement < 0 {
			continue
		}
		survivors = append(survivors, candidate{move: m, next: next, improvement: improvement})
	}
	if len(survivors) == 0 {
		return board.Pass, current
	}
	best := lo.MaxBy(survivors, func(a, b candidate) bool {
		return a.improvement > b.improvement
	})
	return best.move, Utility(r, best.next, c)
}
