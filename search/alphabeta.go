package search

import (
	"context"

	"github.com/domino14/othelloai/board"
)

// alphabeta is minimax with fail-soft pruning. α is the value the
// searching player can already guarantee, β the value the opponent can.
// Because a child only replaces the best move on strict improvement, the
// root move and value are the ones minimax finds when ordering is off.
func (s *Solver) alphabeta(ctx context.Context, b board.Board, toMove board.Color,
	depth, α, β int) (board.Move, int, error) {

	if ctx.Err() != nil {
		return board.Pass, 0, ctx.Err()
	}
	moves, ok := s.expand(b, toMove, depth)
	if !ok {
		return board.Pass, s.evaluate(b, toMove), nil
	}
	if s.params.Ordering {
		var err error
		moves, err = s.orderer.Order(b, s.orderingJudge(toMove), toMove, moves)
		if err != nil {
			return board.Pass, 0, err
		}
	}
	maximizing := toMove == s.player

	bestMove := board.Pass
	bestValue := Infinity
	if maximizing {
		bestValue = -Infinity
	}
	for _, m := range moves {
		next, err := s.rules.ApplyMove(b, toMove, m)
		if err != nil {
			return board.Pass, 0, err
		}
		v, err := s.childValue(ctx, next, toMove.Opponent(), childDepth(depth), α, β, s.alphabeta)
		if err != nil {
			return board.Pass, 0, err
		}
		if maximizing {
			if v > bestValue {
				bestValue = v
				bestMove = m
			}
			if bestValue >= β {
				s.stats.Cutoffs++
				break // beta cut-off
			}
			α = max(α, bestValue)
		} else {
			if v < bestValue {
				bestValue = v
				bestMove = m
			}
			if bestValue <= α {
				s.stats.Cutoffs++
				break // alpha cut-off
			}
			β = min(β, bestValue)
		}
	}
	return bestMove, bestValue, nil
}
