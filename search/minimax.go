package search

import (
	"context"

	"github.com/domino14/othelloai/board"
)

/*
function minimax(node, depth, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, minimax(child, depth − 1, FALSE))
    else (* minimizing player *)
        value := +∞
        for each child of node do
            value := min(value, minimax(child, depth − 1, TRUE))
    return value
*/

// minimax maximizes when the searching player is to move and minimizes
// otherwise. The first move with a strictly better value is kept; later
// ties do not replace it.
func (s *Solver) minimax(ctx context.Context, b board.Board, toMove board.Color,
	depth int) (board.Move, int, error) {

	if ctx.Err() != nil {
		return board.Pass, 0, ctx.Err()
	}
	moves, ok := s.expand(b, toMove, depth)
	if !ok {
		return board.Pass, s.evaluate(b, toMove), nil
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
		v, err := s.childValue(ctx, next, toMove.Opponent(), childDepth(depth),
			-Infinity, Infinity, s.minimaxNode)
		if err != nil {
			return board.Pass, 0, err
		}
		if (maximizing && v > bestValue) || (!maximizing && v < bestValue) {
			bestValue = v
			bestMove = m
		}
	}
	return bestMove, bestValue, nil
}

func (s *Solver) minimaxNode(ctx context.Context, b board.Board, toMove board.Color,
	depth, _, _ int) (board.Move, int, error) {
	return s.minimax(ctx, b, toMove, depth)
}
