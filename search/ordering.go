package search

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/equity"
	"github.com/domino14/othelloai/game"
)

// OrderingPerspective picks whose utility ranks a node's moves.
type OrderingPerspective int

const (
	// OrderByMover ranks each node's moves by the utility of the side
	// making them, the same rule at max and min nodes.
	OrderByMover OrderingPerspective = iota
	// OrderByPlayer ranks every node's moves by the searching player's
	// utility, so min nodes try the opponent's weakest replies first.
	OrderByPlayer
)

func ParseOrderingPerspective(s string) (OrderingPerspective, error) {
	switch s {
	case "mover", "":
		return OrderByMover, nil
	case "player":
		return OrderByPlayer, nil
	}
	return OrderByMover, fmt.Errorf("unknown ordering perspective %q", s)
}

func (s *Solver) orderingJudge(toMove board.Color) board.Color {
	if s.perspective == OrderByPlayer {
		return s.player
	}
	return toMove
}

// MoveOrderer sorts moves best-first by a one-ply lookahead so alpha-beta
// cuts off sooner.
type MoveOrderer struct {
	rules      game.Rules
	calculator equity.Calculator
}

func NewMoveOrderer(rules game.Rules, calc equity.Calculator) *MoveOrderer {
	return &MoveOrderer{rules: rules, calculator: calc}
}

type valuedMove struct {
	move  board.Move
	value int
}

// Order returns a new slice of moves sorted by descending value of the
// position after mover plays each one, valued for judge. Ties keep their
// original order.
func (o *MoveOrderer) Order(b board.Board, judge, mover board.Color,
	moves []board.Move) ([]board.Move, error) {

	var err error
	valued := lo.Map(moves, func(m board.Move, _ int) valuedMove {
		next, aerr := o.rules.ApplyMove(b, mover, m)
		if aerr != nil {
			err = aerr
			return valuedMove{move: m}
		}
		return valuedMove{move: m, value: o.calculator.Equity(next, judge)}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(valued, func(i, j int) bool {
		return valued[i].value > valued[j].value
	})
	return lo.Map(valued, func(v valuedMove, _ int) board.Move {
		return v.move
	}), nil
}
