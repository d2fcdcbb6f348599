// Package game encapsulates the mechanics of an Othello game: the rules
// engine the search consults, and a Game that tracks whose turn it is
// across a whole match.
package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othelloai/board"
)

type PlayState int

const (
	Playing PlayState = iota
	GameOver
)

// Turn records one ply of a game. A forced pass has Move == board.Pass.
type Turn struct {
	Player board.Color
	Move   board.Move
}

// Game is the internal game structure: the current position, who is on
// turn, and what has been played so far.
// Note: a Game doesn't care how it is played. Players (the searcher, the
// protocol agent) choose moves outside of this package.
type Game struct {
	rules   Rules
	board   board.Board
	onturn  board.Color
	turnnum int
	playing PlayState
	history []Turn
}

// NewGame starts a game from pos with first to move.
func NewGame(rules Rules, pos board.Board, first board.Color) (*Game, error) {
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	if !first.Valid() {
		return nil, fmt.Errorf("%w: %v", board.ErrInvalidColor, first)
	}
	g := &Game{rules: rules, board: pos, onturn: first}
	g.updatePlayState()
	return g, nil
}

// NewStandardGame starts an Othello game on a dim x dim board, dark first.
func NewStandardGame(dim int) (*Game, error) {
	o := NewOthello()
	pos, err := o.StartingBoard(dim)
	if err != nil {
		return nil, err
	}
	return NewGame(o, pos, board.Dark)
}

func (g *Game) updatePlayState() {
	if len(g.rules.LegalMoves(g.board, board.Dark)) == 0 &&
		len(g.rules.LegalMoves(g.board, board.Light)) == 0 {
		g.playing = GameOver
	}
}

// PlayMove plays m for the player on turn. board.Pass is only accepted
// when that player has no legal move.
func (g *Game) PlayMove(m board.Move) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	if m.IsPass() {
		if len(g.rules.LegalMoves(g.board, g.onturn)) > 0 {
			return fmt.Errorf("%w: %v cannot pass with moves available", ErrIllegalMove, g.onturn)
		}
	} else {
		next, err := g.rules.ApplyMove(g.board, g.onturn, m)
		if err != nil {
			return err
		}
		g.board = next
	}
	g.history = append(g.history, Turn{Player: g.onturn, Move: m})
	g.onturn = g.onturn.Opponent()
	g.turnnum++
	g.updatePlayState()
	if g.playing == GameOver {
		dark, light := g.rules.Score(g.board)
		log.Debug().Int("dark", dark).Int("light", light).Int("turns", g.turnnum).Msg("game-over")
	}
	return nil
}

// MustPass reports whether the player on turn has no legal placement.
func (g *Game) MustPass() bool {
	return len(g.rules.LegalMoves(g.board, g.onturn)) == 0
}

func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) PlayerOnTurn() board.Color {
	return g.onturn
}

func (g *Game) Turn() int {
	return g.turnnum
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) History() []Turn {
	return g.history
}

// PointsFor is the disk count for c.
func (g *Game) PointsFor(c board.Color) int {
	dark, light := g.rules.Score(g.board)
	if c == board.Dark {
		return dark
	}
	return light
}

// SpreadFor is c's disk count minus the opponent's.
func (g *Game) SpreadFor(c board.Color) int {
	return g.PointsFor(c) - g.PointsFor(c.Opponent())
}

// Winner returns the color with more disks, or board.Empty for a draw or
// an unfinished game.
func (g *Game) Winner() board.Color {
	if g.playing != GameOver {
		return board.Empty
	}
	switch spread := g.SpreadFor(board.Dark); {
	case spread > 0:
		return board.Dark
	case spread < 0:
		return board.Light
	}
	return board.Empty
}
