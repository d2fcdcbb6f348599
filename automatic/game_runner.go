// Package automatic plays computer-vs-computer Othello games, so two
// search configurations can be compared over many games.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/config"
	"github.com/domino14/othelloai/equity"
	"github.com/domino14/othelloai/game"
	"github.com/domino14/othelloai/search"
)

// PlayerConfig describes one side of a match.
type PlayerConfig struct {
	Name   string
	Params search.Params
	// Heuristic plays the one-ply heuristic instead of searching.
	Heuristic bool
}

// Result is the outcome of one game, seen from the first player's side.
type Result struct {
	GameID      int
	FirstIsDark bool
	Dark        int
	Light       int
	Turns       int
	Margin      int
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game         *game.Game
	rules        game.Othello
	dim          int
	openingPlies int
	players      [2]PlayerConfig
	solvers      [2]*search.Solver
	// colors[i] is the color players[i] has this game.
	colors [2]board.Color
}

// NewGameRunner gives each player its own solver, so runners never share
// a cache.
func NewGameRunner(cfg *config.Config, p1, p2 PlayerConfig) (*GameRunner, error) {
	opts, err := search.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	r := &GameRunner{
		rules:        game.NewOthello(),
		dim:          cfg.GetInt(config.ConfigBoardDim),
		openingPlies: cfg.GetInt(config.ConfigOpeningPlies),
		players:      [2]PlayerConfig{p1, p2},
	}
	for i := range r.solvers {
		r.solvers[i] = search.NewSolver(r.rules, opts...)
	}
	return r, nil
}

// StartGame sets up a fresh board. The first player is dark when
// firstIsDark is set.
func (r *GameRunner) StartGame(firstIsDark bool) error {
	g, err := game.NewStandardGame(r.dim)
	if err != nil {
		return err
	}
	r.game = g
	if firstIsDark {
		r.colors = [2]board.Color{board.Dark, board.Light}
	} else {
		r.colors = [2]board.Color{board.Light, board.Dark}
	}
	return nil
}

func (r *GameRunner) playerIdx(c board.Color) int {
	if r.colors[0] == c {
		return 0
	}
	return 1
}

// playRandomOpening plays up to n random legal moves so that repeated
// games between deterministic players differ.
func (r *GameRunner) playRandomOpening(n int) error {
	for i := 0; i < n && r.game.Playing() == game.Playing; i++ {
		moves := r.rules.LegalMoves(r.game.Board(), r.game.PlayerOnTurn())
		m := board.Pass
		if len(moves) > 0 {
			m = moves[frand.Intn(len(moves))]
		}
		if err := r.game.PlayMove(m); err != nil {
			return err
		}
	}
	return nil
}

func (r *GameRunner) genBestMove(ctx context.Context) (board.Move, error) {
	onturn := r.game.PlayerOnTurn()
	idx := r.playerIdx(onturn)
	if r.game.MustPass() {
		return board.Pass, nil
	}
	if r.players[idx].Heuristic {
		m, _ := equity.HeuristicMove(r.rules, r.game.Board(), onturn)
		if m.IsPass() {
			// The heuristic can reject every move; play the first one.
			m = r.rules.LegalMoves(r.game.Board(), onturn)[0]
		}
		return m, nil
	}
	m, _, err := r.solvers[idx].SelectMove(ctx, r.game.Board(), onturn, r.players[idx].Params)
	return m, err
}

// PlayBestTurn has the player on turn choose a move and plays it.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	m, err := r.genBestMove(ctx)
	if err != nil {
		return err
	}
	if err := r.game.PlayMove(m); err != nil {
		return fmt.Errorf("%s played %v: %w", r.players[r.playerIdx(r.game.PlayerOnTurn())].Name, m, err)
	}
	return nil
}

// PlayGame plays one whole game from a fresh board.
func (r *GameRunner) PlayGame(ctx context.Context, gameID int, firstIsDark bool) (Result, error) {
	if err := r.StartGame(firstIsDark); err != nil {
		return Result{}, err
	}
	if err := r.playRandomOpening(r.openingPlies); err != nil {
		return Result{}, err
	}
	for r.game.Playing() == game.Playing {
		if err := r.PlayBestTurn(ctx); err != nil {
			return Result{}, err
		}
	}
	dark, light := r.rules.Score(r.game.Board())
	res := Result{
		GameID:      gameID,
		FirstIsDark: firstIsDark,
		Dark:        dark,
		Light:       light,
		Turns:       r.game.Turn(),
		Margin:      r.game.SpreadFor(r.colors[0]),
	}
	log.Debug().Int("game", gameID).Bool("first-is-dark", firstIsDark).
		Int("dark", dark).Int("light", light).Int("margin", res.Margin).
		Str("final", r.game.Board().ToDisplayText()).
		Msg("game-finished")
	return res, nil
}
