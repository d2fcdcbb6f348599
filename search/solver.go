// Package search selects Othello moves by game-tree search: plain minimax,
// or alpha-beta with optional move ordering. Both engines can share a
// transposition cache.
//
// The player SelectMove was called for maximizes and the opponent
// minimizes. A terminal node is scored for the side to move there unless
// the solver is built with WithLeafPerspective(LeafSearchingPlayer), which
// scores every terminal node for the searching player.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/cache"
	"github.com/domino14/othelloai/equity"
	"github.com/domino14/othelloai/game"
)

const (
	// Unlimited searches until the game tree runs out.
	Unlimited = -1
	// Infinity is better than any real utility; -Infinity is worse.
	Infinity = board.MaxSquares + 1
)

var (
	ErrInvalidDepthLimit = errors.New("invalid depth limit")
	ErrUnknownMode       = errors.New("unknown search mode")
)

type Mode int

const (
	AlphaBeta Mode = iota
	Minimax
)

func (m Mode) String() string {
	switch m {
	case AlphaBeta:
		return "alphabeta"
	case Minimax:
		return "minimax"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "alphabeta", "alpha-beta", "":
		return AlphaBeta, nil
	case "minimax":
		return Minimax, nil
	}
	return AlphaBeta, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// CacheScope decides how long cached results live.
type CacheScope int

const (
	// ScopeProcess keeps one cache for the life of the Solver, reused
	// across turns.
	ScopeProcess CacheScope = iota
	// ScopeSearch empties the cache at the start of every SelectMove.
	ScopeSearch
)

func ParseCacheScope(s string) (CacheScope, error) {
	switch s {
	case "process", "":
		return ScopeProcess, nil
	case "search":
		return ScopeSearch, nil
	}
	return ScopeProcess, fmt.Errorf("unknown cache scope %q", s)
}

// LeafPerspective picks whose utility scores a terminal node.
type LeafPerspective int

const (
	// LeafNodeColor scores a terminal node for the color to move there, at
	// max and min nodes alike.
	LeafNodeColor LeafPerspective = iota
	// LeafSearchingPlayer scores every terminal node for the player the
	// search runs for.
	LeafSearchingPlayer
)

func (l LeafPerspective) String() string {
	switch l {
	case LeafNodeColor:
		return "node"
	case LeafSearchingPlayer:
		return "player"
	}
	return fmt.Sprintf("leaf-perspective(%d)", int(l))
}

func ParseLeafPerspective(s string) (LeafPerspective, error) {
	switch s {
	case "node", "node-color", "":
		return LeafNodeColor, nil
	case "player", "searching-player":
		return LeafSearchingPlayer, nil
	}
	return LeafNodeColor, fmt.Errorf("unknown leaf perspective %q", s)
}

// Params are the per-call search settings.
type Params struct {
	// DepthLimit is the number of plies to search, or Unlimited.
	DepthLimit int
	Mode       Mode
	Caching    bool
	// Ordering only affects AlphaBeta.
	Ordering bool
}

func (p Params) validate() error {
	if p.DepthLimit < 0 && p.DepthLimit != Unlimited {
		return fmt.Errorf("%w: %d", ErrInvalidDepthLimit, p.DepthLimit)
	}
	if p.Mode != AlphaBeta && p.Mode != Minimax {
		return fmt.Errorf("%w: %v", ErrUnknownMode, p.Mode)
	}
	return nil
}

// Stats describe the last SelectMove call.
type Stats struct {
	Nodes       uint64
	Leaves      uint64
	Cutoffs     uint64
	CacheHits   uint64
	CacheMisses uint64
	Elapsed     time.Duration
}

// Solver is not safe for concurrent use. Give each goroutine its own, or
// share a multi-threaded cache between them with WithCache.
type Solver struct {
	rules       game.Rules
	calculator  equity.Calculator
	cache       *cache.TranspositionCache
	keyScheme   cache.KeyScheme
	scope       CacheScope
	perspective OrderingPerspective
	leaves      LeafPerspective
	memFraction float64
	orderer     *MoveOrderer

	// set for the duration of a search
	player board.Color
	params Params
	stats  Stats
}

type Option func(*Solver)

// WithCache makes the solver use c, whose key scheme then wins over
// WithKeyScheme.
func WithCache(c *cache.TranspositionCache) Option {
	return func(s *Solver) { s.cache = c }
}

func WithKeyScheme(k cache.KeyScheme) Option {
	return func(s *Solver) { s.keyScheme = k }
}

func WithCacheScope(sc CacheScope) Option {
	return func(s *Solver) { s.scope = sc }
}

func WithOrderingPerspective(p OrderingPerspective) Option {
	return func(s *Solver) { s.perspective = p }
}

func WithLeafPerspective(l LeafPerspective) Option {
	return func(s *Solver) { s.leaves = l }
}

// WithCalculator replaces the leaf evaluation. The default is the disk
// differential.
func WithCalculator(c equity.Calculator) Option {
	return func(s *Solver) { s.calculator = c }
}

func WithMemoryWarningFraction(f float64) Option {
	return func(s *Solver) { s.memFraction = f }
}

func NewSolver(rules game.Rules, opts ...Option) *Solver {
	s := &Solver{rules: rules, memFraction: -1}
	for _, o := range opts {
		o(s)
	}
	if s.calculator == nil {
		s.calculator = equity.NewUtilityCalculator(rules)
	}
	if s.cache == nil {
		s.cache = cache.NewTranspositionCache(s.keyScheme)
	}
	if s.memFraction >= 0 {
		s.cache.SetMemoryWarningFraction(s.memFraction)
	}
	s.orderer = NewMoveOrderer(rules, s.calculator)
	return s
}

func (s *Solver) Cache() *cache.TranspositionCache {
	return s.cache
}

func (s *Solver) Stats() Stats {
	return s.stats
}

// SelectMove searches b for color and returns the chosen move and its
// backed-up value. When color has no legal move it returns board.Pass and
// the current utility for color; that is not an error.
func (s *Solver) SelectMove(ctx context.Context, b board.Board, color board.Color,
	p Params) (board.Move, int, error) {

	if err := b.Validate(); err != nil {
		return board.Pass, 0, err
	}
	if !color.Valid() {
		return board.Pass, 0, fmt.Errorf("%w: %v", board.ErrInvalidColor, color)
	}
	if err := p.validate(); err != nil {
		return board.Pass, 0, err
	}
	log.Debug().Int("depth-limit", p.DepthLimit).
		Stringer("mode", p.Mode).
		Bool("caching", p.Caching).
		Bool("ordering", p.Ordering).
		Stringer("player", color).
		Stringer("leaf-perspective", s.leaves).
		Uint64("board", b.Digest()).
		Msg("select-move-config")
	if p.Mode == Minimax && p.Ordering {
		log.Debug().Msg("ordering-has-no-effect-under-minimax")
	}
	if p.Caching && s.scope == ScopeSearch {
		s.cache.Reset()
	}

	s.player = color
	s.params = p
	s.stats = Stats{}
	tstart := time.Now()

	var m board.Move
	var v int
	var err error
	if p.Mode == Minimax {
		m, v, err = s.minimax(ctx, b, color, p.DepthLimit)
	} else {
		m, v, err = s.alphabeta(ctx, b, color, p.DepthLimit, -Infinity, Infinity)
	}
	s.stats.Elapsed = time.Since(tstart)
	if err != nil {
		return board.Pass, 0, err
	}

	cs := s.cache.Stats()
	log.Debug().Stringer("move", m).
		Int("value", v).
		Uint64("nodes", s.stats.Nodes).
		Uint64("leaves", s.stats.Leaves).
		Uint64("cutoffs", s.stats.Cutoffs).
		Uint64("cache-hits", s.stats.CacheHits).
		Uint64("cache-misses", s.stats.CacheMisses).
		Int("cache-entries", cs.Entries).
		Uint64("cache-collisions", cs.Collisions).
		Float64("time-elapsed-sec", s.stats.Elapsed.Seconds()).
		Msg("select-move-returning")
	return m, v, nil
}

func (s *Solver) evaluate(b board.Board, toMove board.Color) int {
	if s.leaves == LeafSearchingPlayer {
		return s.calculator.Equity(b, s.player)
	}
	return s.calculator.Equity(b, toMove)
}

func childDepth(depth int) int {
	if depth == Unlimited {
		return Unlimited
	}
	return depth - 1
}

// expand returns the moves to search at a node, or ok == false when the
// node is terminal: the side to move has no move or no depth is left.
func (s *Solver) expand(b board.Board, toMove board.Color, depth int) ([]board.Move, bool) {
	s.stats.Nodes++
	if depth == 0 {
		s.stats.Leaves++
		return nil, false
	}
	moves := s.rules.LegalMoves(b, toMove)
	if len(moves) == 0 {
		s.stats.Leaves++
		return nil, false
	}
	return moves, true
}

type nodeSearch func(ctx context.Context, b board.Board, toMove board.Color, depth, α, β int) (board.Move, int, error)

// childValue evaluates the successor position next, consulting the cache
// first when caching is on. The window (α, β) is the parent's; a cached
// bound is only used when it already decides that window.
func (s *Solver) childValue(ctx context.Context, next board.Board, toMove board.Color,
	depth, α, β int, search nodeSearch) (int, error) {

	if s.params.Caching {
		if e, ok := s.cache.Get(next, toMove, depth, s.cacheOwner()); ok {
			v, bound := s.fromCache(e, toMove)
			if bound == cache.Exact || (bound == cache.Lower && v >= β) ||
				(bound == cache.Upper && v <= α) {
				s.stats.CacheHits++
				return v, nil
			}
		}
		s.stats.CacheMisses++
	}

	m, v, err := search(ctx, next, toMove, depth, α, β)
	if err != nil {
		return 0, err
	}
	if s.params.Caching {
		bound := cache.Exact
		if v <= α {
			bound = cache.Upper
		} else if v >= β {
			bound = cache.Lower
		}
		s.cache.Put(next, toMove, depth, s.cacheOwner(), s.toCache(m, v, bound, toMove))
	}
	return v, nil
}

// When every leaf is scored for the searching player, a subtree searched
// for the opponent has exactly the negated value. Composite entries then
// hold values from the point of view of the side to move and serve
// searches for either color. Scoring leaves for the node's color breaks
// that symmetry, so entries are kept raw and belong to the searcher.
// BoardOnly entries are always raw.
func (s *Solver) cacheOwner() board.Color {
	if s.leaves == LeafSearchingPlayer {
		return board.Empty
	}
	return s.player
}

func (s *Solver) flipsForCache(toMove board.Color) bool {
	return s.cache.Scheme() == cache.Composite && s.leaves == LeafSearchingPlayer &&
		toMove != s.player
}

func (s *Solver) toCache(m board.Move, v int, bound cache.Bound, toMove board.Color) cache.Entry {
	if s.flipsForCache(toMove) {
		return cache.Entry{Move: m, Value: -v, Bound: bound.Flip()}
	}
	return cache.Entry{Move: m, Value: v, Bound: bound}
}

func (s *Solver) fromCache(e cache.Entry, toMove board.Color) (int, cache.Bound) {
	if s.flipsForCache(toMove) {
		return -e.Value, e.Bound.Flip()
	}
	return e.Value, e.Bound
}
