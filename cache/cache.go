// Package cache holds the transposition cache shared by the search
// engines. It memoizes (move, value) results for positions already
// searched, so a transposition (the same position reached by another move
// order) is only searched once.
package cache

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/zobrist"
)

// KeyScheme picks what identifies a cached position.
type KeyScheme int

const (
	// Composite keys on board content, side to move, remaining depth and
	// the owner the entry was searched for.
	Composite KeyScheme = iota
	// BoardOnly keys on board content alone. An entry computed for one side,
	// depth or owner is returned for any other, so results can differ from an
	// uncached search. Kept for comparison with the composite key.
	BoardOnly
)

func (k KeyScheme) String() string {
	switch k {
	case Composite:
		return "composite"
	case BoardOnly:
		return "board-only"
	}
	return fmt.Sprintf("key-scheme(%d)", int(k))
}

// ParseKeyScheme maps a config value to a KeyScheme.
func ParseKeyScheme(s string) (KeyScheme, error) {
	switch s {
	case "composite", "":
		return Composite, nil
	case "board-only", "board":
		return BoardOnly, nil
	}
	return Composite, fmt.Errorf("unknown key scheme %q", s)
}

// Bound says how Entry.Value relates to the true value of the position.
type Bound uint8

const (
	Exact Bound = iota + 1
	// Lower means the true value is at least Value (a cutoff at a max node).
	Lower
	// Upper means the true value is at most Value.
	Upper
)

// Flip returns the bound seen from the other player's side.
func (b Bound) Flip() Bound {
	switch b {
	case Lower:
		return Upper
	case Upper:
		return Lower
	}
	return b
}

type Entry struct {
	Move  board.Move
	Value int
	Bound Bound
}

// stored keeps the full key next to the entry so a hash collision is
// detected instead of returning another position's result.
type stored struct {
	board  board.Board
	toMove board.Color
	depth  int
	owner  board.Color
	entry  Entry
}

// rough bytes per map entry including bucket overhead.
const entrySize = 120

const memCheckInterval = 1 << 14

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

// TranspositionCache is unbounded and never evicts. It starts in
// single-threaded mode; call SetMultiThreadedMode before sharing it
// between goroutines.
type TranspositionCache struct {
	TableLock
	scheme  KeyScheme
	table   map[uint64]stored
	zobrist *zobrist.Zobrist

	created    atomic.Uint64
	lookups    atomic.Uint64
	hits       atomic.Uint64
	collisions atomic.Uint64

	memFraction float64
	warned      atomic.Bool
}

func NewTranspositionCache(scheme KeyScheme) *TranspositionCache {
	z := &zobrist.Zobrist{}
	z.Initialize()
	t := &TranspositionCache{
		scheme:      scheme,
		table:       make(map[uint64]stored),
		zobrist:     z,
		memFraction: 0.25,
	}
	t.SetSingleThreadedMode()
	return t
}

func (t *TranspositionCache) SetSingleThreadedMode() {
	t.TableLock = &FakeLock{}
}

func (t *TranspositionCache) SetMultiThreadedMode() {
	t.TableLock = new(sync.RWMutex)
}

// SetMemoryWarningFraction sets the share of system memory past which the
// cache logs a warning. Zero or less disables the warning.
func (t *TranspositionCache) SetMemoryWarningFraction(f float64) {
	t.memFraction = f
}

func (t *TranspositionCache) Scheme() KeyScheme {
	return t.scheme
}

func (t *TranspositionCache) key(b board.Board, toMove board.Color, depth int, owner board.Color) uint64 {
	if t.scheme == BoardOnly {
		return t.zobrist.HashBoard(b)
	}
	return t.zobrist.HashOwned(b, toMove, depth, owner)
}

func (t *TranspositionCache) matches(s stored, b board.Board, toMove board.Color, depth int,
	owner board.Color) bool {
	if s.board != b {
		return false
	}
	return t.scheme == BoardOnly || (s.toMove == toMove && s.depth == depth && s.owner == owner)
}

// Get looks up the position b with toMove to move and depth plies left.
// owner is the searching player whose values the entry holds, or
// board.Empty when values are relative to the side to move and serve
// either searcher. Under BoardOnly only b is used.
func (t *TranspositionCache) Get(b board.Board, toMove board.Color, depth int, owner board.Color) (Entry, bool) {
	zval := t.key(b, toMove, depth, owner)
	t.RLock()
	defer t.RUnlock()
	t.lookups.Add(1)
	s, ok := t.table[zval]
	if !ok {
		return Entry{}, false
	}
	if !t.matches(s, b, toMove, depth, owner) {
		// Another position hashed to the same key.
		t.collisions.Add(1)
		return Entry{}, false
	}
	t.hits.Add(1)
	return s.entry, true
}

// Put stores e, overwriting whatever was there.
func (t *TranspositionCache) Put(b board.Board, toMove board.Color, depth int, owner board.Color, e Entry) {
	zval := t.key(b, toMove, depth, owner)
	if t.scheme == BoardOnly {
		e.Bound = Exact
	}
	t.Lock()
	t.table[zval] = stored{board: b, toMove: toMove, depth: depth, owner: owner, entry: e}
	n := len(t.table)
	t.Unlock()
	if t.created.Add(1)%memCheckInterval == 0 {
		t.checkMemory(n)
	}
}

func (t *TranspositionCache) checkMemory(n int) {
	if t.memFraction <= 0 || t.warned.Load() {
		return
	}
	totalMem := memory.TotalMemory()
	if totalMem == 0 {
		return
	}
	estimated := uint64(n) * entrySize
	if float64(estimated) < t.memFraction*float64(totalMem) {
		return
	}
	if t.warned.CompareAndSwap(false, true) {
		log.Warn().Int("entries", n).
			Uint64("estimated-bytes", estimated).
			Uint64("total-system-memory-bytes", totalMem).
			Float64("fraction", t.memFraction).
			Msg("transposition-cache-large")
	}
}

func (t *TranspositionCache) Len() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.table)
}

// Reset empties the cache and zeroes its counters.
func (t *TranspositionCache) Reset() {
	t.Lock()
	defer t.Unlock()
	clear(t.table)
	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.collisions.Store(0)
	t.warned.Store(false)
}

type Stats struct {
	Entries    int
	Created    uint64
	Lookups    uint64
	Hits       uint64
	Collisions uint64
}

func (t *TranspositionCache) Stats() Stats {
	return Stats{
		Entries:    t.Len(),
		Created:    t.created.Load(),
		Lookups:    t.lookups.Load(),
		Hits:       t.hits.Load(),
		Collisions: t.collisions.Load(),
	}
}
