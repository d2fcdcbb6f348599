package cache

import (
	"os"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/othelloai/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func mustParse(t *testing.T, s string) board.Board {
	t.Helper()
	b, err := board.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestCompositeKeySeparatesTurnAndDepth(t *testing.T) {
	is := is.New(t)
	tc := NewTranspositionCache(Composite)
	b := mustParse(t, "[[0, 0, 0, 0], [0, 2, 1, 0], [0, 1, 2, 0], [0, 0, 0, 0]]")

	tc.Put(b, board.Dark, 3, board.Empty, Entry{Move: board.NewMove(0, 1), Value: 2, Bound: Lower})

	e, ok := tc.Get(b, board.Dark, 3, board.Empty)
	is.True(ok)
	is.Equal(e, Entry{Move: board.NewMove(0, 1), Value: 2, Bound: Lower})

	_, ok = tc.Get(b, board.Light, 3, board.Empty)
	is.True(!ok)
	_, ok = tc.Get(b, board.Dark, 2, board.Empty)
	is.True(!ok)

	st := tc.Stats()
	is.Equal(st.Entries, 1)
	is.Equal(st.Created, uint64(1))
	is.Equal(st.Lookups, uint64(3))
	is.Equal(st.Hits, uint64(1))
	is.Equal(st.Collisions, uint64(0))
}

func TestCompositeKeySeparatesOwners(t *testing.T) {
	is := is.New(t)
	tc := NewTranspositionCache(Composite)
	b := mustParse(t, "[[0, 0, 0, 0], [0, 2, 1, 0], [0, 1, 2, 0], [0, 0, 0, 0]]")

	tc.Put(b, board.Light, 2, board.Dark, Entry{Move: board.NewMove(1, 0), Value: -3, Bound: Exact})
	e, ok := tc.Get(b, board.Light, 2, board.Dark)
	is.True(ok)
	is.Equal(e.Value, -3)

	_, ok = tc.Get(b, board.Light, 2, board.Light)
	is.True(!ok)
	_, ok = tc.Get(b, board.Light, 2, board.Empty)
	is.True(!ok)

	// the legacy key has no notion of owner
	legacy := NewTranspositionCache(BoardOnly)
	legacy.Put(b, board.Light, 2, board.Dark, Entry{Value: -3, Bound: Exact})
	_, ok = legacy.Get(b, board.Dark, 0, board.Light)
	is.True(ok)
}

func TestBoardOnlyIgnoresTurnAndDepth(t *testing.T) {
	is := is.New(t)
	tc := NewTranspositionCache(BoardOnly)
	b := mustParse(t, "[[1, 2], [0, 0]]")

	tc.Put(b, board.Dark, 5, board.Empty, Entry{Move: board.Pass, Value: 7, Bound: Upper})
	e, ok := tc.Get(b, board.Light, 0, board.Empty)
	is.True(ok)
	is.Equal(e.Value, 7)
	// bounds are not kept under the legacy key
	is.Equal(e.Bound, Exact)
}

func TestCollisionIsDetected(t *testing.T) {
	is := is.New(t)
	tc := NewTranspositionCache(Composite)
	b := mustParse(t, "[[1, 2], [0, 0]]")
	other := mustParse(t, "[[2, 1], [0, 0]]")

	// Plant a different position under b's key.
	tc.table[tc.key(b, board.Dark, 1, board.Empty)] = stored{board: other, toMove: board.Dark, depth: 1,
		entry: Entry{Value: 3, Bound: Exact}}

	_, ok := tc.Get(b, board.Dark, 1, board.Empty)
	is.True(!ok)
	is.Equal(tc.Stats().Collisions, uint64(1))
	is.Equal(tc.Stats().Hits, uint64(0))
}

func TestReset(t *testing.T) {
	is := is.New(t)
	tc := NewTranspositionCache(Composite)
	b := mustParse(t, "[[1, 2], [0, 0]]")
	tc.Put(b, board.Light, 1, board.Empty, Entry{Value: 1, Bound: Exact})
	_, _ = tc.Get(b, board.Light, 1, board.Empty)

	tc.Reset()
	is.Equal(tc.Len(), 0)
	is.Equal(tc.Stats(), Stats{})
	_, ok := tc.Get(b, board.Light, 1, board.Empty)
	is.True(!ok)
}

func TestBoundFlip(t *testing.T) {
	is := is.New(t)
	is.Equal(Lower.Flip(), Upper)
	is.Equal(Upper.Flip(), Lower)
	is.Equal(Exact.Flip(), Exact)
}

func TestParseKeyScheme(t *testing.T) {
	is := is.New(t)
	k, err := ParseKeyScheme("board-only")
	is.NoErr(err)
	is.Equal(k, BoardOnly)
	k, err = ParseKeyScheme("composite")
	is.NoErr(err)
	is.Equal(k, Composite)
	_, err = ParseKeyScheme("weird")
	is.True(err != nil)
}

func TestMultiThreadedMode(t *testing.T) {
	is := is.New(t)
	tc := NewTranspositionCache(Composite)
	tc.SetMultiThreadedMode()
	b := mustParse(t, "[[0, 0, 0, 0], [0, 2, 1, 0], [0, 1, 2, 0], [0, 0, 0, 0]]")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(depth int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tc.Put(b, board.Dark, depth, board.Empty, Entry{Value: depth, Bound: Exact})
				e, ok := tc.Get(b, board.Dark, depth, board.Empty)
				if ok && e.Value != depth {
					t.Errorf("depth %d read value %d", depth, e.Value)
				}
			}
		}(i)
	}
	wg.Wait()
	is.Equal(tc.Len(), 8)
	is.Equal(tc.Stats().Created, uint64(800))
}
