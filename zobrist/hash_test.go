package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/game"
)

func TestHashOwnedSeparatesSearchers(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	b, err := game.NewOthello().StartingBoard(4)
	is.NoErr(err)

	is.Equal(z.HashOwned(b, board.Dark, 2, board.Empty), z.Hash(b, board.Dark, 2))
	is.True(z.HashOwned(b, board.Dark, 2, board.Dark) != z.Hash(b, board.Dark, 2))
	is.True(z.HashOwned(b, board.Dark, 2, board.Dark) != z.HashOwned(b, board.Dark, 2, board.Light))
}

func TestHashSeparatesTurnAndDepth(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	b, err := game.NewOthello().StartingBoard(4)
	is.NoErr(err)

	is.True(z.HashPosition(b, board.Dark) != z.HashPosition(b, board.Light))
	is.True(z.Hash(b, board.Dark, 3) != z.Hash(b, board.Dark, 4))
	is.True(z.Hash(b, board.Dark, -1) != z.Hash(b, board.Dark, 0))
	is.Equal(z.Hash(b, board.Light, 2), z.Hash(b, board.Light, 2))
	is.Equal(z.HashPosition(b, board.Dark), z.HashBoard(b))
}

func TestHashSeparatesDimensions(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	small, err := board.NewEmpty(4)
	is.NoErr(err)
	large, err := board.NewEmpty(6)
	is.NoErr(err)
	is.True(z.HashBoard(small) != z.HashBoard(large))
}
