package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/othelloai/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for an Othello position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	lightToMove uint64

	// posTable[square][0] is a dark disk, [1] a light disk.
	posTable [board.MaxSquares][2]uint64
	dimTable [board.MaxDim + 1]uint64
	// ownerTable[board.Empty] stays zero.
	ownerTable [board.Light + 1]uint64
}

func (z *Zobrist) Initialize() {
	for i := range z.posTable {
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for i := range z.dimTable {
		z.dimTable[i] = frand.Uint64n(bignum) + 1
	}
	z.lightToMove = frand.Uint64n(bignum) + 1
	z.ownerTable[board.Dark] = frand.Uint64n(bignum) + 1
	z.ownerTable[board.Light] = frand.Uint64n(bignum) + 1
}

// https://stackoverflow.com/a/12996028/1737333
func hashUint64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * uint64(0xbf58476d1ce4e5b9)
	x = (x ^ (x >> 27)) * uint64(0x94d049bb133111eb)
	x = x ^ (x >> 31)
	return x
}

func diskIndex(c board.Color) int {
	if c == board.Light {
		return 1
	}
	return 0
}

// HashBoard hashes board content only.
func (z *Zobrist) HashBoard(b board.Board) uint64 {
	key := z.dimTable[b.Dim()]
	for i, c := range b.Squares() {
		if c == board.Empty {
			continue
		}
		key ^= z.posTable[i][diskIndex(c)]
	}
	return key
}

// HashPosition is the board hash with the side to move folded in.
func (z *Zobrist) HashPosition(b board.Board, toMove board.Color) uint64 {
	key := z.HashBoard(b)
	if toMove == board.Light {
		key ^= z.lightToMove
	}
	return key
}

// Hash also folds in the remaining search depth. Unlimited searches pass
// the same negative depth everywhere.
func (z *Zobrist) Hash(b board.Board, toMove board.Color, depth int) uint64 {
	return z.HashPosition(b, toMove) ^ hashUint64(uint64(int64(depth)))
}

// HashOwned also folds in the searching player an entry was computed
// for. An Empty owner leaves Hash unchanged.
func (z *Zobrist) HashOwned(b board.Board, toMove board.Color, depth int, owner board.Color) uint64 {
	return z.Hash(b, toMove, depth) ^ z.ownerTable[owner]
}
