package game

import (
	"errors"
	"fmt"

	"github.com/domino14/othelloai/board"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
	ErrBadBoardDim = errors.New("starting board dimension must be even and at least 4")
)

// Rules is what the search needs from a rules engine. Implementations must
// never modify the board they are handed.
type Rules interface {
	// LegalMoves enumerates the placements available to c, in a stable
	// order. An empty result means c must pass.
	LegalMoves(b board.Board, c board.Color) []board.Move
	// ApplyMove returns the position after c plays m.
	ApplyMove(b board.Board, c board.Color, m board.Move) (board.Board, error)
	// Score returns the disk counts for dark and light.
	Score(b board.Board) (dark, light int)
}

var directions = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Othello implements Rules for standard Othello on any square board the
// board package supports.
type Othello struct{}

func NewOthello() Othello {
	return Othello{}
}

// StartingBoard places the four center disks.
func (Othello) StartingBoard(dim int) (board.Board, error) {
	if dim%2 != 0 || dim < 4 {
		return board.Board{}, fmt.Errorf("%w: %d", ErrBadBoardDim, dim)
	}
	b, err := board.NewEmpty(dim)
	if err != nil {
		return board.Board{}, err
	}
	i := dim/2 - 1
	setup := []struct {
		col, row int
		c        board.Color
	}{
		{i, i, board.Light},
		{i + 1, i + 1, board.Light},
		{i, i + 1, board.Dark},
		{i + 1, i, board.Dark},
	}
	for _, s := range setup {
		b, err = b.Set(s.col, s.row, s.c)
		if err != nil {
			return board.Board{}, err
		}
	}
	return b, nil
}

// LegalMoves walks the board column by column, top to bottom within each
// column.
func (o Othello) LegalMoves(b board.Board, c board.Color) []board.Move {
	var moves []board.Move
	dim := b.Dim()
	for col := 0; col < dim; col++ {
		for row := 0; row < dim; row++ {
			if b.At(col, row) != board.Empty {
				continue
			}
			if o.flipsAny(b, c, col, row) {
				moves = append(moves, board.NewMove(col, row))
			}
		}
	}
	return moves
}

func (o Othello) flipsAny(b board.Board, c board.Color, col, row int) bool {
	for _, d := range directions {
		if o.runLength(b, c, col, row, d[0], d[1]) > 0 {
			return true
		}
	}
	return false
}

// runLength counts opponent disks starting next to (col, row) in direction
// (dc, dr) that are capped by a disk of color c. Zero if the run is not
// capped.
func (Othello) runLength(b board.Board, c board.Color, col, row, dc, dr int) int {
	opp := c.Opponent()
	n := 0
	x, y := col+dc, row+dr
	for b.InBounds(x, y) && b.At(x, y) == opp {
		n++
		x += dc
		y += dr
	}
	if n == 0 || !b.InBounds(x, y) || b.At(x, y) != c {
		return 0
	}
	return n
}

func (o Othello) ApplyMove(b board.Board, c board.Color, m board.Move) (board.Board, error) {
	if !c.Valid() {
		return b, fmt.Errorf("%w: %v", board.ErrInvalidColor, c)
	}
	col, row := int(m.Col), int(m.Row)
	if m.IsPass() || !b.InBounds(col, row) || b.At(col, row) != board.Empty {
		return b, fmt.Errorf("%w: %v for %v", ErrIllegalMove, m, c)
	}
	next, err := b.Set(col, row, c)
	if err != nil {
		return b, err
	}
	flipped := 0
	for _, d := range directions {
		n := o.runLength(b, c, col, row, d[0], d[1])
		for i := 1; i <= n; i++ {
			next, err = next.Set(col+i*d[0], row+i*d[1], c)
			if err != nil {
				return b, err
			}
		}
		flipped += n
	}
	if flipped == 0 {
		return b, fmt.Errorf("%w: %v flips nothing for %v", ErrIllegalMove, m, c)
	}
	return next, nil
}

func (Othello) Score(b board.Board) (dark, light int) {
	return b.Count()
}
