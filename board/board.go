// Package board holds the immutable Othello position used by the search:
// a square grid of disks plus the coordinates that address it.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

const (
	// MaxDim is the largest supported board width. Boards are stored in a
	// fixed-size array so they stay comparable and usable as map keys.
	MaxDim = 8
	// MinDim is the smallest grid the parser accepts.
	MinDim = 2
	// MaxSquares bounds every utility value.
	MaxSquares = MaxDim * MaxDim
)

var (
	ErrInvalidColor   = errors.New("invalid color")
	ErrMalformedBoard = errors.New("malformed board")
	ErrOutOfBounds    = errors.New("coordinate out of bounds")
)

// Color is the occupant of a square. Dark and Light double as the two
// player identities; Dark moves first.
type Color uint8

const (
	Empty Color = iota
	Dark
	Light
)

// Opponent returns the other player. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Dark:
		return Light
	case Light:
		return Dark
	}
	return Empty
}

// Valid reports whether c names one of the two players.
func (c Color) Valid() bool {
	return c == Dark || c == Light
}

func (c Color) String() string {
	switch c {
	case Dark:
		return "dark"
	case Light:
		return "light"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ColorFromInt maps the manager's player numbers (1 dark, 2 light) to a
// Color.
func ColorFromInt(i int) (Color, error) {
	if i != int(Dark) && i != int(Light) {
		return Empty, fmt.Errorf("%w: %d", ErrInvalidColor, i)
	}
	return Color(i), nil
}

// Move is a (column, row) coordinate where a disk is placed.
type Move struct {
	Col int8
	Row int8
}

// Pass is the "no move" sentinel returned when the side to move has no
// legal placement.
var Pass = Move{Col: -1, Row: -1}

func NewMove(col, row int) Move {
	return Move{Col: int8(col), Row: int8(row)}
}

func (m Move) IsPass() bool {
	return m == Pass
}

// String renders the move the way the game manager expects it: "col row".
func (m Move) String() string {
	return fmt.Sprintf("%d %d", m.Col, m.Row)
}

// Board is a value type. Every method that "changes" a board returns a new
// one; two boards with the same dimension and disks compare equal with ==.
type Board struct {
	dim     uint8
	squares [MaxSquares]Color
}

// NewEmpty returns a dim x dim board with no disks on it.
func NewEmpty(dim int) (Board, error) {
	if dim < MinDim || dim > MaxDim {
		return Board{}, fmt.Errorf("%w: dimension %d not in [%d, %d]",
			ErrMalformedBoard, dim, MinDim, MaxDim)
	}
	return Board{dim: uint8(dim)}, nil
}

// New builds a board from rows of colors. rows[r][c] is the square at
// column c, row r.
func New(rows [][]Color) (Board, error) {
	b, err := NewEmpty(len(rows))
	if err != nil {
		return Board{}, err
	}
	for r, row := range rows {
		if len(row) != len(rows) {
			return Board{}, fmt.Errorf("%w: row %d has %d squares, want %d",
				ErrMalformedBoard, r, len(row), len(rows))
		}
		for c, color := range row {
			if color > Light {
				return Board{}, fmt.Errorf("%w: square (%d, %d) holds %d",
					ErrMalformedBoard, c, r, color)
			}
			b.squares[index(c, r)] = color
		}
	}
	return b, nil
}

func (b Board) Dim() int {
	return int(b.dim)
}

// Validate checks the invariants New enforces. The zero Board fails it.
func (b Board) Validate() error {
	if b.dim < MinDim || b.dim > MaxDim {
		return fmt.Errorf("%w: dimension %d", ErrMalformedBoard, b.dim)
	}
	for i, color := range b.squares {
		if color > Light {
			return fmt.Errorf("%w: square %d holds %d", ErrMalformedBoard, i, color)
		}
		if color != Empty && (i%MaxDim >= int(b.dim) || i/MaxDim >= int(b.dim)) {
			return fmt.Errorf("%w: disk outside the %dx%d grid", ErrMalformedBoard, b.dim, b.dim)
		}
	}
	return nil
}

func (b Board) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < int(b.dim) && row < int(b.dim)
}

// At returns the occupant of (col, row). Out-of-bounds squares read as
// Empty.
func (b Board) At(col, row int) Color {
	if !b.InBounds(col, row) {
		return Empty
	}
	return b.squares[index(col, row)]
}

// Set returns a copy of b with (col, row) holding c.
func (b Board) Set(col, row int, c Color) (Board, error) {
	if !b.InBounds(col, row) {
		return b, fmt.Errorf("%w: (%d, %d) on a %dx%d board", ErrOutOfBounds, col, row, b.dim, b.dim)
	}
	if c > Light {
		return b, fmt.Errorf("%w: %d", ErrInvalidColor, c)
	}
	b.squares[index(col, row)] = c
	return b, nil
}

// Count returns the number of dark and light disks.
func (b Board) Count() (dark, light int) {
	for _, c := range b.squares {
		switch c {
		case Dark:
			dark++
		case Light:
			light++
		}
	}
	return dark, light
}

// EmptySquares is the number of squares still open. It bounds the depth of
// an unlimited search.
func (b Board) EmptySquares() int {
	dark, light := b.Count()
	return int(b.dim)*int(b.dim) - dark - light
}

// index is the position of (col, row) in the fixed backing array.
func index(col, row int) int {
	return row*MaxDim + col
}

// Squares exposes a copy of the backing array.
func (b Board) Squares() [MaxSquares]Color {
	return b.squares
}

// Digest is a stable content hash, handy for correlating log lines about
// the same position across processes. It is not the cache key.
func (b Board) Digest() uint64 {
	buf := make([]byte, 0, MaxSquares+1)
	buf = append(buf, b.dim)
	for r := 0; r < int(b.dim); r++ {
		for c := 0; c < int(b.dim); c++ {
			buf = append(buf, byte(b.squares[index(c, r)]))
		}
	}
	return xxhash.Sum64(buf)
}

// String renders the board in the manager's grid-of-symbols format, which
// Parse reads back.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for r := 0; r < int(b.dim); r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		for c := 0; c < int(b.dim); c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('0' + byte(b.squares[index(c, r)]))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}
