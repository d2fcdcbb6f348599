package board

import (
	"fmt"
	"strings"
)

// maxInputLen caps what Parse will look at; an 8x8 grid with generous
// whitespace is well under this.
const maxInputLen = 4096

type gridParser struct {
	in  string
	pos int
}

// Parse reads a board in the manager's grid-of-symbols format: a list of
// rows, each a list of 0 (empty), 1 (dark) or 2 (light). Lists may be
// written with [] or (), may carry a trailing comma, and may contain
// whitespace between tokens. Anything else is rejected; the input is never
// evaluated.
func Parse(s string) (Board, error) {
	if len(s) > maxInputLen {
		return Board{}, fmt.Errorf("%w: input is %d bytes", ErrMalformedBoard, len(s))
	}
	p := &gridParser{in: s}
	rows, err := p.grid()
	if err != nil {
		return Board{}, err
	}
	p.skipSpace()
	if p.pos != len(p.in) {
		return Board{}, p.errorf("trailing input")
	}
	return New(rows)
}

func (p *gridParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrMalformedBoard, fmt.Sprintf(format, args...), p.pos)
}

func (p *gridParser) skipSpace() {
	for p.pos < len(p.in) {
		switch p.in[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *gridParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.in) {
		return 0
	}
	return p.in[p.pos]
}

// open consumes '[' or '(' and returns the byte that must close it.
func (p *gridParser) open() (byte, error) {
	switch p.peek() {
	case '[':
		p.pos++
		return ']', nil
	case '(':
		p.pos++
		return ')', nil
	}
	return 0, p.errorf("expected '[' or '('")
}

// list parses the comma-separated items of a bracketed list, calling item
// for each one.
func (p *gridParser) list(item func() error) error {
	closer, err := p.open()
	if err != nil {
		return err
	}
	if p.peek() == closer {
		return p.errorf("empty list")
	}
	for {
		if err := item(); err != nil {
			return err
		}
		switch p.peek() {
		case ',':
			p.pos++
			if p.peek() == closer {
				p.pos++
				return nil
			}
		case closer:
			p.pos++
			return nil
		default:
			return p.errorf("expected ',' or %q", closer)
		}
	}
}

func (p *gridParser) grid() ([][]Color, error) {
	var rows [][]Color
	err := p.list(func() error {
		if len(rows) == MaxDim {
			return p.errorf("more than %d rows", MaxDim)
		}
		var row []Color
		err := p.list(func() error {
			if len(row) == MaxDim {
				return p.errorf("more than %d squares in a row", MaxDim)
			}
			c := p.peek()
			if c < '0' || c > '2' {
				return p.errorf("unexpected symbol %q", c)
			}
			p.pos++
			row = append(row, Color(c-'0'))
			return nil
		})
		rows = append(rows, row)
		return err
	})
	return rows, err
}

// ToDisplayText renders the board for humans: '.' empty, 'X' dark,
// 'O' light, with column and row numbers.
func (b Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for c := 0; c < int(b.dim); c++ {
		fmt.Fprintf(&sb, " %d", c)
	}
	sb.WriteByte('\n')
	for r := 0; r < int(b.dim); r++ {
		fmt.Fprintf(&sb, "%2d", r)
		for c := 0; c < int(b.dim); c++ {
			sb.WriteByte(' ')
			switch b.At(c, r) {
			case Dark:
				sb.WriteByte('X')
			case Light:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
