package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/search"
)

// MoveSelector is satisfied by *search.Solver.
type MoveSelector interface {
	SelectMove(ctx context.Context, b board.Board, color board.Color, p search.Params) (board.Move, int, error)
}

// Agent plays one game against the manager. Standard output belongs to the
// manager, so everything else goes to the logger.
type Agent struct {
	selector MoveSelector
	name     string
}

func NewAgent(s MoveSelector) *Agent {
	return &Agent{selector: s, name: Name}
}

// SetName changes the line the agent introduces itself with.
func (a *Agent) SetName(name string) {
	a.name = name
}

type lineReader struct {
	scanner *bufio.Scanner
}

// next returns the next non-blank line, or io.EOF.
func (lr *lineReader) next() (string, error) {
	for lr.scanner.Scan() {
		line := strings.TrimSpace(lr.scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := lr.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (a *Agent) writeLine(w *bufio.Writer, s string) error {
	if _, err := w.WriteString(s + "\n"); err != nil {
		return err
	}
	return w.Flush()
}

// Run drives the whole exchange. It returns nil after FINAL, or when the
// manager closes the stream between turns.
func (a *Agent) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	lr := &lineReader{scanner: bufio.NewScanner(r)}
	bw := bufio.NewWriter(w)

	if err := a.writeLine(bw, a.name); err != nil {
		return err
	}
	line, err := lr.next()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadSetup, err)
	}
	setup, err := ParseSetup(line)
	if err != nil {
		return err
	}
	a.logSetup(setup)

	for turn := 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := lr.next()
		if err == io.EOF {
			log.Info().Int("turns", turn).Msg("manager-closed-stream")
			return nil
		} else if err != nil {
			return err
		}
		status, err := ParseStatus(line)
		if err != nil {
			return err
		}
		if status.Final {
			log.Info().Int("dark", status.Dark).Int("light", status.Light).
				Int("turns", turn).Msg("game-final")
			return nil
		}
		line, err = lr.next()
		if err != nil {
			return fmt.Errorf("%w: no board after %q: %w", ErrBadStatus, status, err)
		}
		b, err := board.Parse(line)
		if err != nil {
			return err
		}
		m, v, err := a.selector.SelectMove(ctx, b, setup.Color, setup.Params)
		if err != nil {
			return err
		}
		log.Debug().Int("turn", turn).Int("dark", status.Dark).Int("light", status.Light).
			Uint64("board", b.Digest()).Stringer("move", m).Int("value", v).Msg("move-selected")
		if err := a.writeLine(bw, m.String()); err != nil {
			return err
		}
	}
}

func (a *Agent) logSetup(s Setup) {
	ev := log.Info().Stringer("color", s.Color).
		Stringer("mode", s.Params.Mode).
		Bool("caching", s.Params.Caching).
		Bool("ordering", s.Params.Ordering)
	if s.Params.DepthLimit == search.Unlimited {
		ev = ev.Str("depth-limit", "off")
	} else {
		ev = ev.Int("depth-limit", s.Params.DepthLimit)
	}
	ev.Msg("agent-setup")
	if s.Params.Mode == search.Minimax && s.Params.Ordering {
		log.Warn().Msg("ordering-has-no-effect-under-minimax")
	}
}
