// Package protocol speaks the line-based game manager protocol: the agent
// announces its name, reads its color and search settings, then answers
// every SCORE/board pair with a move until the manager sends FINAL.
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/search"
)

const Name = "Othello AI"

var (
	ErrBadSetup  = errors.New("bad setup line")
	ErrBadStatus = errors.New("bad status line")
)

// Setup is the agent's second input line:
// "color,limit,minimax,caching,ordering".
type Setup struct {
	Color  board.Color
	Params search.Params
}

func parseFlag(field, name string) (bool, error) {
	switch strings.TrimSpace(field) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("%w: %s must be 0 or 1, got %q", ErrBadSetup, name, field)
}

func ParseSetup(line string) (Setup, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 5 {
		return Setup{}, fmt.Errorf("%w: want 5 comma-separated fields, got %d", ErrBadSetup, len(fields))
	}
	ci, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Setup{}, fmt.Errorf("%w: color: %w", ErrBadSetup, err)
	}
	color, err := board.ColorFromInt(ci)
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %w", ErrBadSetup, err)
	}
	limit, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Setup{}, fmt.Errorf("%w: limit: %w", ErrBadSetup, err)
	}
	if limit < search.Unlimited {
		return Setup{}, fmt.Errorf("%w: %w: %d", ErrBadSetup, search.ErrInvalidDepthLimit, limit)
	}
	minimax, err := parseFlag(fields[2], "minimax")
	if err != nil {
		return Setup{}, err
	}
	caching, err := parseFlag(fields[3], "caching")
	if err != nil {
		return Setup{}, err
	}
	ordering, err := parseFlag(fields[4], "ordering")
	if err != nil {
		return Setup{}, err
	}
	mode := search.AlphaBeta
	if minimax {
		mode = search.Minimax
	}
	return Setup{
		Color: color,
		Params: search.Params{
			DepthLimit: limit,
			Mode:       mode,
			Caching:    caching,
			Ordering:   ordering,
		},
	}, nil
}

// Status is a "SCORE dark light" or "FINAL dark light" line.
type Status struct {
	Final bool
	Dark  int
	Light int
}

func ParseStatus(line string) (Status, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Status{}, fmt.Errorf("%w: %q", ErrBadStatus, line)
	}
	var st Status
	switch fields[0] {
	case "SCORE":
	case "FINAL":
		st.Final = true
	default:
		return Status{}, fmt.Errorf("%w: unknown keyword %q", ErrBadStatus, fields[0])
	}
	var err error
	if st.Dark, err = strconv.Atoi(fields[1]); err != nil {
		return Status{}, fmt.Errorf("%w: %w", ErrBadStatus, err)
	}
	if st.Light, err = strconv.Atoi(fields[2]); err != nil {
		return Status{}, fmt.Errorf("%w: %w", ErrBadStatus, err)
	}
	return st, nil
}

func (s Status) String() string {
	kw := "SCORE"
	if s.Final {
		kw = "FINAL"
	}
	return fmt.Sprintf("%s %d %d", kw, s.Dark, s.Light)
}
