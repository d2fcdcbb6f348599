package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Tally accumulates final disk margins from one player's side of a
// match: wins, losses and draws, plus a running mean and variance
// (Welford's algorithm) of the margin.
type Tally struct {
	games  int
	wins   int
	losses int
	draws  int
	min    int
	max    int

	mean float64
	m2   float64
}

// Add records one finished game. A positive margin is a win.
func (t *Tally) Add(margin int) {
	t.games++
	switch {
	case margin > 0:
		t.wins++
	case margin < 0:
		t.losses++
	default:
		t.draws++
	}
	if t.games == 1 || margin < t.min {
		t.min = margin
	}
	if t.games == 1 || margin > t.max {
		t.max = margin
	}
	val := float64(margin)
	delta := val - t.mean
	t.mean += delta / float64(t.games)
	t.m2 += delta * (val - t.mean)
}

func (t *Tally) Games() int  { return t.games }
func (t *Tally) Wins() int   { return t.wins }
func (t *Tally) Losses() int { return t.losses }
func (t *Tally) Draws() int  { return t.draws }
func (t *Tally) Min() int    { return t.min }
func (t *Tally) Max() int    { return t.max }

func (t *Tally) Mean() float64 {
	return t.mean
}

func (t *Tally) Variance() float64 {
	if t.games <= 1 {
		return 0.0
	}
	return t.m2 / float64(t.games-1)
}

func (t *Tally) Stdev() float64 {
	return math.Sqrt(t.Variance())
}

// StandardError returns the standard error of the mean margin.
func (t *Tally) StandardError() float64 {
	if t.games == 0 {
		return 0.0
	}
	return math.Sqrt(t.Variance() / float64(t.games))
}

// WinRate counts a draw as half a win.
func (t *Tally) WinRate() float64 {
	if t.games == 0 {
		return 0.0
	}
	return (float64(t.wins) + float64(t.draws)/2) / float64(t.games)
}
