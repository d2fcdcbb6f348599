package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestTallyMeanAndStdev(t *testing.T) {
	is := is.New(t)
	type tc struct {
		margins []int
		mean    float64
		stdev   float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, -35, 71, 24, 10, -24, 55, 33, -7, 19}, 16, 32.79227551319568},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		tally := &Tally{}
		for _, m := range c.margins {
			tally.Add(m)
		}
		is.True(FuzzyEqual(tally.Mean(), c.mean))
		is.True(FuzzyEqual(tally.Stdev(), c.stdev))
		is.Equal(tally.Games(), len(c.margins))
	}
}

func TestTallyOutcomes(t *testing.T) {
	is := is.New(t)
	tally := &Tally{}
	for _, m := range []int{12, -4, 0, 30, -2, 6} {
		tally.Add(m)
	}
	is.Equal(tally.Wins(), 3)
	is.Equal(tally.Losses(), 2)
	is.Equal(tally.Draws(), 1)
	is.Equal(tally.Min(), -4)
	is.Equal(tally.Max(), 30)
	is.True(FuzzyEqual(tally.WinRate(), 3.5/6))
	is.True(tally.StandardError() > 0)

	empty := &Tally{}
	is.Equal(empty.WinRate(), 0.0)
	is.Equal(empty.StandardError(), 0.0)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489004))
}

func TestMarginInterval(t *testing.T) {
	is := is.New(t)
	lopsided := &Tally{}
	for _, m := range []int{20, 22, 18, 24, 16, 20} {
		lopsided.Add(m)
	}
	lo, hi := lopsided.MarginInterval(95)
	is.True(lo > 0 && lo < 20 && hi > 20)
	is.True(lopsided.Decisive(95))

	even := &Tally{}
	for _, m := range []int{10, -10, 4, -4} {
		even.Add(m)
	}
	is.True(!even.Decisive(95))

	one := &Tally{}
	one.Add(40)
	is.True(!one.Decisive(95))
}
