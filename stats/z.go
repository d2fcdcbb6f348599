package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// MarginInterval is the confidence interval around the mean margin.
func (t *Tally) MarginInterval(confidence float64) (lo, hi float64) {
	half := ZVal(confidence) * t.StandardError()
	return t.Mean() - half, t.Mean() + half
}

// Decisive reports whether the interval excludes an even match. A single
// game is never decisive.
func (t *Tally) Decisive(confidence float64) bool {
	if t.games < 2 {
		return false
	}
	lo, hi := t.MarginInterval(confidence)
	return lo > 0 || hi < 0
}
