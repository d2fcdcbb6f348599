package automatic

// Data collection for automatic games.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/othelloai/config"
	"github.com/domino14/othelloai/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// Summary aggregates a match from the first player's side.
type Summary struct {
	Player1       string  `yaml:"player1"`
	Player2       string  `yaml:"player2"`
	BoardDim      int     `yaml:"board_dim"`
	Games         int     `yaml:"games"`
	Wins          int     `yaml:"wins"`
	Losses        int     `yaml:"losses"`
	Draws         int     `yaml:"draws"`
	WinRate       float64 `yaml:"win_rate"`
	MeanMargin    float64 `yaml:"mean_margin"`
	StdevMargin   float64 `yaml:"stdev_margin"`
	StdErrMargin  float64 `yaml:"stderr_margin"`
	MinMargin     int     `yaml:"min_margin"`
	MaxMargin     int     `yaml:"max_margin"`
	MarginCI95Lo  float64 `yaml:"margin_ci95_lo"`
	MarginCI95Hi  float64 `yaml:"margin_ci95_hi"`
	Decisive      bool    `yaml:"decisive"`
	ElapsedSecond float64 `yaml:"elapsed_sec"`

	Results []Result `yaml:"-"`
}

func newSummary(p1, p2 PlayerConfig, dim int, t *stats.Tally, results []Result, elapsed time.Duration) *Summary {
	lo, hi := t.MarginInterval(95)
	return &Summary{
		Player1:       p1.Name,
		Player2:       p2.Name,
		BoardDim:      dim,
		Games:         t.Games(),
		Wins:          t.Wins(),
		Losses:        t.Losses(),
		Draws:         t.Draws(),
		WinRate:       t.WinRate(),
		MeanMargin:    t.Mean(),
		StdevMargin:   t.Stdev(),
		StdErrMargin:  t.StandardError(),
		MinMargin:     t.Min(),
		MaxMargin:     t.Max(),
		MarginCI95Lo:  lo,
		MarginCI95Hi:  hi,
		Decisive:      t.Decisive(95),
		ElapsedSecond: elapsed.Seconds(),
		Results:       results,
	}
}

func (s *Summary) WriteYAML(w io.Writer) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// WriteHistogram draws the first player's final margins as text.
func (s *Summary) WriteHistogram(w io.Writer, bins, width int) error {
	if len(s.Results) == 0 {
		return nil
	}
	margins := make([]float64, len(s.Results))
	for i, r := range s.Results {
		margins[i] = float64(r.Margin)
	}
	h := histogram.Hist(bins, margins)
	fmt.Fprintf(w, "margins for %s vs %s (%d games)\n", s.Player1, s.Player2, s.Games)
	return histogram.Fprint(w, h, histogram.Linear(width))
}

// PlayGames plays numGames games, at most threads at a time. Colors
// alternate: the first player is dark in even-numbered games. Every game
// gets its own runner and solvers.
func PlayGames(ctx context.Context, cfg *config.Config, p1, p2 PlayerConfig,
	numGames, threads int) (*Summary, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)

	log.Info().Int("games", numGames).Int("threads", threads).
		Str("player1", p1.Name).Str("player2", p2.Name).Msg("starting-games")
	tstart := time.Now()

	var mu sync.Mutex
	tally := &stats.Tally{}
	results := make([]Result, numGames)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for i := 0; i < numGames; i++ {
		if gctx.Err() != nil {
			log.Info().Msg("got-stop-signal")
			break
		}
		g.Go(func() error {
			r, err := NewGameRunner(cfg, p1, p2)
			if err != nil {
				return err
			}
			res, err := r.PlayGame(gctx, i, i%2 == 0)
			if err != nil {
				return err
			}
			mu.Lock()
			tally.Add(res.Margin)
			results[i] = res
			mu.Unlock()
			CVCCounter.Add(1)
			if n := CVCCounter.Value(); n%100 == 0 {
				log.Info().Int64("played", n).Msg("games-progress")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summary := newSummary(p1, p2, cfg.GetInt(config.ConfigBoardDim), tally, results, time.Since(tstart))
	log.Info().Int("wins", summary.Wins).Int("losses", summary.Losses).Int("draws", summary.Draws).
		Float64("mean-margin", summary.MeanMargin).Float64("time-elapsed-sec", summary.ElapsedSecond).
		Msg("all-games-finished")
	return summary, nil
}
