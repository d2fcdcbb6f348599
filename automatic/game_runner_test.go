package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/othelloai/config"
	"github.com/domino14/othelloai/game"
	"github.com/domino14/othelloai/search"
	"github.com/domino14/othelloai/stats"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func smallConfig(openingPlies int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBoardDim, 4)
	cfg.Set(config.ConfigOpeningPlies, openingPlies)
	return cfg
}

var (
	deep = PlayerConfig{Name: "deep", Params: search.Params{
		DepthLimit: search.Unlimited, Mode: search.AlphaBeta, Caching: true, Ordering: true}}
	shallow = PlayerConfig{Name: "shallow", Params: search.Params{DepthLimit: 1, Mode: search.Minimax}}
	greedy  = PlayerConfig{Name: "greedy", Heuristic: true}
)

func TestPlayGameFinishes(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(smallConfig(0), deep, shallow)
	is.NoErr(err)

	res, err := r.PlayGame(context.Background(), 7, false)
	is.NoErr(err)
	is.Equal(r.game.Playing(), game.GameOver)
	is.Equal(res.GameID, 7)
	is.True(!res.FirstIsDark)
	is.True(res.Dark+res.Light <= 16)
	// deep plays light here
	is.Equal(res.Margin, res.Light-res.Dark)
	is.True(res.Turns > 0)
}

func TestHeuristicPlayerFinishes(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(smallConfig(2), greedy, shallow)
	is.NoErr(err)
	res, err := r.PlayGame(context.Background(), 0, true)
	is.NoErr(err)
	is.Equal(res.Margin, res.Dark-res.Light)
	is.Equal(r.game.Playing(), game.GameOver)
}

func TestMirroredGamesCancelOut(t *testing.T) {
	// With no random opening the same two players replay the same game
	// with colors swapped, so the first player's margins cancel.
	is := is.New(t)
	summary, err := PlayGames(context.Background(), smallConfig(0), shallow, shallow, 4, 2)
	is.NoErr(err)
	is.Equal(summary.Games, 4)
	is.Equal(summary.Wins, summary.Losses)
	is.True(stats.FuzzyEqual(summary.MeanMargin, 0))
	is.True(!summary.Decisive)
	is.Equal(summary.Results[0].Margin, -summary.Results[1].Margin)
	is.Equal(summary.Results[2].Margin, summary.Results[0].Margin)
}

func TestPlayGamesSummary(t *testing.T) {
	is := is.New(t)
	summary, err := PlayGames(context.Background(), smallConfig(1), deep, greedy, 6, 3)
	is.NoErr(err)
	is.Equal(summary.Games, 6)
	is.Equal(summary.Wins+summary.Losses+summary.Draws, 6)
	is.Equal(len(summary.Results), 6)
	is.True(summary.MinMargin <= summary.MaxMargin)
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	var buf bytes.Buffer
	is.NoErr(summary.WriteYAML(&buf))
	var back map[string]any
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &back))
	is.Equal(back["games"], 6)
	is.Equal(back["player1"], "deep")
	is.Equal(back["board_dim"], 4)
	_, hasResults := back["Results"]
	is.True(!hasResults)

	buf.Reset()
	is.NoErr(summary.WriteHistogram(&buf, 4, 30))
	is.True(strings.HasPrefix(buf.String(), "margins for deep vs greedy (6 games)"))
}

func TestPlayGamesCanceled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlayGames(ctx, smallConfig(0), deep, shallow, 4, 2)
	is.True(errors.Is(err, context.Canceled))
}

func TestBadConfig(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig(0)
	cfg.Set(config.ConfigKeyScheme, "nope")
	_, err := NewGameRunner(cfg, deep, shallow)
	is.True(err != nil)
}
