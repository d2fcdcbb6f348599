package equity

import (
	"math/rand/v2"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/othelloai/board"
	"github.com/domino14/othelloai/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func randomBoard(rng *rand.Rand, dim int) board.Board {
	b, err := board.NewEmpty(dim)
	if err != nil {
		panic(err)
	}
	for col := 0; col < dim; col++ {
		for row := 0; row < dim; row++ {
			b, err = b.Set(col, row, board.Color(rng.IntN(3)))
			if err != nil {
				panic(err)
			}
		}
	}
	return b
}

func TestUtilityAntisymmetric(t *testing.T) {
	is := is.New(t)
	rules := game.NewOthello()
	rng := rand.New(rand.NewPCG(42, 1024))
	for i := 0; i < 500; i++ {
		b := randomBoard(rng, 2+rng.IntN(7))
		d := Utility(rules, b, board.Dark)
		l := Utility(rules, b, board.Light)
		is.Equal(d, -l)
		is.True(d <= board.MaxSquares && d >= -board.MaxSquares)
	}
}

func TestUtilityCountsDisks(t *testing.T) {
	is := is.New(t)
	b, err := board.Parse("[[1, 2, 2, 0], [2, 2, 2, 2], [2, 2, 2, 2], [0, 0, 0, 0]]")
	is.NoErr(err)
	calc := NewUtilityCalculator(game.NewOthello())
	is.Equal(calc.Equity(b, board.Dark), -9)
	is.Equal(calc.Equity(b, board.Light), 9)
}

func TestHeuristicNoMoves(t *testing.T) {
	is := is.New(t)
	b, err := board.Parse("[[1, 1], [2, 1]]")
	is.NoErr(err)
	m, v := HeuristicMove(game.NewOthello(), b, board.Light)
	is.Equal(m, board.Pass)
	is.Equal(v, -2)
}

func TestHeuristicRejectsEveryOpening(t *testing.T) {
	// Every opening move hands the opponent a 3-disk deficit from a level
	// position, so nothing improves.
	is := is.New(t)
	rules := game.NewOthello()
	b, err := rules.StartingBoard(4)
	is.NoErr(err)
	m, v := HeuristicMove(rules, b, board.Dark)
	is.Equal(m, board.Pass)
	is.Equal(v, 0)
}

func TestHeuristicPicksSurvivor(t *testing.T) {
	is := is.New(t)
	rules := game.NewOthello()
	b, err := board.Parse("[[1, 2, 2, 0], [2, 2, 2, 2], [2, 2, 2, 2], [0, 0, 0, 0]]")
	is.NoErr(err)

	is.Equal(rules.LegalMoves(b, board.Dark), []board.Move{
		board.NewMove(0, 3), board.NewMove(3, 0), board.NewMove(3, 3)})

	// (0, 3) and (3, 0) leave light without a reply while dark still
	// trails, so only the diagonal capture survives.
	m, v := HeuristicMove(rules, b, board.Dark)
	is.Equal(m, board.NewMove(3, 3))
	is.Equal(v, -4)
}

func TestHeuristicFirstTiedMoveWins(t *testing.T) {
	is := is.New(t)
	rules := game.NewOthello()
	b, err := board.Parse("[[0, 1, 0, 0], [0, 1, 1, 0], [0, 1, 2, 0], [0, 0, 0, 0]]")
	is.NoErr(err)

	// each capture evens the count, so all three improve by 3
	legal := rules.LegalMoves(b, board.Light)
	is.Equal(legal, []board.Move{board.NewMove(0, 0), board.NewMove(0, 2), board.NewMove(2, 0)})
	for _, m := range legal {
		next, err := rules.ApplyMove(b, board.Light, m)
		is.NoErr(err)
		is.Equal(Utility(rules, next, board.Light), 0)
	}

	m, v := HeuristicMove(rules, b, board.Light)
	is.Equal(m, legal[0])
	is.Equal(v, 0)
}
