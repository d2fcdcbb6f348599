package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othelloai/automatic"
	"github.com/domino14/othelloai/config"
	"github.com/domino14/othelloai/search"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		panic(err)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	log.Logger = logger

	p1Params, err := search.ParamsFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-player-config")
	}
	oppMode, err := search.ParseMode(cfg.GetString(config.ConfigOpponentMode))
	if err != nil {
		log.Fatal().Err(err).Msg("bad-opponent-config")
	}
	p1 := automatic.PlayerConfig{
		Name:   fmt.Sprintf("%v-%d", p1Params.Mode, p1Params.DepthLimit),
		Params: p1Params,
	}
	p2 := automatic.PlayerConfig{
		Params: search.Params{
			DepthLimit: cfg.GetInt(config.ConfigOpponentDepthLimit),
			Mode:       oppMode,
			Caching:    p1Params.Caching,
			Ordering:   p1Params.Ordering,
		},
		Heuristic: cfg.GetBool(config.ConfigOpponentHeuristic),
	}
	if p2.Heuristic {
		p2.Name = "heuristic"
	} else {
		p2.Name = fmt.Sprintf("%v-%d", p2.Params.Mode, p2.Params.DepthLimit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := automatic.PlayGames(ctx, cfg, p1, p2,
		cfg.GetInt(config.ConfigGames), cfg.GetInt(config.ConfigThreads))
	if err != nil {
		log.Fatal().Err(err).Msg("self-play-failed")
	}
	if err := summary.WriteYAML(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("write-summary")
	}
	if err := summary.WriteHistogram(os.Stdout, cfg.GetInt(config.ConfigHistogramBins), 50); err != nil {
		log.Fatal().Err(err).Msg("write-histogram")
	}
	if report := cfg.GetString(config.ConfigReport); report != "" {
		if err := writeReport(report, summary); err != nil {
			log.Fatal().Err(err).Msg("write-report")
		}
		log.Info().Str("path", report).Msg("wrote-report")
	}
}

func writeReport(path string, summary *automatic.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := summary.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
