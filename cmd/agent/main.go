package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othelloai/config"
	"github.com/domino14/othelloai/game"
	"github.com/domino14/othelloai/protocol"
	"github.com/domino14/othelloai/search"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	err := cfg.Load(os.Args[1:])
	if err != nil {
		panic(err)
	}

	// stdout belongs to the game manager.
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	var logger zerolog.Logger
	ll := cfg.GetString(config.ConfigLogLevel)
	if cfg.GetBool(config.ConfigDebug) {
		ll = "debug"
	}
	switch ll {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		logger = zerolog.New(output).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
		logger = zerolog.New(output).Level(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Str("version", GitVersion).Interface("settings", cfg.AllSettings()).Msg("loaded-config")

	opts, err := search.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-solver-config")
	}
	solver := search.NewSolver(game.NewOthello(), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	agent := protocol.NewAgent(solver)
	if err := agent.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("agent-failed")
	}
	logger.Info().Msg("bye")
}
