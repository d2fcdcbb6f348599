package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                = "debug"
	ConfigLogLevel             = "log-level"
	ConfigFile                 = "config"
	ConfigDepthLimit           = "depth-limit"
	ConfigMode                 = "mode"
	ConfigCaching              = "caching"
	ConfigOrdering             = "ordering"
	ConfigKeyScheme            = "key-scheme"
	ConfigOrderingPerspective  = "ordering-perspective"
	ConfigCacheScope           = "cache-scope"
	ConfigLeafPerspective      = "leaf-perspective"
	ConfigCacheMemoryFraction  = "cache-memory-fraction"
	ConfigBoardDim             = "board-dim"
	ConfigGames                = "games"
	ConfigThreads              = "threads"
	ConfigReport               = "report"
	ConfigOpponentDepthLimit   = "opponent-depth-limit"
	ConfigOpponentMode         = "opponent-mode"
	ConfigOpponentHeuristic    = "opponent-heuristic"
	ConfigHistogramBins        = "histogram-bins"
	ConfigOpeningPlies         = "opening-plies"
	ConfigEnvPrefix            = "OTHELLO"
	defaultCacheMemoryFraction = 0.25
)

type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigLogLevel, "info")
	v.SetDefault(ConfigDepthLimit, 4)
	v.SetDefault(ConfigMode, "alphabeta")
	v.SetDefault(ConfigCaching, false)
	v.SetDefault(ConfigOrdering, false)
	v.SetDefault(ConfigKeyScheme, "composite")
	v.SetDefault(ConfigOrderingPerspective, "mover")
	v.SetDefault(ConfigCacheScope, "process")
	v.SetDefault(ConfigLeafPerspective, "node")
	v.SetDefault(ConfigCacheMemoryFraction, defaultCacheMemoryFraction)
	v.SetDefault(ConfigBoardDim, 8)
	v.SetDefault(ConfigGames, 10)
	v.SetDefault(ConfigThreads, 4)
	v.SetDefault(ConfigReport, "")
	v.SetDefault(ConfigOpponentDepthLimit, 2)
	v.SetDefault(ConfigOpponentMode, "alphabeta")
	v.SetDefault(ConfigOpponentHeuristic, false)
	v.SetDefault(ConfigHistogramBins, 10)
	v.SetDefault(ConfigOpeningPlies, 2)
}

// DefaultConfig has every default set and no flags, environment or file
// applied. Tests use it.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load reads, in increasing priority: defaults, an optional YAML file
// named by --config, OTHELLO_* environment variables (dashes become
// underscores), then command-line flags.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("othelloai", pflag.ContinueOnError)
	fs.String(ConfigFile, "", "optional YAML config file")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigLogLevel, "info", "log level: debug, info, warn, disabled")
	fs.Int(ConfigDepthLimit, 4, "search depth limit in plies, -1 for unlimited")
	fs.String(ConfigMode, "alphabeta", "search mode: alphabeta or minimax")
	fs.Bool(ConfigCaching, false, "use the transposition cache")
	fs.Bool(ConfigOrdering, false, "order moves by one-ply utility (alpha-beta only)")
	fs.String(ConfigKeyScheme, "composite", "cache key: composite or board-only")
	fs.String(ConfigOrderingPerspective, "mover", "who judges move ordering: mover or player")
	fs.String(ConfigCacheScope, "process", "cache lifetime: process or search")
	fs.String(ConfigLeafPerspective, "node", "who a terminal node is scored for: node (side to move) or player")
	fs.Float64(ConfigCacheMemoryFraction, defaultCacheMemoryFraction,
		"warn when the cache passes this fraction of system memory")
	fs.Int(ConfigBoardDim, 8, "board size for self-play")
	fs.Int(ConfigGames, 10, "number of self-play games")
	fs.Int(ConfigThreads, 4, "number of self-play games run at once")
	fs.String(ConfigReport, "", "write the self-play summary as YAML to this file")
	fs.Int(ConfigOpponentDepthLimit, 2, "self-play opponent depth limit")
	fs.String(ConfigOpponentMode, "alphabeta", "self-play opponent search mode")
	fs.Bool(ConfigOpponentHeuristic, false, "self-play opponent uses the one-ply heuristic")
	fs.Int(ConfigHistogramBins, 10, "bins in the self-play margin histogram")
	fs.Int(ConfigOpeningPlies, 2, "random plies played before self-play searches begin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix(ConfigEnvPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
		}
	}
	return nil
}
