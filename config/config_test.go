package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigDepthLimit), 4)
	is.Equal(cfg.GetString(ConfigMode), "alphabeta")
	is.Equal(cfg.GetString(ConfigKeyScheme), "composite")
	is.Equal(cfg.GetString(ConfigLeafPerspective), "node")
	is.Equal(cfg.GetFloat64(ConfigCacheMemoryFraction), 0.25)
	is.True(!cfg.GetBool(ConfigCaching))
}

func TestFlagsOverrideEnvAndFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "othello.yaml")
	is.NoErr(os.WriteFile(path, []byte("depth-limit: 6\nmode: minimax\ncaching: true\nthreads: 2\n"), 0o644))
	t.Setenv("OTHELLO_THREADS", "3")
	t.Setenv("OTHELLO_CACHE_SCOPE", "search")

	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config", path, "--ordering", "--depth-limit=-1"}))

	is.Equal(cfg.GetInt(ConfigDepthLimit), -1)          // flag
	is.True(cfg.GetBool(ConfigOrdering))                // flag
	is.Equal(cfg.GetInt(ConfigThreads), 3)              // env over file
	is.Equal(cfg.GetString(ConfigCacheScope), "search") // env over default
	is.Equal(cfg.GetString(ConfigMode), "minimax")      // file
	is.True(cfg.GetBool(ConfigCaching))                 // file
	is.Equal(cfg.GetInt(ConfigBoardDim), 8)             // default
}

func TestUnknownFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.True(cfg.Load([]string{"--no-such-flag"}) != nil)
}
