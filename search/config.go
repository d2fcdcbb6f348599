package search

import (
	"github.com/domino14/othelloai/cache"
	"github.com/domino14/othelloai/config"
)

// OptionsFromConfig builds the Solver options the config describes.
func OptionsFromConfig(cfg *config.Config) ([]Option, error) {
	ks, err := cache.ParseKeyScheme(cfg.GetString(config.ConfigKeyScheme))
	if err != nil {
		return nil, err
	}
	persp, err := ParseOrderingPerspective(cfg.GetString(config.ConfigOrderingPerspective))
	if err != nil {
		return nil, err
	}
	scope, err := ParseCacheScope(cfg.GetString(config.ConfigCacheScope))
	if err != nil {
		return nil, err
	}
	leaves, err := ParseLeafPerspective(cfg.GetString(config.ConfigLeafPerspective))
	if err != nil {
		return nil, err
	}
	return []Option{
		WithLeafPerspective(leaves),
		WithKeyScheme(ks),
		WithOrderingPerspective(persp),
		WithCacheScope(scope),
		WithMemoryWarningFraction(cfg.GetFloat64(config.ConfigCacheMemoryFraction)),
	}, nil
}

// ParamsFromConfig reads the per-search settings.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	mode, err := ParseMode(cfg.GetString(config.ConfigMode))
	if err != nil {
		return Params{}, err
	}
	p := Params{
		DepthLimit: cfg.GetInt(config.ConfigDepthLimit),
		Mode:       mode,
		Caching:    cfg.GetBool(config.ConfigCaching),
		Ordering:   cfg.GetBool(config.ConfigOrdering),
	}
	return p, p.validate()
}
