package config

import (
	"go.uber.org/fx"
)

type (
	ConfigParams struct {
		fx.In
		Custom *customConfig `optional:"true"`
	}

	customConfig struct {
		config *Config
	}
)

var Module = fx.Options(
	fx.Provide(newConfig),
)

// WithCustomConfig overrides the config loaded from the embedded store.
func WithCustomConfig(cfg *Config) fx.Option {
	return fx.Provide(func() *customConfig {
		return &customConfig{config: cfg}
	})
}

func newConfig(params ConfigParams) (*Config, error) {
	if params.Custom != nil {
		return params.Custom.config, nil
	}

	return New()
}
