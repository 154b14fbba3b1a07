package main

import (
	"github.com/coinbase/l2node/internal/config"
)

var (
	rootFlags struct {
		env        string
		configName string
	}

	rootCommand = NewCommand("admin", nil)
)

func init() {
	rootCommand.Command.SilenceUsage = true
	rootCommand.StringVar(&rootFlags.env, "env", string(config.EnvLocal), false)
	rootCommand.StringVar(&rootFlags.configName, "network", "mainnet", false)
}
