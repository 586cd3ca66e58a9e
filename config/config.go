package config

import (
	"time"

	"lending/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LENDING")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultOracle(config)
	return nil
}

func defaultOracle(config *core.Config) {
	if config.Oracle.MaxAge <= 0 {
		config.Oracle.MaxAge = 60 * time.Second
	}

	if config.Oracle.PullInterval <= 0 {
		config.Oracle.PullInterval = 10 * time.Second
	}
}
