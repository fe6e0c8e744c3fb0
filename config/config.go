package config

import (
	"os"
	"path/filepath"

	"github.com/funny-code66/substrate-erc20-staking-contract/blocktime"
	"github.com/funny-code66/substrate-erc20-staking-contract/broker"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
	"github.com/funny-code66/substrate-erc20-staking-contract/metrics"
	"github.com/funny-code66/substrate-erc20-staking-contract/staking"

	"github.com/zannen/toml"
)

const configFileName = "config.toml"

// Config ties together all other package configuration types.
type Config struct {
	Staking   staking.Config   `group:"Staking" namespace:"staking"`
	Broker    broker.Config    `group:"Broker" namespace:"broker"`
	Blocktime blocktime.Config `group:"Blocktime" namespace:"blocktime"`
	Metrics   metrics.Config   `group:"Metrics" namespace:"metrics"`
	Logging   logging.Config   `group:"Logging" namespace:"logging"`
}

// NewDefaultConfig returns a set of default configs for all packages, as
// specified at the per package config level.
func NewDefaultConfig() Config {
	return Config{
		Staking:   staking.NewDefaultConfig(),
		Broker:    broker.NewDefaultConfig(),
		Blocktime: blocktime.NewDefaultConfig(),
		Metrics:   metrics.NewDefaultConfig(),
		Logging:   logging.NewDefaultConfig(),
	}
}

// Read loads the configuration from the config file found under rootPath,
// on top of the defaults.
func Read(rootPath string) (*Config, error) {
	path := filepath.Join(rootPath, configFileName)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write saves the given configuration under rootPath.
func Write(rootPath string, cfg *Config) error {
	path := filepath.Join(rootPath, configFileName)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
