package metrics

import (
	"github.com/funny-code66/substrate-erc20-staking-contract/config/encoding"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
)

// Config represents the configuration of the metric package.
type Config struct {
	Level   encoding.LogLevel `long:"log-level"`
	Enabled encoding.Bool     `long:"enabled" choice:"true" choice:"false" description:"Whether or not to expose prometheus metrics"`
	Port    int               `long:"port" description:"The port to expose prometheus metrics on"`
	Path    string            `long:"path" description:"The path to expose prometheus metrics on"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:   encoding.LogLevel{Level: logging.InfoLevel},
		Enabled: false,
		Port:    2112,
		Path:    "/metrics",
	}
}
