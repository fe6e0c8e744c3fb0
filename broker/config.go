package broker

import (
	"github.com/funny-code66/substrate-erc20-staking-contract/config/encoding"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
)

const namedLogger = "broker"

// Config represents the configuration of the broker.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
	}
}
