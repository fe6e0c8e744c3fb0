package blocktime

import (
	"github.com/funny-code66/substrate-erc20-staking-contract/config/encoding"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
)

const namedLogger = "blocktime"

// Config represents the configuration of the blocktime service.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
	}
}
