package staking

import (
	"github.com/funny-code66/substrate-erc20-staking-contract/config/encoding"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
)

const namedLogger = "staking"

const (
	// defaultStakingPeriod is the number of ticks until a stake is fully
	// unlocked, 5 days of one-second ticks.
	defaultStakingPeriod = 86400 * 5
	// defaultTickDuration is the real time covered by one clock tick.
	defaultTickDuration = 5
)

// Config represents the configuration of the staking engine. StakingPeriod
// and TickDuration are fixed at engine construction, there is no runtime
// reconfiguration of the unlock curve.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	StakingPeriod uint64 `long:"staking-period" description:"Total ticks until a stake fully unlocks"`
	TickDuration  uint64 `long:"tick-duration" description:"Real time units covered by one clock tick"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:         encoding.LogLevel{Level: logging.InfoLevel},
		StakingPeriod: defaultStakingPeriod,
		TickDuration:  defaultTickDuration,
	}
}
