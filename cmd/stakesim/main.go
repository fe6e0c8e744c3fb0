package main

import (
	"context"
	"fmt"
	"os"

	"github.com/funny-code66/substrate-erc20-staking-contract/blocktime"
	"github.com/funny-code66/substrate-erc20-staking-contract/broker"
	"github.com/funny-code66/substrate-erc20-staking-contract/config"
	"github.com/funny-code66/substrate-erc20-staking-contract/erc20"
	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
	"github.com/funny-code66/substrate-erc20-staking-contract/metrics"
	"github.com/funny-code66/substrate-erc20-staking-contract/staking"

	"github.com/jessevdk/go-flags"
)

// stakesim wires the staking engine against an in-memory token ledger and
// replays a small deterministic deposit / unlock / claim scenario, logging
// every event the engine emits. It exists to exercise the whole stack end
// to end without a chain.

type Options struct {
	ConfigRoot string `short:"c" long:"config-root" description:"Directory containing config.toml, defaults are used when unset"`
	Env        string `long:"env" description:"Logger environment (dev or prod), overrides the configured one"`
}

const (
	contractParty = "staking-contract"
	party         = "alice"
)

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	cfg := config.NewDefaultConfig()
	if opts.ConfigRoot != "" {
		c, err := config.Read(opts.ConfigRoot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "couldn't read configuration: %v\n", err)
			os.Exit(1)
		}
		cfg = *c
	}

	env := cfg.Logging.Environment
	if opts.Env != "" {
		env = opts.Env
	}
	log := logging.NewLoggerFromEnv(env)
	defer log.AtExit()

	metrics.Start(cfg.Metrics)

	ctx := context.Background()
	bkr := broker.New(log, cfg.Broker)
	bkr.Subscribe(newLogSub(log))

	tsvc := blocktime.New(log, cfg.Blocktime, bkr)
	token := erc20.NewLedger(log)
	engine := staking.New(log, cfg.Staking, bkr, token, tsvc, contractParty)

	token.Mint(party, num.NewUint(1000))

	// one fifth of the staking period, in ticks
	clockUnit := cfg.Staking.StakingPeriod / 5 / cfg.Staking.TickDuration

	tsvc.SetTick(ctx, 0)
	if err := engine.Stake(ctx, party, num.NewUint(100)); err != nil {
		log.Fatal("stake failed", logging.Error(err))
	}

	report(log, engine)

	// walk the clock through the unlock curve, claiming as we go
	tsvc.SetTick(ctx, clockUnit)
	report(log, engine)

	tsvc.SetTick(ctx, 5*clockUnit)
	report(log, engine)
	if err := engine.Claim(ctx, party, num.NewUint(50)); err != nil {
		log.Fatal("claim failed", logging.Error(err))
	}
	report(log, engine)

	tsvc.SetTick(ctx, 7*clockUnit)
	if err := engine.ClaimAll(ctx, party); err != nil {
		log.Fatal("claim all failed", logging.Error(err))
	}
	report(log, engine)

	log.Info("scenario complete",
		logging.BigUint("party-token-balance", engine.GetTokenBalance(party)),
		logging.BigUint("contract-token-balance", engine.GetTokenBalance(contractParty)),
		logging.BigUint("total-supply", engine.GetTokenTotalSupply()),
	)
}

func report(log *logging.Logger, engine *staking.Engine) {
	claimable, err := engine.GetClaimableBalance(party)
	if err != nil {
		log.Fatal("claimable balance query failed", logging.Error(err))
	}
	count, _ := engine.StakeCount(party)
	log.Info("ledger state",
		logging.PartyID(party),
		logging.BigUint("claimable", claimable),
		logging.Int("entries", count),
	)
}
