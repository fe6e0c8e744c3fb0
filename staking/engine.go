package staking

import (
	"context"
	"errors"
	"time"

	"github.com/funny-code66/substrate-erc20-staking-contract/events"
	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
	"github.com/funny-code66/substrate-erc20-staking-contract/metrics"
)

var (
	// ErrInsufficientFunds is returned when a party tries to stake more
	// tokens than it holds.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrExceedsClaimable is returned when a claim requests more than the
	// currently claimable balance.
	ErrExceedsClaimable = errors.New("exceeds current claimable balance")
	// ErrNothingToClaim is returned by ClaimAll when nothing is claimable.
	ErrNothingToClaim = errors.New("nothing to claim")
	// ErrNoStakeHistory is returned by queries against a party which never staked.
	ErrNoStakeHistory = errors.New("no stake history for party")
	// ErrNoStakeAtIndex is returned by the per-entry accessors when the
	// index is past the end of the party's stake history.
	ErrNoStakeAtIndex = errors.New("no stake entry at index")
)

// TokenLedger is the external fungible token ledger the staked tokens live
// in. The engine only ever instructs it, token accounting is never
// reimplemented here.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/token_ledger_mock.go -package mocks github.com/funny-code66/substrate-erc20-staking-contract/staking TokenLedger
type TokenLedger interface {
	BalanceOf(party string) *num.Uint
	TotalSupply() *num.Uint
	Approve(owner, spender string, amount *num.Uint) bool
	TransferFrom(from, to string, amount *num.Uint) bool
}

// TimeService gives the engine the current tick of the host chain clock.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/time_service_mock.go -package mocks github.com/funny-code66/substrate-erc20-staking-contract/staking TimeService
type TimeService interface {
	CurrentTick() uint64
}

// Broker - the event bus.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks github.com/funny-code66/substrate-erc20-staking-contract/staking Broker
type Broker interface {
	Send(event events.Event)
	SendBatch(events []events.Event)
}

// Engine is the staking ledger. It tracks, per party, the history of
// deposits and how much of each has been paid back out, and reconciles
// claims against that history using the unlock curve.
//
// Operations run under the serialized-transaction model of the host chain:
// one at a time, to completion, so the engine carries no internal locking.
// Ledger mutations are finalized before the external token transfer is
// instructed, and the transfer outcome is not inspected (see Claim).
type Engine struct {
	log    *logging.Logger
	cfg    Config
	broker Broker
	token  TokenLedger
	tsvc   TimeService

	// the party identity of the staking contract itself, the counterparty
	// of every token transfer the engine instructs
	self string

	accounts map[string]*StakingAccount

	// unlock curve constants, derived from the config once at construction
	tickDuration *num.Uint
	clockUnit    *num.Uint
}

// New returns a staking ledger engine bound to the given token ledger and
// chain clock. The unlock curve constants come from the config and are
// immutable for the engine's lifetime.
func New(
	log *logging.Logger,
	cfg Config,
	broker Broker,
	token TokenLedger,
	tsvc TimeService,
	self string,
) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	if cfg.TickDuration == 0 || cfg.StakingPeriod/5 == 0 {
		log.Panic("invalid staking configuration",
			logging.Uint64("staking-period", cfg.StakingPeriod),
			logging.Uint64("tick-duration", cfg.TickDuration),
		)
	}

	return &Engine{
		log:          log,
		cfg:          cfg,
		broker:       broker,
		token:        token,
		tsvc:         tsvc,
		self:         self,
		accounts:     map[string]*StakingAccount{},
		tickDuration: num.NewUint(cfg.TickDuration),
		clockUnit:    num.NewUint(cfg.StakingPeriod / 5),
	}
}

// Stake records a deposit for the party at the current tick, then instructs
// the token ledger to move the tokens from the party to the contract.
// Deposits never merge; staking twice in the same tick leaves two entries.
func (e *Engine) Stake(ctx context.Context, party string, amount *num.Uint) error {
	defer metrics.EngineTimeCounterAdd(time.Now(), "staking", "Stake")

	if e.token.BalanceOf(party).LT(amount) {
		e.log.Debug("stake rejected, insufficient funds",
			logging.PartyID(party),
			logging.BigUint("amount", amount),
		)
		metrics.StakingOpCounterInc("stake", "insufficient_funds")
		return ErrInsufficientFunds
	}

	tick := e.tsvc.CurrentTick()
	acc, ok := e.accounts[party]
	if !ok {
		acc = NewStakingAccount(party)
		e.accounts[party] = acc
		e.broker.Send(events.NewPartyEvent(ctx, party))
	}
	acc.Append(amount, tick)
	metrics.StakeEntriesGaugeAdd(1)

	// transfer outcomes are deliberately not inspected: the ledger entry is
	// final at this point, matching the original contract's behaviour
	e.token.Approve(party, e.self, amount)
	e.token.TransferFrom(party, e.self, amount)

	e.broker.Send(events.NewStakeDeposited(ctx, party, amount, tick))
	metrics.StakingOpCounterInc("stake", "ok")

	if e.log.IsDebug() {
		e.log.Debug("stake deposited",
			logging.PartyID(party),
			logging.BigUint("amount", amount),
			logging.Uint64("tick", tick),
		)
	}
	return nil
}

// GetClaimableBalance returns the sum of the currently
// unlocked-but-unwithdrawn amounts across all the party's stake entries.
func (e *Engine) GetClaimableBalance(party string) (*num.Uint, error) {
	acc, ok := e.accounts[party]
	if !ok {
		return num.UintZero(), ErrNoStakeHistory
	}
	balance := num.UintZero()
	for _, entry := range acc.Stakes {
		balance.AddSum(e.claimable(entry))
	}
	return balance, nil
}

// Claim pays the requested amount back to the party, consuming the oldest
// stake entries first. Entries are debited partially where needed, and
// removed from the ledger as soon as they are both fully unlocked and fully
// claimed. The token transfer moves exactly the requested amount.
func (e *Engine) Claim(ctx context.Context, party string, amount *num.Uint) error {
	defer metrics.EngineTimeCounterAdd(time.Now(), "staking", "Claim")

	balance, err := e.GetClaimableBalance(party)
	if err != nil {
		metrics.StakingOpCounterInc("claim", "no_stake_history")
		return err
	}
	if balance.LT(amount) {
		e.log.Debug("claim rejected, exceeds current claimable balance",
			logging.PartyID(party),
			logging.BigUint("requested", amount),
			logging.BigUint("claimable", balance),
		)
		metrics.StakingOpCounterInc("claim", "exceeds_claimable")
		return ErrExceedsClaimable
	}

	acc := e.accounts[party]
	remaining := amount.Clone()
	for i := 0; i < len(acc.Stakes) && !remaining.IsZero(); {
		entry := acc.Stakes[i]
		unlocked := e.claimable(entry)
		if unlocked.GT(remaining) {
			entry.Withdrawn.AddSum(remaining)
			break
		}
		entry.Withdrawn.AddSum(unlocked)
		if entry.Withdrawn.EQ(entry.Amount) {
			// the next entry takes this slot, don't advance
			acc.removeAt(i)
			metrics.StakeEntriesGaugeAdd(-1)
		} else {
			i++
		}
		remaining.Sub(remaining, unlocked)
	}

	e.transferToParty(party, amount)

	tick := e.tsvc.CurrentTick()
	e.broker.Send(events.NewStakeClaimed(ctx, party, amount, tick))
	metrics.StakingOpCounterInc("claim", "ok")

	if e.log.IsDebug() {
		e.log.Debug("stake claimed",
			logging.PartyID(party),
			logging.BigUint("amount", amount),
			logging.Uint64("tick", tick),
		)
	}
	return nil
}

// ClaimAll pays out every entry's currently unlocked remainder in one go,
// removing the entries that end up fully claimed.
func (e *Engine) ClaimAll(ctx context.Context, party string) error {
	defer metrics.EngineTimeCounterAdd(time.Now(), "staking", "ClaimAll")

	balance, err := e.GetClaimableBalance(party)
	if err != nil {
		metrics.StakingOpCounterInc("claim_all", "no_stake_history")
		return err
	}
	if balance.IsZero() {
		e.log.Debug("claim all rejected, nothing to claim",
			logging.PartyID(party),
		)
		metrics.StakingOpCounterInc("claim_all", "nothing_to_claim")
		return ErrNothingToClaim
	}

	acc := e.accounts[party]
	for i := 0; i < len(acc.Stakes); {
		entry := acc.Stakes[i]
		entry.Withdrawn.AddSum(e.claimable(entry))
		if entry.Withdrawn.EQ(entry.Amount) {
			acc.removeAt(i)
			metrics.StakeEntriesGaugeAdd(-1)
		} else {
			i++
		}
	}

	e.transferToParty(party, balance)

	tick := e.tsvc.CurrentTick()
	e.broker.Send(events.NewStakeClaimed(ctx, party, balance, tick))
	metrics.StakingOpCounterInc("claim_all", "ok")

	if e.log.IsDebug() {
		e.log.Debug("all claimable stake claimed",
			logging.PartyID(party),
			logging.BigUint("amount", balance),
			logging.Uint64("tick", tick),
		)
	}
	return nil
}

// transferToParty instructs the token ledger to pay the party out of the
// contract's own balance. A failed transfer after the ledger mutation leaves
// the ledger overstating what was paid out; that inconsistency window comes
// from the original design and is not masked here.
func (e *Engine) transferToParty(party string, amount *num.Uint) {
	e.token.Approve(e.self, party, amount)
	e.token.TransferFrom(e.self, party, amount)
}

// StakeCount returns the number of live stake entries for the party.
func (e *Engine) StakeCount(party string) (int, error) {
	acc, ok := e.accounts[party]
	if !ok {
		return 0, ErrNoStakeHistory
	}
	return len(acc.Stakes), nil
}

// GetStakedTimestamp returns the tick at which the party's nth stake entry
// was deposited.
func (e *Engine) GetStakedTimestamp(party string, index int) (uint64, error) {
	entry, err := e.stakeAt(party, index)
	if err != nil {
		return 0, err
	}
	return entry.Tick, nil
}

// GetStakedAmount returns the amount of the party's nth stake entry.
func (e *Engine) GetStakedAmount(party string, index int) (*num.Uint, error) {
	entry, err := e.stakeAt(party, index)
	if err != nil {
		return num.UintZero(), err
	}
	return entry.Amount.Clone(), nil
}

func (e *Engine) stakeAt(party string, index int) (*StakeEntry, error) {
	acc, ok := e.accounts[party]
	if !ok {
		return nil, ErrNoStakeHistory
	}
	if index < 0 || index >= len(acc.Stakes) {
		return nil, ErrNoStakeAtIndex
	}
	return acc.Stakes[index], nil
}

// GetTokenTotalSupply is a pure pass-through to the token ledger.
func (e *Engine) GetTokenTotalSupply() *num.Uint {
	return e.token.TotalSupply()
}

// GetTokenBalance is a pure pass-through to the token ledger.
func (e *Engine) GetTokenBalance(party string) *num.Uint {
	return e.token.BalanceOf(party)
}
