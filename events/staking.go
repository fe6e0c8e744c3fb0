package events

import (
	"context"

	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"
)

// StakeDeposited event is emitted once a deposit has been recorded in
// the staking ledger and the token transfer has been instructed.
type StakeDeposited struct {
	*Base
	party  string
	amount *num.Uint
	tick   uint64
}

func NewStakeDeposited(ctx context.Context, party string, amount *num.Uint, tick uint64) *StakeDeposited {
	return &StakeDeposited{
		Base:   newBase(ctx, StakeDepositedEvent),
		party:  party,
		amount: amount.Clone(),
		tick:   tick,
	}
}

func (s StakeDeposited) Party() string {
	return s.party
}

func (s StakeDeposited) Amount() *num.Uint {
	return s.amount.Clone()
}

func (s StakeDeposited) Tick() uint64 {
	return s.tick
}

// StakeClaimed event is emitted once a claim has been reconciled against
// the ledger and the token transfer back to the party has been instructed.
type StakeClaimed struct {
	*Base
	party  string
	amount *num.Uint
	tick   uint64
}

func NewStakeClaimed(ctx context.Context, party string, amount *num.Uint, tick uint64) *StakeClaimed {
	return &StakeClaimed{
		Base:   newBase(ctx, StakeClaimedEvent),
		party:  party,
		amount: amount.Clone(),
		tick:   tick,
	}
}

func (s StakeClaimed) Party() string {
	return s.party
}

func (s StakeClaimed) Amount() *num.Uint {
	return s.amount.Clone()
}

func (s StakeClaimed) Tick() uint64 {
	return s.tick
}

// Party event, emitted the first time a party appears in the ledger.
type Party struct {
	*Base
	id string
}

func NewPartyEvent(ctx context.Context, id string) *Party {
	return &Party{
		Base: newBase(ctx, PartyEvent),
		id:   id,
	}
}

func (p Party) ID() string {
	return p.id
}
