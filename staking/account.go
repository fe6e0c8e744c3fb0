package staking

import (
	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"
)

// StakeEntry is one deposit recorded in the ledger. Amount and Tick are
// immutable once the entry is created; only Withdrawn moves, and it only
// ever increases. Keeping the withdrawn counter on the entry itself (rather
// than in a parallel sequence) makes it impossible for the deposit history
// and the payout history to fall out of lockstep.
type StakeEntry struct {
	Amount    *num.Uint
	Tick      uint64
	Withdrawn *num.Uint
}

// StakingAccount represents the whole stake history of a given party,
// insertion-ordered, oldest deposit first.
type StakingAccount struct {
	Party  string
	Stakes []*StakeEntry
}

func NewStakingAccount(party string) *StakingAccount {
	return &StakingAccount{
		Party:  party,
		Stakes: []*StakeEntry{},
	}
}

// Append records a new deposit made at the given tick.
func (s *StakingAccount) Append(amount *num.Uint, tick uint64) {
	s.Stakes = append(s.Stakes, &StakeEntry{
		Amount:    amount.Clone(),
		Tick:      tick,
		Withdrawn: num.UintZero(),
	})
}

// removeAt drops the entry at the given index, shifting the later entries
// down one position so their relative order is preserved. Claims walk the
// entries oldest first, so order matters here.
func (s *StakingAccount) removeAt(i int) {
	copy(s.Stakes[i:], s.Stakes[i+1:])
	s.Stakes[len(s.Stakes)-1] = nil
	s.Stakes = s.Stakes[:len(s.Stakes)-1]
}
