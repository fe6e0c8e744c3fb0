package staking

import (
	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"
)

// The unlock curve maps elapsed ticks since a deposit to an integer level
// on a 0-10 scale, the level being the number of tenths of the deposit
// eligible for withdrawal. Progress is measured in "clocks", units of one
// fifth of the staking period:
//
//	clocks 0        -> level 0
//	clocks 1..5     -> level 5..9, one unit per clock
//	clocks > 5      -> level 10, saturated forever after
//
// The collapse of every clocks > 5 value to the same level 10 is the curve's
// one discontinuity and is deliberate, not a rounding artifact.

const maxUnlockLevel = 10

var (
	uintTen  = num.NewUint(10)
	uintFour = num.NewUint(4)
)

// unlockLevel evaluates the curve for an elapsed tick count. The function is
// pure and total; callers feeding it anything other than a plain elapsed
// tick count (see claimable) get the same arithmetic applied to whatever
// integer they pass in. Negative elapsed values are handled by the callers,
// which short-circuit to level 0 before calling.
func (e *Engine) unlockLevel(elapsed *num.Uint) *num.Uint {
	clocks := num.UintZero().Div(
		num.UintZero().Mul(elapsed, e.tickDuration),
		e.clockUnit,
	)
	if clocks.GTUint64(5) {
		return num.NewUint(maxUnlockLevel)
	}
	if clocks.IsZero() {
		return num.UintZero()
	}
	return num.UintZero().Add(uintFour, clocks)
}

// GetUnlockLevel returns the unlock level for a stake registered at the
// given tick, 0 when the tick is still in the future.
func (e *Engine) GetUnlockLevel(sinceTick uint64) *num.Uint {
	now := e.tsvc.CurrentTick()
	if now < sinceTick {
		return num.UintZero()
	}
	return e.unlockLevel(num.NewUint(now - sinceTick))
}

// GetUnlockFraction returns the unlocked share for a stake registered at
// the given tick as a decimal in [0, 1].
func (e *Engine) GetUnlockFraction(sinceTick uint64) num.Decimal {
	return e.GetUnlockLevel(sinceTick).ToDecimal().Div(num.DecimalFromInt64(maxUnlockLevel))
}

// claimable returns the entry's currently unlocked-but-unwithdrawn amount.
//
// The curve origin here is not the deposit tick but tick*amount/10 pulled
// backwards by the amount already withdrawn. The original contract fed this
// derived value to the same curve function used for plain elapsed ticks,
// and every payout schedule depends on it, so it is reproduced exactly.
// Changing it would change what every existing account can claim.
func (e *Engine) claimable(entry *StakeEntry) *num.Uint {
	origin := num.UintZero().Div(
		num.UintZero().Mul(num.NewUint(entry.Tick), entry.Amount),
		uintTen,
	)
	effective := num.Sum(num.NewUint(e.tsvc.CurrentTick()), entry.Withdrawn)
	if effective.LT(origin) {
		// curve input would be negative, nothing unlocked
		return num.UintZero()
	}
	level := e.unlockLevel(num.UintZero().Sub(effective, origin))
	unlocked := num.UintZero().Div(
		num.UintZero().Mul(level, entry.Amount),
		uintTen,
	)
	if unlocked.LTE(entry.Withdrawn) {
		return num.UintZero()
	}
	return num.UintZero().Sub(unlocked, entry.Withdrawn)
}
