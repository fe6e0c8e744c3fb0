package staking_test

import (
	"context"
	"testing"

	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
	"github.com/funny-code66/substrate-erc20-staking-contract/staking"
	"github.com/funny-code66/substrate-erc20-staking-contract/staking/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contractParty = "staking-contract-1"
	alice         = "alice"
	bob           = "bob"
)

type testEngine struct {
	*staking.Engine

	ctrl   *gomock.Controller
	broker *mocks.MockBroker
	token  *mocks.MockTokenLedger
	tsvc   *mocks.MockTimeService
}

func getTestEngine(t *testing.T) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	broker := mocks.NewMockBroker(ctrl)
	token := mocks.NewMockTokenLedger(ctrl)
	tsvc := mocks.NewMockTimeService(ctrl)
	log := logging.NewTestLogger()
	cfg := staking.NewDefaultConfig()

	eng := staking.New(log, cfg, broker, token, tsvc, contractParty)

	return &testEngine{
		Engine: eng,
		ctrl:   ctrl,
		broker: broker,
		token:  token,
		tsvc:   tsvc,
	}
}

// setTick makes the chain clock return the given tick from now on.
func (e *testEngine) setTick(tick uint64) {
	e.tsvc.EXPECT().CurrentTick().Return(tick).AnyTimes()
}

// deposit stakes the amount for the party with a token balance large
// enough for the precondition to pass.
func (e *testEngine) deposit(t *testing.T, party string, amount uint64) {
	t.Helper()
	e.token.EXPECT().BalanceOf(party).Return(num.NewUint(amount)).Times(1)
	e.token.EXPECT().Approve(party, contractParty, num.NewUint(amount)).Return(true).Times(1)
	e.token.EXPECT().TransferFrom(party, contractParty, num.NewUint(amount)).Return(true).Times(1)
	e.broker.EXPECT().Send(gomock.Any()).AnyTimes()
	require.NoError(t, e.Stake(context.Background(), party, num.NewUint(amount)))
}

// expectPayout sets the token ledger expectations for a transfer from the
// contract back to the party.
func (e *testEngine) expectPayout(party string, amount uint64) {
	e.token.EXPECT().Approve(contractParty, party, num.NewUint(amount)).Return(true).Times(1)
	e.token.EXPECT().TransferFrom(contractParty, party, num.NewUint(amount)).Return(true).Times(1)
}

func TestStakingEngine(t *testing.T) {
	t.Run("can deposit a stake", testDepositOK)
	t.Run("deposit with insufficient funds is rejected", testDepositInsufficientFunds)
	t.Run("deposits accumulate as independent entries", testDepositsDoNotMerge)
	t.Run("claimable balance query for unknown party fails", testClaimableBalanceNoHistory)
	t.Run("claimable balance follows the unlock curve", testClaimableBalanceScenario)
	t.Run("claimable unlocks relative to the deposit-derived origin", testClaimableNonzeroDepositTick)
	t.Run("partial claim debits the oldest entry", testPartialClaim)
	t.Run("claim consumes entries oldest first and removes exhausted ones", testClaimRemovesExhaustedEntries)
	t.Run("claim in excess of claimable is rejected with no state change", testClaimExceedsClaimable)
	t.Run("claim all pays out every unlocked remainder", testClaimAll)
	t.Run("claim all with nothing unlocked is rejected", testClaimAllNothingToClaim)
	t.Run("withdrawn amounts never decrease", testClaimConservation)
	t.Run("per-entry accessors honour the index", testAccessors)
	t.Run("token queries pass through to the ledger", testTokenPassThroughs)
}

func testDepositOK(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.setTick(0)
	eng.deposit(t, alice, 100)

	count, err := eng.StakeCount(alice)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	amount, err := eng.GetStakedAmount(alice, 0)
	require.NoError(t, err)
	assert.True(t, amount.EQUint64(100))

	tick, err := eng.GetStakedTimestamp(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), tick)
}

func testDepositInsufficientFunds(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.setTick(0)
	eng.token.EXPECT().BalanceOf(alice).Return(num.NewUint(99)).Times(1)

	err := eng.Stake(context.Background(), alice, num.NewUint(100))
	assert.ErrorIs(t, err, staking.ErrInsufficientFunds)

	// nothing was recorded
	_, err = eng.StakeCount(alice)
	assert.ErrorIs(t, err, staking.ErrNoStakeHistory)
}

func testDepositsDoNotMerge(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	// two deposits in the same tick stay separate entries
	eng.setTick(0)
	eng.deposit(t, alice, 100)
	eng.deposit(t, alice, 50)

	count, err := eng.StakeCount(alice)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	first, err := eng.GetStakedAmount(alice, 0)
	require.NoError(t, err)
	assert.True(t, first.EQUint64(100))

	second, err := eng.GetStakedAmount(alice, 1)
	require.NoError(t, err)
	assert.True(t, second.EQUint64(50))
}

func testClaimableBalanceNoHistory(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	balance, err := eng.GetClaimableBalance(bob)
	assert.ErrorIs(t, err, staking.ErrNoStakeHistory)
	assert.True(t, balance.IsZero())
}

// stake 100 at tick 0 and read the balance while walking the clock through
// the curve's boundaries: level 0 at deposit, 5 after one fifth-period unit,
// 9 after five, 10 (saturated) past the midpoint.
func testClaimableBalanceScenario(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(0)).Times(1)
	eng.deposit(t, alice, 100)

	for _, tc := range []struct {
		tick     uint64
		expected uint64
	}{
		{tick: 0, expected: 0},
		{tick: 17279, expected: 0},
		{tick: 17280, expected: 50},
		{tick: 86400, expected: 90},
		{tick: 103680, expected: 100},
		{tick: 100 * 86400, expected: 100},
	} {
		eng.tsvc.EXPECT().CurrentTick().Return(tc.tick).Times(1)
		balance, err := eng.GetClaimableBalance(alice)
		require.NoError(t, err)
		assert.True(t, balance.EQUint64(tc.expected),
			"claimable at tick %d should be %d, got %s", tc.tick, tc.expected, balance)
	}
}

// for a deposit at a nonzero tick the curve origin is tick*amount/10, not
// the deposit tick itself, so unlock progress is measured from the derived
// origin. A deposit of 200 at tick 100 puts the origin at 2000: one
// fifth-period unit after the deposit tick nothing is unlocked yet, one
// unit past the origin half the deposit is.
func testClaimableNonzeroDepositTick(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(100)).Times(1)
	eng.deposit(t, alice, 200)

	// tick 100 + 17280: still short of one unit past the origin
	eng.tsvc.EXPECT().CurrentTick().Return(uint64(17380)).Times(1)
	balance, err := eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	// tick 2000 + 17280: level 5, half the deposit unlocked
	eng.tsvc.EXPECT().CurrentTick().Return(uint64(19280)).AnyTimes()
	balance, err = eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.EQUint64(100))

	eng.expectPayout(alice, 100)
	require.NoError(t, eng.Claim(context.Background(), alice, num.NewUint(100)))

	// the entry is debited, not removed, and the level-5 allowance is used up
	count, err := eng.StakeCount(alice)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	balance, err = eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func testPartialClaim(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(0)).Times(1)
	eng.deposit(t, alice, 100)

	// one fifth-period unit later: level 9 -> 90 claimable
	eng.tsvc.EXPECT().CurrentTick().Return(uint64(86400)).AnyTimes()
	balance, err := eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.EQUint64(90))

	eng.expectPayout(alice, 50)
	require.NoError(t, eng.Claim(context.Background(), alice, num.NewUint(50)))

	// the entry is debited, not removed
	count, err := eng.StakeCount(alice)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	balance, err = eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.EQUint64(40))
}

func testClaimRemovesExhaustedEntries(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(0)).Times(2)
	eng.deposit(t, alice, 10)
	eng.deposit(t, alice, 100)

	// well past full unlock, both entries at level 10
	eng.tsvc.EXPECT().CurrentTick().Return(uint64(200000)).AnyTimes()

	balance, err := eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.EQUint64(110))

	// 15 = all of the first entry and 5 out of the second
	eng.expectPayout(alice, 15)
	require.NoError(t, eng.Claim(context.Background(), alice, num.NewUint(15)))

	count, err := eng.StakeCount(alice)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "exhausted entry removed from the ledger")

	// the remaining entry is the younger one, shifted down a slot
	amount, err := eng.GetStakedAmount(alice, 0)
	require.NoError(t, err)
	assert.True(t, amount.EQUint64(100))

	balance, err = eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.EQUint64(95))
}

func testClaimExceedsClaimable(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(0)).Times(1)
	eng.deposit(t, alice, 100)

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(86400)).AnyTimes()

	err := eng.Claim(context.Background(), alice, num.NewUint(91))
	assert.ErrorIs(t, err, staking.ErrExceedsClaimable)

	// ledger untouched
	count, err := eng.StakeCount(alice)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	balance, err := eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.EQUint64(90))
}

func testClaimAll(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(0)).Times(2)
	eng.deposit(t, alice, 100)
	eng.deposit(t, alice, 60)

	// level 9: 90 + 54 claimable
	eng.tsvc.EXPECT().CurrentTick().Return(uint64(86400)).AnyTimes()

	balance, err := eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.EQUint64(144))

	eng.expectPayout(alice, 144)
	require.NoError(t, eng.ClaimAll(context.Background(), alice))

	// neither entry fully unlocked yet, so both remain, with nothing
	// left to claim at the current tick
	count, err := eng.StakeCount(alice)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	balance, err = eng.GetClaimableBalance(alice)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func testClaimAllNothingToClaim(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.setTick(0)
	eng.deposit(t, alice, 100)

	err := eng.ClaimAll(context.Background(), alice)
	assert.ErrorIs(t, err, staking.ErrNothingToClaim)
}

func testClaimConservation(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(0)).Times(1)
	eng.deposit(t, alice, 100)

	eng.tsvc.EXPECT().CurrentTick().Return(uint64(86400)).AnyTimes()

	remainingClaims := []uint64{30, 40, 20}
	expected := uint64(90)
	for _, c := range remainingClaims {
		eng.expectPayout(alice, c)
		require.NoError(t, eng.Claim(context.Background(), alice, num.NewUint(c)))
		expected -= c
		balance, err := eng.GetClaimableBalance(alice)
		require.NoError(t, err)
		assert.True(t, balance.EQUint64(expected), "claimable balance should be %d, got %s", expected, balance)
	}

	// everything level 9 allows is consumed, the rest stays locked
	err := eng.Claim(context.Background(), alice, num.NewUint(1))
	assert.ErrorIs(t, err, staking.ErrExceedsClaimable)
}

func testAccessors(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.setTick(42)
	eng.deposit(t, alice, 100)

	tick, err := eng.GetStakedTimestamp(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), tick)

	_, err = eng.GetStakedTimestamp(alice, 1)
	assert.ErrorIs(t, err, staking.ErrNoStakeAtIndex)
	_, err = eng.GetStakedAmount(alice, -1)
	assert.ErrorIs(t, err, staking.ErrNoStakeAtIndex)
	_, err = eng.GetStakedAmount(bob, 0)
	assert.ErrorIs(t, err, staking.ErrNoStakeHistory)
}

func testTokenPassThroughs(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()

	eng.token.EXPECT().TotalSupply().Return(num.NewUint(100000)).Times(1)
	assert.True(t, eng.GetTokenTotalSupply().EQUint64(100000))

	eng.token.EXPECT().BalanceOf(alice).Return(num.NewUint(250)).Times(1)
	assert.True(t, eng.GetTokenBalance(alice).EQUint64(250))
}
