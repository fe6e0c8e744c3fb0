package erc20_test

import (
	"testing"

	"github.com/funny-code66/substrate-erc20-staking-contract/erc20"
	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getLedger(t *testing.T) *erc20.Ledger {
	t.Helper()
	return erc20.NewLedger(logging.NewTestLogger())
}

func TestLedger(t *testing.T) {
	t.Run("mint grows balance and total supply", testMint)
	t.Run("transfer requires an allowance", testTransferRequiresAllowance)
	t.Run("approve then transfer moves the tokens", testApproveThenTransfer)
	t.Run("transfer in excess of balance is rejected", testTransferInsufficientBalance)
}

func testMint(t *testing.T) {
	l := getLedger(t)

	assert.True(t, l.BalanceOf("alice").IsZero())
	l.Mint("alice", num.NewUint(100))
	l.Mint("bob", num.NewUint(50))

	assert.True(t, l.BalanceOf("alice").EQUint64(100))
	assert.True(t, l.BalanceOf("bob").EQUint64(50))
	assert.True(t, l.TotalSupply().EQUint64(150))
}

func testTransferRequiresAllowance(t *testing.T) {
	l := getLedger(t)
	l.Mint("alice", num.NewUint(100))

	require.False(t, l.TransferFrom("alice", "bob", num.NewUint(10)))
	assert.True(t, l.BalanceOf("alice").EQUint64(100))
	assert.True(t, l.BalanceOf("bob").IsZero())
}

func testApproveThenTransfer(t *testing.T) {
	l := getLedger(t)
	l.Mint("alice", num.NewUint(100))

	require.True(t, l.Approve("alice", "bob", num.NewUint(60)))
	require.True(t, l.TransferFrom("alice", "bob", num.NewUint(40)))

	assert.True(t, l.BalanceOf("alice").EQUint64(60))
	assert.True(t, l.BalanceOf("bob").EQUint64(40))

	// the allowance is consumed as it is spent
	require.True(t, l.TransferFrom("alice", "bob", num.NewUint(20)))
	require.False(t, l.TransferFrom("alice", "bob", num.NewUint(1)))
	assert.True(t, l.BalanceOf("bob").EQUint64(60))

	// total supply is unchanged by transfers
	assert.True(t, l.TotalSupply().EQUint64(100))
}

func testTransferInsufficientBalance(t *testing.T) {
	l := getLedger(t)
	l.Mint("alice", num.NewUint(10))
	l.Approve("alice", "bob", num.NewUint(100))

	require.False(t, l.TransferFrom("alice", "bob", num.NewUint(11)))
	assert.True(t, l.BalanceOf("alice").EQUint64(10))
}
