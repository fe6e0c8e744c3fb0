package erc20

import (
	"sync"

	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
)

const namedLogger = "erc20"

// Ledger is an in-memory fungible token ledger implementing the collaborator
// surface the staking engine expects (balance_of, total_supply, approve,
// transfer_from). It stands in for the pre-deployed ERC-20 contract in tests
// and in the scenario runner; in a real deployment the engine talks to the
// actual token contract instead.
type Ledger struct {
	log *logging.Logger

	mu          sync.Mutex
	totalSupply *num.Uint
	balances    map[string]*num.Uint
	// owner -> spender -> remaining allowance
	allowances map[string]map[string]*num.Uint
}

// NewLedger returns an empty token ledger. Use Mint to seed genesis balances.
func NewLedger(log *logging.Logger) *Ledger {
	return &Ledger{
		log:         log.Named(namedLogger),
		totalSupply: num.UintZero(),
		balances:    map[string]*num.Uint{},
		allowances:  map[string]map[string]*num.Uint{},
	}
}

// Mint credits the party with the given amount, growing the total supply.
func (l *Ledger) Mint(party string, amount *num.Uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.balances[party]
	if !ok {
		bal = num.UintZero()
		l.balances[party] = bal
	}
	bal.AddSum(amount)
	l.totalSupply.AddSum(amount)
}

// BalanceOf returns the party's token balance, zero for unknown parties.
func (l *Ledger) BalanceOf(party string) *num.Uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.balances[party]
	if !ok {
		return num.UintZero()
	}
	return bal.Clone()
}

// TotalSupply returns the total amount of tokens minted.
func (l *Ledger) TotalSupply() *num.Uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSupply.Clone()
}

// Approve sets the amount the spender may move out of the owner's balance.
func (l *Ledger) Approve(owner, spender string, amount *num.Uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	spenders, ok := l.allowances[owner]
	if !ok {
		spenders = map[string]*num.Uint{}
		l.allowances[owner] = spenders
	}
	spenders[spender] = amount.Clone()
	return true
}

// TransferFrom moves amount from one balance to the other, consuming the
// from->to allowance. It returns false, with no state change, when either
// the balance or the allowance is too small.
func (l *Ledger) TransferFrom(from, to string, amount *num.Uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bal, ok := l.balances[from]
	if !ok || bal.LT(amount) {
		l.log.Debug("transfer_from rejected, insufficient balance",
			logging.String("from", from),
			logging.BigUint("amount", amount),
		)
		return false
	}
	allowance, ok := l.allowances[from][to]
	if !ok || allowance.LT(amount) {
		l.log.Debug("transfer_from rejected, insufficient allowance",
			logging.String("from", from),
			logging.String("to", to),
			logging.BigUint("amount", amount),
		)
		return false
	}

	allowance.Sub(allowance, amount)
	bal.Sub(bal, amount)
	dst, ok := l.balances[to]
	if !ok {
		dst = num.UintZero()
		l.balances[to] = dst
	}
	dst.AddSum(amount)
	return true
}
