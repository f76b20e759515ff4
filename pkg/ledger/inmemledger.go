package ledger // import "github.com/joincivil/token-registry/pkg/ledger"

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrInsufficientBalance is returned when a holder or the pool does not have
// the tokens for a transfer
var ErrInsufficientBalance = errors.New("insufficient token balance")

// NewInMemoryLedger creates an InMemoryLedger with no balances set
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		balances: map[common.Address]*big.Int{},
		pool:     big.NewInt(0),
	}
}

// InMemoryLedger is a TokenLedger holding balances in process memory.  It
// stands in for the host chain's token contract when the engine is embedded
// directly, and serves as the ledger double in tests.
type InMemoryLedger struct {
	balances map[common.Address]*big.Int
	pool     *big.Int
}

// SetBalance sets the balance for an address, creating the account if needed
func (m *InMemoryLedger) SetBalance(addr common.Address, amount *big.Int) {
	m.balances[addr] = new(big.Int).Set(amount)
}

// BalanceOf returns the current balance for an address
func (m *InMemoryLedger) BalanceOf(addr common.Address) *big.Int {
	bal, ok := m.balances[addr]
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).Set(bal)
}

// PoolBalance returns the aggregate tokens held by the engine across all
// listings
func (m *InMemoryLedger) PoolBalance() *big.Int {
	return new(big.Int).Set(m.pool)
}

// Debit moves amount from the given address into the pooled balance
func (m *InMemoryLedger) Debit(from common.Address, amount *big.Int) error {
	bal, ok := m.balances[from]
	if !ok || bal.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "debit of %v from %v", amount, from.Hex())
	}
	bal.Sub(bal, amount)
	m.pool.Add(m.pool, amount)
	return nil
}

// Credit moves amount from the pooled balance to the given address
func (m *InMemoryLedger) Credit(to common.Address, amount *big.Int) error {
	if m.pool.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "credit of %v to %v", amount, to.Hex())
	}
	bal, ok := m.balances[to]
	if !ok {
		bal = big.NewInt(0)
		m.balances[to] = bal
	}
	m.pool.Sub(m.pool, amount)
	bal.Add(bal, amount)
	return nil
}
