// Package ledger contains the token ledger interface consumed by the registry
// engine plus its implementations.  The ledger custodies the actual funds;
// the engine only does accounting against it.
package ledger // import "github.com/joincivil/token-registry/pkg/ledger"

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenLedger is the external balance-custody collaborator.  Debit moves
// tokens from a holder into the engine's pooled balance, Credit moves tokens
// from the pool out to a recipient.  Any error aborts the engine operation
// that made the call.
type TokenLedger interface {
	// Debit moves amount from the given address into the pooled balance
	Debit(from common.Address, amount *big.Int) error
	// Credit moves amount from the pooled balance to the given address
	Credit(to common.Address, amount *big.Int) error
}
