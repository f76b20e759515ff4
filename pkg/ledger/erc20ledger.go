package ledger // import "github.com/joincivil/token-registry/pkg/ledger"

import (
	"math/big"

	log "github.com/golang/glog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/joincivil/go-common/pkg/generated/contract"
)

// NewERC20Ledger creates a TokenLedger backed by the CVL token contract.
// poolAddress is the account holding the engine's pooled funds and
// transactOpts must be able to sign for it.  Debits use transferFrom, so
// applicants need to have approved the pool address for at least the stake
// amount beforehand.
func NewERC20Ledger(tokenAddress common.Address, poolAddress common.Address,
	backend bind.ContractBackend, transactOpts *bind.TransactOpts) (*ERC20Ledger, error) {
	token, err := contract.NewCVLTokenContract(tokenAddress, backend)
	if err != nil {
		return nil, errors.Wrap(err, "error binding token contract")
	}
	return &ERC20Ledger{
		token:        token,
		poolAddress:  poolAddress,
		transactOpts: transactOpts,
	}, nil
}

// ERC20Ledger is a TokenLedger that moves CVL tokens on chain.  The pooled
// balance lives in a dedicated pool account.
type ERC20Ledger struct {
	token        *contract.CVLTokenContract
	poolAddress  common.Address
	transactOpts *bind.TransactOpts
}

// Debit moves amount from the given address into the pool account
func (e *ERC20Ledger) Debit(from common.Address, amount *big.Int) error {
	tx, err := e.token.TransferFrom(e.transactOpts, from, e.poolAddress, amount)
	if err != nil {
		return errors.Wrapf(err, "error debiting %v from %v", amount, from.Hex())
	}
	log.Infof("Debited %v from %v: txHash: %v", amount, from.Hex(), tx.Hash().Hex())
	return nil
}

// Credit moves amount from the pool account to the given address
func (e *ERC20Ledger) Credit(to common.Address, amount *big.Int) error {
	tx, err := e.token.Transfer(e.transactOpts, to, amount)
	if err != nil {
		return errors.Wrapf(err, "error crediting %v to %v", amount, to.Hex())
	}
	log.Infof("Credited %v to %v: txHash: %v", amount, to.Hex(), tx.Hash().Hex())
	return nil
}
