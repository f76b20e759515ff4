package ledger_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	cstrings "github.com/joincivil/go-common/pkg/strings"

	"github.com/joincivil/token-registry/pkg/ledger"
)

func testAddress(t *testing.T) common.Address {
	hex, err := cstrings.RandomHexStr(32)
	if err != nil {
		t.Fatalf("Should not have failed generating an address: err: %v", err)
	}
	return common.HexToAddress(hex)
}

func TestDebitMovesTokensIntoPool(t *testing.T) {
	tokenLedger := ledger.NewInMemoryLedger()
	holder := testAddress(t)
	tokenLedger.SetBalance(holder, big.NewInt(500))

	err := tokenLedger.Debit(holder, big.NewInt(100))
	if err != nil {
		t.Fatalf("Should not have failed debiting: err: %v", err)
	}
	if tokenLedger.BalanceOf(holder).Cmp(big.NewInt(400)) != 0 {
		t.Errorf("Should have reduced the holder balance: got %v",
			tokenLedger.BalanceOf(holder))
	}
	if tokenLedger.PoolBalance().Cmp(big.NewInt(100)) != 0 {
		t.Errorf("Should have grown the pool: got %v", tokenLedger.PoolBalance())
	}
}

func TestDebitInsufficientBalance(t *testing.T) {
	tokenLedger := ledger.NewInMemoryLedger()
	holder := testAddress(t)
	tokenLedger.SetBalance(holder, big.NewInt(50))

	err := tokenLedger.Debit(holder, big.NewInt(100))
	if errors.Cause(err) != ledger.ErrInsufficientBalance {
		t.Errorf("Should have failed with ErrInsufficientBalance: err: %v", err)
	}
	if tokenLedger.BalanceOf(holder).Cmp(big.NewInt(50)) != 0 {
		t.Errorf("Should not have changed the holder balance")
	}
	if tokenLedger.PoolBalance().Sign() != 0 {
		t.Errorf("Should not have changed the pool")
	}
}

func TestDebitUnknownAccount(t *testing.T) {
	tokenLedger := ledger.NewInMemoryLedger()
	err := tokenLedger.Debit(testAddress(t), big.NewInt(1))
	if errors.Cause(err) != ledger.ErrInsufficientBalance {
		t.Errorf("Should have failed with ErrInsufficientBalance: err: %v", err)
	}
}

func TestCreditMovesTokensOutOfPool(t *testing.T) {
	tokenLedger := ledger.NewInMemoryLedger()
	holder := testAddress(t)
	recipient := testAddress(t)
	tokenLedger.SetBalance(holder, big.NewInt(500))

	err := tokenLedger.Debit(holder, big.NewInt(200))
	if err != nil {
		t.Fatalf("Should not have failed debiting: err: %v", err)
	}
	err = tokenLedger.Credit(recipient, big.NewInt(150))
	if err != nil {
		t.Fatalf("Should not have failed crediting: err: %v", err)
	}
	if tokenLedger.BalanceOf(recipient).Cmp(big.NewInt(150)) != 0 {
		t.Errorf("Should have credited the recipient: got %v",
			tokenLedger.BalanceOf(recipient))
	}
	if tokenLedger.PoolBalance().Cmp(big.NewInt(50)) != 0 {
		t.Errorf("Should have drawn down the pool: got %v", tokenLedger.PoolBalance())
	}
}

func TestCreditInsufficientPool(t *testing.T) {
	tokenLedger := ledger.NewInMemoryLedger()
	recipient := testAddress(t)

	err := tokenLedger.Credit(recipient, big.NewInt(10))
	if errors.Cause(err) != ledger.ErrInsufficientBalance {
		t.Errorf("Should have failed with ErrInsufficientBalance: err: %v", err)
	}
	if tokenLedger.BalanceOf(recipient).Sign() != 0 {
		t.Errorf("Should not have credited the recipient")
	}
}

func TestBalanceOfReturnsCopy(t *testing.T) {
	tokenLedger := ledger.NewInMemoryLedger()
	holder := testAddress(t)
	tokenLedger.SetBalance(holder, big.NewInt(500))

	bal := tokenLedger.BalanceOf(holder)
	bal.Add(bal, big.NewInt(100))
	if tokenLedger.BalanceOf(holder).Cmp(big.NewInt(500)) != 0 {
		t.Errorf("Should not have exposed the internal balance value")
	}
}
