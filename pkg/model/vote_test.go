package model_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/joincivil/token-registry/pkg/model"

	cstrings "github.com/joincivil/go-common/pkg/strings"
)

func TestVoteFields(t *testing.T) {
	address1, _ := cstrings.RandomHexStr(32)
	voterAddress := common.HexToAddress(address1)

	vote := model.NewVote("test_listing", voterAddress, true, 1257894000)
	if vote.ListingName() != "test_listing" {
		t.Errorf("Should have set the listing name")
	}
	if vote.Voter() != voterAddress {
		t.Errorf("Should have set the voter address")
	}
	if !vote.InSupport() {
		t.Errorf("Should have set the in support flag")
	}
	if vote.CreationDateTs() != 1257894000 {
		t.Errorf("Should have set the creation timestamp")
	}
}

func TestVoteClone(t *testing.T) {
	address1, _ := cstrings.RandomHexStr(32)
	voterAddress := common.HexToAddress(address1)

	vote := model.NewVote("test_listing", voterAddress, false, 1257894000)
	clone := vote.Clone()

	if clone.ListingName() != vote.ListingName() {
		t.Errorf("Should have had same listing name")
	}
	if clone.Voter() != vote.Voter() {
		t.Errorf("Should have had same voter")
	}
	if clone.InSupport() != vote.InSupport() {
		t.Errorf("Should have had same in support flag")
	}
	if clone.CreationDateTs() != vote.CreationDateTs() {
		t.Errorf("Should have had same creation timestamp")
	}
}
