package model_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/joincivil/token-registry/pkg/model"

	cstrings "github.com/joincivil/go-common/pkg/strings"
)

func setupSampleListing() (*model.Listing, common.Address) {
	address1, _ := cstrings.RandomHexStr(32)
	applicantAddress := common.HexToAddress(address1)
	stake := new(big.Int)
	stake.SetString("100000000000000000000", 10)

	testListingParams := &model.NewListingParams{
		Name:              "test_listing",
		Applicant:         applicantAddress,
		Stake:             stake,
		Whitelisted:       false,
		VoteCount:         3,
		ChallengeCount:    1,
		ApplicationDateTs: 1257894000,
		LastUpdatedDateTs: 1257894000,
	}
	testListing := model.NewListing(testListingParams)
	return testListing, applicantAddress
}

func TestListingSetters(t *testing.T) {
	listing, _ := setupSampleListing()

	listing.SetWhitelisted(true)
	if !listing.Whitelisted() {
		t.Errorf("Should have updated the whitelisted flag")
	}

	listing.SetVoteCount(10)
	if listing.VoteCount() != 10 {
		t.Errorf("Should have updated the vote count")
	}

	listing.SetChallengeCount(4)
	if listing.ChallengeCount() != 4 {
		t.Errorf("Should have updated the challenge count")
	}

	listing.SetLastUpdatedDateTs(1257894888)
	if listing.LastUpdatedDateTs() != 1257894888 {
		t.Errorf("Should have updated the last updated timestamp")
	}
}

func TestListingClone(t *testing.T) {
	listing, applicantAddress := setupSampleListing()
	clone := listing.Clone()

	if clone.Name() != listing.Name() {
		t.Errorf("Should have had same name")
	}
	if clone.Applicant() != applicantAddress {
		t.Errorf("Should have had same applicant")
	}
	if clone.Stake().Cmp(listing.Stake()) != 0 {
		t.Errorf("Should have had same stake")
	}
	if clone.VoteCount() != listing.VoteCount() {
		t.Errorf("Should have had same vote count")
	}
	if clone.ChallengeCount() != listing.ChallengeCount() {
		t.Errorf("Should have had same challenge count")
	}
	if clone.ApplicationDateTs() != listing.ApplicationDateTs() {
		t.Errorf("Should have had same application timestamp")
	}

	// The clone's stake must be an independent value
	clone.Stake().Add(clone.Stake(), big.NewInt(1))
	if clone.Stake().Cmp(listing.Stake()) == 0 {
		t.Errorf("Should not have shared the stake value with the original")
	}

	clone.SetVoteCount(99)
	if listing.VoteCount() == 99 {
		t.Errorf("Should not have altered the original via the clone")
	}
}
