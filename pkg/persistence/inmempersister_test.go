package persistence_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	cpersist "github.com/joincivil/go-common/pkg/persistence"
	cstrings "github.com/joincivil/go-common/pkg/strings"

	"github.com/joincivil/token-registry/pkg/model"
	"github.com/joincivil/token-registry/pkg/persistence"
)

func testAddress(t *testing.T) common.Address {
	hex, err := cstrings.RandomHexStr(32)
	if err != nil {
		t.Fatalf("Should not have failed generating an address: err: %v", err)
	}
	return common.HexToAddress(hex)
}

func sampleListing(t *testing.T, name string) *model.Listing {
	return model.NewListing(&model.NewListingParams{
		Name:              name,
		Applicant:         testAddress(t),
		Stake:             big.NewInt(100),
		ApplicationDateTs: 1257894000,
		LastUpdatedDateTs: 1257894000,
	})
}

func TestListingCRUD(t *testing.T) {
	persister := persistence.NewInMemoryPersister()
	listing := sampleListing(t, "test_listing")

	_, err := persister.ListingByName("test_listing")
	if err != cpersist.ErrPersisterNoResults {
		t.Errorf("Should have returned ErrPersisterNoResults: err: %v", err)
	}

	err = persister.CreateListing(listing)
	if err != nil {
		t.Fatalf("Should not have failed creating the listing: err: %v", err)
	}
	err = persister.CreateListing(listing)
	if err == nil {
		t.Errorf("Should have failed creating a listing with a taken name")
	}

	retrieved, err := persister.ListingByName("test_listing")
	if err != nil {
		t.Fatalf("Should have retrieved the listing: err: %v", err)
	}
	if retrieved.Applicant() != listing.Applicant() {
		t.Errorf("Should have had same applicant")
	}
	if retrieved.Stake().Cmp(listing.Stake()) != 0 {
		t.Errorf("Should have had same stake")
	}

	retrieved.SetVoteCount(5)
	err = persister.UpdateListing(retrieved)
	if err != nil {
		t.Fatalf("Should not have failed updating the listing: err: %v", err)
	}
	updated, _ := persister.ListingByName("test_listing")
	if updated.VoteCount() != 5 {
		t.Errorf("Should have persisted the updated vote count")
	}

	listings, err := persister.Listings()
	if err != nil {
		t.Fatalf("Should not have failed listing all listings: err: %v", err)
	}
	if len(listings) != 1 {
		t.Errorf("Should have returned 1 listing: got %v", len(listings))
	}

	err = persister.DeleteListing(listing)
	if err != nil {
		t.Fatalf("Should not have failed deleting the listing: err: %v", err)
	}
	_, err = persister.ListingByName("test_listing")
	if err != cpersist.ErrPersisterNoResults {
		t.Errorf("Should have returned ErrPersisterNoResults after delete: err: %v", err)
	}
	err = persister.DeleteListing(listing)
	if err != cpersist.ErrPersisterNoResults {
		t.Errorf("Should have failed deleting a missing listing: err: %v", err)
	}
}

func TestListingReadsAreSnapshots(t *testing.T) {
	persister := persistence.NewInMemoryPersister()
	listing := sampleListing(t, "test_listing")
	err := persister.CreateListing(listing)
	if err != nil {
		t.Fatalf("Should not have failed creating the listing: err: %v", err)
	}

	retrieved, _ := persister.ListingByName("test_listing")
	retrieved.SetVoteCount(42)
	retrieved.Stake().Add(retrieved.Stake(), big.NewInt(1))

	stored, _ := persister.ListingByName("test_listing")
	if stored.VoteCount() == 42 {
		t.Errorf("Should not have altered the stored listing via a snapshot")
	}
	if stored.Stake().Cmp(big.NewInt(100)) != 0 {
		t.Errorf("Should not have altered the stored stake via a snapshot")
	}
}

func TestVoteCRUD(t *testing.T) {
	persister := persistence.NewInMemoryPersister()
	voter1 := testAddress(t)
	voter2 := testAddress(t)

	_, err := persister.VoteByListingAndVoter("test_listing", voter1)
	if err != cpersist.ErrPersisterNoResults {
		t.Errorf("Should have returned ErrPersisterNoResults: err: %v", err)
	}

	vote1 := model.NewVote("test_listing", voter1, true, 1257894000)
	vote2 := model.NewVote("test_listing", voter2, false, 1257894001)
	err = persister.CreateVote(vote1)
	if err != nil {
		t.Fatalf("Should not have failed creating the vote: err: %v", err)
	}
	err = persister.CreateVote(vote2)
	if err != nil {
		t.Fatalf("Should not have failed creating the vote: err: %v", err)
	}
	err = persister.CreateVote(model.NewVote("test_listing", voter1, false, 1257894002))
	if err == nil {
		t.Errorf("Should have failed creating a second vote for the same voter")
	}

	retrieved, err := persister.VoteByListingAndVoter("test_listing", voter1)
	if err != nil {
		t.Fatalf("Should have retrieved the vote: err: %v", err)
	}
	if !retrieved.InSupport() {
		t.Errorf("Should have kept the original in support flag")
	}

	votes, err := persister.VotesByListing("test_listing")
	if err != nil {
		t.Fatalf("Should not have failed retrieving votes: err: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("Should have returned 2 votes: got %v", len(votes))
	}
	// Roster order is cast order
	if votes[0].Voter() != voter1 || votes[1].Voter() != voter2 {
		t.Errorf("Should have returned votes in the order they were cast")
	}

	err = persister.DeleteVote(vote1)
	if err != nil {
		t.Fatalf("Should not have failed deleting the vote: err: %v", err)
	}
	_, err = persister.VoteByListingAndVoter("test_listing", voter1)
	if err != cpersist.ErrPersisterNoResults {
		t.Errorf("Should have removed the vote: err: %v", err)
	}
	err = persister.DeleteVote(vote1)
	if err != cpersist.ErrPersisterNoResults {
		t.Errorf("Should have failed deleting a missing vote: err: %v", err)
	}

	err = persister.DeleteVotesByListing("test_listing")
	if err != nil {
		t.Fatalf("Should not have failed deleting votes: err: %v", err)
	}
	votes, _ = persister.VotesByListing("test_listing")
	if len(votes) != 0 {
		t.Errorf("Should have removed all votes for the listing: got %v", len(votes))
	}
}

func TestRegistryEventStore(t *testing.T) {
	persister := persistence.NewInMemoryPersister()
	sender := testAddress(t)

	events, err := persister.RegistryEventsByListing("test_listing")
	if err != nil {
		t.Fatalf("Should not have failed retrieving events: err: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Should have returned no events: got %v", len(events))
	}

	event1 := model.NewRegistryEvent("test_listing", sender,
		model.Metadata{"Deposit": "100"}, model.RegistryEventApplication, 1257894000)
	event2 := model.NewRegistryEvent("test_listing", sender,
		model.Metadata{}, model.RegistryEventChallenge, 1257894010)
	err = persister.CreateRegistryEvent(event1)
	if err != nil {
		t.Fatalf("Should not have failed creating the event: err: %v", err)
	}
	err = persister.CreateRegistryEvent(event2)
	if err != nil {
		t.Fatalf("Should not have failed creating the event: err: %v", err)
	}

	events, err = persister.RegistryEventsByListing("test_listing")
	if err != nil {
		t.Fatalf("Should not have failed retrieving events: err: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Should have returned 2 events: got %v", len(events))
	}
	if events[0].RegistryEventType() != model.RegistryEventApplication {
		t.Errorf("Should have returned events in the order they occurred")
	}
	if events[1].RegistryEventType() != model.RegistryEventChallenge {
		t.Errorf("Should have returned events in the order they occurred")
	}
}
