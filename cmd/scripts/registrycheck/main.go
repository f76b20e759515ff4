package main

// This script checks a listing in the registry datastore.  It dumps the
// listing row, the vote roster in the order votes were cast, the audit
// events, and projects the reward each support voter would receive if the
// listing were finalized as accepted right now.

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/joincivil/go-common/pkg/numbers"

	"github.com/joincivil/token-registry/pkg/helpers"
	"github.com/joincivil/token-registry/pkg/model"
	"github.com/joincivil/token-registry/pkg/utils"
)

func listingName() (string, error) {
	if len(flag.Args()) < 1 {
		return "", fmt.Errorf("Listing name required as the first argument")
	}
	return flag.Arg(0), nil
}

func dumpListing(listing *model.Listing) {
	fmt.Printf("listing: %v\n", listing.Name())
	fmt.Printf("  applicant:       %v\n", listing.Applicant().Hex())
	fmt.Printf("  stake:           %v\n", listing.Stake())
	fmt.Printf("  whitelisted:     %v\n", listing.Whitelisted())
	fmt.Printf("  vote count:      %v\n", listing.VoteCount())
	fmt.Printf("  challenge count: %v\n", listing.ChallengeCount())
	fmt.Printf("  applied at:      %v\n", utils.SecsToTime(listing.ApplicationDateTs()))
}

func dumpVotes(votes []*model.Vote) {
	fmt.Printf("votes: %v\n", len(votes))
	for _, vote := range votes {
		fmt.Printf("  %v: inSupport: %v, cast at: %v\n", vote.Voter().Hex(),
			vote.InSupport(), utils.SecsToTime(vote.CreationDateTs()))
	}
}

func dumpEvents(events []*model.RegistryEvent) {
	fmt.Printf("events: %v\n", len(events))
	for _, event := range events {
		fmt.Printf("  %v at %v: %v\n", event.RegistryEventType(),
			utils.SecsToTime(event.CreationDateTs()), event.Metadata())
	}
}

func dumpRewardProjection(config *utils.RegistryConfig, listing *model.Listing) {
	if listing.VoteCount() == 0 {
		fmt.Printf("reward projection: no support votes, nothing to distribute\n")
		return
	}
	rewardAmount := new(big.Int).Mul(listing.Stake(), big.NewInt(config.RewardPercentage))
	rewardAmount.Div(rewardAmount, big.NewInt(100))
	rewardPerVoter := new(big.Int).Div(rewardAmount,
		new(big.Int).SetUint64(listing.VoteCount()))
	fmt.Printf("reward projection: pool %v, per voter %v (%v)\n", rewardAmount,
		rewardPerVoter, numbers.BigIntToFloat64(rewardPerVoter))
}

func main() {
	config := &utils.RegistryConfig{}
	flag.Usage = func() {
		config.OutputUsage()
		os.Exit(0)
	}
	flag.Parse()

	err := config.PopulateFromEnv()
	if err != nil {
		config.OutputUsage()
		fmt.Printf("Invalid registry config: err: %v\n", err)
		os.Exit(2)
	}

	name, err := listingName()
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(2)
	}

	persister, err := helpers.RegistryPersister(config)
	if err != nil {
		fmt.Printf("Error initializing persister: err: %v\n", err)
		os.Exit(2)
	}

	listing, err := persister.ListingByName(name)
	if err != nil {
		fmt.Printf("Error retrieving listing %v: err: %v\n", name, err)
		os.Exit(1)
	}
	votes, err := persister.VotesByListing(name)
	if err != nil {
		fmt.Printf("Error retrieving votes for %v: err: %v\n", name, err)
		os.Exit(1)
	}
	events, err := persister.RegistryEventsByListing(name)
	if err != nil {
		fmt.Printf("Error retrieving events for %v: err: %v\n", name, err)
		os.Exit(1)
	}

	dumpListing(listing)
	dumpVotes(votes)
	dumpEvents(events)
	dumpRewardProjection(config, listing)
}
