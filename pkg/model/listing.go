// Package model contains the general data models and interfaces for the registry engine.
package model // import "github.com/joincivil/token-registry/pkg/model"

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// NewListingParams contains the fields needed to create a new Listing.
type NewListingParams struct {
	Name              string
	Applicant         common.Address
	Stake             *big.Int
	Whitelisted       bool
	VoteCount         uint64
	ChallengeCount    uint64
	ApplicationDateTs int64
	LastUpdatedDateTs int64
}

// NewListing is a convenience function to init a new Listing struct
func NewListing(params *NewListingParams) *Listing {
	return &Listing{
		name:              params.Name,
		applicant:         params.Applicant,
		stake:             params.Stake,
		whitelisted:       params.Whitelisted,
		voteCount:         params.VoteCount,
		challengeCount:    params.ChallengeCount,
		applicationDateTs: params.ApplicationDateTs,
		lastUpdatedDateTs: params.LastUpdatedDateTs,
	}
}

// Listing represents a named item applying for a spot on the registry.
// The stake is an accounting value used in reward math, not a segregated
// escrow; the actual tokens sit in the engine's pooled ledger balance.
type Listing struct {
	name string

	applicant common.Address

	stake *big.Int

	whitelisted bool

	voteCount uint64

	challengeCount uint64

	applicationDateTs int64

	lastUpdatedDateTs int64
}

// Name returns the unique name the applicant chose for this listing
func (l *Listing) Name() string {
	return l.name
}

// Applicant returns the address of the party who staked for this listing
func (l *Listing) Applicant() common.Address {
	return l.applicant
}

// Stake returns the token amount committed at application time
func (l *Listing) Stake() *big.Int {
	return l.stake
}

// Whitelisted returns a bool to indicate if the listing won its vote
// and is on the registry
func (l *Listing) Whitelisted() bool {
	return l.whitelisted
}

// SetWhitelisted sets the value of whitelisted field
func (l *Listing) SetWhitelisted(whitelisted bool) {
	l.whitelisted = whitelisted
}

// VoteCount returns the number of votes cast in support of the listing
func (l *Listing) VoteCount() uint64 {
	return l.voteCount
}

// SetVoteCount sets the number of support votes
func (l *Listing) SetVoteCount(count uint64) {
	l.voteCount = count
}

// ChallengeCount returns the number of votes and challenges cast against
// the listing
func (l *Listing) ChallengeCount() uint64 {
	return l.challengeCount
}

// SetChallengeCount sets the number of opposing votes and challenges
func (l *Listing) SetChallengeCount(count uint64) {
	l.challengeCount = count
}

// ApplicationDateTs returns the timestamp of the listing's initial application
func (l *Listing) ApplicationDateTs() int64 {
	return l.applicationDateTs
}

// LastUpdatedDateTs returns the timestamp of the last update to the listing
func (l *Listing) LastUpdatedDateTs() int64 {
	return l.lastUpdatedDateTs
}

// SetLastUpdatedDateTs sets the value of the last updated timestamp
func (l *Listing) SetLastUpdatedDateTs(date int64) {
	l.lastUpdatedDateTs = date
}

// Clone returns a copy of this listing. Reads hand out clones so callers
// never share the engine's mutable state.
func (l *Listing) Clone() *Listing {
	stake := new(big.Int)
	if l.stake != nil {
		stake.Set(l.stake)
	}
	return &Listing{
		name:              l.name,
		applicant:         l.applicant,
		stake:             stake,
		whitelisted:       l.whitelisted,
		voteCount:         l.voteCount,
		challengeCount:    l.challengeCount,
		applicationDateTs: l.applicationDateTs,
		lastUpdatedDateTs: l.lastUpdatedDateTs,
	}
}
