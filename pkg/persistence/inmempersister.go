// Package persistence contains components to store engine state, in process
// memory or in the DB.
package persistence // import "github.com/joincivil/token-registry/pkg/persistence"

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	cpersist "github.com/joincivil/go-common/pkg/persistence"

	"github.com/joincivil/token-registry/pkg/model"
)

// NewInMemoryPersister creates an empty InMemoryPersister
func NewInMemoryPersister() *InMemoryPersister {
	return &InMemoryPersister{
		listings: map[string]*model.Listing{},
		votes:    map[string][]*model.Vote{},
		events:   map[string][]*model.RegistryEvent{},
	}
}

// InMemoryPersister is the engine's owned store when it is embedded directly
// in a host process.  All reads hand out copies, so callers always see a
// snapshot consistent with the last completed write.  Vote slices preserve
// insertion order, which is the roster order settlement replays.
type InMemoryPersister struct {
	listings map[string]*model.Listing
	votes    map[string][]*model.Vote
	events   map[string][]*model.RegistryEvent
}

// ListingByName retrieves a listing based on its unique name
func (p *InMemoryPersister) ListingByName(name string) (*model.Listing, error) {
	listing, ok := p.listings[name]
	if !ok {
		return nil, cpersist.ErrPersisterNoResults
	}
	return listing.Clone(), nil
}

// Listings returns all current listings
func (p *InMemoryPersister) Listings() ([]*model.Listing, error) {
	listings := make([]*model.Listing, 0, len(p.listings))
	for _, listing := range p.listings {
		listings = append(listings, listing.Clone())
	}
	return listings, nil
}

// CreateListing creates a new listing
func (p *InMemoryPersister) CreateListing(listing *model.Listing) error {
	_, ok := p.listings[listing.Name()]
	if ok {
		return fmt.Errorf("Listing already exists: %v", listing.Name())
	}
	p.listings[listing.Name()] = listing.Clone()
	return nil
}

// UpdateListing updates fields on an existing listing
func (p *InMemoryPersister) UpdateListing(listing *model.Listing) error {
	_, ok := p.listings[listing.Name()]
	if !ok {
		return cpersist.ErrPersisterNoResults
	}
	p.listings[listing.Name()] = listing.Clone()
	return nil
}

// DeleteListing removes a listing
func (p *InMemoryPersister) DeleteListing(listing *model.Listing) error {
	_, ok := p.listings[listing.Name()]
	if !ok {
		return cpersist.ErrPersisterNoResults
	}
	delete(p.listings, listing.Name())
	return nil
}

// VoteByListingAndVoter retrieves the vote a voter cast on a listing
func (p *InMemoryPersister) VoteByListingAndVoter(listingName string,
	voter common.Address) (*model.Vote, error) {
	for _, vote := range p.votes[listingName] {
		if vote.Voter() == voter {
			return vote.Clone(), nil
		}
	}
	return nil, cpersist.ErrPersisterNoResults
}

// VotesByListing returns all votes on a listing in the order cast
func (p *InMemoryPersister) VotesByListing(listingName string) ([]*model.Vote, error) {
	votes := make([]*model.Vote, 0, len(p.votes[listingName]))
	for _, vote := range p.votes[listingName] {
		votes = append(votes, vote.Clone())
	}
	return votes, nil
}

// CreateVote records a new vote
func (p *InMemoryPersister) CreateVote(vote *model.Vote) error {
	for _, existing := range p.votes[vote.ListingName()] {
		if existing.Voter() == vote.Voter() {
			return fmt.Errorf("Vote already exists: %v on %v", vote.Voter().Hex(),
				vote.ListingName())
		}
	}
	p.votes[vote.ListingName()] = append(p.votes[vote.ListingName()], vote.Clone())
	return nil
}

// DeleteVote removes a single vote
func (p *InMemoryPersister) DeleteVote(vote *model.Vote) error {
	votes := p.votes[vote.ListingName()]
	for i, existing := range votes {
		if existing.Voter() == vote.Voter() {
			p.votes[vote.ListingName()] = append(votes[:i], votes[i+1:]...)
			return nil
		}
	}
	return cpersist.ErrPersisterNoResults
}

// DeleteVotesByListing removes all votes for a listing
func (p *InMemoryPersister) DeleteVotesByListing(listingName string) error {
	delete(p.votes, listingName)
	return nil
}

// RegistryEventsByListing retrieves events for a listing name in the order
// they occurred
func (p *InMemoryPersister) RegistryEventsByListing(listingName string) (
	[]*model.RegistryEvent, error) {
	events := make([]*model.RegistryEvent, 0, len(p.events[listingName]))
	events = append(events, p.events[listingName]...)
	return events, nil
}

// CreateRegistryEvent creates a new registry event
func (p *InMemoryPersister) CreateRegistryEvent(event *model.RegistryEvent) error {
	p.events[event.ListingName()] = append(p.events[event.ListingName()], event)
	return nil
}
