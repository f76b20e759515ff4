package model // import "github.com/joincivil/token-registry/pkg/model"

import (
	"github.com/ethereum/go-ethereum/common"
)

// ListingPersister is the interface to store the listings under the engine's
// control.  Lookups for names with no listing return
// cpersist.ErrPersisterNoResults from go-common.
type ListingPersister interface {
	// ListingByName retrieves a listing based on its unique name
	ListingByName(name string) (*Listing, error)
	// Listings returns all current listings
	Listings() ([]*Listing, error)
	// CreateListing creates a new listing
	CreateListing(listing *Listing) error
	// UpdateListing updates fields on an existing listing
	UpdateListing(listing *Listing) error
	// DeleteListing removes a listing
	DeleteListing(listing *Listing) error
}

// VotePersister is the interface to store votes cast on listings.  The
// roster returned by VotesByListing preserves the order votes were cast in,
// which settlement relies on.
type VotePersister interface {
	// VoteByListingAndVoter retrieves the vote a voter cast on a listing
	VoteByListingAndVoter(listingName string, voter common.Address) (*Vote, error)
	// VotesByListing returns all votes on a listing in the order cast
	VotesByListing(listingName string) ([]*Vote, error)
	// CreateVote records a new vote
	CreateVote(vote *Vote) error
	// DeleteVote removes a single vote
	DeleteVote(vote *Vote) error
	// DeleteVotesByListing removes all votes for a listing
	DeleteVotesByListing(listingName string) error
}

// RegistryEventPersister is the interface to store the audit log of registry
// events
type RegistryEventPersister interface {
	// RegistryEventsByListing retrieves events for a listing name in the
	// order they occurred
	RegistryEventsByListing(listingName string) ([]*RegistryEvent, error)
	// CreateRegistryEvent creates a new registry event
	CreateRegistryEvent(event *RegistryEvent) error
}

// RegistryPersister is the composite interface a single store implements to
// back the whole engine
type RegistryPersister interface {
	ListingPersister
	VotePersister
	RegistryEventPersister
}
