package model // import "github.com/joincivil/token-registry/pkg/model"

import (
	"github.com/ethereum/go-ethereum/common"
)

// Registry event types emitted by the engine.
const (
	// RegistryEventApplication is emitted when a new listing applies
	RegistryEventApplication = "Application"

	// RegistryEventChallenge is emitted when a listing is challenged
	RegistryEventChallenge = "Challenge"

	// RegistryEventVote is emitted when a vote is cast on a listing
	RegistryEventVote = "Vote"

	// RegistryEventApplicationWhitelisted is emitted when a listing wins
	// its vote and lands on the registry
	RegistryEventApplicationWhitelisted = "ApplicationWhitelisted"

	// RegistryEventApplicationRemoved is emitted when a listing loses its
	// vote and is removed.  This is the durable record of a rejection since
	// the listing row itself is deleted.
	RegistryEventApplicationRemoved = "ApplicationRemoved"

	// RegistryEventRewardDistributed is emitted once per support voter paid
	// out during settlement
	RegistryEventRewardDistributed = "RewardDistributed"
)

// Metadata represents any metadata associated with a registry event
type Metadata map[string]interface{}

// NewRegistryEvent is a convenience function to init a new RegistryEvent
// struct
func NewRegistryEvent(listingName string, senderAddr common.Address,
	metadata Metadata, eventType string, creationDateTs int64) *RegistryEvent {
	return &RegistryEvent{
		listingName:       listingName,
		senderAddress:     senderAddr,
		metadata:          metadata,
		registryEventType: eventType,
		creationDateTs:    creationDateTs,
	}
}

// RegistryEvent represents a single governance action taken on a listing.
// Meant to be a central log of these events for audit and for off-chain
// indexers.
type RegistryEvent struct {
	listingName string

	senderAddress common.Address

	metadata Metadata

	registryEventType string

	creationDateTs int64
}

// ListingName returns the listing name associated with this event
func (r *RegistryEvent) ListingName() string {
	return r.listingName
}

// SenderAddress returns the address that initiated this event
func (r *RegistryEvent) SenderAddress() common.Address {
	return r.senderAddress
}

// Metadata returns the Metadata associated with the event
func (r *RegistryEvent) Metadata() Metadata {
	return r.metadata
}

// RegistryEventType returns the type of this event
func (r *RegistryEvent) RegistryEventType() string {
	return r.registryEventType
}

// CreationDateTs is the timestamp of creation for this event
func (r *RegistryEvent) CreationDateTs() int64 {
	return r.creationDateTs
}
