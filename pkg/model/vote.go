package model // import "github.com/joincivil/token-registry/pkg/model"

import (
	"github.com/ethereum/go-ethereum/common"
)

// NewVote is a convenience function to init a new Vote struct
func NewVote(listingName string, voter common.Address, inSupport bool,
	creationDateTs int64) *Vote {
	return &Vote{
		listingName:    listingName,
		voter:          voter,
		inSupport:      inSupport,
		creationDateTs: creationDateTs,
	}
}

// Vote represents a single vote cast on a listing.  Each voter address casts
// at most one vote per listing; the creation timestamps preserve the order in
// which votes arrived so reward settlement can replay the roster.
type Vote struct {
	listingName string

	voter common.Address

	inSupport bool

	creationDateTs int64
}

// ListingName returns the name of the listing this vote was cast on
func (v *Vote) ListingName() string {
	return v.listingName
}

// Voter returns the address that cast this vote
func (v *Vote) Voter() common.Address {
	return v.voter
}

// InSupport returns true if this vote backed admission of the listing
func (v *Vote) InSupport() bool {
	return v.inSupport
}

// CreationDateTs is the timestamp this vote was recorded
func (v *Vote) CreationDateTs() int64 {
	return v.creationDateTs
}

// Clone returns a copy of this vote
func (v *Vote) Clone() *Vote {
	return &Vote{
		listingName:    v.listingName,
		voter:          v.voter,
		inSupport:      v.inSupport,
		creationDateTs: v.creationDateTs,
	}
}
