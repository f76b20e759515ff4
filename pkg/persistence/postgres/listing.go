// Package postgres contains the table models for the postgres persister.
package postgres // import "github.com/joincivil/token-registry/pkg/persistence/postgres"

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/joincivil/token-registry/pkg/model"
)

// ListingSchema returns the query to create the listing table
func ListingSchema() string {
	return ListingSchemaString("listing")
}

// ListingSchemaString returns the query to create this table
func ListingSchemaString(tableName string) string {
	schema := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s(
            id SERIAL PRIMARY KEY,
            name TEXT UNIQUE,
            applicant_address TEXT,
            stake TEXT,
            whitelisted BOOL,
            vote_count BIGINT,
            challenge_count BIGINT,
            application_timestamp BIGINT,
            last_updated_timestamp BIGINT
        );
    `, tableName)
	return schema
}

// Listing is the model definition for the listing table.
// NOTE: stake is stored as a base-10 string since token amounts can exceed
// the postgres bigint range.
type Listing struct {
	Name string `db:"name"`

	ApplicantAddress string `db:"applicant_address"`

	Stake string `db:"stake"`

	Whitelisted bool `db:"whitelisted"`

	VoteCount uint64 `db:"vote_count"`

	ChallengeCount uint64 `db:"challenge_count"`

	ApplicationDateTs int64 `db:"application_timestamp"`

	LastUpdatedDateTs int64 `db:"last_updated_timestamp"`
}

// NewListing constructs a listing for DB from a model.Listing
func NewListing(listing *model.Listing) *Listing {
	return &Listing{
		Name:              listing.Name(),
		ApplicantAddress:  listing.Applicant().Hex(),
		Stake:             listing.Stake().String(),
		Whitelisted:       listing.Whitelisted(),
		VoteCount:         listing.VoteCount(),
		ChallengeCount:    listing.ChallengeCount(),
		ApplicationDateTs: listing.ApplicationDateTs(),
		LastUpdatedDateTs: listing.LastUpdatedDateTs(),
	}
}

// DbToListingData creates a model.Listing from a postgres Listing
func (l *Listing) DbToListingData() *model.Listing {
	stake := new(big.Int)
	stake.SetString(l.Stake, 10)
	return model.NewListing(&model.NewListingParams{
		Name:              l.Name,
		Applicant:         common.HexToAddress(l.ApplicantAddress),
		Stake:             stake,
		Whitelisted:       l.Whitelisted,
		VoteCount:         l.VoteCount,
		ChallengeCount:    l.ChallengeCount,
		ApplicationDateTs: l.ApplicationDateTs,
		LastUpdatedDateTs: l.LastUpdatedDateTs,
	})
}
