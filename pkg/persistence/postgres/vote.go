package postgres // import "github.com/joincivil/token-registry/pkg/persistence/postgres"

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/joincivil/token-registry/pkg/model"
)

// VoteSchema returns the query to create the vote table
func VoteSchema() string {
	return VoteSchemaString("vote")
}

// VoteSchemaString returns the query to create this table.  The serial id
// preserves the order votes were cast in, which is the roster order used at
// settlement.
func VoteSchemaString(tableName string) string {
	schema := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s(
            id SERIAL PRIMARY KEY,
            listing_name TEXT,
            voter_address TEXT,
            in_support BOOL,
            creation_timestamp BIGINT,
            UNIQUE (listing_name, voter_address)
        );
    `, tableName)
	return schema
}

// Vote is the model definition for the vote table
type Vote struct {
	ListingName string `db:"listing_name"`

	VoterAddress string `db:"voter_address"`

	InSupport bool `db:"in_support"`

	CreationDateTs int64 `db:"creation_timestamp"`
}

// NewVote constructs a vote for DB from a model.Vote
func NewVote(vote *model.Vote) *Vote {
	return &Vote{
		ListingName:    vote.ListingName(),
		VoterAddress:   vote.Voter().Hex(),
		InSupport:      vote.InSupport(),
		CreationDateTs: vote.CreationDateTs(),
	}
}

// DbToVoteData creates a model.Vote from a postgres Vote
func (v *Vote) DbToVoteData() *model.Vote {
	return model.NewVote(
		v.ListingName,
		common.HexToAddress(v.VoterAddress),
		v.InSupport,
		v.CreationDateTs,
	)
}
