package persistence // import "github.com/joincivil/token-registry/pkg/persistence"

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jmoiron/sqlx"
	// driver for postgresql
	_ "github.com/lib/pq"

	cpersist "github.com/joincivil/go-common/pkg/persistence"

	"github.com/joincivil/token-registry/pkg/model"
	"github.com/joincivil/token-registry/pkg/persistence/postgres"
)

const (
	listingTableName       = "listing"
	voteTableName          = "vote"
	registryEventTableName = "registry_event"
)

// NewPostgresPersister creates a new postgres persister
func NewPostgresPersister(host string, port int, user string, password string,
	dbname string) (*PostgresPersister, error) {
	pgPersister := &PostgresPersister{}
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
	db, err := sqlx.Connect("postgres", psqlInfo)
	if err != nil {
		return pgPersister, fmt.Errorf("Error connecting to sqlx: %v", err)
	}
	pgPersister.db = db
	return pgPersister, nil
}

// NewPostgresPersisterFromSqlx creates a new postgres persister from an
// initialized sqlx.DB
func NewPostgresPersisterFromSqlx(db *sqlx.DB) *PostgresPersister {
	return &PostgresPersister{db: db}
}

// PostgresPersister mirrors the engine's state into postgres so off-chain
// consumers can query listings, votes and the event audit log.
type PostgresPersister struct {
	db *sqlx.DB
}

// CreateTables creates the tables for the registry if they don't exist
func (p *PostgresPersister) CreateTables() error {
	_, err := p.db.Exec(postgres.ListingSchema())
	if err != nil {
		return fmt.Errorf("Error creating listing table in postgres: %v", err)
	}
	_, err = p.db.Exec(postgres.VoteSchema())
	if err != nil {
		return fmt.Errorf("Error creating vote table in postgres: %v", err)
	}
	_, err = p.db.Exec(postgres.RegistryEventSchema())
	if err != nil {
		return fmt.Errorf("Error creating registry_event table in postgres: %v", err)
	}
	return nil
}

// ListingByName retrieves a listing based on its unique name
func (p *PostgresPersister) ListingByName(name string) (*model.Listing, error) {
	return p.listingFromTableByName(listingTableName, name)
}

// Listings returns all current listings
func (p *PostgresPersister) Listings() ([]*model.Listing, error) {
	return p.listingsFromTable(listingTableName)
}

// CreateListing creates a new listing
func (p *PostgresPersister) CreateListing(listing *model.Listing) error {
	return p.createListingInTable(listingTableName, listing)
}

// UpdateListing updates fields on an existing listing
func (p *PostgresPersister) UpdateListing(listing *model.Listing) error {
	return p.updateListingInTable(listingTableName, listing)
}

// DeleteListing removes a listing
func (p *PostgresPersister) DeleteListing(listing *model.Listing) error {
	return p.deleteListingFromTable(listingTableName, listing)
}

// VoteByListingAndVoter retrieves the vote a voter cast on a listing
func (p *PostgresPersister) VoteByListingAndVoter(listingName string,
	voter common.Address) (*model.Vote, error) {
	return p.voteFromTable(voteTableName, listingName, voter)
}

// VotesByListing returns all votes on a listing in the order cast
func (p *PostgresPersister) VotesByListing(listingName string) ([]*model.Vote, error) {
	return p.votesFromTable(voteTableName, listingName)
}

// CreateVote records a new vote
func (p *PostgresPersister) CreateVote(vote *model.Vote) error {
	return p.createVoteInTable(voteTableName, vote)
}

// DeleteVote removes a single vote
func (p *PostgresPersister) DeleteVote(vote *model.Vote) error {
	queryString := fmt.Sprintf( // nolint: gosec
		"DELETE FROM %s WHERE listing_name=$1 AND voter_address=$2;", voteTableName)
	_, err := p.db.Exec(queryString, vote.ListingName(), vote.Voter().Hex())
	if err != nil {
		return fmt.Errorf("Error deleting vote from table: %v", err)
	}
	return nil
}

// DeleteVotesByListing removes all votes for a listing
func (p *PostgresPersister) DeleteVotesByListing(listingName string) error {
	queryString := fmt.Sprintf("DELETE FROM %s WHERE listing_name=$1;", voteTableName) // nolint: gosec
	_, err := p.db.Exec(queryString, listingName)
	if err != nil {
		return fmt.Errorf("Error deleting votes from table: %v", err)
	}
	return nil
}

// RegistryEventsByListing retrieves events for a listing name in the order
// they occurred
func (p *PostgresPersister) RegistryEventsByListing(listingName string) (
	[]*model.RegistryEvent, error) {
	queryString := fmt.Sprintf( // nolint: gosec
		"SELECT listing_name, sender_address, metadata, registry_event_type, "+
			"creation_timestamp FROM %s WHERE listing_name=$1 ORDER BY id;",
		registryEventTableName)
	dbEvents := []postgres.RegistryEvent{}
	err := p.db.Select(&dbEvents, queryString, listingName)
	if err != nil {
		return nil, fmt.Errorf("Error retrieving registry events from table: %v", err)
	}
	events := make([]*model.RegistryEvent, len(dbEvents))
	for index, dbEvent := range dbEvents {
		event, convErr := dbEvent.DbToRegistryEventData()
		if convErr != nil {
			return nil, convErr
		}
		events[index] = event
	}
	return events, nil
}

// CreateRegistryEvent creates a new registry event
func (p *PostgresPersister) CreateRegistryEvent(event *model.RegistryEvent) error {
	queryString := fmt.Sprintf( // nolint: gosec
		"INSERT INTO %s (listing_name, sender_address, metadata, registry_event_type, "+
			"creation_timestamp) VALUES (:listing_name, :sender_address, :metadata, "+
			":registry_event_type, :creation_timestamp);", registryEventTableName)
	dbEvent, err := postgres.NewRegistryEvent(event)
	if err != nil {
		return err
	}
	_, err = p.db.NamedExec(queryString, dbEvent)
	if err != nil {
		return fmt.Errorf("Error saving registry event to table: %v", err)
	}
	return nil
}

func (p *PostgresPersister) listingFromTableByName(tableName string, name string) (
	*model.Listing, error) {
	queryString := fmt.Sprintf( // nolint: gosec
		"SELECT name, applicant_address, stake, whitelisted, vote_count, challenge_count, "+
			"application_timestamp, last_updated_timestamp FROM %s WHERE name=$1;", tableName)
	dbListing := postgres.Listing{}
	err := p.db.Get(&dbListing, queryString, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cpersist.ErrPersisterNoResults
		}
		return nil, fmt.Errorf("Error retrieving listing from table: %v", err)
	}
	return dbListing.DbToListingData(), nil
}

func (p *PostgresPersister) listingsFromTable(tableName string) ([]*model.Listing, error) {
	queryString := fmt.Sprintf( // nolint: gosec
		"SELECT name, applicant_address, stake, whitelisted, vote_count, challenge_count, "+
			"application_timestamp, last_updated_timestamp FROM %s ORDER BY id;", tableName)
	dbListings := []postgres.Listing{}
	err := p.db.Select(&dbListings, queryString)
	if err != nil {
		return nil, fmt.Errorf("Error retrieving listings from table: %v", err)
	}
	listings := make([]*model.Listing, len(dbListings))
	for index, dbListing := range dbListings {
		dbListing := dbListing
		listings[index] = dbListing.DbToListingData()
	}
	return listings, nil
}

func (p *PostgresPersister) createListingInTable(tableName string,
	listing *model.Listing) error {
	queryString := fmt.Sprintf( // nolint: gosec
		"INSERT INTO %s (name, applicant_address, stake, whitelisted, vote_count, "+
			"challenge_count, application_timestamp, last_updated_timestamp) VALUES "+
			"(:name, :applicant_address, :stake, :whitelisted, :vote_count, "+
			":challenge_count, :application_timestamp, :last_updated_timestamp);", tableName)
	dbListing := postgres.NewListing(listing)
	_, err := p.db.NamedExec(queryString, dbListing)
	if err != nil {
		return fmt.Errorf("Error saving listing to table: %v", err)
	}
	return nil
}

func (p *PostgresPersister) updateListingInTable(tableName string,
	listing *model.Listing) error {
	queryString := fmt.Sprintf( // nolint: gosec
		"UPDATE %s SET whitelisted=:whitelisted, vote_count=:vote_count, "+
			"challenge_count=:challenge_count, last_updated_timestamp=:last_updated_timestamp "+
			"WHERE name=:name;", tableName)
	dbListing := postgres.NewListing(listing)
	_, err := p.db.NamedExec(queryString, dbListing)
	if err != nil {
		return fmt.Errorf("Error updating listing in table: %v", err)
	}
	return nil
}

func (p *PostgresPersister) deleteListingFromTable(tableName string,
	listing *model.Listing) error {
	queryString := fmt.Sprintf("DELETE FROM %s WHERE name=$1;", tableName) // nolint: gosec
	_, err := p.db.Exec(queryString, listing.Name())
	if err != nil {
		return fmt.Errorf("Error deleting listing from table: %v", err)
	}
	return nil
}

func (p *PostgresPersister) voteFromTable(tableName string, listingName string,
	voter common.Address) (*model.Vote, error) {
	queryString := fmt.Sprintf( // nolint: gosec
		"SELECT listing_name, voter_address, in_support, creation_timestamp FROM %s "+
			"WHERE listing_name=$1 AND voter_address=$2;", tableName)
	dbVote := postgres.Vote{}
	err := p.db.Get(&dbVote, queryString, listingName, voter.Hex())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cpersist.ErrPersisterNoResults
		}
		return nil, fmt.Errorf("Error retrieving vote from table: %v", err)
	}
	return dbVote.DbToVoteData(), nil
}

func (p *PostgresPersister) votesFromTable(tableName string, listingName string) (
	[]*model.Vote, error) {
	queryString := fmt.Sprintf( // nolint: gosec
		"SELECT listing_name, voter_address, in_support, creation_timestamp FROM %s "+
			"WHERE listing_name=$1 ORDER BY id;", tableName)
	dbVotes := []postgres.Vote{}
	err := p.db.Select(&dbVotes, queryString, listingName)
	if err != nil {
		return nil, fmt.Errorf("Error retrieving votes from table: %v", err)
	}
	votes := make([]*model.Vote, len(dbVotes))
	for index, dbVote := range dbVotes {
		dbVote := dbVote
		votes[index] = dbVote.DbToVoteData()
	}
	return votes, nil
}

func (p *PostgresPersister) createVoteInTable(tableName string, vote *model.Vote) error {
	queryString := fmt.Sprintf( // nolint: gosec
		"INSERT INTO %s (listing_name, voter_address, in_support, creation_timestamp) "+
			"VALUES (:listing_name, :voter_address, :in_support, :creation_timestamp);",
		tableName)
	dbVote := postgres.NewVote(vote)
	_, err := p.db.NamedExec(queryString, dbVote)
	if err != nil {
		return fmt.Errorf("Error saving vote to table: %v", err)
	}
	return nil
}
