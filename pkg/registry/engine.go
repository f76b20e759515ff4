// Package registry contains the registry engine: the listing lifecycle state
// machine, the vote tally and the reward settlement run at finalization.
package registry // import "github.com/joincivil/token-registry/pkg/registry"

import (
	"fmt"
	"math/big"

	log "github.com/golang/glog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	cpersist "github.com/joincivil/go-common/pkg/persistence"
	ctime "github.com/joincivil/go-common/pkg/time"

	"github.com/joincivil/token-registry/pkg/events"
	"github.com/joincivil/token-registry/pkg/ledger"
	"github.com/joincivil/token-registry/pkg/model"
)

// NewEngineParams contains the fields needed to construct a new Engine.
// Stake amount, voting duration and reward percentage are fixed for the
// life of the engine.
type NewEngineParams struct {
	TokenLedger      ledger.TokenLedger
	ListingPersister model.ListingPersister
	VotePersister    model.VotePersister
	Emitter          events.Emitter

	// ApplicationStake is the token amount debited from every applicant
	ApplicationStake *big.Int

	// VotingDurationSecs is the length of the voting window in seconds
	VotingDurationSecs int64

	// RewardPercentage is the whole-number percentage of the stake skimmed
	// into the reward pool on acceptance, 0-100
	RewardPercentage int64

	// NowFunc overrides the clock used for window checks.  Defaults to
	// epoch seconds via go-common.
	NowFunc func() int64
}

// NewEngine is a convenience function to init an Engine, validating the
// fixed configuration
func NewEngine(params *NewEngineParams) (*Engine, error) {
	if params.TokenLedger == nil {
		return nil, fmt.Errorf("Engine requires a token ledger")
	}
	if params.ListingPersister == nil || params.VotePersister == nil {
		return nil, fmt.Errorf("Engine requires listing and vote persisters")
	}
	if params.ApplicationStake == nil || params.ApplicationStake.Sign() <= 0 {
		return nil, fmt.Errorf("Invalid application stake: %v", params.ApplicationStake)
	}
	if params.VotingDurationSecs <= 0 {
		return nil, fmt.Errorf("Invalid voting duration: %v", params.VotingDurationSecs)
	}
	if params.RewardPercentage < 0 || params.RewardPercentage > 100 {
		return nil, fmt.Errorf("Invalid reward percentage: %v", params.RewardPercentage)
	}
	nowFunc := params.NowFunc
	if nowFunc == nil {
		nowFunc = ctime.CurrentEpochSecsInInt64
	}
	emitter := params.Emitter
	if emitter == nil {
		emitter = &events.LogEmitter{}
	}
	return &Engine{
		tokenLedger:        params.TokenLedger,
		listingPersister:   params.ListingPersister,
		votePersister:      params.VotePersister,
		emitter:            emitter,
		applicationStake:   new(big.Int).Set(params.ApplicationStake),
		votingDurationSecs: params.VotingDurationSecs,
		rewardPercentage:   params.RewardPercentage,
		nowFunc:            nowFunc,
		inFlight:           map[string]bool{},
	}, nil
}

// Engine owns all listing and vote state and runs the admission lifecycle:
// apply, challenge, vote, finalize.  The host is expected to execute calls
// serially; the in-flight set below only guards against the token ledger
// calling back into the engine mid-transition.
type Engine struct {
	tokenLedger        ledger.TokenLedger
	listingPersister   model.ListingPersister
	votePersister      model.VotePersister
	emitter            events.Emitter
	applicationStake   *big.Int
	votingDurationSecs int64
	rewardPercentage   int64
	nowFunc            func() int64

	inFlight map[string]bool
}

// Apply creates a pending listing under a currently unused name and debits
// the application stake from the applicant.  If the ledger refuses the
// debit, no listing is left behind.
func (e *Engine) Apply(name string, applicant common.Address) error {
	if err := e.beginTransition(name); err != nil {
		return err
	}
	defer e.endTransition(name)
	log.Infof("Handling Application for %v by %v", name, applicant.Hex())

	_, err := e.listingPersister.ListingByName(name)
	if err == nil {
		return model.ErrDuplicateListing
	}
	if err != cpersist.ErrPersisterNoResults {
		return errors.Wrapf(err, "error checking for existing listing %v", name)
	}

	now := e.nowFunc()
	listing := model.NewListing(&model.NewListingParams{
		Name:              name,
		Applicant:         applicant,
		Stake:             new(big.Int).Set(e.applicationStake),
		ApplicationDateTs: now,
		LastUpdatedDateTs: now,
	})
	err = e.listingPersister.CreateListing(listing)
	if err != nil {
		return errors.Wrapf(err, "error creating listing %v", name)
	}

	// Interactions last: debit after the listing row exists, roll the row
	// back if the ledger refuses.
	err = e.tokenLedger.Debit(applicant, listing.Stake())
	if err != nil {
		delErr := e.listingPersister.DeleteListing(listing)
		if delErr != nil {
			log.Errorf("Error rolling back listing %v: err: %v", name, delErr)
		}
		return errors.Wrap(model.ErrLedgerTransferFailed, err.Error())
	}

	e.emit(name, applicant, model.Metadata{
		"Applicant": applicant.Hex(),
		"Deposit":   listing.Stake().String(),
	}, model.RegistryEventApplication, now)
	return nil
}

// Challenge records an anti-support signal against a pending listing.  A
// challenge increments the challenge count without consuming the caller's
// one-vote-per-listing slot, so the same address may challenge repeatedly.
func (e *Engine) Challenge(name string, challenger common.Address) error {
	if err := e.beginTransition(name); err != nil {
		return err
	}
	defer e.endTransition(name)
	log.Infof("Handling Challenge for %v by %v", name, challenger.Hex())

	listing, err := e.pendingListing(name)
	if err != nil {
		return err
	}
	now := e.nowFunc()
	if e.windowClosed(listing, now) {
		return model.ErrVotingClosed
	}

	listing.SetChallengeCount(listing.ChallengeCount() + 1)
	listing.SetLastUpdatedDateTs(now)
	err = e.listingPersister.UpdateListing(listing)
	if err != nil {
		return errors.Wrapf(err, "error updating listing %v", name)
	}

	e.emit(name, challenger, model.Metadata{
		"Challenger": challenger.Hex(),
	}, model.RegistryEventChallenge, now)
	return nil
}

// Vote records a single vote on a pending listing, once per (listing, voter)
// pair.  Support votes add to the vote count, opposing votes to the
// challenge count; either way the voter takes a roster slot.
func (e *Engine) Vote(name string, voter common.Address, inSupport bool) error {
	if err := e.beginTransition(name); err != nil {
		return err
	}
	defer e.endTransition(name)
	log.Infof("Handling Vote for %v by %v: inSupport: %v", name, voter.Hex(), inSupport)

	listing, err := e.pendingListing(name)
	if err != nil {
		return err
	}
	now := e.nowFunc()
	if e.windowClosed(listing, now) {
		return model.ErrVotingClosed
	}

	_, err = e.votePersister.VoteByListingAndVoter(name, voter)
	if err == nil {
		return model.ErrAlreadyVoted
	}
	if err != cpersist.ErrPersisterNoResults {
		return errors.Wrapf(err, "error checking for existing vote on %v", name)
	}

	vote := model.NewVote(name, voter, inSupport, now)
	err = e.votePersister.CreateVote(vote)
	if err != nil {
		return errors.Wrapf(err, "error creating vote on %v", name)
	}

	if inSupport {
		listing.SetVoteCount(listing.VoteCount() + 1)
	} else {
		listing.SetChallengeCount(listing.ChallengeCount() + 1)
	}
	listing.SetLastUpdatedDateTs(now)
	err = e.listingPersister.UpdateListing(listing)
	if err != nil {
		delErr := e.votePersister.DeleteVote(vote)
		if delErr != nil {
			log.Errorf("Error rolling back vote on %v: err: %v", name, delErr)
		}
		return errors.Wrapf(err, "error updating listing %v", name)
	}

	e.emit(name, voter, model.Metadata{
		"Voter":     voter.Hex(),
		"InSupport": inSupport,
	}, model.RegistryEventVote, now)
	return nil
}

// Finalize closes out a pending listing once its voting window has ended.
// A strict majority of support votes whitelists the listing and settles
// voter rewards; anything else, ties included, deletes the listing and
// refunds the stake to the caller of Finalize.  A listing that has already
// been whitelisted cannot be finalized again.
func (e *Engine) Finalize(name string, finalizer common.Address) error {
	if err := e.beginTransition(name); err != nil {
		return err
	}
	defer e.endTransition(name)
	log.Infof("Handling Finalize for %v by %v", name, finalizer.Hex())

	listing, err := e.listingByNameForUpdate(name)
	if err != nil {
		return err
	}
	if listing.Whitelisted() {
		return model.ErrAlreadyWhitelisted
	}
	now := e.nowFunc()
	if !e.windowClosed(listing, now) {
		return model.ErrVotingStillOpen
	}

	if listing.VoteCount() > listing.ChallengeCount() {
		return e.whitelistListing(listing, now)
	}
	return e.removeListing(listing, finalizer, now)
}

// ListingByName returns a snapshot of the current state of a listing
func (e *Engine) ListingByName(name string) (*model.Listing, error) {
	return e.listingByNameForUpdate(name)
}

// FinalizeExpired finalizes every pending listing whose voting window has
// closed, crediting any refunds to the given finalizer address.  Errors on
// individual listings are logged and skipped.  Returns the number of
// listings finalized.
func (e *Engine) FinalizeExpired(finalizer common.Address) (int, error) {
	listings, err := e.listingPersister.Listings()
	if err != nil {
		if err == cpersist.ErrPersisterNoResults {
			return 0, nil
		}
		return 0, errors.Wrap(err, "error retrieving listings")
	}

	now := e.nowFunc()
	finalized := 0
	for _, listing := range listings {
		if listing.Whitelisted() || !e.windowClosed(listing, now) {
			continue
		}
		err = e.Finalize(listing.Name(), finalizer)
		if err != nil {
			log.Errorf("Error finalizing %v: err: %v", listing.Name(), err)
			continue
		}
		finalized++
	}
	return finalized, nil
}

func (e *Engine) whitelistListing(listing *model.Listing, now int64) error {
	listing.SetWhitelisted(true)
	listing.SetLastUpdatedDateTs(now)
	err := e.listingPersister.UpdateListing(listing)
	if err != nil {
		return errors.Wrapf(err, "error updating listing %v", listing.Name())
	}

	err = e.settleRewards(listing, now)
	if err != nil {
		listing.SetWhitelisted(false)
		updErr := e.listingPersister.UpdateListing(listing)
		if updErr != nil {
			log.Errorf("Error rolling back whitelist of %v: err: %v", listing.Name(), updErr)
		}
		return err
	}

	e.emit(listing.Name(), listing.Applicant(), model.Metadata{
		"VoteCount":      listing.VoteCount(),
		"ChallengeCount": listing.ChallengeCount(),
	}, model.RegistryEventApplicationWhitelisted, now)
	return nil
}

func (e *Engine) removeListing(listing *model.Listing, finalizer common.Address,
	now int64) error {
	err := e.listingPersister.DeleteListing(listing)
	if err != nil {
		return errors.Wrapf(err, "error deleting listing %v", listing.Name())
	}

	err = e.tokenLedger.Credit(finalizer, listing.Stake())
	if err != nil {
		createErr := e.listingPersister.CreateListing(listing)
		if createErr != nil {
			log.Errorf("Error restoring listing %v: err: %v", listing.Name(), createErr)
		}
		return errors.Wrap(model.ErrLedgerTransferFailed, err.Error())
	}

	err = e.votePersister.DeleteVotesByListing(listing.Name())
	if err != nil {
		log.Errorf("Error deleting votes for %v: err: %v", listing.Name(), err)
	}

	e.emit(listing.Name(), finalizer, model.Metadata{
		"Finalizer":      finalizer.Hex(),
		"Refund":         listing.Stake().String(),
		"VoteCount":      listing.VoteCount(),
		"ChallengeCount": listing.ChallengeCount(),
	}, model.RegistryEventApplicationRemoved, now)
	return nil
}

// pendingListing retrieves a listing for a challenge or vote, rejecting
// listings that have already been whitelisted.
func (e *Engine) pendingListing(name string) (*model.Listing, error) {
	listing, err := e.listingByNameForUpdate(name)
	if err != nil {
		return nil, err
	}
	if listing.Whitelisted() {
		return nil, model.ErrVotingClosed
	}
	return listing, nil
}

func (e *Engine) listingByNameForUpdate(name string) (*model.Listing, error) {
	listing, err := e.listingPersister.ListingByName(name)
	if err != nil {
		if err == cpersist.ErrPersisterNoResults {
			return nil, model.ErrListingNotFound
		}
		return nil, errors.Wrapf(err, "error retrieving listing %v", name)
	}
	return listing, nil
}

// windowClosed returns true once the listing's voting window has ended.
// The window is [applicationDateTs, applicationDateTs+votingDurationSecs).
func (e *Engine) windowClosed(listing *model.Listing, now int64) bool {
	return now >= listing.ApplicationDateTs()+e.votingDurationSecs
}

// emit delivers a registry event.  Delivery failures are logged, not
// propagated; the state transition that produced the event stands.
func (e *Engine) emit(name string, sender common.Address, metadata model.Metadata,
	eventType string, now int64) {
	event := model.NewRegistryEvent(name, sender, metadata, eventType, now)
	err := e.emitter.Emit(event)
	if err != nil {
		log.Errorf("Error emitting %v for %v: err: %v", eventType, name, err)
	}
}

// beginTransition marks a listing as having a state transition in flight.
// A ledger implementation that calls back into the engine before returning
// hits this guard and fails instead of observing half-applied state.
func (e *Engine) beginTransition(name string) error {
	if e.inFlight[name] {
		return model.ErrReentrantCall
	}
	e.inFlight[name] = true
	return nil
}

func (e *Engine) endTransition(name string) {
	delete(e.inFlight, name)
}
