package model // import "github.com/joincivil/token-registry/pkg/model"

import (
	"errors"
)

// Errors returned by the registry engine.  Every failure aborts the
// triggering call with no partial state left behind.
var (
	// ErrDuplicateListing is returned on an application for a name that
	// already exists on the registry or is pending a vote
	ErrDuplicateListing = errors.New("listing name already exists")

	// ErrListingNotFound is returned for operations against a name with no
	// current listing
	ErrListingNotFound = errors.New("listing does not exist")

	// ErrLedgerTransferFailed is returned when the token ledger refuses a
	// debit or credit
	ErrLedgerTransferFailed = errors.New("token ledger transfer failed")

	// ErrVotingClosed is returned for challenges or votes arriving at or
	// after the end of the voting window
	ErrVotingClosed = errors.New("voting window has closed")

	// ErrVotingStillOpen is returned for a finalize arriving before the end
	// of the voting window
	ErrVotingStillOpen = errors.New("voting window is still open")

	// ErrAlreadyVoted is returned when an address votes twice on the same
	// listing
	ErrAlreadyVoted = errors.New("address has already voted on this listing")

	// ErrAlreadyWhitelisted is returned for a repeat finalize on a listing
	// that already won its vote.  Without this guard a repeat finalize
	// would re-run reward settlement and drain the pooled balance.
	ErrAlreadyWhitelisted = errors.New("listing has already been finalized")

	// ErrReentrantCall is returned when the ledger calls back into the
	// engine against a listing whose state transition is still in flight
	ErrReentrantCall = errors.New("reentrant call on listing in transition")
)
