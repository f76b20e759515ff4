package registry // import "github.com/joincivil/token-registry/pkg/registry"

import (
	"math/big"

	log "github.com/golang/glog"

	"github.com/pkg/errors"

	"github.com/joincivil/token-registry/pkg/model"
)

var oneHundred = big.NewInt(100)

// settleRewards pays out the support voters of a freshly whitelisted
// listing.  The reward pool is rewardPercentage of the stake, floored, and
// each support voter receives an equal floored share.  Both divisions round
// down; the remainders stay in the engine's pooled balance.
func (e *Engine) settleRewards(listing *model.Listing, now int64) error {
	rewardAmount := new(big.Int).Mul(listing.Stake(), big.NewInt(e.rewardPercentage))
	rewardAmount.Div(rewardAmount, oneHundred)

	// voteCount > challengeCount >= 0 on this path, so never zero
	voteCount := new(big.Int).SetUint64(listing.VoteCount())
	rewardPerVoter := new(big.Int).Div(rewardAmount, voteCount)

	votes, err := e.votePersister.VotesByListing(listing.Name())
	if err != nil {
		return errors.Wrapf(err, "error retrieving votes for %v", listing.Name())
	}

	// Replay the roster in the order votes were cast; only support voters
	// are paid, opposing voters hold roster slots but get nothing.
	for _, vote := range votes {
		if !vote.InSupport() {
			continue
		}
		err = e.tokenLedger.Credit(vote.Voter(), rewardPerVoter)
		if err != nil {
			return errors.Wrap(model.ErrLedgerTransferFailed, err.Error())
		}
		log.Infof("Distributed reward of %v to %v for %v",
			rewardPerVoter, vote.Voter().Hex(), listing.Name())
		e.emit(listing.Name(), vote.Voter(), model.Metadata{
			"Voter":  vote.Voter().Hex(),
			"Amount": rewardPerVoter.String(),
		}, model.RegistryEventRewardDistributed, now)
	}
	return nil
}
