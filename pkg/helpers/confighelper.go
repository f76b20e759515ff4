// Package helpers contains various common helper functions.
// Normally they are shared functions used by the cmds.
package helpers // import "github.com/joincivil/token-registry/pkg/helpers"

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	cpubsub "github.com/joincivil/go-common/pkg/pubsub"

	"github.com/joincivil/token-registry/pkg/events"
	"github.com/joincivil/token-registry/pkg/ledger"
	"github.com/joincivil/token-registry/pkg/model"
	"github.com/joincivil/token-registry/pkg/persistence"
	"github.com/joincivil/token-registry/pkg/registry"
	"github.com/joincivil/token-registry/pkg/utils"
)

// RegistryPersister is a helper function to return an initialized persister
// based on the given configuration
func RegistryPersister(config *utils.RegistryConfig) (model.RegistryPersister, error) {
	if config.PersisterType == utils.PersisterTypePostgresql {
		persister, err := persistence.NewPostgresPersister(
			config.PersisterPostgresAddress,
			config.PersisterPostgresPort,
			config.PersisterPostgresUser,
			config.PersisterPostgresPw,
			config.PersisterPostgresDbname,
		)
		if err != nil {
			return nil, err
		}
		err = persister.CreateTables()
		if err != nil {
			return nil, err
		}
		return persister, nil
	}
	return persistence.NewInMemoryPersister(), nil
}

// TokenLedger is a helper function to return the configured token ledger.
// With an eth API URL and pool key configured it moves real tokens through
// the ERC20 ledger; otherwise balances are held in process memory.
func TokenLedger(config *utils.RegistryConfig) (ledger.TokenLedger, error) {
	if config.EthAPIURL == "" {
		return ledger.NewInMemoryLedger(), nil
	}
	if config.TokenContractAddress == "" || config.PoolContractAddress == "" ||
		config.PoolPrivateKey == "" {
		return nil, fmt.Errorf("ERC20 ledger requires token address, pool address and pool key")
	}
	client, err := ethclient.Dial(config.EthAPIURL)
	if err != nil {
		return nil, fmt.Errorf("Error connecting to eth API: %v", err)
	}
	key, err := crypto.HexToECDSA(config.PoolPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("Error parsing pool private key: %v", err)
	}
	transactOpts := bind.NewKeyedTransactor(key)
	return ledger.NewERC20Ledger(
		common.HexToAddress(config.TokenContractAddress),
		common.HexToAddress(config.PoolContractAddress),
		client,
		transactOpts,
	)
}

// Emitter is a helper function to return the configured event emitter.  All
// events are persisted for audit; with a pubsub project configured they are
// also published, otherwise they go to the process log.
func Emitter(config *utils.RegistryConfig, persister model.RegistryEventPersister) (
	events.Emitter, error) {
	if config.PubSubProjectID == "" {
		return events.NewPersistingEmitter(persister, &events.LogEmitter{}), nil
	}
	if config.PubSubTopicName == "" {
		return nil, fmt.Errorf("Pubsub topic name should be specified")
	}
	ps, err := cpubsub.NewGooglePubSub(config.PubSubProjectID)
	if err != nil {
		return nil, err
	}
	err = ps.StartPublishers()
	if err != nil {
		return nil, err
	}
	pubsubEmitter := events.NewGooglePubSubEmitter(ps, config.PubSubTopicName)
	return events.NewPersistingEmitter(persister, pubsubEmitter), nil
}

// Engine is a helper function to build the fully wired registry engine from
// configuration
func Engine(config *utils.RegistryConfig) (*registry.Engine, error) {
	persister, err := RegistryPersister(config)
	if err != nil {
		return nil, err
	}
	tokenLedger, err := TokenLedger(config)
	if err != nil {
		return nil, err
	}
	emitter, err := Emitter(config, persister)
	if err != nil {
		return nil, err
	}
	return registry.NewEngine(&registry.NewEngineParams{
		TokenLedger:        tokenLedger,
		ListingPersister:   persister,
		VotePersister:      persister,
		Emitter:            emitter,
		ApplicationStake:   config.StakeAmount(),
		VotingDurationSecs: config.VotingDurationSecs,
		RewardPercentage:   config.RewardPercentage,
	})
}
