// Package utils contains various common utils separate by utility types
package utils // import "github.com/joincivil/token-registry/pkg/utils"

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron"
)

// PersisterType is the type of persister to use.
type PersisterType int

const (
	// PersisterTypeInvalid is an invalid persister value
	PersisterTypeInvalid PersisterType = iota

	// PersisterTypeMemory is a persister that keeps all state in process memory
	PersisterTypeMemory

	// PersisterTypePostgresql is a persister that uses PostgreSQL as the backend
	PersisterTypePostgresql
)

var (
	// PersisterNameToType maps valid persister names to the types above
	PersisterNameToType = map[string]PersisterType{
		"memory":     PersisterTypeMemory,
		"postgresql": PersisterTypePostgresql,
	}
)

const (
	envVarPrefix = "registry"

	usageListFormat = `The registry is configured via environment vars only. The following environment variables can be used:
{{range .}}
{{usage_key .}}
  description: {{usage_description .}}
  type:        {{usage_type .}}
  default:     {{usage_default .}}
  required:    {{usage_required .}}
{{end}}
`
)

// RegistryConfig is the master config for the registry engine derived from
// environment variables.
type RegistryConfig struct {
	CronConfig         string `envconfig:"cron_config" required:"true" desc:"Cron config string * * * * *"`
	ApplicationStake   string `split_words:"true" required:"true" desc:"Token amount staked per application, base-10 integer"`
	VotingDurationSecs int64  `split_words:"true" required:"true" desc:"Length of the voting window in seconds"`
	RewardPercentage   int64  `split_words:"true" required:"true" desc:"Percentage of the stake distributed to support voters, 0-100"`
	FinalizerAddress   string `split_words:"true" required:"true" desc:"Address credited with refunds by the cron finalizer"`

	EthAPIURL            string `envconfig:"eth_api_url" desc:"Ethereum API address, enables the ERC20 ledger"`
	TokenContractAddress string `split_words:"true" desc:"Address of the token contract for the ERC20 ledger"`
	PoolContractAddress  string `split_words:"true" desc:"Address holding the engine's pooled funds for the ERC20 ledger"`
	PoolPrivateKey       string `split_words:"true" desc:"Private key hex for the pool account, signs ERC20 ledger transfers"`

	PubSubProjectID string `envconfig:"pubsub_project_id" desc:"Sets the Google Cloud project ID for event publishing"`
	PubSubTopicName string `envconfig:"pubsub_topic_name" desc:"Sets the pubsub topic for registry events"`

	PersisterType            PersisterType `ignored:"true"`
	PersisterTypeName        string        `split_words:"true" required:"true" desc:"Sets the persister type to use"`
	PersisterPostgresAddress string        `split_words:"true" desc:"If persister type is Postgresql, sets the address"`
	PersisterPostgresPort    int           `split_words:"true" desc:"If persister type is Postgresql, sets the port"`
	PersisterPostgresDbname  string        `split_words:"true" desc:"If persister type is Postgresql, sets the database name"`
	PersisterPostgresUser    string        `split_words:"true" desc:"If persister type is Postgresql, sets the database user"`
	PersisterPostgresPw      string        `split_words:"true" desc:"If persister type is Postgresql, sets the database password"`
}

// StakeAmount returns the application stake as a big.Int
func (c *RegistryConfig) StakeAmount() *big.Int {
	stake := new(big.Int)
	stake.SetString(c.ApplicationStake, 10)
	return stake
}

// OutputUsage prints the usage string to os.Stdout
func (c *RegistryConfig) OutputUsage() {
	tabs := tabwriter.NewWriter(os.Stdout, 1, 0, 4, ' ', 0)
	_ = envconfig.Usagef(envVarPrefix, c, tabs, usageListFormat) // nolint: gosec
	_ = tabs.Flush()                                             // nolint: gosec
}

// PopulateFromEnv processes the environment vars, populates RegistryConfig
// with the respective values, and validates the values.
func (c *RegistryConfig) PopulateFromEnv() error {
	err := envconfig.Process(envVarPrefix, c)
	if err != nil {
		return err
	}

	err = c.validateCronConfig()
	if err != nil {
		return err
	}

	err = c.validateEngineParams()
	if err != nil {
		return err
	}

	err = c.populatePersisterType()
	if err != nil {
		return err
	}

	return c.validatePersister()
}

func (c *RegistryConfig) validateCronConfig() error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(c.CronConfig)
	if err != nil {
		return fmt.Errorf("Invalid cron config: '%v'", c.CronConfig)
	}
	return nil
}

func (c *RegistryConfig) validateEngineParams() error {
	stake, ok := new(big.Int).SetString(c.ApplicationStake, 10)
	if !ok || stake.Sign() <= 0 {
		return fmt.Errorf("Invalid application stake: '%v'", c.ApplicationStake)
	}
	if c.VotingDurationSecs <= 0 {
		return fmt.Errorf("Invalid voting duration: '%v'", c.VotingDurationSecs)
	}
	if c.RewardPercentage < 0 || c.RewardPercentage > 100 {
		return fmt.Errorf("Invalid reward percentage: '%v'", c.RewardPercentage)
	}
	if !common.IsHexAddress(c.FinalizerAddress) {
		return fmt.Errorf("Invalid finalizer address: '%v'", c.FinalizerAddress)
	}
	return nil
}

func (c *RegistryConfig) validatePersister() error {
	var err error
	if c.PersisterType == PersisterTypePostgresql {
		err = c.validatePostgresqlPersister()
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *RegistryConfig) validatePostgresqlPersister() error {
	if c.PersisterPostgresAddress == "" {
		return errors.New("Postgresql address required")
	}
	if c.PersisterPostgresPort == 0 {
		return errors.New("Postgresql port required")
	}
	if c.PersisterPostgresDbname == "" {
		return errors.New("Postgresql db name required")
	}
	return nil
}

func (c *RegistryConfig) populatePersisterType() error {
	var err error
	c.PersisterType, err = PersisterTypeFromName(c.PersisterTypeName)
	return err
}

// PersisterTypeFromName returns the correct persisterType from the string name
func PersisterTypeFromName(typeStr string) (PersisterType, error) {
	pType, ok := PersisterNameToType[typeStr]
	if !ok {
		validNames := make([]string, len(PersisterNameToType))
		index := 0
		for name := range PersisterNameToType {
			validNames[index] = name
			index++
		}
		return PersisterTypeInvalid,
			fmt.Errorf("Invalid persister value: %v; valid types %v", typeStr, validNames)
	}
	return pType, nil
}
