package postgres // import "github.com/joincivil/token-registry/pkg/persistence/postgres"

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/joincivil/token-registry/pkg/model"
)

// RegistryEventSchema returns the query to create the registry_event table
func RegistryEventSchema() string {
	return RegistryEventSchemaString("registry_event")
}

// RegistryEventSchemaString returns the query to create this table
func RegistryEventSchemaString(tableName string) string {
	schema := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s(
            id SERIAL PRIMARY KEY,
            listing_name TEXT,
            sender_address TEXT,
            metadata JSONB,
            registry_event_type TEXT,
            creation_timestamp BIGINT
        );
    `, tableName)
	return schema
}

// NewRegistryEvent creates a new postgres RegistryEvent from a
// model.RegistryEvent
func NewRegistryEvent(event *model.RegistryEvent) (*RegistryEvent, error) {
	metadata, err := json.Marshal(event.Metadata())
	if err != nil {
		return nil, fmt.Errorf("Error marshalling event metadata: %v", err)
	}
	return &RegistryEvent{
		ListingName:       event.ListingName(),
		SenderAddress:     event.SenderAddress().Hex(),
		Metadata:          string(metadata),
		RegistryEventType: event.RegistryEventType(),
		CreationDateTs:    event.CreationDateTs(),
	}, nil
}

// RegistryEvent is the postgres definition of a model.RegistryEvent
type RegistryEvent struct {
	ListingName string `db:"listing_name"`

	SenderAddress string `db:"sender_address"`

	Metadata string `db:"metadata"`

	RegistryEventType string `db:"registry_event_type"`

	CreationDateTs int64 `db:"creation_timestamp"`
}

// DbToRegistryEventData creates a model.RegistryEvent from a postgres
// RegistryEvent
func (re *RegistryEvent) DbToRegistryEventData() (*model.RegistryEvent, error) {
	metadata := model.Metadata{}
	err := json.Unmarshal([]byte(re.Metadata), &metadata)
	if err != nil {
		return nil, fmt.Errorf("Error unmarshalling event metadata: %v", err)
	}
	return model.NewRegistryEvent(
		re.ListingName,
		common.HexToAddress(re.SenderAddress),
		metadata,
		re.RegistryEventType,
		re.CreationDateTs,
	), nil
}
