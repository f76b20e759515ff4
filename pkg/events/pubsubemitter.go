package events // import "github.com/joincivil/token-registry/pkg/events"

import (
	"encoding/json"

	"github.com/joincivil/go-common/pkg/pubsub"

	"github.com/joincivil/token-registry/pkg/model"
)

// PubSubMessage is the JSON payload published for each registry event
type PubSubMessage struct {
	ListingName string         `json:"listingName"`
	EventType   string         `json:"eventType"`
	Sender      string         `json:"sender"`
	Metadata    model.Metadata `json:"metadata"`
	Timestamp   int64          `json:"timestamp"`
}

// NewGooglePubSubEmitter creates an Emitter that publishes registry events
// to a Google PubSub topic.  The pubsub struct should have its publishers
// started before the first emit.
func NewGooglePubSubEmitter(ps *pubsub.GooglePubSub, topic string) *GooglePubSubEmitter {
	return &GooglePubSubEmitter{
		ps:    ps,
		topic: topic,
	}
}

// GooglePubSubEmitter publishes registry events to Google PubSub
type GooglePubSubEmitter struct {
	ps    *pubsub.GooglePubSub
	topic string
}

// Emit publishes the event to the configured topic
func (g *GooglePubSubEmitter) Emit(event *model.RegistryEvent) error {
	payload, err := g.buildPayload(event)
	if err != nil {
		return err
	}
	return g.ps.Publish(payload)
}

func (g *GooglePubSubEmitter) buildPayload(event *model.RegistryEvent) (*pubsub.GooglePubSubMsg, error) {
	msg := &PubSubMessage{
		ListingName: event.ListingName(),
		EventType:   event.RegistryEventType(),
		Sender:      event.SenderAddress().Hex(),
		Metadata:    event.Metadata(),
		Timestamp:   event.CreationDateTs(),
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	return &pubsub.GooglePubSubMsg{Topic: g.topic, Payload: string(msgBytes)}, nil
}
