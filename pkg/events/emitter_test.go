package events_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	cstrings "github.com/joincivil/go-common/pkg/strings"

	"github.com/joincivil/token-registry/pkg/events"
	"github.com/joincivil/token-registry/pkg/model"
	"github.com/joincivil/token-registry/pkg/persistence"
)

type capturingEmitter struct {
	emitted []*model.RegistryEvent
	err     error
}

func (c *capturingEmitter) Emit(event *model.RegistryEvent) error {
	if c.err != nil {
		return c.err
	}
	c.emitted = append(c.emitted, event)
	return nil
}

type failingEventPersister struct{}

func (f *failingEventPersister) RegistryEventsByListing(listingName string) (
	[]*model.RegistryEvent, error) {
	return nil, nil
}

func (f *failingEventPersister) CreateRegistryEvent(event *model.RegistryEvent) error {
	return errors.New("persister is down")
}

func sampleEvent(t *testing.T) *model.RegistryEvent {
	hex, err := cstrings.RandomHexStr(32)
	if err != nil {
		t.Fatalf("Should not have failed generating an address: err: %v", err)
	}
	return model.NewRegistryEvent("test_listing", common.HexToAddress(hex),
		model.Metadata{"Deposit": "100"}, model.RegistryEventApplication, 1257894000)
}

func TestLogEmitter(t *testing.T) {
	emitter := &events.LogEmitter{}
	err := emitter.Emit(sampleEvent(t))
	if err != nil {
		t.Errorf("Should not have failed emitting to the log: err: %v", err)
	}
}

func TestPersistingEmitterStoresAndForwards(t *testing.T) {
	persister := persistence.NewInMemoryPersister()
	inner := &capturingEmitter{}
	emitter := events.NewPersistingEmitter(persister, inner)

	event := sampleEvent(t)
	err := emitter.Emit(event)
	if err != nil {
		t.Fatalf("Should not have failed emitting: err: %v", err)
	}

	stored, err := persister.RegistryEventsByListing("test_listing")
	if err != nil {
		t.Fatalf("Should not have failed retrieving events: err: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Should have persisted 1 event: got %v", len(stored))
	}
	if stored[0].RegistryEventType() != model.RegistryEventApplication {
		t.Errorf("Should have persisted the event type")
	}
	if len(inner.emitted) != 1 {
		t.Errorf("Should have forwarded the event to the inner emitter")
	}
}

func TestPersistingEmitterNilInner(t *testing.T) {
	persister := persistence.NewInMemoryPersister()
	emitter := events.NewPersistingEmitter(persister, nil)

	err := emitter.Emit(sampleEvent(t))
	if err != nil {
		t.Errorf("Should not have failed emitting without an inner emitter: err: %v", err)
	}
}

func TestPersistingEmitterPersistFailure(t *testing.T) {
	inner := &capturingEmitter{}
	emitter := events.NewPersistingEmitter(&failingEventPersister{}, inner)

	err := emitter.Emit(sampleEvent(t))
	if err == nil {
		t.Errorf("Should have failed when the persister fails")
	}
	if len(inner.emitted) != 0 {
		t.Errorf("Should not have forwarded an event that was not persisted")
	}
}
