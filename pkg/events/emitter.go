// Package events contains the emitters that deliver registry events to
// external observers and indexers.
package events // import "github.com/joincivil/token-registry/pkg/events"

import (
	log "github.com/golang/glog"

	"github.com/joincivil/token-registry/pkg/model"
)

// Emitter delivers registry events to an external observer.  Delivery is
// best effort from the engine's point of view; a failed emit never rolls
// back the state transition that produced the event.
type Emitter interface {
	// Emit delivers a single registry event
	Emit(event *model.RegistryEvent) error
}

// LogEmitter is an Emitter that writes events to the process log
type LogEmitter struct{}

// Emit logs the event
func (l *LogEmitter) Emit(event *model.RegistryEvent) error {
	log.Infof("Registry event %v for %v: sender: %v, metadata: %v",
		event.RegistryEventType(), event.ListingName(),
		event.SenderAddress().Hex(), event.Metadata())
	return nil
}

// NewPersistingEmitter creates an Emitter that records every event through
// the given persister before forwarding it to the inner emitter.  The
// persisted rows are the durable audit trail for listings that are later
// deleted by rejection.
func NewPersistingEmitter(persister model.RegistryEventPersister, inner Emitter) *PersistingEmitter {
	return &PersistingEmitter{
		persister: persister,
		inner:     inner,
	}
}

// PersistingEmitter persists events and forwards them to an inner emitter
type PersistingEmitter struct {
	persister model.RegistryEventPersister
	inner     Emitter
}

// Emit persists the event, then forwards it
func (p *PersistingEmitter) Emit(event *model.RegistryEvent) error {
	err := p.persister.CreateRegistryEvent(event)
	if err != nil {
		return err
	}
	if p.inner != nil {
		return p.inner.Emit(event)
	}
	return nil
}
