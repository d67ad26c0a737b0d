package event

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Sink persists journal events. Storage backends implement it.
type Sink interface {
	AppendEvent(ctx context.Context, evt Event) error
}

// Emitter records hunt journal events. Delivery is fire-and-forget: append
// failures are logged and never surfaced to the operation that emitted.
type Emitter struct {
	sink  Sink
	clock func() time.Time
}

// NewEmitter creates an emitter backed by the given sink. A nil sink yields
// an emitter whose Emit is a no-op.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink, clock: time.Now}
}

// WithClock overrides the emitter clock. Intended for tests.
func (e *Emitter) WithClock(clock func() time.Time) *Emitter {
	if clock != nil {
		e.clock = clock
	}
	return e
}

// Emit appends an event with the given payload to the hunt's journal.
// It is a no-op when the emitter or its sink is nil.
func (e *Emitter) Emit(ctx context.Context, huntID uint64, typ Type, actor string, payload any) {
	if e == nil || e.sink == nil {
		return
	}
	if !typ.IsValid() {
		return
	}

	var payloadJSON []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			log.Printf("encode %s payload for hunt %d: %v", typ, huntID, err)
			return
		}
		payloadJSON = encoded
	}

	evt := Event{
		HuntID:      huntID,
		Timestamp:   e.clock().UTC(),
		Type:        typ,
		Actor:       actor,
		PayloadJSON: payloadJSON,
	}
	if err := e.sink.AppendEvent(ctx, evt); err != nil {
		log.Printf("append %s event for hunt %d: %v", typ, huntID, err)
	}
}
