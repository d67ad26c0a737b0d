package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type captureSink struct {
	events []Event
	err    error
}

func (s *captureSink) AppendEvent(_ context.Context, evt Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, evt)
	return nil
}

func TestEmit(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sink := &captureSink{}
	emitter := NewEmitter(sink).WithClock(func() time.Time { return now })

	emitter.Emit(context.Background(), 3, TypeClueCompleted, "GPLAYER", ClueCompletedPayload{
		Player:       "GPLAYER",
		ClueID:       2,
		PointsEarned: 50,
	})

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	evt := sink.events[0]
	if evt.HuntID != 3 || evt.Type != TypeClueCompleted || evt.Actor != "GPLAYER" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if !evt.Timestamp.Equal(now) {
		t.Fatalf("expected timestamp %v, got %v", now, evt.Timestamp)
	}

	var payload ClueCompletedPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.PointsEarned != 50 {
		t.Fatalf("expected 50 points in payload, got %d", payload.PointsEarned)
	}
}

func TestEmitInvalidType(t *testing.T) {
	sink := &captureSink{}
	emitter := NewEmitter(sink)

	emitter.Emit(context.Background(), 1, Type("bogus"), "actor", nil)
	if len(sink.events) != 0 {
		t.Fatalf("invalid type must not append, got %d events", len(sink.events))
	}
}

func TestEmitNilSink(t *testing.T) {
	// Must not panic.
	NewEmitter(nil).Emit(context.Background(), 1, TypeHuntCreated, "actor", nil)
}

func TestEmitSinkFailure(t *testing.T) {
	sink := &captureSink{err: errors.New("disk full")}
	emitter := NewEmitter(sink)

	// Fire-and-forget: append failures never propagate.
	emitter.Emit(context.Background(), 1, TypeHuntCreated, "actor", HuntCreatedPayload{Creator: "c"})
}

func TestTypeIsValid(t *testing.T) {
	valid := []Type{
		TypeHuntCreated, TypeHuntActivated, TypeHuntDeactivated, TypeHuntCancelled,
		TypeHuntCompleted, TypeClueAdded, TypeClueCompleted, TypePlayerRegistered,
		TypePlayerCompleted, TypeRewardClaimed,
	}
	for _, typ := range valid {
		if !typ.IsValid() {
			t.Fatalf("expected %q valid", typ)
		}
	}
	if Type("hunt.exploded").IsValid() {
		t.Fatal("unknown type must be invalid")
	}
}

func TestTypeDomain(t *testing.T) {
	if got := TypeClueAdded.Domain(); got != "clue" {
		t.Fatalf("expected domain clue, got %q", got)
	}
	if got := TypeRewardClaimed.Domain(); got != "reward" {
		t.Fatalf("expected domain reward, got %q", got)
	}
}
