// Package event defines the hunt journal: typed lifecycle notifications
// appended by the controller and replayable by observers.
package event

import "time"

// Type identifies the type of a hunt event.
type Type string

// Hunt lifecycle events.
const (
	// TypeHuntCreated records the creation of a hunt.
	TypeHuntCreated Type = "hunt.created"
	// TypeHuntActivated records a hunt opening to players.
	TypeHuntActivated Type = "hunt.activated"
	// TypeHuntDeactivated records a hunt returning to draft.
	TypeHuntDeactivated Type = "hunt.deactivated"
	// TypeHuntCancelled records a hunt cancellation.
	TypeHuntCancelled Type = "hunt.cancelled"
	// TypeHuntCompleted records a hunt finishing.
	TypeHuntCompleted Type = "hunt.completed"
)

// Clue events.
const (
	// TypeClueAdded records a clue being added to a draft hunt.
	TypeClueAdded Type = "clue.added"
	// TypeClueCompleted records a player solving a clue.
	TypeClueCompleted Type = "clue.completed"
)

// Player events.
const (
	// TypePlayerRegistered records a player joining a hunt.
	TypePlayerRegistered Type = "player.registered"
	// TypePlayerCompleted records a player finishing every required clue.
	TypePlayerCompleted Type = "player.completed"
	// TypeRewardClaimed records a winner claiming their pool share.
	TypeRewardClaimed Type = "reward.claimed"
)

// Event is an immutable entry in a hunt's journal.
type Event struct {
	// HuntID is the hunt this event belongs to.
	HuntID uint64
	// Seq is the event sequence number within the hunt (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// Actor is the identity that triggered the event, when known.
	Actor string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}

// IsValid reports whether the type is one of the defined journal event types.
func (t Type) IsValid() bool {
	switch t {
	case TypeHuntCreated, TypeHuntActivated, TypeHuntDeactivated,
		TypeHuntCancelled, TypeHuntCompleted,
		TypeClueAdded, TypeClueCompleted,
		TypePlayerRegistered, TypePlayerCompleted, TypeRewardClaimed:
		return true
	}
	return false
}

// Domain returns the domain prefix of the event type (e.g., "hunt", "clue").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}
