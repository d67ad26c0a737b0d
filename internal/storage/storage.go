package storage

import (
	"context"
	"errors"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/hunt/event"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// HuntStore persists hunt records and the global hunt-ID counter.
type HuntStore interface {
	// PutHunt writes a hunt record, overwriting any previous version.
	PutHunt(ctx context.Context, h hunt.Hunt) error
	// GetHunt fetches a hunt by ID, returning ErrNotFound when absent.
	GetHunt(ctx context.Context, huntID uint64) (hunt.Hunt, error)
	// NextHuntID atomically increments and returns the hunt-ID counter.
	// The first call returns 1.
	NextHuntID(ctx context.Context) (uint64, error)
	// CurrentHuntID reads the counter without incrementing; 0 means no
	// hunts have been created.
	CurrentHuntID(ctx context.Context) (uint64, error)
}

// ClueStore persists clue records keyed by (hunt ID, clue ID) and maintains
// the per-hunt clue-ID enumeration index: duplicate-free, insertion-ordered.
type ClueStore interface {
	PutClue(ctx context.Context, c hunt.Clue) error
	GetClue(ctx context.Context, huntID uint64, clueID uint32) (hunt.Clue, error)
	// ListClueIDs returns the hunt's clue IDs in insertion order.
	ListClueIDs(ctx context.Context, huntID uint64) ([]uint32, error)
	// ListClues returns the hunt's clues in insertion order.
	ListClues(ctx context.Context, huntID uint64) ([]hunt.Clue, error)
}

// ProgressStore persists player progress keyed by (hunt ID, player) and
// maintains the per-hunt player enumeration index.
type ProgressStore interface {
	PutProgress(ctx context.Context, p hunt.PlayerProgress) error
	GetProgress(ctx context.Context, huntID uint64, player string) (hunt.PlayerProgress, error)
	// ListPlayers returns the hunt's registered players in registration order.
	ListPlayers(ctx context.Context, huntID uint64) ([]string, error)
	// ListProgress returns progress records for every registered player.
	ListProgress(ctx context.Context, huntID uint64) ([]hunt.PlayerProgress, error)
}

// EventStore persists the hunt journal. AppendEvent assigns the per-hunt
// sequence number.
type EventStore interface {
	AppendEvent(ctx context.Context, evt event.Event) error
	ListEvents(ctx context.Context, huntID uint64) ([]event.Event, error)
}

// Store bundles every storage concern a backend provides.
type Store interface {
	HuntStore
	ClueStore
	ProgressStore
	EventStore
	Close() error
}
