// Package memory provides an in-memory hunt store guarded by a mutex. It is
// the reference implementation of the storage contract and the backend used
// by service tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/hunt/event"
	"github.com/hunty/huntcore/internal/storage"
)

type clueKey struct {
	huntID uint64
	clueID uint32
}

type progressKey struct {
	huntID uint64
	player string
}

// Store is an in-memory hunt store. The zero value is not usable; call New.
type Store struct {
	mu          sync.RWMutex
	hunts       map[uint64]hunt.Hunt
	clues       map[clueKey]hunt.Clue
	progress    map[progressKey]hunt.PlayerProgress
	clueIndex   map[uint64][]uint32
	playerIndex map[uint64][]string
	events      map[uint64][]event.Event
	huntCounter uint64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		hunts:       make(map[uint64]hunt.Hunt),
		clues:       make(map[clueKey]hunt.Clue),
		progress:    make(map[progressKey]hunt.PlayerProgress),
		clueIndex:   make(map[uint64][]uint32),
		playerIndex: make(map[uint64][]string),
		events:      make(map[uint64][]event.Event),
	}
}

// Close releases nothing; it exists to satisfy the Store interface.
func (s *Store) Close() error {
	return nil
}

// PutHunt persists a hunt record.
func (s *Store) PutHunt(ctx context.Context, h hunt.Hunt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.ID == 0 {
		return fmt.Errorf("hunt id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hunts[h.ID] = h
	return nil
}

// GetHunt fetches a hunt record by ID.
func (s *Store) GetHunt(ctx context.Context, huntID uint64) (hunt.Hunt, error) {
	if err := ctx.Err(); err != nil {
		return hunt.Hunt{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hunts[huntID]
	if !ok {
		return hunt.Hunt{}, storage.ErrNotFound
	}
	return h, nil
}

// NextHuntID increments and returns the hunt counter.
func (s *Store) NextHuntID(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.huntCounter++
	return s.huntCounter, nil
}

// CurrentHuntID reads the hunt counter without incrementing it.
func (s *Store) CurrentHuntID(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.huntCounter, nil
}

// PutClue persists a clue record and indexes its ID.
func (s *Store) PutClue(ctx context.Context, c hunt.Clue) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.HuntID == 0 {
		return fmt.Errorf("hunt id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clues[clueKey{c.HuntID, c.ClueID}] = c
	s.clueIndex[c.HuntID] = appendUnique(s.clueIndex[c.HuntID], c.ClueID)
	return nil
}

// GetClue fetches a clue by its composite key.
func (s *Store) GetClue(ctx context.Context, huntID uint64, clueID uint32) (hunt.Clue, error) {
	if err := ctx.Err(); err != nil {
		return hunt.Clue{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clues[clueKey{huntID, clueID}]
	if !ok {
		return hunt.Clue{}, storage.ErrNotFound
	}
	return c, nil
}

// ListClueIDs returns the hunt's clue IDs in insertion order.
func (s *Store) ListClueIDs(ctx context.Context, huntID uint64) ([]uint32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint32, len(s.clueIndex[huntID]))
	copy(ids, s.clueIndex[huntID])
	return ids, nil
}

// ListClues returns the hunt's clues in insertion order.
func (s *Store) ListClues(ctx context.Context, huntID uint64) ([]hunt.Clue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var clues []hunt.Clue
	for _, id := range s.clueIndex[huntID] {
		if c, ok := s.clues[clueKey{huntID, id}]; ok {
			clues = append(clues, c)
		}
	}
	return clues, nil
}

// PutProgress persists a progress record and indexes the player.
func (s *Store) PutProgress(ctx context.Context, p hunt.PlayerProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.HuntID == 0 {
		return fmt.Errorf("hunt id is required")
	}
	if p.Player == "" {
		return fmt.Errorf("player is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[progressKey{p.HuntID, p.Player}] = clonedProgress(p)
	s.playerIndex[p.HuntID] = appendUnique(s.playerIndex[p.HuntID], p.Player)
	return nil
}

// GetProgress fetches progress by its composite key.
func (s *Store) GetProgress(ctx context.Context, huntID uint64, player string) (hunt.PlayerProgress, error) {
	if err := ctx.Err(); err != nil {
		return hunt.PlayerProgress{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[progressKey{huntID, player}]
	if !ok {
		return hunt.PlayerProgress{}, storage.ErrNotFound
	}
	return clonedProgress(p), nil
}

// ListPlayers returns the hunt's registered players in registration order.
func (s *Store) ListPlayers(ctx context.Context, huntID uint64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]string, len(s.playerIndex[huntID]))
	copy(players, s.playerIndex[huntID])
	return players, nil
}

// ListProgress returns progress records in registration order.
func (s *Store) ListProgress(ctx context.Context, huntID uint64) ([]hunt.PlayerProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []hunt.PlayerProgress
	for _, player := range s.playerIndex[huntID] {
		if p, ok := s.progress[progressKey{huntID, player}]; ok {
			records = append(records, clonedProgress(p))
		}
	}
	return records, nil
}

// AppendEvent assigns the next per-hunt sequence number and stores the event.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if evt.HuntID == 0 {
		return fmt.Errorf("hunt id is required")
	}
	if !evt.Type.IsValid() {
		return fmt.Errorf("event type is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	evt.Seq = uint64(len(s.events[evt.HuntID])) + 1
	s.events[evt.HuntID] = append(s.events[evt.HuntID], evt)
	return nil
}

// ListEvents returns the hunt's journal in sequence order.
func (s *Store) ListEvents(ctx context.Context, huntID uint64) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]event.Event, len(s.events[huntID]))
	copy(events, s.events[huntID])
	return events, nil
}

// appendUnique appends item to list unless it is already present.
func appendUnique[T comparable](list []T, item T) []T {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

// clonedProgress copies the completed-clue slice so callers cannot alias
// stored state.
func clonedProgress(p hunt.PlayerProgress) hunt.PlayerProgress {
	if p.CompletedClues != nil {
		cloned := make([]uint32, len(p.CompletedClues))
		copy(cloned, p.CompletedClues)
		p.CompletedClues = cloned
	}
	return p
}
