package service

import (
	"context"
	"fmt"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/hunt/event"
)

// AddClue appends a clue to a draft hunt and bumps the hunt's clue counters.
// Clue IDs are dense per hunt: the first clue is 1, the Nth is N. Only the
// creator may add clues, and only while the hunt is a draft.
func (s *Service) AddClue(ctx context.Context, huntID uint64, caller string, input hunt.CreateClueInput) (hunt.Clue, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.Clue{}, err
	}
	if h.Creator != caller {
		return hunt.Clue{}, unauthorized()
	}
	if h.Status != hunt.StatusDraft {
		return hunt.Clue{}, hunt.InvalidStatusError(h.Status)
	}

	clueID := h.TotalClues + 1
	clue, err := hunt.NewClue(huntID, clueID, input)
	if err != nil {
		return hunt.Clue{}, err
	}

	if err := s.stores.Clues.PutClue(ctx, clue); err != nil {
		return hunt.Clue{}, fmt.Errorf("persist clue %d/%d: %w", huntID, clueID, err)
	}

	h.TotalClues = clueID
	if clue.IsRequired {
		h.RequiredClues++
	}
	if err := s.stores.Hunts.PutHunt(ctx, h); err != nil {
		return hunt.Clue{}, fmt.Errorf("persist hunt %d: %w", huntID, err)
	}

	s.emitter.Emit(ctx, huntID, event.TypeClueAdded, caller, event.ClueAddedPayload{
		ClueID:     clue.ClueID,
		Points:     clue.Points,
		IsRequired: clue.IsRequired,
	})
	return clue, nil
}

// ConfigureRewards replaces the reward configuration of a draft hunt. The
// claimed count resets to zero with the new config.
func (s *Service) ConfigureRewards(ctx context.Context, huntID uint64, caller string, xlmPool int64, nftEnabled bool, nftContract string, maxWinners uint32) (hunt.Hunt, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.Hunt{}, err
	}
	if h.Creator != caller {
		return hunt.Hunt{}, unauthorized()
	}
	if h.Status != hunt.StatusDraft {
		return hunt.Hunt{}, hunt.InvalidStatusError(h.Status)
	}

	cfg, err := hunt.NewRewardConfig(xlmPool, nftEnabled, nftContract, maxWinners)
	if err != nil {
		return hunt.Hunt{}, err
	}

	h.Reward = cfg
	if err := s.stores.Hunts.PutHunt(ctx, h); err != nil {
		return hunt.Hunt{}, fmt.Errorf("persist hunt %d: %w", huntID, err)
	}
	return h, nil
}
