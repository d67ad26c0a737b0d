package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/hunt/event"
	apperrors "github.com/hunty/huntcore/internal/platform/errors"
	"github.com/hunty/huntcore/internal/storage"
)

// GetHunt fetches a hunt by ID.
func (s *Service) GetHunt(ctx context.Context, huntID uint64) (hunt.Hunt, error) {
	return s.loadHunt(ctx, huntID)
}

// GetClue fetches one clue of a hunt.
func (s *Service) GetClue(ctx context.Context, huntID uint64, clueID uint32) (hunt.Clue, error) {
	clue, err := s.stores.Clues.GetClue(ctx, huntID, clueID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return hunt.Clue{}, apperrors.WithMetadata(apperrors.CodeClueNotFound,
				"clue not found",
				map[string]string{"HuntID": formatHuntID(huntID), "ClueID": strconv.FormatUint(uint64(clueID), 10)})
		}
		return hunt.Clue{}, fmt.Errorf("load clue %d/%d: %w", huntID, clueID, err)
	}
	return clue, nil
}

// ListClues returns a hunt's clues in the order they were added.
func (s *Service) ListClues(ctx context.Context, huntID uint64) ([]hunt.Clue, error) {
	if _, err := s.loadHunt(ctx, huntID); err != nil {
		return nil, err
	}
	return s.stores.Clues.ListClues(ctx, huntID)
}

// GetProgress fetches a player's progress in a hunt.
func (s *Service) GetProgress(ctx context.Context, huntID uint64, player string) (hunt.PlayerProgress, error) {
	return s.loadProgress(ctx, huntID, player)
}

// ListPlayers returns a hunt's registered players in registration order.
func (s *Service) ListPlayers(ctx context.Context, huntID uint64) ([]string, error) {
	if _, err := s.loadHunt(ctx, huntID); err != nil {
		return nil, err
	}
	return s.stores.Progress.ListPlayers(ctx, huntID)
}

// ListProgress returns the progress records of every registered player.
func (s *Service) ListProgress(ctx context.Context, huntID uint64) ([]hunt.PlayerProgress, error) {
	if _, err := s.loadHunt(ctx, huntID); err != nil {
		return nil, err
	}
	return s.stores.Progress.ListProgress(ctx, huntID)
}

// ListEvents returns a hunt's journal in sequence order.
func (s *Service) ListEvents(ctx context.Context, huntID uint64) ([]event.Event, error) {
	if s.stores.Events == nil {
		return nil, nil
	}
	return s.stores.Events.ListEvents(ctx, huntID)
}

// CurrentHuntID returns the last allocated hunt ID; 0 means no hunts exist.
func (s *Service) CurrentHuntID(ctx context.Context) (uint64, error) {
	return s.stores.Hunts.CurrentHuntID(ctx)
}
