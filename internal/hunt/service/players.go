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

// RegisterPlayer creates an empty progress record for a player joining an
// active hunt. Registering twice is rejected, never overwritten.
func (s *Service) RegisterPlayer(ctx context.Context, huntID uint64, player string) (hunt.PlayerProgress, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.PlayerProgress{}, err
	}
	now := s.clock().UTC()
	if !h.IsActive(now) {
		return hunt.PlayerProgress{}, huntNotActive(huntID)
	}

	if _, err := s.stores.Progress.GetProgress(ctx, huntID, player); err == nil {
		return hunt.PlayerProgress{}, apperrors.WithMetadata(apperrors.CodePlayerAlreadyRegistered,
			"player is already registered for this hunt",
			map[string]string{"HuntID": formatHuntID(huntID), "Player": player})
	} else if !errors.Is(err, storage.ErrNotFound) {
		return hunt.PlayerProgress{}, fmt.Errorf("load progress %d/%s: %w", huntID, player, err)
	}

	progress := hunt.NewPlayerProgress(huntID, player, now)
	if err := s.stores.Progress.PutProgress(ctx, progress); err != nil {
		return hunt.PlayerProgress{}, fmt.Errorf("persist progress %d/%s: %w", huntID, player, err)
	}

	s.emitter.Emit(ctx, huntID, event.TypePlayerRegistered, player, event.PlayerRegisteredPayload{
		Player: player,
	})
	return progress, nil
}

// SubmitAnswer checks a player's answer fingerprint against a clue and, on a
// match, records the completion and its points. Completing the last required
// clue finishes the player's run. Wrong answers and replays leave progress
// untouched.
func (s *Service) SubmitAnswer(ctx context.Context, huntID uint64, player string, clueID uint32, answerHash string) (hunt.PlayerProgress, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.PlayerProgress{}, err
	}
	now := s.clock().UTC()
	if !h.IsActive(now) {
		return hunt.PlayerProgress{}, huntNotActive(huntID)
	}

	progress, err := s.loadProgress(ctx, huntID, player)
	if err != nil {
		return hunt.PlayerProgress{}, err
	}

	clue, err := s.stores.Clues.GetClue(ctx, huntID, clueID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return hunt.PlayerProgress{}, apperrors.WithMetadata(apperrors.CodeClueNotFound,
				"clue not found",
				map[string]string{"HuntID": formatHuntID(huntID), "ClueID": strconv.FormatUint(uint64(clueID), 10)})
		}
		return hunt.PlayerProgress{}, fmt.Errorf("load clue %d/%d: %w", huntID, clueID, err)
	}

	if progress.HasCompletedClue(clueID) {
		return hunt.PlayerProgress{}, apperrors.WithMetadata(apperrors.CodeClueAlreadyCompleted,
			"clue is already completed",
			map[string]string{"ClueID": strconv.FormatUint(uint64(clueID), 10)})
	}
	if clue.AnswerHash != answerHash {
		return hunt.PlayerProgress{}, apperrors.New(apperrors.CodeClueInvalidAnswer,
			"answer does not match")
	}

	progress.CompleteClue(clueID, clue.Points)

	finished := false
	if !progress.IsCompleted {
		done, err := s.runComplete(ctx, h, progress)
		if err != nil {
			return hunt.PlayerProgress{}, err
		}
		if done {
			progress.IsCompleted = true
			progress.CompletedAt = now
			finished = true
		}
	}

	if err := s.stores.Progress.PutProgress(ctx, progress); err != nil {
		return hunt.PlayerProgress{}, fmt.Errorf("persist progress %d/%s: %w", huntID, player, err)
	}

	s.emitter.Emit(ctx, huntID, event.TypeClueCompleted, player, event.ClueCompletedPayload{
		Player:       player,
		ClueID:       clueID,
		PointsEarned: clue.Points,
	})
	if finished {
		s.emitter.Emit(ctx, huntID, event.TypePlayerCompleted, player, event.PlayerCompletedPayload{
			Player:         player,
			TotalScore:     progress.TotalScore,
			CompletionTime: now.Unix(),
		})
	}
	return progress, nil
}

// runComplete reports whether the player's run now satisfies the hunt's
// completion criteria: every required clue completed, or every clue when the
// hunt marks none as required.
func (s *Service) runComplete(ctx context.Context, h hunt.Hunt, progress hunt.PlayerProgress) (bool, error) {
	if h.TotalClues == 0 {
		return false, nil
	}
	if h.RequiredClues == 0 {
		return uint32(len(progress.CompletedClues)) == h.TotalClues, nil
	}

	clues, err := s.stores.Clues.ListClues(ctx, h.ID)
	if err != nil {
		return false, fmt.Errorf("list clues for hunt %d: %w", h.ID, err)
	}
	for _, clue := range clues {
		if clue.IsRequired && !progress.HasCompletedClue(clue.ClueID) {
			return false, nil
		}
	}
	return true, nil
}

// loadProgress fetches a player's progress and maps storage.ErrNotFound to
// the not-registered error.
func (s *Service) loadProgress(ctx context.Context, huntID uint64, player string) (hunt.PlayerProgress, error) {
	progress, err := s.stores.Progress.GetProgress(ctx, huntID, player)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return hunt.PlayerProgress{}, apperrors.WithMetadata(apperrors.CodePlayerNotRegistered,
				"player is not registered for this hunt",
				map[string]string{"HuntID": formatHuntID(huntID), "Player": player})
		}
		return hunt.PlayerProgress{}, fmt.Errorf("load progress %d/%s: %w", huntID, player, err)
	}
	return progress, nil
}
