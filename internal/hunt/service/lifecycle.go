package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/hunt/event"
	apperrors "github.com/hunty/huntcore/internal/platform/errors"
	"github.com/hunty/huntcore/internal/storage"
)

// CreateHunt validates the input and persists a new draft hunt. The hunt
// counter only advances after validation succeeds, so rejected input never
// burns an ID.
func (s *Service) CreateHunt(ctx context.Context, input hunt.CreateHuntInput) (hunt.Hunt, error) {
	if s.stores.Hunts == nil {
		return hunt.Hunt{}, fmt.Errorf("hunt store is not configured")
	}

	h, err := hunt.NewHunt(input, s.clock)
	if err != nil {
		return hunt.Hunt{}, err
	}

	id, err := s.stores.Hunts.NextHuntID(ctx)
	if err != nil {
		return hunt.Hunt{}, fmt.Errorf("allocate hunt id: %w", err)
	}
	h.ID = id

	if err := s.stores.Hunts.PutHunt(ctx, h); err != nil {
		return hunt.Hunt{}, fmt.Errorf("persist hunt %d: %w", id, err)
	}

	s.emitter.Emit(ctx, h.ID, event.TypeHuntCreated, h.Creator, event.HuntCreatedPayload{
		Creator: h.Creator,
		Title:   h.Title,
	})
	return h, nil
}

// ActivateHunt moves a draft hunt with at least one clue into the active
// status. Only the creator may activate.
func (s *Service) ActivateHunt(ctx context.Context, huntID uint64, caller string) (hunt.Hunt, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.Hunt{}, err
	}
	if h.Creator != caller {
		return hunt.Hunt{}, unauthorized()
	}
	if !hunt.IsStatusTransitionAllowed(h.Status, hunt.StatusActive) {
		return hunt.Hunt{}, hunt.InvalidStatusError(h.Status)
	}
	if h.TotalClues == 0 {
		return hunt.Hunt{}, apperrors.WithMetadata(apperrors.CodeHuntNoCluesAdded,
			"hunt needs at least one clue before activation",
			map[string]string{"HuntID": formatHuntID(huntID)})
	}

	now := s.clock().UTC()
	h.Status = hunt.StatusActive
	h.ActivatedAt = now

	if err := s.stores.Hunts.PutHunt(ctx, h); err != nil {
		return hunt.Hunt{}, fmt.Errorf("persist hunt %d: %w", huntID, err)
	}

	s.emitter.Emit(ctx, huntID, event.TypeHuntActivated, caller, event.HuntActivatedPayload{
		ActivatedAt: now.Unix(),
	})
	return h, nil
}

// DeactivateHunt returns an active hunt to draft so the creator can amend
// it. ActivatedAt is kept: it records the first activation.
func (s *Service) DeactivateHunt(ctx context.Context, huntID uint64, caller string) (hunt.Hunt, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.Hunt{}, err
	}
	if h.Creator != caller {
		return hunt.Hunt{}, unauthorized()
	}
	if !hunt.IsStatusTransitionAllowed(h.Status, hunt.StatusDraft) {
		return hunt.Hunt{}, hunt.InvalidStatusError(h.Status)
	}

	h.Status = hunt.StatusDraft
	if err := s.stores.Hunts.PutHunt(ctx, h); err != nil {
		return hunt.Hunt{}, fmt.Errorf("persist hunt %d: %w", huntID, err)
	}

	s.emitter.Emit(ctx, huntID, event.TypeHuntDeactivated, caller, event.HuntStatusPayload{
		FromStatus: hunt.StatusLabel(hunt.StatusActive),
		ToStatus:   hunt.StatusLabel(hunt.StatusDraft),
	})
	return h, nil
}

// CancelHunt terminally cancels a draft or active hunt. Any unclaimed reward
// pool is refunded to the creator before the status flips; a refund failure
// aborts the cancellation so funds are never stranded in a cancelled hunt.
func (s *Service) CancelHunt(ctx context.Context, huntID uint64, caller string) (hunt.Hunt, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.Hunt{}, err
	}
	if h.Creator != caller {
		return hunt.Hunt{}, unauthorized()
	}
	if h.Status.IsTerminal() {
		return hunt.Hunt{}, hunt.InvalidStatusError(h.Status)
	}

	if refund := h.Reward.RemainingPool(); refund > 0 {
		if err := s.settlement.RefundPool(ctx, huntID, h.Creator, refund); err != nil {
			return hunt.Hunt{}, fmt.Errorf("refund reward pool for hunt %d: %w", huntID, err)
		}
	}

	prev := h.Status
	h.Status = hunt.StatusCancelled
	if err := s.stores.Hunts.PutHunt(ctx, h); err != nil {
		return hunt.Hunt{}, fmt.Errorf("persist hunt %d: %w", huntID, err)
	}

	s.emitter.Emit(ctx, huntID, event.TypeHuntCancelled, caller, event.HuntStatusPayload{
		FromStatus: hunt.StatusLabel(prev),
		ToStatus:   hunt.StatusLabel(hunt.StatusCancelled),
	})
	return h, nil
}

// CompleteHunt terminally completes an active hunt. Player reward claims
// remain possible after completion.
func (s *Service) CompleteHunt(ctx context.Context, huntID uint64, caller string) (hunt.Hunt, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.Hunt{}, err
	}
	if h.Creator != caller {
		return hunt.Hunt{}, unauthorized()
	}
	if !hunt.IsStatusTransitionAllowed(h.Status, hunt.StatusCompleted) {
		return hunt.Hunt{}, hunt.InvalidStatusError(h.Status)
	}

	h.Status = hunt.StatusCompleted
	if err := s.stores.Hunts.PutHunt(ctx, h); err != nil {
		return hunt.Hunt{}, fmt.Errorf("persist hunt %d: %w", huntID, err)
	}

	s.emitter.Emit(ctx, huntID, event.TypeHuntCompleted, caller, event.HuntStatusPayload{
		FromStatus: hunt.StatusLabel(hunt.StatusActive),
		ToStatus:   hunt.StatusLabel(hunt.StatusCompleted),
	})
	return h, nil
}

// loadHunt fetches a hunt and maps storage.ErrNotFound to the domain
// not-found error.
func (s *Service) loadHunt(ctx context.Context, huntID uint64) (hunt.Hunt, error) {
	if s.stores.Hunts == nil {
		return hunt.Hunt{}, fmt.Errorf("hunt store is not configured")
	}
	h, err := s.stores.Hunts.GetHunt(ctx, huntID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return hunt.Hunt{}, huntNotFound(huntID)
		}
		return hunt.Hunt{}, fmt.Errorf("load hunt %d: %w", huntID, err)
	}
	return h, nil
}
