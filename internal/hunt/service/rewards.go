package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/hunt/event"
	apperrors "github.com/hunty/huntcore/internal/platform/errors"
)

// ClaimReward pays one winner slot to a player who finished the hunt. Each
// player claims at most once and the pool serves at most MaxWinners claims.
// Claims stay open after the hunt completes; a cancelled hunt pays nothing
// because cancellation already refunded the pool.
func (s *Service) ClaimReward(ctx context.Context, huntID uint64, player string) (hunt.PlayerProgress, error) {
	mu := s.locks.lock(huntID)
	defer mu.Unlock()

	h, err := s.loadHunt(ctx, huntID)
	if err != nil {
		return hunt.PlayerProgress{}, err
	}
	if h.Status == hunt.StatusCancelled || h.Status == hunt.StatusDraft {
		return hunt.PlayerProgress{}, hunt.InvalidStatusError(h.Status)
	}

	progress, err := s.loadProgress(ctx, huntID, player)
	if err != nil {
		return hunt.PlayerProgress{}, err
	}
	if !progress.IsCompleted {
		return hunt.PlayerProgress{}, apperrors.WithMetadata(apperrors.CodeHuntInvalidStatus,
			"reward claims require a finished run",
			map[string]string{"HuntID": formatHuntID(huntID), "Player": player})
	}
	if progress.RewardClaimed {
		return hunt.PlayerProgress{}, apperrors.WithMetadata(apperrors.CodeRewardAlreadyClaimed,
			"reward was already claimed",
			map[string]string{"HuntID": formatHuntID(huntID), "Player": player})
	}
	if !h.HasRewardsAvailable() {
		return hunt.PlayerProgress{}, apperrors.WithMetadata(apperrors.CodeRewardPoolInsufficient,
			"all winner slots are claimed",
			map[string]string{"MaxWinners": strconv.FormatUint(uint64(h.Reward.MaxWinners), 10)})
	}

	amount := h.Reward.RewardPerWinner()
	if err := s.settlement.PayWinner(ctx, huntID, player, amount, h.Reward.NFTEnabled); err != nil {
		return hunt.PlayerProgress{}, fmt.Errorf("pay reward for hunt %d to %s: %w", huntID, player, err)
	}

	h.Reward.ClaimedCount++
	if err := s.stores.Hunts.PutHunt(ctx, h); err != nil {
		return hunt.PlayerProgress{}, fmt.Errorf("persist hunt %d: %w", huntID, err)
	}

	progress.RewardClaimed = true
	if err := s.stores.Progress.PutProgress(ctx, progress); err != nil {
		return hunt.PlayerProgress{}, fmt.Errorf("persist progress %d/%s: %w", huntID, player, err)
	}

	s.emitter.Emit(ctx, huntID, event.TypeRewardClaimed, player, event.RewardClaimedPayload{
		Player:     player,
		XLMAmount:  amount,
		NFTAwarded: h.Reward.NFTEnabled,
	})
	return progress, nil
}
