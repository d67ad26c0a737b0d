package hunt

import apperrors "github.com/hunty/huntcore/internal/platform/errors"

// ErrInvalidRewardConfig indicates a negative pool amount.
var ErrInvalidRewardConfig = apperrors.New(apperrors.CodeRewardInvalidConfig,
	"reward pool must not be negative")

// RewardConfig is the fund pool and winner-slot configuration attached to a
// hunt. The zero value is the unfunded config every new hunt starts with.
type RewardConfig struct {
	// XLMPool is the funded amount in stroops.
	XLMPool    int64
	NFTEnabled bool
	// NFTContract references the NFT contract; empty means none.
	NFTContract string
	MaxWinners  uint32
	// ClaimedCount never exceeds MaxWinners.
	ClaimedCount uint32
}

// NewRewardConfig validates and builds a reward config with no claims.
func NewRewardConfig(xlmPool int64, nftEnabled bool, nftContract string, maxWinners uint32) (RewardConfig, error) {
	if xlmPool < 0 {
		return RewardConfig{}, ErrInvalidRewardConfig
	}
	return RewardConfig{
		XLMPool:     xlmPool,
		NFTEnabled:  nftEnabled,
		NFTContract: nftContract,
		MaxWinners:  maxWinners,
	}, nil
}

// RewardPerWinner returns the pool share for each winner. Integer division;
// the remainder is forfeited. Zero winners yields zero.
func (r RewardConfig) RewardPerWinner() int64 {
	if r.MaxWinners == 0 {
		return 0
	}
	return r.XLMPool / int64(r.MaxWinners)
}

// RemainingPool returns the unclaimed pool balance in stroops.
func (r RewardConfig) RemainingPool() int64 {
	remaining := r.XLMPool - int64(r.ClaimedCount)*r.RewardPerWinner()
	if remaining < 0 {
		return 0
	}
	return remaining
}
