package hunt

import (
	"errors"
	"testing"
)

func TestNewRewardConfig(t *testing.T) {
	cfg, err := NewRewardConfig(10_000, true, "CNFT", 3)
	if err != nil {
		t.Fatalf("new reward config: %v", err)
	}
	if cfg.ClaimedCount != 0 {
		t.Fatalf("expected zero claimed count, got %d", cfg.ClaimedCount)
	}
	if cfg.XLMPool != 10_000 || cfg.MaxWinners != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := NewRewardConfig(-1, false, "", 1); !errors.Is(err, ErrInvalidRewardConfig) {
		t.Fatalf("expected invalid reward config error, got %v", err)
	}
}

func TestRewardPerWinner(t *testing.T) {
	tests := []struct {
		name       string
		pool       int64
		maxWinners uint32
		want       int64
	}{
		{name: "even split", pool: 9_000, maxWinners: 3, want: 3_000},
		{name: "remainder forfeited", pool: 10_000, maxWinners: 3, want: 3_333},
		{name: "zero winners", pool: 10_000, maxWinners: 0, want: 0},
		{name: "empty pool", pool: 0, maxWinners: 5, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RewardConfig{XLMPool: tt.pool, MaxWinners: tt.maxWinners}
			if got := cfg.RewardPerWinner(); got != tt.want {
				t.Fatalf("RewardPerWinner = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemainingPool(t *testing.T) {
	cfg := RewardConfig{XLMPool: 10_000, MaxWinners: 3}
	if got := cfg.RemainingPool(); got != 10_000 {
		t.Fatalf("expected full pool, got %d", got)
	}
	cfg.ClaimedCount = 2
	if got := cfg.RemainingPool(); got != 10_000-2*3_333 {
		t.Fatalf("expected pool minus two shares, got %d", got)
	}
	cfg.ClaimedCount = 3
	if got := cfg.RemainingPool(); got != 1 {
		t.Fatalf("expected forfeited remainder, got %d", got)
	}
}

func TestHasRewardsAvailable(t *testing.T) {
	h := Hunt{Reward: RewardConfig{MaxWinners: 2}}
	if !h.HasRewardsAvailable() {
		t.Fatal("expected rewards available with open slots")
	}
	h.Reward.ClaimedCount = 2
	if h.HasRewardsAvailable() {
		t.Fatal("expected no rewards with all slots claimed")
	}
	if (Hunt{}).HasRewardsAvailable() {
		t.Fatal("expected no rewards with zero winner slots")
	}
}
