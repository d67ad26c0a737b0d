package service

import "context"

// Settlement moves reward-pool funds. The controller calls it when a hunt
// is cancelled (pool refund) and when a winner claims (payout). Amounts are
// stroops.
type Settlement interface {
	// RefundPool returns the unclaimed pool balance to the hunt creator.
	RefundPool(ctx context.Context, huntID uint64, creator string, amount int64) error
	// PayWinner transfers a single winner's share to the player.
	PayWinner(ctx context.Context, huntID uint64, player string, amount int64, nftAwarded bool) error
}

// NoopSettlement performs no transfers. It is the default collaborator for
// deployments that track reward accounting off-ledger.
type NoopSettlement struct{}

func (NoopSettlement) RefundPool(context.Context, uint64, string, int64) error {
	return nil
}

func (NoopSettlement) PayWinner(context.Context, uint64, string, int64, bool) error {
	return nil
}
