package event

// HuntCreatedPayload captures the payload for hunt.created events.
type HuntCreatedPayload struct {
	Creator string `json:"creator"`
	Title   string `json:"title"`
}

// HuntActivatedPayload captures the payload for hunt.activated events.
type HuntActivatedPayload struct {
	ActivatedAt int64 `json:"activated_at"`
}

// HuntStatusPayload captures the payload for deactivation, cancellation,
// and completion events.
type HuntStatusPayload struct {
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

// ClueAddedPayload captures the payload for clue.added events.
type ClueAddedPayload struct {
	ClueID     uint32 `json:"clue_id"`
	Points     uint32 `json:"points"`
	IsRequired bool   `json:"is_required"`
}

// ClueCompletedPayload captures the payload for clue.completed events.
type ClueCompletedPayload struct {
	Player       string `json:"player"`
	ClueID       uint32 `json:"clue_id"`
	PointsEarned uint32 `json:"points_earned"`
}

// PlayerRegisteredPayload captures the payload for player.registered events.
type PlayerRegisteredPayload struct {
	Player string `json:"player"`
}

// PlayerCompletedPayload captures the payload for player.completed events.
type PlayerCompletedPayload struct {
	Player         string `json:"player"`
	TotalScore     uint32 `json:"total_score"`
	CompletionTime int64  `json:"completion_time"`
}

// RewardClaimedPayload captures the payload for reward.claimed events.
type RewardClaimedPayload struct {
	Player     string `json:"player"`
	XLMAmount  int64  `json:"xlm_amount"`
	NFTAwarded bool   `json:"nft_awarded"`
}
