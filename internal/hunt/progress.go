package hunt

import "time"

// PlayerProgress records which clues a player has completed in a hunt and
// their accumulated score. One record exists per (hunt, player) pair.
type PlayerProgress struct {
	HuntID uint64
	Player string
	// CompletedClues is insertion-ordered and duplicate-free.
	CompletedClues []uint32
	// TotalScore always equals the sum of points over CompletedClues.
	TotalScore uint32
	StartedAt  time.Time
	// CompletedAt is zero until the player finishes every required clue.
	CompletedAt   time.Time
	IsCompleted   bool
	RewardClaimed bool
}

// NewPlayerProgress creates an empty progress record for a player joining a hunt.
func NewPlayerProgress(huntID uint64, player string, now time.Time) PlayerProgress {
	return PlayerProgress{
		HuntID:    huntID,
		Player:    player,
		StartedAt: now.UTC(),
	}
}

// HasCompletedClue reports whether the player already completed the clue.
func (p PlayerProgress) HasCompletedClue(clueID uint32) bool {
	for _, id := range p.CompletedClues {
		if id == clueID {
			return true
		}
	}
	return false
}

// CompleteClue records a clue completion and adds its points to the score.
// Replaying a completion of the same clue is a no-op, so scores never
// double-count. It never fails; callers confirm clue existence and answer
// correctness first.
func (p *PlayerProgress) CompleteClue(clueID uint32, points uint32) {
	if p.HasCompletedClue(clueID) {
		return
	}
	p.CompletedClues = append(p.CompletedClues, clueID)
	p.TotalScore += points
}
