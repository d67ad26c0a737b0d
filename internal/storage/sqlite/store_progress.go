package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/storage"
)

// PutProgress persists a player progress record. First insert takes the next
// registration position; overwrites keep it.
func (s *Store) PutProgress(ctx context.Context, p hunt.PlayerProgress) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if p.HuntID == 0 {
		return fmt.Errorf("hunt id is required")
	}
	if p.Player == "" {
		return fmt.Errorf("player is required")
	}

	completed := p.CompletedClues
	if completed == nil {
		completed = []uint32{}
	}
	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("marshal completed clues: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO progress (
    hunt_id, player, position, completed_clues, total_score,
    started_at, completed_at, is_completed, reward_claimed
) VALUES (
    ?, ?,
    (SELECT COALESCE(MAX(position), 0) + 1 FROM progress WHERE hunt_id = ?),
    ?, ?, ?, ?, ?, ?
)
ON CONFLICT (hunt_id, player) DO UPDATE SET
    completed_clues = excluded.completed_clues,
    total_score = excluded.total_score,
    started_at = excluded.started_at,
    completed_at = excluded.completed_at,
    is_completed = excluded.is_completed,
    reward_claimed = excluded.reward_claimed
`,
		p.HuntID, p.Player, p.HuntID,
		string(completedJSON), p.TotalScore,
		formatTime(p.StartedAt), formatTime(p.CompletedAt),
		boolToInt(p.IsCompleted), boolToInt(p.RewardClaimed),
	)
	if err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}

// GetProgress fetches progress by its (hunt ID, player) composite key.
func (s *Store) GetProgress(ctx context.Context, huntID uint64, player string) (hunt.PlayerProgress, error) {
	if err := s.ready(ctx); err != nil {
		return hunt.PlayerProgress{}, err
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT hunt_id, player, completed_clues, total_score,
    started_at, completed_at, is_completed, reward_claimed
FROM progress WHERE hunt_id = ? AND player = ?
`, huntID, player)

	p, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return hunt.PlayerProgress{}, storage.ErrNotFound
		}
		return hunt.PlayerProgress{}, fmt.Errorf("get progress: %w", err)
	}
	return p, nil
}

// ListPlayers returns the hunt's registered players in registration order.
func (s *Store) ListPlayers(ctx context.Context, huntID uint64) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT player FROM progress WHERE hunt_id = ? ORDER BY position`, huntID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var player string
		if err := rows.Scan(&player); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// ListProgress returns progress records in registration order.
func (s *Store) ListProgress(ctx context.Context, huntID uint64) ([]hunt.PlayerProgress, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT hunt_id, player, completed_clues, total_score,
    started_at, completed_at, is_completed, reward_claimed
FROM progress WHERE hunt_id = ? ORDER BY position
`, huntID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var records []hunt.PlayerProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func scanProgress(row rowScanner) (hunt.PlayerProgress, error) {
	var p hunt.PlayerProgress
	var completedJSON string
	var startedAt, completedAt string
	var isCompleted, rewardClaimed int
	err := row.Scan(
		&p.HuntID, &p.Player, &completedJSON, &p.TotalScore,
		&startedAt, &completedAt, &isCompleted, &rewardClaimed,
	)
	if err != nil {
		return hunt.PlayerProgress{}, err
	}

	if err := json.Unmarshal([]byte(completedJSON), &p.CompletedClues); err != nil {
		return hunt.PlayerProgress{}, fmt.Errorf("unmarshal completed clues: %w", err)
	}
	if len(p.CompletedClues) == 0 {
		p.CompletedClues = nil
	}
	if p.StartedAt, err = parseTime(startedAt); err != nil {
		return hunt.PlayerProgress{}, err
	}
	if p.CompletedAt, err = parseTime(completedAt); err != nil {
		return hunt.PlayerProgress{}, err
	}
	p.IsCompleted = isCompleted != 0
	p.RewardClaimed = rewardClaimed != 0
	return p, nil
}
