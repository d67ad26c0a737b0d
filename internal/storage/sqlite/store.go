// Package sqlite provides a SQLite-backed hunt store. The clues and progress
// tables double as the enumeration indices: composite primary keys suppress
// duplicates and a position column preserves insertion order.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/platform/storage/sqlitemigrate"
	"github.com/hunty/huntcore/internal/storage"
	"github.com/hunty/huntcore/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

const huntCounterName = "hunt_id"

// Store provides a SQLite-backed store implementing the storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ready guards uninitialized stores and cancelled contexts.
func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutHunt persists a hunt record, overwriting any previous version.
func (s *Store) PutHunt(ctx context.Context, h hunt.Hunt) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if h.ID == 0 {
		return fmt.Errorf("hunt id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO hunts (
    hunt_id, creator, title, description, status,
    created_at, activated_at, end_time,
    xlm_pool, nft_enabled, nft_contract, max_winners, claimed_count,
    total_clues, required_clues
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (hunt_id) DO UPDATE SET
    creator = excluded.creator,
    title = excluded.title,
    description = excluded.description,
    status = excluded.status,
    created_at = excluded.created_at,
    activated_at = excluded.activated_at,
    end_time = excluded.end_time,
    xlm_pool = excluded.xlm_pool,
    nft_enabled = excluded.nft_enabled,
    nft_contract = excluded.nft_contract,
    max_winners = excluded.max_winners,
    claimed_count = excluded.claimed_count,
    total_clues = excluded.total_clues,
    required_clues = excluded.required_clues
`,
		h.ID, h.Creator, h.Title, h.Description, int(h.Status),
		formatTime(h.CreatedAt), formatTime(h.ActivatedAt), formatTime(h.EndTime),
		h.Reward.XLMPool, boolToInt(h.Reward.NFTEnabled), h.Reward.NFTContract,
		h.Reward.MaxWinners, h.Reward.ClaimedCount,
		h.TotalClues, h.RequiredClues,
	)
	if err != nil {
		return fmt.Errorf("put hunt: %w", err)
	}
	return nil
}

// GetHunt fetches a hunt record by ID.
func (s *Store) GetHunt(ctx context.Context, huntID uint64) (hunt.Hunt, error) {
	if err := s.ready(ctx); err != nil {
		return hunt.Hunt{}, err
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT hunt_id, creator, title, description, status,
    created_at, activated_at, end_time,
    xlm_pool, nft_enabled, nft_contract, max_winners, claimed_count,
    total_clues, required_clues
FROM hunts WHERE hunt_id = ?
`, huntID)

	var record hunt.Hunt
	var status int
	var createdAt, activatedAt, endTime string
	var nftEnabled int
	err := row.Scan(
		&record.ID, &record.Creator, &record.Title, &record.Description, &status,
		&createdAt, &activatedAt, &endTime,
		&record.Reward.XLMPool, &nftEnabled, &record.Reward.NFTContract,
		&record.Reward.MaxWinners, &record.Reward.ClaimedCount,
		&record.TotalClues, &record.RequiredClues,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return hunt.Hunt{}, storage.ErrNotFound
		}
		return hunt.Hunt{}, fmt.Errorf("get hunt: %w", err)
	}

	record.Status = hunt.Status(status)
	record.Reward.NFTEnabled = nftEnabled != 0
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return hunt.Hunt{}, err
	}
	if record.ActivatedAt, err = parseTime(activatedAt); err != nil {
		return hunt.Hunt{}, err
	}
	if record.EndTime, err = parseTime(endTime); err != nil {
		return hunt.Hunt{}, err
	}
	return record, nil
}

// NextHuntID increments the hunt counter and returns the new value. The
// upsert runs as a single statement, so it is atomic with respect to
// concurrent callers.
func (s *Store) NextHuntID(ctx context.Context) (uint64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}

	row := s.sqlDB.QueryRowContext(ctx, `
INSERT INTO counters (name, value) VALUES (?, 1)
ON CONFLICT (name) DO UPDATE SET value = value + 1
RETURNING value
`, huntCounterName)

	var next uint64
	if err := row.Scan(&next); err != nil {
		return 0, fmt.Errorf("next hunt id: %w", err)
	}
	return next, nil
}

// CurrentHuntID reads the hunt counter without incrementing it.
func (s *Store) CurrentHuntID(ctx context.Context) (uint64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE name = ?`, huntCounterName)

	var current uint64
	if err := row.Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("current hunt id: %w", err)
	}
	return current, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
