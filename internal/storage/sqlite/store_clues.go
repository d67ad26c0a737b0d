package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/storage"
)

// PutClue persists a clue record. On first insert the clue takes the next
// position in the hunt's enumeration order; overwrites keep the original
// position so listing order never changes.
func (s *Store) PutClue(ctx context.Context, c hunt.Clue) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if c.HuntID == 0 {
		return fmt.Errorf("hunt id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO clues (
    hunt_id, clue_id, position, question, answer_hash, points,
    is_required, hint, has_location, latitude, longitude, radius
) VALUES (
    ?, ?,
    (SELECT COALESCE(MAX(position), 0) + 1 FROM clues WHERE hunt_id = ?),
    ?, ?, ?, ?, ?, ?, ?, ?, ?
)
ON CONFLICT (hunt_id, clue_id) DO UPDATE SET
    question = excluded.question,
    answer_hash = excluded.answer_hash,
    points = excluded.points,
    is_required = excluded.is_required,
    hint = excluded.hint,
    has_location = excluded.has_location,
    latitude = excluded.latitude,
    longitude = excluded.longitude,
    radius = excluded.radius
`,
		c.HuntID, c.ClueID, c.HuntID,
		c.Question, c.AnswerHash, c.Points,
		boolToInt(c.IsRequired), c.Hint, boolToInt(c.HasLocation),
		c.Location.Latitude, c.Location.Longitude, c.Location.Radius,
	)
	if err != nil {
		return fmt.Errorf("put clue: %w", err)
	}
	return nil
}

// GetClue fetches a clue by its (hunt ID, clue ID) composite key.
func (s *Store) GetClue(ctx context.Context, huntID uint64, clueID uint32) (hunt.Clue, error) {
	if err := s.ready(ctx); err != nil {
		return hunt.Clue{}, err
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT hunt_id, clue_id, question, answer_hash, points,
    is_required, hint, has_location, latitude, longitude, radius
FROM clues WHERE hunt_id = ? AND clue_id = ?
`, huntID, clueID)

	c, err := scanClue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return hunt.Clue{}, storage.ErrNotFound
		}
		return hunt.Clue{}, fmt.Errorf("get clue: %w", err)
	}
	return c, nil
}

// ListClueIDs returns the hunt's clue IDs in insertion order.
func (s *Store) ListClueIDs(ctx context.Context, huntID uint64) ([]uint32, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT clue_id FROM clues WHERE hunt_id = ? ORDER BY position`, huntID)
	if err != nil {
		return nil, fmt.Errorf("list clue ids: %w", err)
	}
	defer rows.Close()

	var ids []uint32
	for rows.Next() {
		var id uint32
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan clue id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListClues returns the hunt's clues in insertion order.
func (s *Store) ListClues(ctx context.Context, huntID uint64) ([]hunt.Clue, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT hunt_id, clue_id, question, answer_hash, points,
    is_required, hint, has_location, latitude, longitude, radius
FROM clues WHERE hunt_id = ? ORDER BY position
`, huntID)
	if err != nil {
		return nil, fmt.Errorf("list clues: %w", err)
	}
	defer rows.Close()

	var clues []hunt.Clue
	for rows.Next() {
		c, err := scanClue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan clue: %w", err)
		}
		clues = append(clues, c)
	}
	return clues, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClue(row rowScanner) (hunt.Clue, error) {
	var c hunt.Clue
	var isRequired, hasLocation int
	err := row.Scan(
		&c.HuntID, &c.ClueID, &c.Question, &c.AnswerHash, &c.Points,
		&isRequired, &c.Hint, &hasLocation,
		&c.Location.Latitude, &c.Location.Longitude, &c.Location.Radius,
	)
	if err != nil {
		return hunt.Clue{}, err
	}
	c.IsRequired = isRequired != 0
	c.HasLocation = hasLocation != 0
	return c, nil
}
