package sqlite

import (
	"context"
	"fmt"

	"github.com/hunty/huntcore/internal/hunt/event"
)

// AppendEvent assigns the next per-hunt sequence number and persists the
// event. Sequence assignment happens inside the insert statement, so
// concurrent appends never collide.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if evt.HuntID == 0 {
		return fmt.Errorf("hunt id is required")
	}
	if !evt.Type.IsValid() {
		return fmt.Errorf("event type is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO events (hunt_id, seq, timestamp, type, actor, payload)
VALUES (
    ?,
    (SELECT COALESCE(MAX(seq), 0) + 1 FROM events WHERE hunt_id = ?),
    ?, ?, ?, ?
)
`,
		evt.HuntID, evt.HuntID,
		formatTime(evt.Timestamp), string(evt.Type), evt.Actor, string(evt.PayloadJSON),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ListEvents returns the hunt's journal in sequence order.
func (s *Store) ListEvents(ctx context.Context, huntID uint64) ([]event.Event, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT hunt_id, seq, timestamp, type, actor, payload
FROM events WHERE hunt_id = ? ORDER BY seq
`, huntID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var evt event.Event
		var timestamp, typ, payload string
		if err := rows.Scan(&evt.HuntID, &evt.Seq, &timestamp, &typ, &evt.Actor, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if evt.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, err
		}
		evt.Type = event.Type(typ)
		if payload != "" {
			evt.PayloadJSON = []byte(payload)
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}
