package bbolt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/hunty/huntcore/internal/hunt/event"
	"go.etcd.io/bbolt"
)

// AppendEvent assigns the next per-hunt sequence number and persists the
// event. Sequence assignment and record write share one transaction.
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

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(eventBucket))
		if bucket == nil {
			return fmt.Errorf("event bucket is missing")
		}

		evt.Seq = lastEventSeq(bucket, evt.HuntID) + 1
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		return bucket.Put(eventKey(evt.HuntID, evt.Seq), payload)
	})
}

// ListEvents returns the hunt's journal in sequence order.
func (s *Store) ListEvents(ctx context.Context, huntID uint64) ([]event.Event, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var events []event.Event
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(eventBucket))
		if bucket == nil {
			return fmt.Errorf("event bucket is missing")
		}

		prefix := huntKey(huntID)
		cursor := bucket.Cursor()
		for key, payload := cursor.Seek(prefix); key != nil && bytes.HasPrefix(key, prefix); key, payload = cursor.Next() {
			var evt event.Event
			if err := json.Unmarshal(payload, &evt); err != nil {
				return fmt.Errorf("unmarshal event: %w", err)
			}
			events = append(events, evt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// lastEventSeq finds the highest sequence number stored for a hunt by
// seeking to the end of its key range.
func lastEventSeq(bucket *bbolt.Bucket, huntID uint64) uint64 {
	cursor := bucket.Cursor()
	prefix := huntKey(huntID)

	// Seek just past the hunt's range, then step back one key.
	key, _ := cursor.Seek(eventKey(huntID+1, 0))
	if key == nil {
		key, _ = cursor.Last()
	} else {
		key, _ = cursor.Prev()
	}
	if key == nil || !bytes.HasPrefix(key, prefix) || len(key) != 16 {
		return 0
	}
	return decodeCounter(key[8:])
}
