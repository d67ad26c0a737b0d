package bbolt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/storage"
	"go.etcd.io/bbolt"
)

// PutClue persists a clue record and appends its ID to the hunt's clue
// index. Record write and index append share one transaction.
func (s *Store) PutClue(ctx context.Context, c hunt.Clue) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if c.HuntID == 0 {
		return fmt.Errorf("hunt id is required")
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal clue: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(clueBucket))
		if bucket == nil {
			return fmt.Errorf("clue bucket is missing")
		}
		if err := bucket.Put(clueKey(c.HuntID, c.ClueID), payload); err != nil {
			return err
		}
		return appendUniqueClueID(tx, c.HuntID, c.ClueID)
	})
}

// GetClue fetches a clue by its (hunt ID, clue ID) composite key.
func (s *Store) GetClue(ctx context.Context, huntID uint64, clueID uint32) (hunt.Clue, error) {
	if err := s.ready(ctx); err != nil {
		return hunt.Clue{}, err
	}

	var c hunt.Clue
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(clueBucket))
		if bucket == nil {
			return fmt.Errorf("clue bucket is missing")
		}
		payload := bucket.Get(clueKey(huntID, clueID))
		if payload == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(payload, &c); err != nil {
			return fmt.Errorf("unmarshal clue: %w", err)
		}
		return nil
	})
	if err != nil {
		return hunt.Clue{}, err
	}
	return c, nil
}

// ListClueIDs returns the hunt's clue IDs in insertion order.
func (s *Store) ListClueIDs(ctx context.Context, huntID uint64) ([]uint32, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var ids []uint32
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(clueIndexBucket))
		if bucket == nil {
			return fmt.Errorf("clue index bucket is missing")
		}
		return decodeIndex(bucket.Get(huntKey(huntID)), &ids)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListClues returns the hunt's clues in insertion order.
func (s *Store) ListClues(ctx context.Context, huntID uint64) ([]hunt.Clue, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var clues []hunt.Clue
	err := s.db.View(func(tx *bbolt.Tx) error {
		indexBucket := tx.Bucket([]byte(clueIndexBucket))
		clueBkt := tx.Bucket([]byte(clueBucket))
		if indexBucket == nil || clueBkt == nil {
			return fmt.Errorf("clue buckets are missing")
		}

		var ids []uint32
		if err := decodeIndex(indexBucket.Get(huntKey(huntID)), &ids); err != nil {
			return err
		}
		for _, id := range ids {
			payload := clueBkt.Get(clueKey(huntID, id))
			if payload == nil {
				continue
			}
			var c hunt.Clue
			if err := json.Unmarshal(payload, &c); err != nil {
				return fmt.Errorf("unmarshal clue %d: %w", id, err)
			}
			clues = append(clues, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clues, nil
}

// appendUniqueClueID appends a clue ID to the hunt's index unless present.
func appendUniqueClueID(tx *bbolt.Tx, huntID uint64, clueID uint32) error {
	bucket := tx.Bucket([]byte(clueIndexBucket))
	if bucket == nil {
		return fmt.Errorf("clue index bucket is missing")
	}

	key := huntKey(huntID)
	var ids []uint32
	if err := decodeIndex(bucket.Get(key), &ids); err != nil {
		return err
	}
	for _, id := range ids {
		if id == clueID {
			return nil
		}
	}
	ids = append(ids, clueID)

	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal clue index: %w", err)
	}
	return bucket.Put(key, payload)
}

// decodeIndex unmarshals an index list, treating a missing key as empty.
func decodeIndex(raw []byte, target any) error {
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("unmarshal index: %w", err)
	}
	return nil
}
