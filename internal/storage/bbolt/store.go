// Package bbolt provides a BoltDB-backed hunt store. Records are JSON
// encoded; composite keys are big-endian so related records stay adjacent.
package bbolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/storage"
	"go.etcd.io/bbolt"
)

const (
	huntBucket        = "hunt"
	clueBucket        = "clue"
	progressBucket    = "progress"
	clueIndexBucket   = "clue_index"
	playerIndexBucket = "player_index"
	counterBucket     = "counter"
	eventBucket       = "event"

	huntCounterKey = "hunt_id"
)

// Store provides a BoltDB-backed hunt store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PutHunt persists a hunt record.
func (s *Store) PutHunt(ctx context.Context, h hunt.Hunt) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if h.ID == 0 {
		return fmt.Errorf("hunt id is required")
	}

	payload, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal hunt: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(huntBucket))
		if bucket == nil {
			return fmt.Errorf("hunt bucket is missing")
		}
		return bucket.Put(huntKey(h.ID), payload)
	})
}

// GetHunt fetches a hunt record by ID.
func (s *Store) GetHunt(ctx context.Context, huntID uint64) (hunt.Hunt, error) {
	if err := s.ready(ctx); err != nil {
		return hunt.Hunt{}, err
	}

	var h hunt.Hunt
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(huntBucket))
		if bucket == nil {
			return fmt.Errorf("hunt bucket is missing")
		}
		payload := bucket.Get(huntKey(huntID))
		if payload == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(payload, &h); err != nil {
			return fmt.Errorf("unmarshal hunt: %w", err)
		}
		return nil
	})
	if err != nil {
		return hunt.Hunt{}, err
	}
	return h, nil
}

// NextHuntID increments the hunt counter and returns the new value. The
// read-increment-write runs inside a single update transaction, so two
// concurrent callers never observe the same ID.
func (s *Store) NextHuntID(ctx context.Context) (uint64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}

	var next uint64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(counterBucket))
		if bucket == nil {
			return fmt.Errorf("counter bucket is missing")
		}
		next = decodeCounter(bucket.Get([]byte(huntCounterKey))) + 1
		return bucket.Put([]byte(huntCounterKey), encodeCounter(next))
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// CurrentHuntID reads the hunt counter without incrementing it.
func (s *Store) CurrentHuntID(ctx context.Context) (uint64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}

	var current uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(counterBucket))
		if bucket == nil {
			return fmt.Errorf("counter bucket is missing")
		}
		current = decodeCounter(bucket.Get([]byte(huntCounterKey)))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return current, nil
}

// ready guards uninitialized stores and cancelled contexts.
func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) ensureBuckets() error {
	buckets := []string{
		huntBucket, clueBucket, progressBucket,
		clueIndexBucket, playerIndexBucket, counterBucket, eventBucket,
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// huntKey encodes a hunt ID as a big-endian key.
func huntKey(huntID uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], huntID)
	return key[:]
}

// clueKey encodes the (hunt ID, clue ID) composite key.
func clueKey(huntID uint64, clueID uint32) []byte {
	key := make([]byte, 12)
	binary.BigEndian.PutUint64(key[:8], huntID)
	binary.BigEndian.PutUint32(key[8:], clueID)
	return key
}

// progressKey encodes the (hunt ID, player) composite key.
func progressKey(huntID uint64, player string) []byte {
	return append(huntKey(huntID), []byte(player)...)
}

// eventKey encodes the (hunt ID, sequence) composite key.
func eventKey(huntID, seq uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[:8], huntID)
	binary.BigEndian.PutUint64(key[8:], seq)
	return key
}

func encodeCounter(value uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], value)
	return buf[:]
}

func decodeCounter(raw []byte) uint64 {
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}
