package bbolt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/storage"
	"go.etcd.io/bbolt"
)

// PutProgress persists a player progress record and appends the player to
// the hunt's player index. Record write and index append share one
// transaction.
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

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(progressBucket))
		if bucket == nil {
			return fmt.Errorf("progress bucket is missing")
		}
		if err := bucket.Put(progressKey(p.HuntID, p.Player), payload); err != nil {
			return err
		}
		return appendUniquePlayer(tx, p.HuntID, p.Player)
	})
}

// GetProgress fetches progress by its (hunt ID, player) composite key.
func (s *Store) GetProgress(ctx context.Context, huntID uint64, player string) (hunt.PlayerProgress, error) {
	if err := s.ready(ctx); err != nil {
		return hunt.PlayerProgress{}, err
	}

	var p hunt.PlayerProgress
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(progressBucket))
		if bucket == nil {
			return fmt.Errorf("progress bucket is missing")
		}
		payload := bucket.Get(progressKey(huntID, player))
		if payload == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("unmarshal progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return hunt.PlayerProgress{}, err
	}
	return p, nil
}

// ListPlayers returns the hunt's registered players in registration order.
func (s *Store) ListPlayers(ctx context.Context, huntID uint64) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var players []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(playerIndexBucket))
		if bucket == nil {
			return fmt.Errorf("player index bucket is missing")
		}
		return decodeIndex(bucket.Get(huntKey(huntID)), &players)
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

// ListProgress returns progress records for every registered player, in
// registration order.
func (s *Store) ListProgress(ctx context.Context, huntID uint64) ([]hunt.PlayerProgress, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var records []hunt.PlayerProgress
	err := s.db.View(func(tx *bbolt.Tx) error {
		indexBucket := tx.Bucket([]byte(playerIndexBucket))
		progressBkt := tx.Bucket([]byte(progressBucket))
		if indexBucket == nil || progressBkt == nil {
			return fmt.Errorf("progress buckets are missing")
		}

		var players []string
		if err := decodeIndex(indexBucket.Get(huntKey(huntID)), &players); err != nil {
			return err
		}
		for _, player := range players {
			payload := progressBkt.Get(progressKey(huntID, player))
			if payload == nil {
				continue
			}
			var p hunt.PlayerProgress
			if err := json.Unmarshal(payload, &p); err != nil {
				return fmt.Errorf("unmarshal progress for %s: %w", player, err)
			}
			records = append(records, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// appendUniquePlayer appends a player to the hunt's index unless present.
func appendUniquePlayer(tx *bbolt.Tx, huntID uint64, player string) error {
	bucket := tx.Bucket([]byte(playerIndexBucket))
	if bucket == nil {
		return fmt.Errorf("player index bucket is missing")
	}

	key := huntKey(huntID)
	var players []string
	if err := decodeIndex(bucket.Get(key), &players); err != nil {
		return err
	}
	for _, existing := range players {
		if existing == player {
			return nil
		}
	}
	players = append(players, player)

	payload, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("marshal player index: %w", err)
	}
	return bucket.Put(key, payload)
}
