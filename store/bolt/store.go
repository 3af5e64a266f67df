// Package bolt provides a bbolt-backed Store.
//
// bbolt runs one write transaction at a time, which gives the engine the
// per-key serialization its execution model assumes without any locking of
// its own.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/xraph/ajo"
	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

const (
	groupBucket = "groups"
	flagBucket  = "flags"
	metaBucket  = "meta"
)

// Store provides a bbolt-backed Ajo store.
type Store struct {
	db *bbolt.DB
}

// Open opens a bbolt-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("bolt: storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: open storage db: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{groupBucket, flagBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("bolt: create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// Group registry implementation

func (s *Store) NextGroupID(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var next uint64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(metaBucket))
		key := store.CounterKey().Bytes()

		// Absent counter reads as zero.
		var current uint64
		if raw := bucket.Get(key); len(raw) == 8 {
			current = binary.BigEndian.Uint64(raw)
		}

		next = current + 1
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, next)
		return bucket.Put(key, buf)
	})
	if err != nil {
		return 0, fmt.Errorf("bolt: next group id: %w", err)
	}

	return next, nil
}

func (s *Store) CreateGroup(ctx context.Context, g *group.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("bolt: marshal group: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(groupBucket))
		key := store.GroupKey(g.ID).Bytes()
		if bucket.Get(key) != nil {
			return ajo.ErrAlreadyExists
		}
		return bucket.Put(key, payload)
	})
}

func (s *Store) GetGroup(ctx context.Context, groupID uint64) (*group.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g group.Group
	err := s.db.View(func(tx *bbolt.Tx) error {
		payload := tx.Bucket([]byte(groupBucket)).Get(store.GroupKey(groupID).Bytes())
		if payload == nil {
			return ajo.ErrGroupNotFound
		}
		if err := json.Unmarshal(payload, &g); err != nil {
			return fmt.Errorf("bolt: unmarshal group: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (s *Store) UpdateGroup(ctx context.Context, g *group.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("bolt: marshal group: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(groupBucket))
		key := store.GroupKey(g.ID).Bytes()
		if bucket.Get(key) == nil {
			return ajo.ErrGroupNotFound
		}
		return bucket.Put(key, payload)
	})
}

func (s *Store) DeleteGroup(ctx context.Context, groupID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(groupBucket)).Delete(store.GroupKey(groupID).Bytes())
	})
}

// Contribution ledger implementation

func (s *Store) SetContributed(ctx context.Context, groupID uint64, cycle uint32, member id.Address, paid bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := store.ContributionKey(groupID, cycle, member).Bytes()
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(flagBucket)).Put(key, encodeFlag(paid))
	})
}

func (s *Store) HasContributed(ctx context.Context, groupID uint64, cycle uint32, member id.Address) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key := store.ContributionKey(groupID, cycle, member).Bytes()
	return s.readFlag(key)
}

// Payout ledger implementation

func (s *Store) MarkPayoutReceived(ctx context.Context, groupID uint64, member id.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := store.PayoutKey(groupID, member).Bytes()
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(flagBucket)).Put(key, encodeFlag(true))
	})
}

func (s *Store) HasReceivedPayout(ctx context.Context, groupID uint64, member id.Address) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key := store.PayoutKey(groupID, member).Bytes()
	return s.readFlag(key)
}

// Store management

func (s *Store) Migrate(_ context.Context) error {
	return s.ensureBuckets()
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(*bbolt.Tx) error { return nil })
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// readFlag reads a boolean flag; absent keys read as false.
func (s *Store) readFlag(key []byte) (bool, error) {
	var paid bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(flagBucket)).Get(key)
		paid = len(raw) == 1 && raw[0] == 1
		return nil
	})
	return paid, err
}

func encodeFlag(paid bool) []byte {
	if paid {
		return []byte{1}
	}
	return []byte{0}
}
