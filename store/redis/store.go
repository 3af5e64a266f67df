// Package redis provides a Redis-backed Store.
//
// Keys reuse the canonical tagged encoding under an "ajo:" namespace. The
// group-id counter rides on INCR, so id allocation stays monotonic even
// with several engine processes sharing one Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/ajo"
	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

const keyPrefix = "ajo:"

// Store provides a Redis-backed Ajo store.
type Store struct {
	rdb *goredis.Client
}

// Open connects to Redis at the provided address.
func Open(addr string) (*Store, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr: addr,
	})
	return &Store{rdb: rdb}, nil
}

// NewWithClient wraps an existing Redis client.
func NewWithClient(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb}
}

func nsKey(k store.Key) string {
	return keyPrefix + k.Encode()
}

// Group registry implementation

func (s *Store) NextGroupID(ctx context.Context) (uint64, error) {
	next, err := s.rdb.Incr(ctx, nsKey(store.CounterKey())).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: next group id: %w", err)
	}
	return uint64(next), nil
}

func (s *Store) CreateGroup(ctx context.Context, g *group.Group) error {
	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("redis: marshal group: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, nsKey(store.GroupKey(g.ID)), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("redis: create group: %w", err)
	}
	if !ok {
		return ajo.ErrAlreadyExists
	}
	return nil
}

func (s *Store) GetGroup(ctx context.Context, groupID uint64) (*group.Group, error) {
	payload, err := s.rdb.Get(ctx, nsKey(store.GroupKey(groupID))).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ajo.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get group: %w", err)
	}

	var g group.Group
	if err := json.Unmarshal(payload, &g); err != nil {
		return nil, fmt.Errorf("redis: unmarshal group: %w", err)
	}
	return &g, nil
}

func (s *Store) UpdateGroup(ctx context.Context, g *group.Group) error {
	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("redis: marshal group: %w", err)
	}

	ok, err := s.rdb.SetXX(ctx, nsKey(store.GroupKey(g.ID)), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("redis: update group: %w", err)
	}
	if !ok {
		return ajo.ErrGroupNotFound
	}
	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, groupID uint64) error {
	if err := s.rdb.Del(ctx, nsKey(store.GroupKey(groupID))).Err(); err != nil {
		return fmt.Errorf("redis: delete group: %w", err)
	}
	return nil
}

// Contribution ledger implementation

func (s *Store) SetContributed(ctx context.Context, groupID uint64, cycle uint32, member id.Address, paid bool) error {
	val := "0"
	if paid {
		val = "1"
	}
	if err := s.rdb.Set(ctx, nsKey(store.ContributionKey(groupID, cycle, member)), val, 0).Err(); err != nil {
		return fmt.Errorf("redis: set contributed: %w", err)
	}
	return nil
}

func (s *Store) HasContributed(ctx context.Context, groupID uint64, cycle uint32, member id.Address) (bool, error) {
	return s.readFlag(ctx, store.ContributionKey(groupID, cycle, member))
}

// Payout ledger implementation

func (s *Store) MarkPayoutReceived(ctx context.Context, groupID uint64, member id.Address) error {
	if err := s.rdb.Set(ctx, nsKey(store.PayoutKey(groupID, member)), "1", 0).Err(); err != nil {
		return fmt.Errorf("redis: mark payout received: %w", err)
	}
	return nil
}

func (s *Store) HasReceivedPayout(ctx context.Context, groupID uint64, member id.Address) (bool, error) {
	return s.readFlag(ctx, store.PayoutKey(groupID, member))
}

// Store management

func (s *Store) Migrate(_ context.Context) error {
	return nil // No schema to migrate
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// readFlag reads a boolean flag; absent keys read as false.
func (s *Store) readFlag(ctx context.Context, k store.Key) (bool, error) {
	val, err := s.rdb.Get(ctx, nsKey(k)).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis: read flag: %w", err)
	}
	return val == "1", nil
}
