// Package memory provides an in-memory Store for tests and embedded use.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/ajo"
	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Group registry
	counter uint64
	groups  map[uint64]*group.Group

	// Contribution and payout flags, keyed by the canonical encoding
	flags map[string]bool
}

func New() *Store {
	return &Store{
		groups: make(map[uint64]*group.Group),
		flags:  make(map[string]bool),
	}
}

// Group registry implementation

func (s *Store) NextGroupID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	return s.counter, nil
}

func (s *Store) CreateGroup(_ context.Context, g *group.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[g.ID]; exists {
		return ajo.ErrAlreadyExists
	}
	s.groups[g.ID] = cloneGroup(g)
	return nil
}

func (s *Store) GetGroup(_ context.Context, groupID uint64) (*group.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g, ok := s.groups[groupID]; ok {
		return cloneGroup(g), nil
	}
	return nil, ajo.ErrGroupNotFound
}

func (s *Store) UpdateGroup(_ context.Context, g *group.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[g.ID]; !exists {
		return ajo.ErrGroupNotFound
	}
	s.groups[g.ID] = cloneGroup(g)
	return nil
}

func (s *Store) DeleteGroup(_ context.Context, groupID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.groups, groupID)
	return nil
}

// Contribution ledger implementation

func (s *Store) SetContributed(_ context.Context, groupID uint64, cycle uint32, member id.Address, paid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags[store.ContributionKey(groupID, cycle, member).Encode()] = paid
	return nil
}

func (s *Store) HasContributed(_ context.Context, groupID uint64, cycle uint32, member id.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.flags[store.ContributionKey(groupID, cycle, member).Encode()], nil
}

// Payout ledger implementation

func (s *Store) MarkPayoutReceived(_ context.Context, groupID uint64, member id.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags[store.PayoutKey(groupID, member).Encode()] = true
	return nil
}

func (s *Store) HasReceivedPayout(_ context.Context, groupID uint64, member id.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.flags[store.PayoutKey(groupID, member).Encode()], nil
}

// Store management

func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}

// cloneGroup copies a group so callers cannot mutate stored state in place.
func cloneGroup(g *group.Group) *group.Group {
	out := *g
	out.Members = append([]id.Address(nil), g.Members...)
	return &out
}
