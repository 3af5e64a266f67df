package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/ajo"
	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/types"
)

func newGroup(gid uint64, members ...id.Address) *group.Group {
	return &group.Group{
		Entity:             types.NewEntity(),
		ID:                 gid,
		Creator:            members[0],
		Members:            members,
		ContributionAmount: types.NewAmount(100),
		CycleDuration:      86400,
		MaxMembers:         5,
		CurrentCycle:       1,
	}
}

func TestNextGroupIDMonotonic(t *testing.T) {
	s := New()
	ctx := context.Background()

	var prev uint64
	for i := 0; i < 5; i++ {
		got, err := s.NextGroupID(ctx)
		if err != nil {
			t.Fatalf("next group id: %v", err)
		}
		if got != prev+1 {
			t.Fatalf("expected id %d, got %d", prev+1, got)
		}
		prev = got
	}
}

func TestGroupCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()
	creator := id.NewAddress()
	g := newGroup(1, creator)

	if err := s.CreateGroup(ctx, g); err != nil {
		t.Fatalf("create group: %v", err)
	}

	if err := s.CreateGroup(ctx, g); !errors.Is(err, ajo.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	loaded, err := s.GetGroup(ctx, 1)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if loaded.ID != 1 {
		t.Errorf("expected id 1, got %d", loaded.ID)
	}
	if !loaded.Creator.Equal(creator) {
		t.Errorf("expected creator %v, got %v", creator, loaded.Creator)
	}
	if !loaded.ContributionAmount.Equal(types.NewAmount(100)) {
		t.Errorf("expected amount 100, got %v", loaded.ContributionAmount)
	}

	loaded.CurrentCycle = 3
	if err := s.UpdateGroup(ctx, loaded); err != nil {
		t.Fatalf("update group: %v", err)
	}
	reloaded, err := s.GetGroup(ctx, 1)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if reloaded.CurrentCycle != 3 {
		t.Errorf("expected cycle 3, got %d", reloaded.CurrentCycle)
	}

	if err := s.DeleteGroup(ctx, 1); err != nil {
		t.Fatalf("delete group: %v", err)
	}
	if _, err := s.GetGroup(ctx, 1); !errors.Is(err, ajo.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestGetGroupNotFound(t *testing.T) {
	s := New()
	if _, err := s.GetGroup(context.Background(), 404); !errors.Is(err, ajo.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestUpdateGroupMissing(t *testing.T) {
	s := New()
	g := newGroup(9, id.NewAddress())
	if err := s.UpdateGroup(context.Background(), g); !errors.Is(err, ajo.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestStoredGroupIsolation(t *testing.T) {
	s := New()
	ctx := context.Background()
	g := newGroup(1, id.NewAddress())

	if err := s.CreateGroup(ctx, g); err != nil {
		t.Fatalf("create group: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	g.Members = append(g.Members, id.NewAddress())
	g.CurrentCycle = 99

	loaded, err := s.GetGroup(ctx, 1)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if len(loaded.Members) != 1 {
		t.Errorf("expected 1 member, got %d", len(loaded.Members))
	}
	if loaded.CurrentCycle != 1 {
		t.Errorf("expected cycle 1, got %d", loaded.CurrentCycle)
	}
}

func TestContributionFlags(t *testing.T) {
	s := New()
	ctx := context.Background()
	member := id.NewAddress()
	other := id.NewAddress()

	// Absent flags read false, not an error.
	paid, err := s.HasContributed(ctx, 1, 1, member)
	if err != nil {
		t.Fatalf("has contributed: %v", err)
	}
	if paid {
		t.Error("expected absent flag to read false")
	}

	if err := s.SetContributed(ctx, 1, 1, member, true); err != nil {
		t.Fatalf("set contributed: %v", err)
	}

	paid, err = s.HasContributed(ctx, 1, 1, member)
	if err != nil {
		t.Fatalf("has contributed: %v", err)
	}
	if !paid {
		t.Error("expected flag to read true after set")
	}

	// The flag is scoped to (group, cycle, member).
	for _, tc := range []struct {
		name   string
		gid    uint64
		cycle  uint32
		member id.Address
	}{
		{"OtherCycle", 1, 2, member},
		{"OtherGroup", 2, 1, member},
		{"OtherMember", 1, 1, other},
	} {
		t.Run(tc.name, func(t *testing.T) {
			paid, err := s.HasContributed(ctx, tc.gid, tc.cycle, tc.member)
			if err != nil {
				t.Fatalf("has contributed: %v", err)
			}
			if paid {
				t.Error("expected unrelated flag to read false")
			}
		})
	}
}

func TestPayoutFlags(t *testing.T) {
	s := New()
	ctx := context.Background()
	member := id.NewAddress()

	received, err := s.HasReceivedPayout(ctx, 1, member)
	if err != nil {
		t.Fatalf("has received payout: %v", err)
	}
	if received {
		t.Error("expected absent flag to read false")
	}

	if err := s.MarkPayoutReceived(ctx, 1, member); err != nil {
		t.Fatalf("mark payout received: %v", err)
	}

	received, err = s.HasReceivedPayout(ctx, 1, member)
	if err != nil {
		t.Fatalf("has received payout: %v", err)
	}
	if !received {
		t.Error("expected flag to read true after mark")
	}

	received, err = s.HasReceivedPayout(ctx, 2, member)
	if err != nil {
		t.Fatalf("has received payout: %v", err)
	}
	if received {
		t.Error("expected other group's flag to read false")
	}
}

func TestLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
