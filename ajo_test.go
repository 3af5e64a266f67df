package ajo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/ajo"
	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/store/memory"
	"github.com/xraph/ajo/types"
)

func newEngine(t *testing.T, opts ...ajo.Option) *ajo.Engine {
	t.Helper()
	e := ajo.New(memory.New(), opts...)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("start engine: %v", err)
	}
	t.Cleanup(func() { _ = e.Stop() })
	return e
}

// fundedGroup creates a group with the requested number of members and
// returns the group id plus the members in rotation order.
func fundedGroup(t *testing.T, e *ajo.Engine, size int) (uint64, []id.Address) {
	t.Helper()
	ctx := context.Background()

	members := make([]id.Address, size)
	for i := range members {
		members[i] = id.NewAddress()
	}

	gid, err := e.CreateGroup(ctx, members[0], types.NewAmount(100), 86400, uint32(size))
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	for _, m := range members[1:] {
		if err := e.JoinGroup(ctx, m, gid); err != nil {
			t.Fatalf("join group: %v", err)
		}
	}
	return gid, members
}

func contributeAll(t *testing.T, e *ajo.Engine, gid uint64, members []id.Address) {
	t.Helper()
	for _, m := range members {
		if err := e.Contribute(context.Background(), m, gid); err != nil {
			t.Fatalf("contribute %v: %v", m, err)
		}
	}
}

func TestCreateGroup(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	creator := id.NewAddress()

	gid, err := e.CreateGroup(ctx, creator, types.NewAmount(500), 604800, 4)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if gid != 1 {
		t.Errorf("expected first group id 1, got %d", gid)
	}

	g, err := e.GetGroup(ctx, gid)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if !g.Creator.Equal(creator) {
		t.Errorf("expected creator %v, got %v", creator, g.Creator)
	}
	if len(g.Members) != 1 || !g.Members[0].Equal(creator) {
		t.Errorf("expected members [creator], got %v", g.Members)
	}
	if g.CurrentCycle != 1 {
		t.Errorf("expected cycle 1, got %d", g.CurrentCycle)
	}
	if g.State() != group.StateOpen {
		t.Errorf("expected state open, got %v", g.State())
	}
	if g.CycleStartTime == 0 {
		t.Error("expected cycle start time to be set")
	}

	// Ids are dense and sequential.
	gid2, err := e.CreateGroup(ctx, id.NewAddress(), types.NewAmount(500), 604800, 4)
	if err != nil {
		t.Fatalf("create second group: %v", err)
	}
	if gid2 != 2 {
		t.Errorf("expected second group id 2, got %d", gid2)
	}
}

func TestCreateGroupValidation(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	creator := id.NewAddress()

	tests := []struct {
		name     string
		amount   types.Amount
		duration uint64
		max      uint32
		want     error
	}{
		{"ZeroAmount", types.NewAmount(0), 86400, 4, ajo.ErrContributionAmountZero},
		{"NegativeAmount", types.NewAmount(-5), 86400, 4, ajo.ErrContributionAmountNegative},
		{"ZeroDuration", types.NewAmount(100), 0, 4, ajo.ErrCycleDurationZero},
		{"MaxMembersOne", types.NewAmount(100), 86400, 1, ajo.ErrMaxMembersBelowMinimum},
		{"MaxMembersZero", types.NewAmount(100), 86400, 0, ajo.ErrMaxMembersBelowMinimum},
		// The amount check outranks the duration check.
		{"ZeroAmountAndDuration", types.NewAmount(0), 0, 4, ajo.ErrContributionAmountZero},
		// The duration check outranks the member-count check.
		{"ZeroDurationAndMaxOne", types.NewAmount(100), 0, 1, ajo.ErrCycleDurationZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.CreateGroup(ctx, creator, tt.amount, tt.duration, tt.max)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if !ajo.IsValidation(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestJoinGroup(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	gid, members := fundedGroup(t, e, 3)

	g, err := e.GetGroup(ctx, gid)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if len(g.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(g.Members))
	}
	// Rotation order is join order.
	for i, m := range members {
		if !g.Members[i].Equal(m) {
			t.Errorf("member %d: got %v, want %v", i, g.Members[i], m)
		}
	}
}

func TestJoinGroupGuards(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		if err := e.JoinGroup(ctx, id.NewAddress(), 404); !errors.Is(err, ajo.ErrGroupNotFound) {
			t.Errorf("got %v, want ErrGroupNotFound", err)
		}
	})

	t.Run("AlreadyMember", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		if err := e.JoinGroup(ctx, members[1], gid); !errors.Is(err, ajo.ErrAlreadyMember) {
			t.Errorf("got %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("Full", func(t *testing.T) {
		gid, _ := fundedGroup(t, e, 2) // cap is the size
		if err := e.JoinGroup(ctx, id.NewAddress(), gid); !errors.Is(err, ajo.ErrGroupFull) {
			t.Errorf("got %v, want ErrGroupFull", err)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		if err := e.CancelGroup(ctx, members[0], gid); err != nil {
			t.Fatalf("cancel group: %v", err)
		}
		if err := e.JoinGroup(ctx, id.NewAddress(), gid); !errors.Is(err, ajo.ErrGroupComplete) {
			t.Errorf("got %v, want ErrGroupComplete", err)
		}
	})

	// A member already in the group still gets the terminal error first.
	t.Run("TerminalOutranksMembership", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		if err := e.CancelGroup(ctx, members[0], gid); err != nil {
			t.Fatalf("cancel group: %v", err)
		}
		if err := e.JoinGroup(ctx, members[1], gid); !errors.Is(err, ajo.ErrGroupComplete) {
			t.Errorf("got %v, want ErrGroupComplete", err)
		}
	})
}

func TestContribute(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	gid, members := fundedGroup(t, e, 3)

	if err := e.Contribute(ctx, members[0], gid); err != nil {
		t.Fatalf("contribute: %v", err)
	}

	statuses, err := e.CycleContributions(ctx, gid)
	if err != nil {
		t.Fatalf("cycle contributions: %v", err)
	}
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Paid || statuses[1].Paid || statuses[2].Paid {
		t.Errorf("expected only first member paid, got %+v", statuses)
	}
}

func TestContributeGuards(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		if err := e.Contribute(ctx, id.NewAddress(), 404); !errors.Is(err, ajo.ErrGroupNotFound) {
			t.Errorf("got %v, want ErrGroupNotFound", err)
		}
	})

	t.Run("NotMember", func(t *testing.T) {
		gid, _ := fundedGroup(t, e, 2)
		err := e.Contribute(ctx, id.NewAddress(), gid)
		if !errors.Is(err, ajo.ErrNotMember) {
			t.Errorf("got %v, want ErrNotMember", err)
		}
		if !ajo.IsAuthorization(err) {
			t.Errorf("expected an authorization error, got %v", err)
		}
	})

	t.Run("Twice", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		if err := e.Contribute(ctx, members[0], gid); err != nil {
			t.Fatalf("contribute: %v", err)
		}
		if err := e.Contribute(ctx, members[0], gid); !errors.Is(err, ajo.ErrAlreadyContributed) {
			t.Errorf("got %v, want ErrAlreadyContributed", err)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		if err := e.CancelGroup(ctx, members[0], gid); err != nil {
			t.Fatalf("cancel group: %v", err)
		}
		if err := e.Contribute(ctx, members[0], gid); !errors.Is(err, ajo.ErrGroupComplete) {
			t.Errorf("got %v, want ErrGroupComplete", err)
		}
	})
}

func TestExecutePayoutGuards(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		if err := e.ExecutePayout(ctx, 404); !errors.Is(err, ajo.ErrGroupNotFound) {
			t.Errorf("got %v, want ErrGroupNotFound", err)
		}
	})

	t.Run("NoContributions", func(t *testing.T) {
		gid, _ := fundedGroup(t, e, 2)
		if err := e.ExecutePayout(ctx, gid); !errors.Is(err, ajo.ErrIncompleteContributions) {
			t.Errorf("got %v, want ErrIncompleteContributions", err)
		}
	})

	t.Run("PartialContributions", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 3)
		if err := e.Contribute(ctx, members[0], gid); err != nil {
			t.Fatalf("contribute: %v", err)
		}
		if err := e.Contribute(ctx, members[1], gid); err != nil {
			t.Fatalf("contribute: %v", err)
		}
		if err := e.ExecutePayout(ctx, gid); !errors.Is(err, ajo.ErrIncompleteContributions) {
			t.Errorf("got %v, want ErrIncompleteContributions", err)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		contributeAll(t, e, gid, members)
		if err := e.CancelGroup(ctx, members[0], gid); err != nil {
			t.Fatalf("cancel group: %v", err)
		}
		// Terminal outranks the contribution check even when funds are in.
		if err := e.ExecutePayout(ctx, gid); !errors.Is(err, ajo.ErrGroupComplete) {
			t.Errorf("got %v, want ErrGroupComplete", err)
		}
	})
}

func TestPayoutAdvancesCycle(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	gid, members := fundedGroup(t, e, 3)

	contributeAll(t, e, gid, members)
	if err := e.ExecutePayout(ctx, gid); err != nil {
		t.Fatalf("execute payout: %v", err)
	}

	g, err := e.GetGroup(ctx, gid)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if g.CurrentCycle != 2 {
		t.Errorf("expected cycle 2, got %d", g.CurrentCycle)
	}
	if g.IsComplete {
		t.Error("expected group still open after first payout")
	}

	// The new cycle starts with a clean contribution slate.
	statuses, err := e.CycleContributions(ctx, gid)
	if err != nil {
		t.Fatalf("cycle contributions: %v", err)
	}
	for _, s := range statuses {
		if s.Paid {
			t.Errorf("expected member %v unpaid in new cycle", s.Member)
		}
	}
}

func TestFullRotation(t *testing.T) {
	recorded := &eventLog{}
	e := newEngine(t, ajo.WithPlugin(recorded))
	ctx := context.Background()
	gid, members := fundedGroup(t, e, 3)

	for cycle := 1; cycle <= 3; cycle++ {
		contributeAll(t, e, gid, members)
		if err := e.ExecutePayout(ctx, gid); err != nil {
			t.Fatalf("cycle %d payout: %v", cycle, err)
		}
	}

	done, err := e.IsComplete(ctx, gid)
	if err != nil {
		t.Fatalf("is complete: %v", err)
	}
	if !done {
		t.Fatal("expected group complete after full rotation")
	}

	g, err := e.GetGroup(ctx, gid)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if g.State() != group.StateComplete {
		t.Errorf("expected state complete, got %v", g.State())
	}
	if g.IsCancelled {
		t.Error("completed group must not read as cancelled")
	}

	// Payouts rotate in join order, each for the full pooled amount.
	want := []payoutEvent{
		{cycle: 1, recipient: members[0], amount: types.NewAmount(300)},
		{cycle: 2, recipient: members[1], amount: types.NewAmount(300)},
		{cycle: 3, recipient: members[2], amount: types.NewAmount(300)},
	}
	if len(recorded.payouts) != len(want) {
		t.Fatalf("expected %d payouts, got %d", len(want), len(recorded.payouts))
	}
	for i, w := range want {
		got := recorded.payouts[i]
		if got.cycle != w.cycle {
			t.Errorf("payout %d: cycle got %d, want %d", i, got.cycle, w.cycle)
		}
		if !got.recipient.Equal(w.recipient) {
			t.Errorf("payout %d: recipient got %v, want %v", i, got.recipient, w.recipient)
		}
		if !got.amount.Equal(w.amount) {
			t.Errorf("payout %d: amount got %v, want %v", i, got.amount, w.amount)
		}
	}

	// Nothing more can happen to a finished group.
	if err := e.Contribute(ctx, members[0], gid); !errors.Is(err, ajo.ErrGroupComplete) {
		t.Errorf("contribute after completion: got %v, want ErrGroupComplete", err)
	}
	if err := e.ExecutePayout(ctx, gid); !errors.Is(err, ajo.ErrGroupComplete) {
		t.Errorf("payout after completion: got %v, want ErrGroupComplete", err)
	}
}

func TestLateJoinerExtendsRotation(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	creator := id.NewAddress()
	second := id.NewAddress()
	late := id.NewAddress()

	gid, err := e.CreateGroup(ctx, creator, types.NewAmount(100), 86400, 3)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if err := e.JoinGroup(ctx, second, gid); err != nil {
		t.Fatalf("join group: %v", err)
	}

	// Cycle 1 pays the creator with two members in the pool.
	contributeAll(t, e, gid, []id.Address{creator, second})
	if err := e.ExecutePayout(ctx, gid); err != nil {
		t.Fatalf("cycle 1 payout: %v", err)
	}

	// A mid-rotation joiner goes to the end of the order and raises the
	// pooled amount from cycle 2 on.
	if err := e.JoinGroup(ctx, late, gid); err != nil {
		t.Fatalf("late join: %v", err)
	}

	for cycle := 2; cycle <= 3; cycle++ {
		contributeAll(t, e, gid, []id.Address{creator, second, late})
		if err := e.ExecutePayout(ctx, gid); err != nil {
			t.Fatalf("cycle %d payout: %v", cycle, err)
		}
	}

	done, err := e.IsComplete(ctx, gid)
	if err != nil {
		t.Fatalf("is complete: %v", err)
	}
	if !done {
		t.Error("expected group complete once every member has been paid")
	}
}

func TestCancelGroup(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("CreatorOnly", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		err := e.CancelGroup(ctx, members[1], gid)
		if !errors.Is(err, ajo.ErrUnauthorized) {
			t.Fatalf("got %v, want ErrUnauthorized", err)
		}
		if !ajo.IsAuthorization(err) {
			t.Errorf("expected an authorization error, got %v", err)
		}

		// The failed attempt changed nothing.
		g, err := e.GetGroup(ctx, gid)
		if err != nil {
			t.Fatalf("get group: %v", err)
		}
		if g.State() != group.StateOpen {
			t.Errorf("expected state open, got %v", g.State())
		}
	})

	t.Run("Irrevocable", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		if err := e.CancelGroup(ctx, members[0], gid); err != nil {
			t.Fatalf("cancel group: %v", err)
		}

		g, err := e.GetGroup(ctx, gid)
		if err != nil {
			t.Fatalf("get group: %v", err)
		}
		if g.State() != group.StateCancelled {
			t.Errorf("expected state cancelled, got %v", g.State())
		}
		if !g.IsComplete {
			t.Error("cancellation must also mark the group complete")
		}

		// Re-cancelling a terminal group reports the terminal state.
		err = e.CancelGroup(ctx, members[0], gid)
		if !errors.Is(err, ajo.ErrGroupComplete) {
			t.Errorf("got %v, want ErrGroupComplete", err)
		}
		if !ajo.IsTerminal(err) {
			t.Errorf("expected a terminal-state error, got %v", err)
		}
	})

	t.Run("AuthorizationOutranksTerminal", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		if err := e.CancelGroup(ctx, members[0], gid); err != nil {
			t.Fatalf("cancel group: %v", err)
		}
		if err := e.CancelGroup(ctx, members[1], gid); !errors.Is(err, ajo.ErrUnauthorized) {
			t.Errorf("got %v, want ErrUnauthorized", err)
		}
	})

	t.Run("CompletedGroup", func(t *testing.T) {
		gid, members := fundedGroup(t, e, 2)
		for cycle := 0; cycle < 2; cycle++ {
			contributeAll(t, e, gid, members)
			if err := e.ExecutePayout(ctx, gid); err != nil {
				t.Fatalf("payout: %v", err)
			}
		}
		if err := e.CancelGroup(ctx, members[0], gid); !errors.Is(err, ajo.ErrGroupComplete) {
			t.Errorf("got %v, want ErrGroupComplete", err)
		}
	})
}

func TestCancelPreservesRecordedContributions(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	gid, members := fundedGroup(t, e, 3)

	if err := e.Contribute(ctx, members[0], gid); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if err := e.CancelGroup(ctx, members[0], gid); err != nil {
		t.Fatalf("cancel group: %v", err)
	}

	// The interrupted cycle's flags stay readable.
	statuses, err := e.CycleContributions(ctx, gid)
	if err != nil {
		t.Fatalf("cycle contributions: %v", err)
	}
	if !statuses[0].Paid {
		t.Error("expected recorded contribution to survive cancellation")
	}
}

func TestRemoveGroup(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	gid, _ := fundedGroup(t, e, 2)

	if err := e.RemoveGroup(ctx, gid); err != nil {
		t.Fatalf("remove group: %v", err)
	}
	if _, err := e.GetGroup(ctx, gid); !ajo.IsNotFound(err) {
		t.Errorf("got %v, want ErrGroupNotFound", err)
	}
	if err := e.RemoveGroup(ctx, gid); !errors.Is(err, ajo.ErrGroupNotFound) {
		t.Errorf("remove missing group: got %v, want ErrGroupNotFound", err)
	}
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e := newEngine(t, ajo.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	gid, err := e.CreateGroup(ctx, id.NewAddress(), types.NewAmount(100), 86400, 2)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	g, err := e.GetGroup(ctx, gid)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if g.CycleStartTime != uint64(fixed.Unix()) {
		t.Errorf("expected cycle start %d, got %d", fixed.Unix(), g.CycleStartTime)
	}
}

// ──────────────────────────────────────────────────
// Event ordering
// ──────────────────────────────────────────────────

type payoutEvent struct {
	cycle     uint32
	recipient id.Address
	amount    types.Amount
}

// eventLog records lifecycle hook invocations in call order.
type eventLog struct {
	order   []string
	payouts []payoutEvent
}

func (l *eventLog) Name() string { return "event-log" }

func (l *eventLog) OnGroupCreated(_ context.Context, _ *group.Group) error {
	l.order = append(l.order, "created")
	return nil
}

func (l *eventLog) OnMemberJoined(_ context.Context, _ uint64, _ id.Address) error {
	l.order = append(l.order, "joined")
	return nil
}

func (l *eventLog) OnContributionRecorded(_ context.Context, _ uint64, _ uint32, _ id.Address, _ types.Amount) error {
	l.order = append(l.order, "contrib")
	return nil
}

func (l *eventLog) OnPayoutExecuted(_ context.Context, _ uint64, cycle uint32, recipient id.Address, amount types.Amount) error {
	l.order = append(l.order, "payout")
	l.payouts = append(l.payouts, payoutEvent{cycle: cycle, recipient: recipient, amount: amount})
	return nil
}

func (l *eventLog) OnCycleAdvanced(_ context.Context, _ uint64, _ uint32, _ uint64) error {
	l.order = append(l.order, "cycle")
	return nil
}

func (l *eventLog) OnGroupCompleted(_ context.Context, _ uint64) error {
	l.order = append(l.order, "complete")
	return nil
}

func (l *eventLog) OnGroupCancelled(_ context.Context, _ uint64, _ id.Address) error {
	l.order = append(l.order, "cancelled")
	return nil
}

func TestEventOrdering(t *testing.T) {
	log := &eventLog{}
	e := newEngine(t, ajo.WithPlugin(log))
	ctx := context.Background()

	gid, members := fundedGroup(t, e, 3)
	contributeAll(t, e, gid, members)
	if err := e.ExecutePayout(ctx, gid); err != nil {
		t.Fatalf("execute payout: %v", err)
	}

	want := []string{"created", "joined", "joined", "contrib", "contrib", "contrib", "payout", "cycle"}
	if len(log.order) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(log.order), log.order)
	}
	for i, w := range want {
		if log.order[i] != w {
			t.Errorf("event %d: got %q, want %q", i, log.order[i], w)
		}
	}
}

func TestFinalPayoutEmitsComplete(t *testing.T) {
	log := &eventLog{}
	e := newEngine(t, ajo.WithPlugin(log))
	ctx := context.Background()

	gid, members := fundedGroup(t, e, 2)
	for cycle := 0; cycle < 2; cycle++ {
		contributeAll(t, e, gid, members)
		if err := e.ExecutePayout(ctx, gid); err != nil {
			t.Fatalf("payout: %v", err)
		}
	}

	// The last payout is followed by "complete", never "cycle".
	n := len(log.order)
	if n < 2 || log.order[n-2] != "payout" || log.order[n-1] != "complete" {
		t.Errorf("expected trailing [payout complete], got %v", log.order[max(0, n-2):])
	}
	// Exactly one cycle advance for a two-member group.
	cycles := 0
	for _, ev := range log.order {
		if ev == "cycle" {
			cycles++
		}
	}
	if cycles != 1 {
		t.Errorf("expected 1 cycle event, got %d", cycles)
	}
}

func TestCancelEmitsHook(t *testing.T) {
	log := &eventLog{}
	e := newEngine(t, ajo.WithPlugin(log))
	ctx := context.Background()

	gid, members := fundedGroup(t, e, 2)
	if err := e.CancelGroup(ctx, members[0], gid); err != nil {
		t.Fatalf("cancel group: %v", err)
	}

	if log.order[len(log.order)-1] != "cancelled" {
		t.Errorf("expected trailing cancelled event, got %v", log.order)
	}
}

// Hook failures are logged and never unwind the operation.
func TestFailingPluginDoesNotBlockOperation(t *testing.T) {
	e := newEngine(t, ajo.WithPlugin(&failingPlugin{}))
	ctx := context.Background()

	gid, err := e.CreateGroup(ctx, id.NewAddress(), types.NewAmount(100), 86400, 2)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if _, err := e.GetGroup(ctx, gid); err != nil {
		t.Fatalf("group should exist despite hook failure: %v", err)
	}
}

type failingPlugin struct{}

func (p *failingPlugin) Name() string { return "failing" }

func (p *failingPlugin) OnGroupCreated(_ context.Context, _ *group.Group) error {
	return errors.New("hook exploded")
}
