package ajo

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/ajo/contribution"
	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/plugin"
	"github.com/xraph/ajo/store"
	"github.com/xraph/ajo/types"
)

// Engine is the group lifecycle state machine. Every public operation loads
// the group, applies its guards in a fixed order, mutates the ledgers and
// registry, persists, and emits a lifecycle event through the plugin
// registry.
//
// The engine assumes the host serializes calls per group, the way a store
// with one write transaction at a time does. Calls against different groups
// share no mutable state and are fully independent.
type Engine struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a new Engine instance.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock sets the time source used for cycle-start timestamps.
// Defaults to time.Now; inject a fixed clock in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Plugins returns the plugin registry.
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Start migrates the store and initializes plugins. The engine has no
// background workers: nothing but explicit calls drives payouts.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("ajo engine started", "plugins", e.plugins.Count())
	return nil
}

// Stop shuts down the Engine and closes the store.
func (e *Engine) Stop() error {
	e.plugins.EmitShutdown(context.Background())
	return e.store.Close()
}

// ──────────────────────────────────────────────────
// Group lifecycle
// ──────────────────────────────────────────────────

// CreateGroup validates the parameters, allocates a fresh group id, and
// persists a group containing only the creator with the cycle counter at 1.
// Returns the new group id.
func (e *Engine) CreateGroup(ctx context.Context, creator id.Address, amount types.Amount, cycleDuration uint64, maxMembers uint32) (uint64, error) {
	if err := ValidateGroupParams(amount, cycleDuration, maxMembers); err != nil {
		return 0, err
	}

	groupID, err := e.store.NextGroupID(ctx)
	if err != nil {
		return 0, err
	}

	g := &group.Group{
		Entity:             types.NewEntity(),
		ID:                 groupID,
		Creator:            creator,
		Members:            []id.Address{creator},
		ContributionAmount: amount,
		CycleDuration:      cycleDuration,
		MaxMembers:         maxMembers,
		CurrentCycle:       1,
		CycleStartTime:     uint64(e.now().Unix()),
	}

	if err := e.store.CreateGroup(ctx, g); err != nil {
		return 0, err
	}

	e.logger.Debug("group created",
		"group_id", groupID,
		"creator", creator,
		"amount", amount,
		"max_members", maxMembers,
	)
	e.plugins.EmitGroupCreated(ctx, g)

	return groupID, nil
}

// JoinGroup appends a member to the rotation. Members joining mid-rotation
// go to the end of the payout order.
func (e *Engine) JoinGroup(ctx context.Context, member id.Address, groupID uint64) error {
	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if g.IsTerminal() {
		return ErrGroupComplete
	}
	if g.HasMember(member) {
		return ErrAlreadyMember
	}
	if g.IsFull() {
		return ErrGroupFull
	}

	g.Members = append(g.Members, member)
	g.Touch()

	if err := e.store.UpdateGroup(ctx, g); err != nil {
		return err
	}

	e.logger.Debug("member joined", "group_id", groupID, "member", member)
	e.plugins.EmitMemberJoined(ctx, groupID, member)

	return nil
}

// Contribute records a member's payment for the current cycle. A member
// contributes exactly once per cycle; the second attempt fails with
// ErrAlreadyContributed and leaves the ledger untouched.
func (e *Engine) Contribute(ctx context.Context, member id.Address, groupID uint64) error {
	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if g.IsTerminal() {
		return ErrGroupComplete
	}
	if !g.HasMember(member) {
		return ErrNotMember
	}

	paid, err := e.store.HasContributed(ctx, groupID, g.CurrentCycle, member)
	if err != nil {
		return err
	}
	if paid {
		return ErrAlreadyContributed
	}

	if err := e.store.SetContributed(ctx, groupID, g.CurrentCycle, member, true); err != nil {
		return err
	}

	e.logger.Debug("contribution recorded",
		"group_id", groupID,
		"cycle", g.CurrentCycle,
		"member", member,
	)
	e.plugins.EmitContributionRecorded(ctx, groupID, g.CurrentCycle, member, g.ContributionAmount)

	return nil
}

// ExecutePayout pays the current cycle's pooled total to the member whose
// turn it is, then advances the cycle. Permissionless: any caller may
// trigger it once every member has contributed.
func (e *Engine) ExecutePayout(ctx context.Context, groupID uint64) error {
	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if g.IsTerminal() {
		return ErrGroupComplete
	}

	allPaid, err := e.allContributed(ctx, g)
	if err != nil {
		return err
	}
	if !allPaid {
		return ErrIncompleteContributions
	}

	recipient := g.Recipient()
	amount, err := g.PayoutAmount()
	if err != nil {
		return ErrAmountOverflow
	}
	paidCycle := g.CurrentCycle

	if err := e.store.MarkPayoutReceived(ctx, groupID, recipient); err != nil {
		return err
	}

	g.CurrentCycle++
	completed := uint32(len(g.Members)) == g.CurrentCycle-1
	if completed {
		g.IsComplete = true
	} else {
		g.CycleStartTime = uint64(e.now().Unix())
	}
	g.Touch()

	if err := e.store.UpdateGroup(ctx, g); err != nil {
		return err
	}

	e.logger.Info("payout executed",
		"group_id", groupID,
		"cycle", paidCycle,
		"recipient", recipient,
		"amount", amount,
		"complete", completed,
	)

	e.plugins.EmitPayoutExecuted(ctx, groupID, paidCycle, recipient, amount)
	if completed {
		e.plugins.EmitGroupCompleted(ctx, groupID)
	} else {
		e.plugins.EmitCycleAdvanced(ctx, groupID, g.CurrentCycle, g.CycleStartTime)
	}

	return nil
}

// CancelGroup tears a group down early. Creator-only; cancellation is
// irrevocable and collapses into the completeness guard: re-cancelling a
// terminal group reports ErrGroupComplete, not a distinct error.
// Contributions already recorded for the interrupted cycle stay in the
// ledger but are never paid out.
func (e *Engine) CancelGroup(ctx context.Context, caller id.Address, groupID uint64) error {
	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if !caller.Equal(g.Creator) {
		return ErrUnauthorized
	}
	if g.IsTerminal() {
		return ErrGroupComplete
	}

	g.IsComplete = true
	g.IsCancelled = true
	g.Touch()

	if err := e.store.UpdateGroup(ctx, g); err != nil {
		return err
	}

	e.logger.Info("group cancelled", "group_id", groupID, "cycle", g.CurrentCycle)
	e.plugins.EmitGroupCancelled(ctx, groupID, caller)

	return nil
}

// ──────────────────────────────────────────────────
// Reads
// ──────────────────────────────────────────────────

// GetGroup retrieves a group by id.
func (e *Engine) GetGroup(ctx context.Context, groupID uint64) (*group.Group, error) {
	return e.store.GetGroup(ctx, groupID)
}

// IsComplete reports whether a group is terminal (completed or cancelled).
func (e *Engine) IsComplete(ctx context.Context, groupID uint64) (bool, error) {
	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return g.IsComplete, nil
}

// CycleContributions returns each member's payment flag for the current
// cycle, in rotation order.
func (e *Engine) CycleContributions(ctx context.Context, groupID uint64) ([]contribution.Status, error) {
	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	statuses := make([]contribution.Status, 0, len(g.Members))
	for _, m := range g.Members {
		paid, err := e.store.HasContributed(ctx, groupID, g.CurrentCycle, m)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, contribution.Status{Member: m, Paid: paid})
	}

	return statuses, nil
}

// RemoveGroup deletes a group record outright. Administrative escape hatch;
// the normal lifecycle only ever marks groups terminal.
func (e *Engine) RemoveGroup(ctx context.Context, groupID uint64) error {
	if _, err := e.store.GetGroup(ctx, groupID); err != nil {
		return err
	}
	return e.store.DeleteGroup(ctx, groupID)
}

// allContributed reports whether every member has paid into the current
// cycle, short-circuiting on the first unpaid member.
func (e *Engine) allContributed(ctx context.Context, g *group.Group) (bool, error) {
	for _, m := range g.Members {
		paid, err := e.store.HasContributed(ctx, g.ID, g.CurrentCycle, m)
		if err != nil {
			return false, err
		}
		if !paid {
			return false, nil
		}
	}
	return true, nil
}
