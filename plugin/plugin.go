// Package plugin provides an extensible plugin system for Ajo.
// Plugins can hook into group lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Engine lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Group lifecycle hooks
//
// Each hook corresponds to one wire event: its arguments carry the event's
// topics (group id, cycle) and payload. Hooks fire after the state change
// has been persisted; a failing hook is logged and never unwinds the
// operation.
// ──────────────────────────────────────────────────

// OnGroupCreated is called when a new group is created.
type OnGroupCreated interface {
	Plugin
	OnGroupCreated(ctx context.Context, g *group.Group) error
}

// OnMemberJoined is called when a member joins a group.
type OnMemberJoined interface {
	Plugin
	OnMemberJoined(ctx context.Context, groupID uint64, member id.Address) error
}

// OnContributionRecorded is called when a member contributes to a cycle.
type OnContributionRecorded interface {
	Plugin
	OnContributionRecorded(ctx context.Context, groupID uint64, cycle uint32, member id.Address, amount types.Amount) error
}

// OnPayoutExecuted is called when a cycle's pooled total is paid out.
type OnPayoutExecuted interface {
	Plugin
	OnPayoutExecuted(ctx context.Context, groupID uint64, cycle uint32, recipient id.Address, amount types.Amount) error
}

// OnCycleAdvanced is called when the group moves to the next cycle.
type OnCycleAdvanced interface {
	Plugin
	OnCycleAdvanced(ctx context.Context, groupID uint64, newCycle uint32, cycleStartTime uint64) error
}

// OnGroupCompleted is called when every member has rotated through.
type OnGroupCompleted interface {
	Plugin
	OnGroupCompleted(ctx context.Context, groupID uint64) error
}

// OnGroupCancelled is called when the creator cancels a group early.
// Cancellation has no wire event; this hook exists for hosts that need
// the signal.
type OnGroupCancelled interface {
	Plugin
	OnGroupCancelled(ctx context.Context, groupID uint64, caller id.Address) error
}
