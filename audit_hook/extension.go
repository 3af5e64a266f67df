// Package audithook bridges Ajo lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit transport. Callers inject a RecorderFunc adapter
// that bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/plugin"
	"github.com/xraph/ajo/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                 = (*Extension)(nil)
	_ plugin.OnGroupCreated         = (*Extension)(nil)
	_ plugin.OnMemberJoined         = (*Extension)(nil)
	_ plugin.OnContributionRecorded = (*Extension)(nil)
	_ plugin.OnPayoutExecuted       = (*Extension)(nil)
	_ plugin.OnCycleAdvanced        = (*Extension)(nil)
	_ plugin.OnGroupCompleted       = (*Extension)(nil)
	_ plugin.OnGroupCancelled       = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event. Tag and Topics
// mirror the wire event surface: Tag is the primary topic, Topics the
// remaining ones (group id and, for per-cycle events, the cycle number).
type AuditEvent struct {
	Action   string         `json:"action"`
	Tag      string         `json:"tag"`
	Topics   []string       `json:"topics,omitempty"`
	Resource string         `json:"resource"`
	Category string         `json:"category"`
	GroupID  uint64         `json:"group_id"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Outcome  string         `json:"outcome"`
	Severity string         `json:"severity"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Ajo lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Group lifecycle hooks
// ──────────────────────────────────────────────────

// OnGroupCreated implements plugin.OnGroupCreated.
func (e *Extension) OnGroupCreated(ctx context.Context, g *group.Group) error {
	return e.record(ctx, ActionGroupCreated, TagCreated, g.ID, nil,
		ResourceGroup, CategoryLifecycle,
		"creator", g.Creator.String(),
		"amount", g.ContributionAmount.String(),
		"max_members", g.MaxMembers,
	)
}

// OnMemberJoined implements plugin.OnMemberJoined.
func (e *Extension) OnMemberJoined(ctx context.Context, groupID uint64, member id.Address) error {
	return e.record(ctx, ActionMemberJoined, TagJoined, groupID, nil,
		ResourceGroup, CategoryLifecycle,
		"member", member.String(),
	)
}

// OnContributionRecorded implements plugin.OnContributionRecorded.
func (e *Extension) OnContributionRecorded(ctx context.Context, groupID uint64, cycle uint32, member id.Address, amount types.Amount) error {
	return e.record(ctx, ActionContributionRecorded, TagContrib, groupID, cycleTopic(cycle),
		ResourceContribution, CategoryLedger,
		"cycle", cycle,
		"member", member.String(),
		"amount", amount.String(),
	)
}

// OnPayoutExecuted implements plugin.OnPayoutExecuted.
func (e *Extension) OnPayoutExecuted(ctx context.Context, groupID uint64, cycle uint32, recipient id.Address, amount types.Amount) error {
	return e.record(ctx, ActionPayoutExecuted, TagPayout, groupID, cycleTopic(cycle),
		ResourcePayout, CategoryLedger,
		"cycle", cycle,
		"recipient", recipient.String(),
		"amount", amount.String(),
	)
}

// OnCycleAdvanced implements plugin.OnCycleAdvanced.
func (e *Extension) OnCycleAdvanced(ctx context.Context, groupID uint64, newCycle uint32, cycleStartTime uint64) error {
	return e.record(ctx, ActionCycleAdvanced, TagCycle, groupID, nil,
		ResourceGroup, CategoryLifecycle,
		"new_cycle", newCycle,
		"cycle_start_time", cycleStartTime,
	)
}

// OnGroupCompleted implements plugin.OnGroupCompleted.
func (e *Extension) OnGroupCompleted(ctx context.Context, groupID uint64) error {
	return e.record(ctx, ActionGroupCompleted, TagComplete, groupID, nil,
		ResourceGroup, CategoryLifecycle,
	)
}

// OnGroupCancelled implements plugin.OnGroupCancelled.
// Cancellation has no wire tag; the audit action still records who pulled
// the plug.
func (e *Extension) OnGroupCancelled(ctx context.Context, groupID uint64, caller id.Address) error {
	return e.record(ctx, ActionGroupCancelled, "", groupID, nil,
		ResourceGroup, CategoryLifecycle,
		"caller", caller.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

func cycleTopic(cycle uint32) []string {
	return []string{strconv.FormatUint(uint64(cycle), 10)}
}

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, tag string,
	groupID uint64,
	extraTopics []string,
	resource, category string,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	topics := append([]string{strconv.FormatUint(groupID, 10)}, extraTopics...)

	evt := &AuditEvent{
		Action:   action,
		Tag:      tag,
		Topics:   topics,
		Resource: resource,
		Category: category,
		GroupID:  groupID,
		Metadata: meta,
		Outcome:  OutcomeSuccess,
		Severity: SeverityInfo,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"group_id", groupID,
			"error", recErr,
		)
	}
	return nil
}
