// Package observability provides a metrics plugin that counts group
// lifecycle events. It depends only on small local metric interfaces so
// any metrics backend can be adapted; a Prometheus-backed factory ships
// in this package.
package observability

import (
	"context"

	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/plugin"
	"github.com/xraph/ajo/types"
)

// Counter is an incrementing metric.
type Counter interface {
	Inc()
	Add(delta float64)
}

// Histogram records observations into buckets.
type Histogram interface {
	Observe(value float64)
}

// MetricFactory creates named metrics. Implementations decide how names
// map onto the backend's naming rules.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// Compile-time interface checks.
var (
	_ plugin.Plugin                 = (*MetricsExtension)(nil)
	_ plugin.OnGroupCreated         = (*MetricsExtension)(nil)
	_ plugin.OnMemberJoined         = (*MetricsExtension)(nil)
	_ plugin.OnContributionRecorded = (*MetricsExtension)(nil)
	_ plugin.OnPayoutExecuted       = (*MetricsExtension)(nil)
	_ plugin.OnCycleAdvanced        = (*MetricsExtension)(nil)
	_ plugin.OnGroupCompleted       = (*MetricsExtension)(nil)
	_ plugin.OnGroupCancelled       = (*MetricsExtension)(nil)
)

// MetricsExtension counts lifecycle events emitted by the engine.
type MetricsExtension struct {
	groupsCreated         Counter
	membersJoined         Counter
	contributionsRecorded Counter
	payoutsExecuted       Counter
	cyclesAdvanced        Counter
	groupsCompleted       Counter
	groupsCancelled       Counter
	groupSize             Histogram
}

// NewMetricsExtension wires counters for every lifecycle event using the
// given factory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		groupsCreated:         factory.Counter("ajo.group.created"),
		membersJoined:         factory.Counter("ajo.group.member_joined"),
		contributionsRecorded: factory.Counter("ajo.contribution.recorded"),
		payoutsExecuted:       factory.Counter("ajo.payout.executed"),
		cyclesAdvanced:        factory.Counter("ajo.cycle.advanced"),
		groupsCompleted:       factory.Counter("ajo.group.completed"),
		groupsCancelled:       factory.Counter("ajo.group.cancelled"),
		groupSize:             factory.Histogram("ajo.group.size"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnGroupCreated implements plugin.OnGroupCreated.
func (m *MetricsExtension) OnGroupCreated(_ context.Context, g *group.Group) error {
	m.groupsCreated.Inc()
	m.groupSize.Observe(float64(g.MaxMembers))
	return nil
}

// OnMemberJoined implements plugin.OnMemberJoined.
func (m *MetricsExtension) OnMemberJoined(_ context.Context, _ uint64, _ id.Address) error {
	m.membersJoined.Inc()
	return nil
}

// OnContributionRecorded implements plugin.OnContributionRecorded.
func (m *MetricsExtension) OnContributionRecorded(_ context.Context, _ uint64, _ uint32, _ id.Address, _ types.Amount) error {
	m.contributionsRecorded.Inc()
	return nil
}

// OnPayoutExecuted implements plugin.OnPayoutExecuted.
func (m *MetricsExtension) OnPayoutExecuted(_ context.Context, _ uint64, _ uint32, _ id.Address, _ types.Amount) error {
	m.payoutsExecuted.Inc()
	return nil
}

// OnCycleAdvanced implements plugin.OnCycleAdvanced.
func (m *MetricsExtension) OnCycleAdvanced(_ context.Context, _ uint64, _ uint32, _ uint64) error {
	m.cyclesAdvanced.Inc()
	return nil
}

// OnGroupCompleted implements plugin.OnGroupCompleted.
func (m *MetricsExtension) OnGroupCompleted(_ context.Context, _ uint64) error {
	m.groupsCompleted.Inc()
	return nil
}

// OnGroupCancelled implements plugin.OnGroupCancelled.
func (m *MetricsExtension) OnGroupCancelled(_ context.Context, _ uint64, _ id.Address) error {
	m.groupsCancelled.Inc()
	return nil
}
