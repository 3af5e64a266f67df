package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/types"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                 []OnInit
	onShutdown             []OnShutdown
	onGroupCreated         []OnGroupCreated
	onMemberJoined         []OnMemberJoined
	onContributionRecorded []OnContributionRecorded
	onPayoutExecuted       []OnPayoutExecuted
	onCycleAdvanced        []OnCycleAdvanced
	onGroupCompleted       []OnGroupCompleted
	onGroupCancelled       []OnGroupCancelled
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnGroupCreated); ok {
		r.onGroupCreated = append(r.onGroupCreated, v)
	}
	if v, ok := p.(OnMemberJoined); ok {
		r.onMemberJoined = append(r.onMemberJoined, v)
	}
	if v, ok := p.(OnContributionRecorded); ok {
		r.onContributionRecorded = append(r.onContributionRecorded, v)
	}
	if v, ok := p.(OnPayoutExecuted); ok {
		r.onPayoutExecuted = append(r.onPayoutExecuted, v)
	}
	if v, ok := p.(OnCycleAdvanced); ok {
		r.onCycleAdvanced = append(r.onCycleAdvanced, v)
	}
	if v, ok := p.(OnGroupCompleted); ok {
		r.onGroupCompleted = append(r.onGroupCompleted, v)
	}
	if v, ok := p.(OnGroupCancelled); ok {
		r.onGroupCancelled = append(r.onGroupCancelled, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnGroupCreated)(nil)).Elem(), "OnGroupCreated")
	checkInterface(reflect.TypeOf((*OnMemberJoined)(nil)).Elem(), "OnMemberJoined")
	checkInterface(reflect.TypeOf((*OnContributionRecorded)(nil)).Elem(), "OnContributionRecorded")
	checkInterface(reflect.TypeOf((*OnPayoutExecuted)(nil)).Elem(), "OnPayoutExecuted")
	checkInterface(reflect.TypeOf((*OnCycleAdvanced)(nil)).Elem(), "OnCycleAdvanced")
	checkInterface(reflect.TypeOf((*OnGroupCompleted)(nil)).Elem(), "OnGroupCompleted")
	checkInterface(reflect.TypeOf((*OnGroupCancelled)(nil)).Elem(), "OnGroupCancelled")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitGroupCreated emits a group created event.
func (r *Registry) EmitGroupCreated(ctx context.Context, g *group.Group) {
	r.mu.RLock()
	plugins := r.onGroupCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnGroupCreated(ctx, g)
		}); err != nil {
			r.logger.Warn("plugin OnGroupCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitMemberJoined emits a member joined event.
func (r *Registry) EmitMemberJoined(ctx context.Context, groupID uint64, member id.Address) {
	r.mu.RLock()
	plugins := r.onMemberJoined
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMemberJoined(ctx, groupID, member)
		}); err != nil {
			r.logger.Warn("plugin OnMemberJoined failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitContributionRecorded emits a contribution recorded event.
func (r *Registry) EmitContributionRecorded(ctx context.Context, groupID uint64, cycle uint32, member id.Address, amount types.Amount) {
	r.mu.RLock()
	plugins := r.onContributionRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnContributionRecorded(ctx, groupID, cycle, member, amount)
		}); err != nil {
			r.logger.Warn("plugin OnContributionRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPayoutExecuted emits a payout executed event.
func (r *Registry) EmitPayoutExecuted(ctx context.Context, groupID uint64, cycle uint32, recipient id.Address, amount types.Amount) {
	r.mu.RLock()
	plugins := r.onPayoutExecuted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPayoutExecuted(ctx, groupID, cycle, recipient, amount)
		}); err != nil {
			r.logger.Warn("plugin OnPayoutExecuted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCycleAdvanced emits a cycle advanced event.
func (r *Registry) EmitCycleAdvanced(ctx context.Context, groupID uint64, newCycle uint32, cycleStartTime uint64) {
	r.mu.RLock()
	plugins := r.onCycleAdvanced
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCycleAdvanced(ctx, groupID, newCycle, cycleStartTime)
		}); err != nil {
			r.logger.Warn("plugin OnCycleAdvanced failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitGroupCompleted emits a group completed event.
func (r *Registry) EmitGroupCompleted(ctx context.Context, groupID uint64) {
	r.mu.RLock()
	plugins := r.onGroupCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnGroupCompleted(ctx, groupID)
		}); err != nil {
			r.logger.Warn("plugin OnGroupCompleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitGroupCancelled emits a group cancelled event.
func (r *Registry) EmitGroupCancelled(ctx context.Context, groupID uint64, caller id.Address) {
	r.mu.RLock()
	plugins := r.onGroupCancelled
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnGroupCancelled(ctx, groupID, caller)
		}); err != nil {
			r.logger.Warn("plugin OnGroupCancelled failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout runs a hook with a hard timeout so a stuck plugin cannot
// wedge a ledger operation.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
