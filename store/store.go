// Package store defines the unified persistence interface for the Ajo
// engine and the tagged key codec shared by every driver.
package store

import (
	"context"

	"github.com/xraph/ajo/group"
	"github.com/xraph/ajo/id"
)

// Store is the unified storage interface for all Ajo entities.
// Instead of embedding the per-entity sub-interfaces, we explicitly declare
// all methods to avoid naming conflicts.
//
// Missing contribution and payout flags read back as false, and a missing
// counter as zero; absence is a defined value, not an error path. Only
// GetGroup distinguishes "absent" (ajo.ErrGroupNotFound) from a stored record.
type Store interface {
	// Group registry methods
	NextGroupID(ctx context.Context) (uint64, error)
	CreateGroup(ctx context.Context, g *group.Group) error
	GetGroup(ctx context.Context, groupID uint64) (*group.Group, error)
	UpdateGroup(ctx context.Context, g *group.Group) error
	DeleteGroup(ctx context.Context, groupID uint64) error

	// Contribution ledger methods
	SetContributed(ctx context.Context, groupID uint64, cycle uint32, member id.Address, paid bool) error
	HasContributed(ctx context.Context, groupID uint64, cycle uint32, member id.Address) (bool, error)

	// Payout ledger methods
	MarkPayoutReceived(ctx context.Context, groupID uint64, member id.Address) error
	HasReceivedPayout(ctx context.Context, groupID uint64, member id.Address) (bool, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
