package contribution

import (
	"context"

	"github.com/xraph/ajo/id"
)

// Store persists contribution flags keyed by (group, cycle, member).
type Store interface {
	// SetPaid records a member's payment flag for a cycle. Idempotent at
	// this layer; duplicate detection is the engine's job.
	SetPaid(ctx context.Context, groupID uint64, cycle uint32, member id.Address, paid bool) error

	// HasPaid reports a member's payment flag for a cycle.
	// Absent keys read as false, never as an error.
	HasPaid(ctx context.Context, groupID uint64, cycle uint32, member id.Address) (bool, error)
}
