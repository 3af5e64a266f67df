package payout

import (
	"context"

	"github.com/xraph/ajo/id"
)

// Store persists payout-received flags keyed by (group, member).
type Store interface {
	// MarkReceived records that a member has been paid their rotation
	// payout. Set exactly once per member by the engine; never unset.
	MarkReceived(ctx context.Context, groupID uint64, member id.Address) error

	// HasReceived reports whether a member has been paid.
	// Absent keys read as false, never as an error.
	HasReceived(ctx context.Context, groupID uint64, member id.Address) (bool, error)
}
