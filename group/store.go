package group

import "context"

// Store is the registry surface for group records. It owns the monotonic
// group-id counter and per-group persistence.
type Store interface {
	// NextID reads the process-wide counter (zero when absent), increments
	// it, persists the new value, and returns it. Ids are never reused,
	// even after Delete.
	NextID(ctx context.Context) (uint64, error)

	Create(ctx context.Context, g *Group) error
	Get(ctx context.Context, groupID uint64) (*Group, error)
	Update(ctx context.Context, g *Group) error

	// Delete removes a group record. Administrative only; the normal
	// lifecycle never deletes groups, it marks them terminal.
	Delete(ctx context.Context, groupID uint64) error
}
