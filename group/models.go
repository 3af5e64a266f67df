package group

import (
	"github.com/xraph/ajo/id"
	"github.com/xraph/ajo/types"
)

// State describes where a group sits in its lifecycle.
type State string

const (
	// StateOpen accepts joins and contributions.
	StateOpen State = "open"
	// StateComplete means every member has been paid. Terminal.
	StateComplete State = "complete"
	// StateCancelled means the creator tore the group down early. Terminal.
	StateCancelled State = "cancelled"
)

// Group is one rotating-savings circle. Members contribute a fixed amount
// each cycle and exactly one member receives the pooled total per cycle,
// rotating in join order until everyone has been paid once.
type Group struct {
	types.Entity
	ID                 uint64       `json:"id"`
	Creator            id.Address   `json:"creator"`
	Members            []id.Address `json:"members"`
	ContributionAmount types.Amount `json:"contribution_amount"`
	CycleDuration      uint64       `json:"cycle_duration"` // seconds per cycle, informational
	MaxMembers         uint32       `json:"max_members"`
	CurrentCycle       uint32       `json:"current_cycle"`
	CycleStartTime     uint64       `json:"cycle_start_time"` // unix seconds
	IsComplete         bool         `json:"is_complete"`
	IsCancelled        bool         `json:"is_cancelled"`
}

// State derives the lifecycle state from the terminal flags.
func (g *Group) State() State {
	switch {
	case g.IsCancelled:
		return StateCancelled
	case g.IsComplete:
		return StateComplete
	default:
		return StateOpen
	}
}

// IsTerminal reports whether the group accepts no further mutations.
// Cancellation implies completion, so checking IsComplete covers both.
func (g *Group) IsTerminal() bool {
	return g.IsComplete
}

// HasMember reports whether addr is in the membership list.
func (g *Group) HasMember(addr id.Address) bool {
	for _, m := range g.Members {
		if m.Equal(addr) {
			return true
		}
	}
	return false
}

// IsFull reports whether the group has reached its membership cap.
func (g *Group) IsFull() bool {
	return uint32(len(g.Members)) >= g.MaxMembers
}

// Recipient returns the member due the payout for the current cycle.
// Rotation order is join order: cycle c pays Members[c-1].
func (g *Group) Recipient() id.Address {
	idx := int(g.CurrentCycle-1) % len(g.Members)
	return g.Members[idx]
}

// PayoutAmount computes the pooled total for one cycle:
// contribution amount × member count, with checked arithmetic.
func (g *Group) PayoutAmount() (types.Amount, error) {
	return g.ContributionAmount.MulCount(len(g.Members))
}
