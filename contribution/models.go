// Package contribution tracks per-(group, cycle, member) payment flags.
//
// Records are implicit: a key that was never written reads back as unpaid.
// Once a member's flag for a cycle is set it is never cleared within that
// cycle; the engine rejects repeat contributions before they reach storage
// so it can report the duplicate distinctly from a silent no-op.
package contribution

import "github.com/xraph/ajo/id"

// Status is one member's payment flag for a cycle, in rotation order.
// Returned by the engine's per-cycle contribution listing.
type Status struct {
	Member id.Address `json:"member"`
	Paid   bool       `json:"paid"`
}
