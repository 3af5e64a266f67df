// Package ajo provides a rotating-savings-group ("Ajo"/"esusu") ledger
// engine for Go applications.
//
// Ajo is designed as a library, not a service. A group of participants
// contributes a fixed amount every cycle, and in each cycle exactly one
// member receives the pooled total, rotating in join order until every
// member has been paid once. The engine provides:
//
//   - Group lifecycle state machine: create → join → contribute → payout →
//     advance cycle → complete, with irrevocable creator cancellation
//   - Exactly-once bookkeeping: one contribution per member per cycle, one
//     payout per member per group
//   - Checked 128-bit amount arithmetic: overflow is rejected, never wrapped
//   - Pluggable persistence (memory, bbolt, Redis) behind a narrow
//     key/value contract
//   - Lifecycle event hooks for audit trails and metrics
//
// # Quick Start
//
// Create an engine instance with your preferred store:
//
//	import (
//	    "github.com/xraph/ajo"
//	    "github.com/xraph/ajo/store/bolt"
//	)
//
//	st, err := bolt.Open("ajo.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	engine := ajo.New(st)
//	if err := engine.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Stop()
//
// # Core Concepts
//
// A group fixes its contribution amount, cycle duration, and membership cap
// at creation; the creator is always the first member and the first payout
// recipient:
//
//	groupID, err := engine.CreateGroup(ctx, creator, ajo.NewAmount(100_000_000), 604_800, 5)
//
// Members join until the cap is reached, contribute once per cycle, and any
// caller may trigger the payout once the cycle's pool is full:
//
//	err = engine.JoinGroup(ctx, member, groupID)
//	err = engine.Contribute(ctx, member, groupID)
//	err = engine.ExecutePayout(ctx, groupID)
//
// After one payout per member the group is complete and rejects every
// further mutation.
//
// # Execution model
//
// Operations are synchronous and atomic: each call either applies all of its
// state writes or none. The engine runs no timers and no background workers;
// time passing never triggers a payout, only an explicit ExecutePayout call
// does. Calls against the same group must be serialized by the hosting
// environment; calls against different groups are independent.
//
// # Errors
//
// Every guard failure is a typed sentinel error (ErrGroupFull,
// ErrAlreadyContributed, ErrGroupComplete, ...) surfaced synchronously to
// the caller. None are transient; retrying without fixing the precondition
// fails identically.
package ajo
