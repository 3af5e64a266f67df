package ajo

import "github.com/xraph/ajo/types"

// MinMembers is the smallest group size that still rotates money.
const MinMembers = 2

// ValidateGroupParams checks group-creation parameters before any state is
// touched. Pure: no side effects, no state read. The check order is part of
// the contract: callers observe the first failing rule.
func ValidateGroupParams(amount types.Amount, cycleDuration uint64, maxMembers uint32) error {
	// Amounts must be positive
	if amount.IsZero() {
		return ErrContributionAmountZero
	}
	if amount.IsNegative() {
		return ErrContributionAmountNegative
	}

	// A zero-duration cycle never elapses
	if cycleDuration == 0 {
		return ErrCycleDurationZero
	}

	// We need at least two people to rotate money
	if maxMembers < MinMembers {
		return ErrMaxMembersBelowMinimum
	}

	return nil
}
