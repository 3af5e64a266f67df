package ajo

import "errors"

// Sentinel errors for the engine's business-rule rejections. All are
// non-retryable: a failed guard reports immediately and mutates nothing,
// so the caller decides whether to fix the precondition and call again.
var (
	// Parameter errors (group creation)
	ErrContributionAmountZero     = errors.New("ajo: contribution amount is zero")
	ErrContributionAmountNegative = errors.New("ajo: contribution amount is negative")
	ErrCycleDurationZero          = errors.New("ajo: cycle duration is zero")
	ErrMaxMembersBelowMinimum     = errors.New("ajo: max members below minimum of 2")

	// Lookup errors
	ErrGroupNotFound = errors.New("ajo: group not found")
	ErrAlreadyExists = errors.New("ajo: group already exists")

	// Membership errors
	ErrAlreadyMember = errors.New("ajo: already a member")
	ErrGroupFull     = errors.New("ajo: group is full")
	ErrNotMember     = errors.New("ajo: not a member")
	ErrUnauthorized  = errors.New("ajo: unauthorized")

	// State errors
	ErrGroupComplete           = errors.New("ajo: group is complete")
	ErrAlreadyContributed      = errors.New("ajo: already contributed this cycle")
	ErrIncompleteContributions = errors.New("ajo: cycle contributions incomplete")

	// Arithmetic errors
	ErrAmountOverflow = errors.New("ajo: amount overflows 128 bits")

	// Store errors
	ErrStoreClosed = errors.New("ajo: store is closed")
)

// IsNotFound returns true if the error is a lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGroupNotFound)
}

// IsValidation returns true if the error is a group-parameter rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrContributionAmountZero) ||
		errors.Is(err, ErrContributionAmountNegative) ||
		errors.Is(err, ErrCycleDurationZero) ||
		errors.Is(err, ErrMaxMembersBelowMinimum)
}

// IsTerminal returns true if the error reports a group in a terminal state.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrGroupComplete)
}

// IsAuthorization returns true if the error is a caller-permission rejection.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotMember)
}
