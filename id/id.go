// Package id defines TypeID-based identity types for Ajo principals.
//
// Member accounts are identified by a TypeID with the "acct" prefix.
// Addresses are K-sortable (UUIDv7-based), globally unique, and URL-safe in
// the format "acct_suffix". The engine treats an Address as an opaque value:
// whether the caller actually controls it is verified by the host's
// authorization layer before a call reaches the engine.
//
// Group identifiers are deliberately not TypeIDs: the ledger allocates them
// from a persisted monotonic counter so that ids are dense, ordered, and
// stable across stores.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// PrefixAccount is the prefix for member account addresses.
const PrefixAccount Prefix = "acct"

// Address identifies a member account.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receiver for UnmarshalText.
type Address struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value Address.
var Nil Address

// NewAddress generates a new globally unique account address.
func NewAddress() Address {
	tid, err := typeid.Generate(string(PrefixAccount))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", PrefixAccount, err))
	}

	return Address{inner: tid, valid: true}
}

// ParseAddress parses a TypeID string (e.g., "acct_01h2xcejqtf2nbrexx3vqjhp41")
// into an Address, validating the "acct" prefix.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	if Prefix(tid.Prefix()) != PrefixAccount {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", PrefixAccount, tid.Prefix())
	}

	return Address{inner: tid, valid: true}, nil
}

// MustParseAddress is like ParseAddress but panics on error.
// Use for hardcoded address values.
func MustParseAddress(s string) Address {
	parsed, err := ParseAddress(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// String returns the full TypeID string representation (acct_suffix).
// Returns an empty string for the Nil address.
func (a Address) String() string {
	if !a.valid {
		return ""
	}

	return a.inner.String()
}

// IsNil reports whether this address is the zero value.
func (a Address) IsNil() bool {
	return !a.valid
}

// Equal reports whether two addresses identify the same account.
func (a Address) Equal(other Address) bool {
	if a.valid != other.valid {
		return false
	}

	return !a.valid || a.inner.String() == other.inner.String()
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	if !a.valid {
		return []byte{}, nil
	}

	return []byte(a.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*a = Nil

		return nil
	}

	parsed, err := ParseAddress(string(data))
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}
