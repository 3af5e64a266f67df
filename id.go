package ajo

import "github.com/xraph/ajo/id"

// Address identifies a member account.
type Address = id.Address

// NewAddress generates a new globally unique account address.
var NewAddress = id.NewAddress
