package store

import (
	"fmt"
	"strconv"

	"github.com/xraph/ajo/id"
)

// Kind tags the entity a storage key addresses.
type Kind uint8

// Key kinds, one per stored entity.
const (
	KindCounter Kind = iota + 1
	KindGroup
	KindContribution
	KindPayout
)

// Short symbolic tags used in the encoded form. Stable strings: changing
// them orphans every record already on disk.
const (
	tagCounter      = "GCOUNTER"
	tagGroup        = "GROUP"
	tagContribution = "CONTRIB"
	tagPayout       = "PAYOUT"
)

// Key is the tagged composite key for every Ajo record:
//
//	Counter                          → "GCOUNTER"
//	Group(id)                        → "GROUP/<id>"
//	Contribution(id, cycle, member)  → "CONTRIB/<id>/<cycle>/<member>"
//	Payout(id, member)               → "PAYOUT/<id>/<member>"
//
// Centralizing key construction here keeps the encoding deterministic and
// testable independent of any driver.
type Key struct {
	Kind    Kind
	GroupID uint64
	Cycle   uint32
	Member  id.Address
}

// CounterKey addresses the group-id counter.
func CounterKey() Key {
	return Key{Kind: KindCounter}
}

// GroupKey addresses a group record.
func GroupKey(groupID uint64) Key {
	return Key{Kind: KindGroup, GroupID: groupID}
}

// ContributionKey addresses one member's payment flag for one cycle.
func ContributionKey(groupID uint64, cycle uint32, member id.Address) Key {
	return Key{Kind: KindContribution, GroupID: groupID, Cycle: cycle, Member: member}
}

// PayoutKey addresses one member's payout-received flag.
func PayoutKey(groupID uint64, member id.Address) Key {
	return Key{Kind: KindPayout, GroupID: groupID, Member: member}
}

// Encode renders the key in its canonical string form.
// It panics on an unknown kind (programming error).
func (k Key) Encode() string {
	switch k.Kind {
	case KindCounter:
		return tagCounter
	case KindGroup:
		return tagGroup + "/" + strconv.FormatUint(k.GroupID, 10)
	case KindContribution:
		return tagContribution + "/" + strconv.FormatUint(k.GroupID, 10) +
			"/" + strconv.FormatUint(uint64(k.Cycle), 10) +
			"/" + k.Member.String()
	case KindPayout:
		return tagPayout + "/" + strconv.FormatUint(k.GroupID, 10) +
			"/" + k.Member.String()
	default:
		panic(fmt.Sprintf("store: encode key with unknown kind %d", k.Kind))
	}
}

// Bytes renders the key for byte-oriented stores.
func (k Key) Bytes() []byte {
	return []byte(k.Encode())
}
