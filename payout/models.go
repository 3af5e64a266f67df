// Package payout tracks which members have received their rotation payout.
//
// Payout flags exist for observability and auditing. Group completion is
// derived from the cycle counter against the member count, not by scanning
// these records, which keeps ExecutePayout O(1) in the number of members
// already paid.
package payout
