// Package id generates time-sortable identifiers for recommendation and
// backtest records. ULIDs sort lexicographically by creation time, which
// keeps journal time-range queries aligned with insertion order.
package id

import "github.com/oklog/ulid/v2"

// New returns a fresh ULID string.
func New() string {
	return ulid.Make().String()
}
