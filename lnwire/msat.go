package lnwire

import "fmt"

// MilliSatoshi represents a thousandth of a satoshi, the smallest unit of
// value accounted for in any Lightning payment. All channel capacities,
// balances, and fees are expressed in this unit.
type MilliSatoshi uint64

// MaxMilliSatoshi is the largest amount a single payment may request: the
// entire 21 million BTC supply, expressed in millisatoshis.
const MaxMilliSatoshi = MilliSatoshi(21_000_000 * 100_000_000 * 1000)

// NewMSatFromSatoshis creates a MilliSatoshi value from an amount expressed
// in satoshis.
func NewMSatFromSatoshis(sat uint64) MilliSatoshi {
	return MilliSatoshi(sat * 1000)
}

// ToSatoshis rounds down the amount to the nearest satoshi.
func (m MilliSatoshi) ToSatoshis() uint64 {
	return uint64(m) / 1000
}

// String returns the amount formatted as a decimal number of millisatoshis.
func (m MilliSatoshi) String() string {
	return fmt.Sprintf("%d mSAT", uint64(m))
}
