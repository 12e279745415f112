// Package inode maps filesystem identities (device, inode) to compact keys and
// stores values under them.
package inode

import "math/bits"

// Key identifies a filesystem object across directory listings.
type Key uint64

// Pair combines two non-negative integers with the Cantor pairing function
// (a+b)(a+b+1)/2 + a.
//
// The intermediate product is computed in 128 bits, so the result is exact
// whenever it fits in 64 bits. Beyond that the low 64 bits are returned and
// uniqueness is no longer guaranteed; use PairChecked to detect that case.
func Pair(a, b uint64) Key {
	k, _ := PairChecked(a, b)
	return k
}

// PairChecked is Pair that also reports whether the result fit in 64 bits.
func PairChecked(a, b uint64) (Key, bool) {
	sum, carry := bits.Add64(a, b, 0)
	next, carryNext := bits.Add64(sum, 1, 0)

	hi, lo := bits.Mul64(sum, next)
	lo = lo>>1 | hi<<63
	hi >>= 1

	lo, c := bits.Add64(lo, a, 0)
	hi += c

	return Key(lo), carry == 0 && carryNext == 0 && hi == 0
}

// Of returns the key for a (device, inode) pair.
func Of(dev, ino uint64) Key {
	return Pair(dev, ino)
}
