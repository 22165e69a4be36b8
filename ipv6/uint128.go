package ipv6

import "math/bits"

// uint128 is an unsigned 128-bit value held as two 64-bit words. All address
// and network arithmetic in this package runs on it; math/big is used only
// where results can exceed 128 bits (address counts).
type uint128 struct {
	hi, lo uint64
}

func (u uint128) isZero() bool { return u.hi == 0 && u.lo == 0 }

func (u uint128) and(v uint128) uint128 { return uint128{u.hi & v.hi, u.lo & v.lo} }
func (u uint128) or(v uint128) uint128  { return uint128{u.hi | v.hi, u.lo | v.lo} }
func (u uint128) xor(v uint128) uint128 { return uint128{u.hi ^ v.hi, u.lo ^ v.lo} }
func (u uint128) not() uint128          { return uint128{^u.hi, ^u.lo} }

// add returns u+v mod 2^128.
func (u uint128) add(v uint128) uint128 {
	lo, carry := bits.Add64(u.lo, v.lo, 0)
	hi, _ := bits.Add64(u.hi, v.hi, carry)
	return uint128{hi, lo}
}

// sub returns u-v mod 2^128.
func (u uint128) sub(v uint128) uint128 {
	lo, borrow := bits.Sub64(u.lo, v.lo, 0)
	hi, _ := bits.Sub64(u.hi, v.hi, borrow)
	return uint128{hi, lo}
}

// shl returns u<<n; n beyond 127 yields zero.
func (u uint128) shl(n uint) uint128 {
	switch {
	case n == 0:
		return u
	case n < 64:
		return uint128{u.hi<<n | u.lo>>(64-n), u.lo << n}
	case n < 128:
		return uint128{u.lo << (n - 64), 0}
	default:
		return uint128{}
	}
}

// shr returns u>>n; n beyond 127 yields zero.
func (u uint128) shr(n uint) uint128 {
	switch {
	case n == 0:
		return u
	case n < 64:
		return uint128{u.hi >> n, u.lo>>n | u.hi<<(64-n)}
	case n < 128:
		return uint128{0, u.hi >> (n - 64)}
	default:
		return uint128{}
	}
}

// cmp performs unsigned comparison: -1 if u<v, 0 if equal, 1 if u>v.
func (u uint128) cmp(v uint128) int {
	switch {
	case u.hi < v.hi:
		return -1
	case u.hi > v.hi:
		return 1
	case u.lo < v.lo:
		return -1
	case u.lo > v.lo:
		return 1
	}
	return 0
}

// leadingZeros counts zero bits from the most significant end.
func (u uint128) leadingZeros() int {
	if u.hi != 0 {
		return bits.LeadingZeros64(u.hi)
	}
	return 64 + bits.LeadingZeros64(u.lo)
}

// group returns 16-bit group i (0 = most significant) of the value.
func (u uint128) group(i int) uint16 {
	if i < 4 {
		return uint16(u.hi >> (48 - 16*uint(i)))
	}
	return uint16(u.lo >> (48 - 16*uint(i-4)))
}

// withGroup returns a copy with 16-bit group i set to g.
func (u uint128) withGroup(i int, g uint16) uint128 {
	if i < 4 {
		shift := 48 - 16*uint(i)
		u.hi = u.hi&^(0xffff<<shift) | uint64(g)<<shift
	} else {
		shift := 48 - 16*uint(i-4)
		u.lo = u.lo&^(0xffff<<shift) | uint64(g)<<shift
	}
	return u
}

// mask128 returns the value with the top plen bits set. plen must be in
// [0,128]; callers validate before masking.
func mask128(plen int) uint128 {
	switch {
	case plen <= 0:
		return uint128{}
	case plen <= 64:
		return uint128{^uint64(0) << (64 - uint(plen)), 0}
	case plen < 128:
		return uint128{^uint64(0), ^uint64(0) << (128 - uint(plen))}
	default:
		return uint128{^uint64(0), ^uint64(0)}
	}
}

// ceilLog2 returns the smallest b with 2^b >= n, for n >= 1.
func ceilLog2(n int) int {
	return bits.Len(uint(n - 1))
}
