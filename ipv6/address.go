// Package ipv6 implements IPv6 address and network arithmetic: canonical
// parsing and formatting (RFC 5952), CIDR containment and masking, subnet
// division, supernetting and aggregation, address generation (link-local,
// ULA, EUI-64) and subnet allocation planning.
//
// All values are immutable; every operation is a pure computation safe for
// concurrent use.
package ipv6

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Sentinel errors
var (
	ErrInvalidFormat      = errors.New("ipv6: invalid format")
	ErrInvalidPrefix      = errors.New("ipv6: invalid prefix length")
	ErrPrefixTooLarge     = errors.New("ipv6: prefix too large")
	ErrInvalidCount       = errors.New("ipv6: invalid count")
	ErrTooManySubnets     = errors.New("ipv6: too many subnets")
	ErrMACFormat          = errors.New("ipv6: invalid mac address")
	ErrAllocationOverflow = errors.New("ipv6: allocation overflow")
	ErrDuplicateRequester = errors.New("ipv6: duplicate requester")
)

// Address represents a single 128-bit IPv6 address plus the zone identifier
// it was parsed with, if any. The zone is carried through formatting but is
// ignored by all network arithmetic and by Compare.
type Address struct {
	value uint128
	zone  string
}

// Parse converts a textual IPv6 literal (optionally carrying a %zone suffix)
// into an Address.
func Parse(s string) (Address, error) {
	s = strings.TrimSpace(s)
	text, zone, hasZone := strings.Cut(s, "%")
	if hasZone && zone == "" {
		return Address{}, fmt.Errorf("%w: empty zone id in %q", ErrInvalidFormat, s)
	}
	v, err := parseLiteral(text)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q", err, s)
	}
	return Address{value: v, zone: zone}, nil
}

// parseLiteral parses the address portion of a literal (no zone) into its
// 128-bit value. Grammar: 8 colon-separated groups of 1-4 hex digits, or
// fewer with a single "::" compressing one or more zero groups, with an
// optional trailing dotted quad standing in for the final two groups.
func parseLiteral(s string) (uint128, error) {
	if s == "" {
		return uint128{}, ErrInvalidFormat
	}
	left, right := s, ""
	compressed := false
	if i := strings.Index(s, "::"); i >= 0 {
		left, right = s[:i], s[i+2:]
		if strings.Contains(right, "::") {
			return uint128{}, ErrInvalidFormat
		}
		compressed = true
	}
	lg, lv4, err := parseGroups(left)
	if err != nil {
		return uint128{}, err
	}
	rg, _, err := parseGroups(right)
	if err != nil {
		return uint128{}, err
	}
	if lv4 && compressed {
		// dotted quad is only valid in the trailing position
		return uint128{}, ErrInvalidFormat
	}
	total := len(lg) + len(rg)
	if compressed {
		// "::" must stand in for at least one group
		if total > 7 {
			return uint128{}, ErrInvalidFormat
		}
	} else if total != 8 {
		return uint128{}, ErrInvalidFormat
	}
	var v uint128
	for i, g := range lg {
		v = v.withGroup(i, g)
	}
	for i, g := range rg {
		v = v.withGroup(8-len(rg)+i, g)
	}
	return v, nil
}

// parseGroups parses one side of a "::" into 16-bit groups. A trailing
// dotted quad contributes two groups and is reported via the bool result.
func parseGroups(side string) ([]uint16, bool, error) {
	if side == "" {
		return nil, false, nil
	}
	parts := strings.Split(side, ":")
	groups := make([]uint16, 0, len(parts)+1)
	v4 := false
	for i, p := range parts {
		if strings.Contains(p, ".") {
			if i != len(parts)-1 {
				return nil, false, ErrInvalidFormat
			}
			hi, lo, err := parseDottedQuad(p)
			if err != nil {
				return nil, false, err
			}
			groups = append(groups, hi, lo)
			v4 = true
			continue
		}
		if len(p) == 0 || len(p) > 4 {
			return nil, false, ErrInvalidFormat
		}
		g, err := strconv.ParseUint(p, 16, 16)
		if err != nil {
			return nil, false, ErrInvalidFormat
		}
		groups = append(groups, uint16(g))
	}
	return groups, v4, nil
}

// parseDottedQuad parses an IPv4-mapped tail into the final two groups.
func parseDottedQuad(s string) (hi, lo uint16, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, 0, ErrInvalidFormat
	}
	var oct [4]uint64
	for i, p := range parts {
		if len(p) == 0 || len(p) > 3 {
			return 0, 0, ErrInvalidFormat
		}
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, 0, ErrInvalidFormat
		}
		oct[i] = v
	}
	return uint16(oct[0]<<8 | oct[1]), uint16(oct[2]<<8 | oct[3]), nil
}

// String returns the canonical compressed form (RFC 5952), with the zone
// re-attached when present.
func (a Address) String() string {
	s := compress(a.value)
	if a.zone != "" {
		s += "%" + a.zone
	}
	return s
}

// compress renders the RFC 5952 canonical compressed text: lowercase hex,
// leading zeros stripped, the leftmost longest run of two or more zero
// groups replaced by "::".
func compress(v uint128) string {
	var groups [8]uint16
	for i := range groups {
		groups[i] = v.group(i)
	}
	runStart, runLen := -1, 1 // runs of length 1 are never compressed
	for i := 0; i < 8; {
		if groups[i] != 0 {
			i++
			continue
		}
		j := i
		for j < 8 && groups[j] == 0 {
			j++
		}
		if j-i > runLen {
			runStart, runLen = i, j-i
		}
		i = j
	}
	var b strings.Builder
	writeGroups := func(from, to int) {
		for i := from; i < to; i++ {
			if i > from {
				b.WriteByte(':')
			}
			b.WriteString(strconv.FormatUint(uint64(groups[i]), 16))
		}
	}
	if runStart < 0 {
		writeGroups(0, 8)
		return b.String()
	}
	writeGroups(0, runStart)
	b.WriteString("::")
	writeGroups(runStart+runLen, 8)
	return b.String()
}

// Expanded returns the full 8 * 4 lowercase hex digit representation,
// without the zone.
func (a Address) Expanded() string {
	parts := make([]string, 8)
	for i := 0; i < 8; i++ {
		parts[i] = fmt.Sprintf("%04x", a.value.group(i))
	}
	return strings.Join(parts, ":")
}

// Zone returns the zone identifier the address was parsed with ("" if none).
func (a Address) Zone() string { return a.zone }

// WithoutZone returns the same address value with no zone attached.
func (a Address) WithoutZone() Address { return Address{value: a.value} }

// Bytes returns the 16-byte big-endian representation.
func (a Address) Bytes() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], a.value.hi)
	binary.BigEndian.PutUint64(b[8:], a.value.lo)
	return b
}

// BigInt returns a new big.Int holding the unsigned 128-bit value.
func (a Address) BigInt() *big.Int {
	b := a.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// Compare performs unsigned comparison of the 128-bit values, ignoring
// zones: -1 if a<b, 0 if equal, 1 if a>b.
func (a Address) Compare(b Address) int { return a.value.cmp(b.value) }

// Offset returns a+n (mod 2^128), dropping the zone.
func (a Address) Offset(n uint64) Address {
	return Address{value: a.value.add(uint128{0, n})}
}

// ReversePointer returns the ip6.arpa reverse mapping name: the nibbles of
// the expanded address reversed and dot-separated.
func (a Address) ReversePointer() string {
	b := a.Bytes()
	hexstr := hex.EncodeToString(b[:])
	var sb strings.Builder
	sb.Grow(len(hexstr)*2 + 8)
	for i := len(hexstr) - 1; i >= 0; i-- {
		sb.WriteByte(hexstr[i])
		sb.WriteByte('.')
	}
	sb.WriteString("ip6.arpa")
	return sb.String()
}

// AddressType is the closed classification of an address value.
type AddressType int

const (
	TypeReserved AddressType = iota
	TypeUnspecified
	TypeLoopback
	TypeLinkLocal
	TypeUniqueLocal
	TypeMulticast
	TypeGlobalUnicast
)

func (t AddressType) String() string {
	switch t {
	case TypeUnspecified:
		return "Unspecified"
	case TypeLoopback:
		return "Loopback"
	case TypeLinkLocal:
		return "Link-Local"
	case TypeUniqueLocal:
		return "Unique Local (ULA)"
	case TypeMulticast:
		return "Multicast"
	case TypeGlobalUnicast:
		return "Global Unicast"
	}
	return "Reserved"
}

// Type classifies the address. Exact matches (unspecified, loopback) are
// tested before the prefix ranges; the ranges themselves are disjoint.
func (a Address) Type() AddressType {
	v := a.value
	switch {
	case v.isZero():
		return TypeUnspecified
	case v.hi == 0 && v.lo == 1:
		return TypeLoopback
	case v.hi>>54 == 0x3fa: // fe80::/10
		return TypeLinkLocal
	case v.hi>>57 == 0x7e: // fc00::/7
		return TypeUniqueLocal
	case v.hi>>56 == 0xff: // ff00::/8
		return TypeMulticast
	case v.hi>>61 == 0x1: // 2000::/3
		return TypeGlobalUnicast
	}
	return TypeReserved
}
