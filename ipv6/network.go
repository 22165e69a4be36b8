package ipv6

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Network represents an IPv6 network as its canonical base address (all
// bits beyond the prefix zero) and a prefix length in [0,128]. The base
// never carries a zone.
type Network struct {
	base Address
	plen int
}

// ParseCIDR parses CIDR text (address/prefix). Zone ids are rejected:
// networks are not link-scoped objects.
func ParseCIDR(s string) (Network, error) {
	s = strings.TrimSpace(s)
	addrText, prefixText, ok := strings.Cut(s, "/")
	if !ok {
		return Network{}, fmt.Errorf("%w: missing prefix length in %q", ErrInvalidFormat, s)
	}
	if strings.Contains(addrText, "%") {
		return Network{}, fmt.Errorf("%w: zone id not allowed in network %q", ErrInvalidFormat, s)
	}
	addr, err := Parse(addrText)
	if err != nil {
		return Network{}, err
	}
	plen, err := strconv.Atoi(prefixText)
	if err != nil {
		return Network{}, fmt.Errorf("%w: bad prefix in %q", ErrInvalidFormat, s)
	}
	return NewNetwork(addr, plen)
}

// NewNetwork constructs a canonical Network from an address and prefix
// length, silently masking away any host bits.
func NewNetwork(addr Address, plen int) (Network, error) {
	if plen < 0 || plen > 128 {
		return Network{}, fmt.Errorf("%w: /%d", ErrInvalidPrefix, plen)
	}
	base := Address{value: addr.value.and(mask128(plen))}
	return Network{base: base, plen: plen}, nil
}

// String renders the network in canonical CIDR form.
func (n Network) String() string { return fmt.Sprintf("%s/%d", n.base.String(), n.plen) }

// Addr returns the canonical network address.
func (n Network) Addr() Address { return n.base }

// PrefixLength returns the prefix length.
func (n Network) PrefixLength() int { return n.plen }

// Mask returns the network mask (top PrefixLength bits set) as an Address.
func (n Network) Mask() Address { return Mask(n.plen) }

// Mask returns the 128-bit mask with the top plen bits set as an Address.
// plen outside [0,128] is clamped.
func Mask(plen int) Address { return Address{value: mask128(plen)} }

// Contains reports whether addr is inside the network. The zone, if any, is
// ignored.
func (n Network) Contains(addr Address) bool {
	return addr.value.and(mask128(n.plen)) == n.base.value
}

// ContainsNetwork reports whether o is fully contained within n.
func (n Network) ContainsNetwork(o Network) bool {
	return n.plen <= o.plen && n.Contains(o.base)
}

// NumAddresses returns 2^(128-prefix) as a big.Int; exact for every prefix
// including 0.
func (n Network) NumAddresses() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(128-n.plen))
}

// First returns the first address in the network (the network address).
func (n Network) First() Address { return n.base }

// Last returns the highest address in the network.
func (n Network) Last() Address {
	return Address{value: n.base.value.or(mask128(n.plen).not())}
}

// Next returns the adjacent network of the same prefix length.
func (n Network) Next() Network {
	step := hostStride(n.plen)
	return Network{base: Address{value: n.base.value.add(step)}, plen: n.plen}
}

// hostStride returns 2^(128-plen) mod 2^128, the address-count step between
// adjacent networks of the given prefix. plen 0 wraps to zero.
func hostStride(plen int) uint128 {
	return uint128{0, 1}.shl(uint(128 - plen))
}
