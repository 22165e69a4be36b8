package ipv6

import (
	"fmt"
	"sort"
)

// MaxSplitParts caps how many subnets a single division may materialize.
const MaxSplitParts = 1 << 20

// Subnet is a Network produced by dividing a parent network: Index is its
// ordinal within the division, Label an optional human-readable tag set by
// the allocation planner.
type Subnet struct {
	Network
	Index int
	Label string
}

// DivideIntoSubnets divides the network into exactly count contiguous
// subnets of prefix length prefix+ceil(log2(count)), ascending. When count
// is not a power of two, the remainder of the expanded prefix space is left
// unassigned rather than returned as extra subnets.
func DivideIntoSubnets(n Network, count int) ([]Subnet, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d subnets", ErrInvalidCount, count)
	}
	if count > MaxSplitParts {
		return nil, fmt.Errorf("%w: %d parts exceeds %d", ErrTooManySubnets, count, MaxSplitParts)
	}
	bits := ceilLog2(count)
	newPrefix := n.plen + bits
	if newPrefix > 128 {
		return nil, fmt.Errorf("%w: %d subnets need /%d inside /%d", ErrPrefixTooLarge, count, newPrefix, n.plen)
	}
	return divide(n.base, newPrefix, count), nil
}

// DivideByPrefix divides the network into all of its subnets of the given
// prefix length, ascending.
func DivideByPrefix(n Network, newPrefix int) ([]Subnet, error) {
	if newPrefix <= n.plen || newPrefix > 128 {
		return nil, fmt.Errorf("%w: /%d from /%d", ErrInvalidPrefix, newPrefix, n.plen)
	}
	bits := newPrefix - n.plen
	if bits >= 31 || 1<<bits > MaxSplitParts {
		return nil, fmt.Errorf("%w: 2^%d parts exceeds %d", ErrTooManySubnets, bits, MaxSplitParts)
	}
	return divide(n.base, newPrefix, 1<<bits), nil
}

// divide materializes count consecutive subnets of the given prefix length
// starting at base. Validation happens in the callers.
func divide(base Address, newPrefix, count int) []Subnet {
	step := hostStride(newPrefix)
	subs := make([]Subnet, count)
	cur := base.value
	for i := range subs {
		subs[i] = Subnet{
			Network: Network{base: Address{value: cur}, plen: newPrefix},
			Index:   i,
		}
		cur = cur.add(step)
	}
	return subs
}

// Supernet returns the network masked to the shorter newPrefix.
func Supernet(n Network, newPrefix int) (Network, error) {
	if newPrefix >= n.plen || newPrefix < 0 {
		return Network{}, fmt.Errorf("%w: supernet /%d of /%d", ErrInvalidPrefix, newPrefix, n.plen)
	}
	return NewNetwork(n.base, newPrefix)
}

// Overlaps reports whether two networks share any addresses: true iff the
// narrower network is contained in the wider one, or they are equal.
func (n Network) Overlaps(o Network) bool {
	p := n.plen
	if o.plen < p {
		p = o.plen
	}
	m := mask128(p)
	return n.base.value.and(m) == o.base.value.and(m)
}

// SummaryAddress computes the smallest single network containing every
// network in the non-empty input: the common leading-bit prefix of the base
// values, clamped to the shortest input prefix so that the result contains
// each input network in full. A single-element input is returned unchanged.
func SummaryAddress(networks []Network) (Network, error) {
	if len(networks) == 0 {
		return Network{}, fmt.Errorf("%w: no networks to summarize", ErrInvalidCount)
	}
	first := networks[0]
	plen := first.plen
	var diff uint128
	for _, n := range networks[1:] {
		diff = diff.or(first.base.value.xor(n.base.value))
		if n.plen < plen {
			plen = n.plen
		}
	}
	if common := diff.leadingZeros(); common < plen {
		plen = common
	}
	return NewNetwork(first.base, plen)
}

// Summarize merges the input into the minimal covering list by repeatedly
// combining adjacent sibling networks.
func Summarize(networks []Network) []Network {
	if len(networks) == 0 {
		return nil
	}
	norm := make([]Network, len(networks))
	copy(norm, networks)
	sort.Slice(norm, func(i, j int) bool {
		cmp := norm[i].base.Compare(norm[j].base)
		if cmp == 0 {
			return norm[i].plen < norm[j].plen
		}
		return cmp < 0
	})
	changed := true
	for changed {
		changed = false
		out := make([]Network, 0, len(norm))
		for i := 0; i < len(norm); {
			if i+1 < len(norm) && norm[i].plen == norm[i+1].plen && norm[i].plen > 0 {
				parentPrefix := norm[i].plen - 1
				p1 := norm[i].base.value.and(mask128(parentPrefix))
				p2 := norm[i+1].base.value.and(mask128(parentPrefix))
				if p1 == p2 && norm[i].Next().base.value == norm[i+1].base.value {
					out = append(out, Network{base: Address{value: p1}, plen: parentPrefix})
					changed = true
					i += 2
					continue
				}
			}
			// drop networks covered by the previous entry
			if len(out) > 0 && out[len(out)-1].ContainsNetwork(norm[i]) {
				changed = true
				i++
				continue
			}
			out = append(out, norm[i])
			i++
		}
		norm = out
	}
	return norm
}
