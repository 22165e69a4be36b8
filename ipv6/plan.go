package ipv6

import (
	"fmt"
	"sort"
)

// AllocationRequest names one requester and the number of subnets it needs.
// Requests are ordered: input position breaks ties between equal counts.
type AllocationRequest struct {
	Name    string `json:"name" yaml:"name"`
	Subnets int    `json:"subnets" yaml:"subnets"`
}

// RecommendAllocation assigns each requester a disjoint block of subnets
// carved out of base. All leaf subnets share one prefix length, derived
// from the total demand with every requester's count rounded up to a power
// of two; requesters are packed largest first (ties in input order) so each
// block stays aligned to its own size. Returned subnets are labeled with
// their requester's name.
func RecommendAllocation(base Network, requests []AllocationRequest) (map[string][]Subnet, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: no allocation requests", ErrInvalidCount)
	}
	seen := make(map[string]struct{}, len(requests))
	totalLeaves := 0
	for _, r := range requests {
		if r.Subnets < 1 {
			return nil, fmt.Errorf("%w: %d subnets for %q", ErrInvalidCount, r.Subnets, r.Name)
		}
		if r.Subnets > MaxSplitParts {
			return nil, fmt.Errorf("%w: %d subnets for %q", ErrTooManySubnets, r.Subnets, r.Name)
		}
		if _, dup := seen[r.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRequester, r.Name)
		}
		seen[r.Name] = struct{}{}
		totalLeaves += 1 << ceilLog2(r.Subnets)
	}

	leafBits := ceilLog2(totalLeaves)
	if leafBits > 128-base.plen {
		return nil, fmt.Errorf("%w: %d subnets need %d bits inside /%d", ErrAllocationOverflow, totalLeaves, leafBits, base.plen)
	}
	leafPrefix := base.plen + leafBits

	ordered := make([]AllocationRequest, len(requests))
	copy(ordered, requests)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Subnets > ordered[j].Subnets
	})

	allocation := make(map[string][]Subnet, len(ordered))
	cursor := base.base.value
	for _, r := range ordered {
		blockBits := ceilLog2(r.Subnets)
		block := Network{base: Address{value: cursor}, plen: leafPrefix - blockBits}
		subs, err := DivideIntoSubnets(block, r.Subnets)
		if err != nil {
			return nil, err
		}
		for i := range subs {
			subs[i].Label = r.Name
		}
		allocation[r.Name] = subs
		cursor = cursor.add(hostStride(block.plen))
	}
	return allocation, nil
}
