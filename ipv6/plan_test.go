package ipv6

import (
	"errors"
	"testing"
)

func TestRecommendAllocation(t *testing.T) {
	base, _ := ParseCIDR("2001:db8::/32")
	requests := []AllocationRequest{
		{Name: "cache", Subnets: 1},
		{Name: "web", Subnets: 4},
		{Name: "db", Subnets: 2},
	}
	allocation, err := RecommendAllocation(base, requests)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string][]string{
		"web":   {"2001:db8::/35", "2001:db8:2000::/35", "2001:db8:4000::/35", "2001:db8:6000::/35"},
		"db":    {"2001:db8:8000::/35", "2001:db8:a000::/35"},
		"cache": {"2001:db8:c000::/35"},
	}
	if len(allocation) != len(want) {
		t.Fatalf("got %d requesters, want %d", len(allocation), len(want))
	}
	for name, wantSubs := range want {
		subs := allocation[name]
		if len(subs) != len(wantSubs) {
			t.Fatalf("%s: got %d subnets, want %d", name, len(subs), len(wantSubs))
		}
		for i, s := range subs {
			if s.String() != wantSubs[i] {
				t.Errorf("%s[%d] = %s, want %s", name, i, s, wantSubs[i])
			}
			if s.Label != name {
				t.Errorf("%s[%d] label = %q", name, i, s.Label)
			}
			if s.Index != i {
				t.Errorf("%s[%d] index = %d", name, i, s.Index)
			}
		}
	}
}

func TestRecommendAllocationDisjoint(t *testing.T) {
	base, _ := ParseCIDR("2001:db8::/48")
	requests := []AllocationRequest{
		{Name: "a", Subnets: 5},
		{Name: "b", Subnets: 3},
		{Name: "c", Subnets: 9},
	}
	allocation, err := RecommendAllocation(base, requests)
	if err != nil {
		t.Fatal(err)
	}
	var all []Subnet
	for _, subs := range allocation {
		all = append(all, subs...)
	}
	for i := range all {
		if !base.ContainsNetwork(all[i].Network) {
			t.Errorf("%s outside base", all[i])
		}
		for j := i + 1; j < len(all); j++ {
			if all[i].Overlaps(all[j].Network) {
				t.Errorf("overlap: %s (%s) and %s (%s)", all[i], all[i].Label, all[j], all[j].Label)
			}
		}
	}
}

func TestRecommendAllocationTieBreak(t *testing.T) {
	base, _ := ParseCIDR("2001:db8::/32")
	// equal counts: input order decides placement
	allocation, err := RecommendAllocation(base, []AllocationRequest{
		{Name: "second", Subnets: 2},
		{Name: "first", Subnets: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := allocation["second"][0].String(); got != "2001:db8::/34" {
		t.Fatalf("earlier request must be placed first: %s", got)
	}
	if got := allocation["first"][0].String(); got != "2001:db8:8000::/34" {
		t.Fatalf("later request placed at: %s", got)
	}
}

func TestRecommendAllocationSingle(t *testing.T) {
	base, _ := ParseCIDR("2001:db8::/32")
	allocation, err := RecommendAllocation(base, []AllocationRequest{{Name: "all", Subnets: 1}})
	if err != nil {
		t.Fatal(err)
	}
	subs := allocation["all"]
	if len(subs) != 1 || subs[0].String() != "2001:db8::/32" {
		t.Fatalf("single requester gets the base: %v", subs)
	}
}

func TestRecommendAllocationErrors(t *testing.T) {
	base, _ := ParseCIDR("2001:db8::/32")
	if _, err := RecommendAllocation(base, nil); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("empty requests: %v", err)
	}
	if _, err := RecommendAllocation(base, []AllocationRequest{{Name: "x", Subnets: 0}}); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("zero count: %v", err)
	}
	if _, err := RecommendAllocation(base, []AllocationRequest{
		{Name: "x", Subnets: 1},
		{Name: "x", Subnets: 2},
	}); !errors.Is(err, ErrDuplicateRequester) {
		t.Fatalf("duplicate name: %v", err)
	}
	tight, _ := ParseCIDR("2001:db8::/127")
	if _, err := RecommendAllocation(tight, []AllocationRequest{
		{Name: "a", Subnets: 2},
		{Name: "b", Subnets: 2},
	}); !errors.Is(err, ErrAllocationOverflow) {
		t.Fatalf("overflow: %v", err)
	}
}

func BenchmarkRecommendAllocation(b *testing.B) {
	base, _ := ParseCIDR("2001:db8::/32")
	requests := []AllocationRequest{
		{Name: "a", Subnets: 12},
		{Name: "b", Subnets: 7},
		{Name: "c", Subnets: 3},
		{Name: "d", Subnets: 1},
	}
	for i := 0; i < b.N; i++ {
		_, _ = RecommendAllocation(base, requests)
	}
}
