package ipv6

import "testing"

func TestUint128Add(t *testing.T) {
	// carry across the low word
	a := uint128{0, ^uint64(0)}
	sum := a.add(uint128{0, 1})
	if sum != (uint128{1, 0}) {
		t.Fatalf("carry: %+v", sum)
	}
	// wraparound at 2^128
	max := uint128{^uint64(0), ^uint64(0)}
	if got := max.add(uint128{0, 1}); !got.isZero() {
		t.Fatalf("wrap: %+v", got)
	}
	if got := (uint128{1, 0}).sub(uint128{0, 1}); got != (uint128{0, ^uint64(0)}) {
		t.Fatalf("borrow: %+v", got)
	}
}

func TestUint128Shifts(t *testing.T) {
	one := uint128{0, 1}
	if one.shl(64) != (uint128{1, 0}) {
		t.Fatal("shl across words")
	}
	if one.shl(127) != (uint128{1 << 63, 0}) {
		t.Fatal("shl to msb")
	}
	if !one.shl(128).isZero() {
		t.Fatal("overshift must be zero")
	}
	if (uint128{1, 0}).shr(64) != one {
		t.Fatal("shr across words")
	}
	if (uint128{1 << 63, 0}).shr(127) != one {
		t.Fatal("shr from msb")
	}
}

func TestMask128(t *testing.T) {
	if !mask128(0).isZero() {
		t.Fatal("mask 0")
	}
	if mask128(64) != (uint128{^uint64(0), 0}) {
		t.Fatal("mask 64")
	}
	if mask128(128) != (uint128{^uint64(0), ^uint64(0)}) {
		t.Fatal("mask 128")
	}
	if mask128(1) != (uint128{1 << 63, 0}) {
		t.Fatal("mask 1")
	}
	if mask128(65) != (uint128{^uint64(0), 1 << 63}) {
		t.Fatal("mask 65")
	}
}

func TestUint128LeadingZeros(t *testing.T) {
	cases := []struct {
		v    uint128
		want int
	}{
		{uint128{}, 128},
		{uint128{0, 1}, 127},
		{uint128{1, 0}, 63},
		{uint128{1 << 63, 0}, 0},
		{uint128{0, 1 << 63}, 64},
	}
	for _, c := range cases {
		if got := c.v.leadingZeros(); got != c.want {
			t.Errorf("leadingZeros(%+v) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestUint128Groups(t *testing.T) {
	v := uint128{0x2001_0db8_0000_0000, 0x0000_0000_0000_0001}
	if v.group(0) != 0x2001 || v.group(1) != 0x0db8 || v.group(7) != 1 {
		t.Fatalf("group extraction: %+v", v)
	}
	if v.withGroup(4, 0xbeef).group(4) != 0xbeef {
		t.Fatal("withGroup")
	}
}

func TestCeilLog2(t *testing.T) {
	cases := map[int]int{1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 1024: 10}
	for n, want := range cases {
		if got := ceilLog2(n); got != want {
			t.Errorf("ceilLog2(%d) = %d, want %d", n, got, want)
		}
	}
}
