package ipv6

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLinkLocalExplicit(t *testing.T) {
	g := NewGenerator(nil)
	addr, err := g.LinkLocal("0000000000000001")
	if err != nil {
		t.Fatal(err)
	}
	if addr.String() != "fe80::1" {
		t.Fatalf("link-local: %s", addr)
	}
	// separators in the interface id are tolerated
	addr, err = g.LinkLocal("0011:2233:4455:6677")
	if err != nil {
		t.Fatal(err)
	}
	if addr.String() != "fe80::11:2233:4455:6677" {
		t.Fatalf("link-local with separators: %s", addr)
	}
}

func TestLinkLocalRandom(t *testing.T) {
	g := NewGenerator(bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 0x2a}))
	addr, err := g.LinkLocal("")
	if err != nil {
		t.Fatal(err)
	}
	if addr.String() != "fe80::2a" {
		t.Fatalf("random link-local: %s", addr)
	}
	// the zero Generator draws from crypto/rand
	addr, err = Generator{}.LinkLocal("")
	if err != nil {
		t.Fatal(err)
	}
	if addr.Type() != TypeLinkLocal {
		t.Fatalf("not link-local: %s", addr)
	}
}

func TestUniqueLocal(t *testing.T) {
	g := NewGenerator(nil)
	addr, err := g.UniqueLocal("0123456789", "abcd", "0000000000000001")
	if err != nil {
		t.Fatal(err)
	}
	if addr.Expanded() != "fd01:2345:6789:abcd:0000:0000:0000:0001" {
		t.Fatalf("ula: %s", addr.Expanded())
	}
	if addr.Type() != TypeUniqueLocal {
		t.Fatalf("type: %v", addr.Type())
	}
}

func TestUniqueLocalRandomFields(t *testing.T) {
	g := NewGenerator(strings.NewReader(strings.Repeat("\xff", 64)))
	addr, err := g.UniqueLocal("", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if addr.Expanded() != "fdff:ffff:ffff:ffff:ffff:ffff:ffff:ffff" {
		t.Fatalf("ula random: %s", addr.Expanded())
	}
}

func TestGeneratorFieldErrors(t *testing.T) {
	g := NewGenerator(nil)
	for _, iid := range []string{"123", "00000000000000zz", "00000000000000001"} {
		if _, err := g.LinkLocal(iid); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("LinkLocal(%q): %v", iid, err)
		}
	}
	if _, err := g.UniqueLocal("123", "", ""); !errors.Is(err, ErrInvalidFormat) {
		t.Error("short global id must fail")
	}
	if _, err := g.UniqueLocal("", "12345", ""); !errors.Is(err, ErrInvalidFormat) {
		t.Error("long subnet id must fail")
	}
}

func TestRandomInsideNetwork(t *testing.T) {
	n, _ := ParseCIDR("2001:db8::/32")
	g := NewGenerator(strings.NewReader(strings.Repeat("\xff", 64)))
	addr, err := g.Random(n)
	if err != nil {
		t.Fatal(err)
	}
	if !n.Contains(addr) {
		t.Fatalf("%s not inside %s", addr, n)
	}
	// with an all-ones source, every host bit is set
	if addr.Expanded() != "2001:0db8:ffff:ffff:ffff:ffff:ffff:ffff" {
		t.Fatalf("random: %s", addr.Expanded())
	}
}

func TestRandomFullPrefix(t *testing.T) {
	n, _ := ParseCIDR("2001:db8::1/128")
	g := NewGenerator(nil)
	addr, err := g.Random(n)
	if err != nil {
		t.Fatal(err)
	}
	if addr.String() != "2001:db8::1" {
		t.Fatalf("a /128 leaves no host bits: %s", addr)
	}
}

func TestMACToLinkLocal(t *testing.T) {
	cases := []struct{ in, want string }{
		{"00:11:22:33:44:55", "fe80::211:22ff:fe33:4455"},
		{"00-11-22-33-44-55", "fe80::211:22ff:fe33:4455"},
		{"001122334455", "fe80::211:22ff:fe33:4455"},
		{"AA:BB:CC:DD:EE:FF", "fe80::a8bb:ccff:fedd:eeff"},
	}
	for _, c := range cases {
		addr, err := MACToLinkLocal(c.in)
		if err != nil {
			t.Fatalf("MACToLinkLocal(%q): %v", c.in, err)
		}
		if addr.String() != c.want {
			t.Errorf("MACToLinkLocal(%q) = %s, want %s", c.in, addr, c.want)
		}
		if addr.Type() != TypeLinkLocal {
			t.Errorf("MACToLinkLocal(%q) type: %v", c.in, addr.Type())
		}
	}
}

func TestMACToLinkLocalErrors(t *testing.T) {
	for _, in := range []string{"", "00:11:22:33:44", "00:11:22:33:44:55:66", "00:11:22:33:44:zz"} {
		if _, err := MACToLinkLocal(in); !errors.Is(err, ErrMACFormat) {
			t.Errorf("MACToLinkLocal(%q): %v", in, err)
		}
	}
}

func BenchmarkMACToLinkLocal(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = MACToLinkLocal("00:11:22:33:44:55")
	}
}
