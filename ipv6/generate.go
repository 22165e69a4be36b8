package ipv6

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Generator produces link-local, unique-local and prefix-scoped random
// addresses. The random source is explicit so concurrent calls never share
// hidden mutable state; the zero Generator (and NewGenerator(nil)) reads
// crypto/rand per call.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator drawing random bits from r, or from
// crypto/rand when r is nil.
func NewGenerator(r io.Reader) Generator { return Generator{rand: r} }

func (g Generator) source() io.Reader {
	if g.rand == nil {
		return crand.Reader
	}
	return g.rand
}

// randomBits draws n bytes from the generator's source.
func (g Generator) randomBits(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(g.source(), b); err != nil {
		return nil, fmt.Errorf("ipv6: reading random source: %w", err)
	}
	return b, nil
}

// hexField decodes a fixed-width hex identifier such as an interface id,
// tolerating ':' and '-' group separators. digits is the required length
// after stripping separators.
func hexField(s string, digits int) ([]byte, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(s, ":", ""), "-", ""))
	if len(s) != digits {
		return nil, fmt.Errorf("%w: %d hex digits required, got %q", ErrInvalidFormat, digits, s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return b, nil
}

// LinkLocal returns fe80:: with the given 64-bit interface id (16 hex
// digits), or a freshly drawn random id when interfaceID is empty.
func (g Generator) LinkLocal(interfaceID string) (Address, error) {
	iid, err := g.fieldN(interfaceID, 16)
	if err != nil {
		return Address{}, err
	}
	return Address{value: uint128{hi: 0xfe80 << 48, lo: iid}}, nil
}

// UniqueLocal returns a locally-assigned ULA (fd00::/8): fd + 40-bit global
// id + 16-bit subnet id + 64-bit interface id. Empty fields are drawn from
// the random source.
func (g Generator) UniqueLocal(globalID, subnetID, interfaceID string) (Address, error) {
	gid, err := g.fieldN(globalID, 10)
	if err != nil {
		return Address{}, err
	}
	sid, err := g.fieldN(subnetID, 4)
	if err != nil {
		return Address{}, err
	}
	iid, err := g.fieldN(interfaceID, 16)
	if err != nil {
		return Address{}, err
	}
	hi := uint64(0xfd)<<56 | gid<<16 | sid
	return Address{value: uint128{hi: hi, lo: iid}}, nil
}

// fieldN resolves an optional digits-wide hex field, drawing random bits
// when the field is empty.
func (g Generator) fieldN(s string, digits int) (uint64, error) {
	if s == "" {
		b, err := g.randomBits(8)
		if err != nil {
			return 0, err
		}
		v := binary.BigEndian.Uint64(b)
		return v >> (64 - 4*uint(digits)), nil
	}
	b, err := hexField(s, digits)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// Random returns an address inside the network: the prefix bits are kept,
// the remaining host bits are filled from the random source.
func (g Generator) Random(n Network) (Address, error) {
	b, err := g.randomBits(16)
	if err != nil {
		return Address{}, err
	}
	host := uint128{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}.and(mask128(n.plen).not())
	return Address{value: n.base.value.or(host)}, nil
}

// MACToLinkLocal converts a 48-bit MAC address (6 hex octets separated by
// ':' or '-') to its EUI-64 derived link-local address: 0xfffe is inserted
// between the third and fourth octets and the universal/local bit of the
// first octet is flipped.
func MACToLinkLocal(mac string) (Address, error) {
	b, err := hexField(mac, 12)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q", ErrMACFormat, mac)
	}
	var eui [8]byte
	copy(eui[:3], b[:3])
	eui[3] = 0xff
	eui[4] = 0xfe
	copy(eui[5:], b[3:])
	eui[0] ^= 0x02
	return Address{value: uint128{hi: 0xfe80 << 48, lo: binary.BigEndian.Uint64(eui[:])}}, nil
}
