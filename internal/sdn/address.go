// Package sdn implements the Somfy SDN wire protocol: frame encoding and
// decoding, the typed payload catalogue, and the address/node-type/message-id
// vocabulary the codec is built on.
package sdn

import (
	"encoding/hex"
	"fmt"
)

// Address is a three-octet Somfy SDN node address. On the wire it is
// transmitted in reverse byte order (c, b, a); in memory and in its textual
// form it is (a, b, c).
type Address struct {
	A, B, C byte
}

// Master is the pseudo-address used by a controller that originates commands.
var Master = Address{0x7F, 0x7F, 0x7F}

// Broadcast addresses every node on the bus.
var Broadcast = Address{0xFF, 0xFF, 0xFF}

// ParseAddressBytes reads an address from its reverse-byte-order wire form.
func ParseAddressBytes(b []byte) Address {
	return Address{A: b[2], B: b[1], C: b[0]}
}

// Serialize returns the address in its reverse-byte-order wire form (c, b, a).
func (a Address) Serialize() []byte {
	return []byte{a.C, a.B, a.A}
}

// String renders the address as six hex digits, e.g. "133DC6".
func (a Address) String() string {
	return fmt.Sprintf("%02X%02X%02X", a.A, a.B, a.C)
}

// ParseAddress parses the six-hex-digit textual form produced by String.
func ParseAddress(s string) (Address, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("sdn: invalid address %q: %w", s, err)
	}
	if len(buf) != 3 {
		return Address{}, fmt.Errorf("sdn: invalid address %q: want 3 bytes, got %d", s, len(buf))
	}
	return Address{A: buf[0], B: buf[1], C: buf[2]}, nil
}
