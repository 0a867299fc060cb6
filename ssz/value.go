package ssz

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
)

// ParseUint256Hex parses a big-endian hex string (no "0x" prefix) into a
// *uint256.Int, for callers constructing Uint128/Uint256 values by hand.
func ParseUint256Hex(s string) (*uint256.Int, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("ssz: ParseUint256Hex: %w", err)
	}
	if len(b) > 32 {
		return nil, fmt.Errorf("ssz: ParseUint256Hex: %d bytes exceeds 32-byte maximum", len(b))
	}
	return new(uint256.Int).SetBytes(b), nil
}

// UnionValue is the Go representation of a value under a Union type:
// Selector picks the active variant (Variants[Selector]) and Value is
// the payload under that variant.
type UnionValue struct {
	Selector uint8
	Value    any
}

// infinitySentinel is the Go representation of the "+Infinity" dispensation
// spec.md §4.3/§9 grants wide Uint values whose callers cannot represent
// 2^(8*byteLength)-1 as a native number. See Infinity below.
type infinitySentinel struct{}

// Infinity is the sentinel Uint value that encodes as all-ones
// (0xFF...FF). It is only accepted by Validate/Serialize for a Uint
// descriptor with ByteLength > 6 and UseNumber == true; see the
// "Infinity sentinel at byteLength==8" resolution in SPEC_FULL.md.
var Infinity any = infinitySentinel{}

// uintValueToBig normalizes the accepted Go representations of a Uint
// value (uint8/16/32/64, *uint256.Int) into a *uint256.Int for range
// checking and arithmetic. It does not accept Infinity — callers must
// check for that sentinel themselves first, since its legality depends
// on the Uint descriptor's ByteLength/UseNumber, not just its Go type.
func uintValueToBig(v any) (*uint256.Int, error) {
	switch n := v.(type) {
	case uint8:
		return uint256.NewInt(uint64(n)), nil
	case uint16:
		return uint256.NewInt(uint64(n)), nil
	case uint32:
		return uint256.NewInt(uint64(n)), nil
	case uint64:
		return uint256.NewInt(n), nil
	case int:
		if n < 0 {
			return nil, fmt.Errorf("negative integer %d", n)
		}
		return uint256.NewInt(uint64(n)), nil
	case *uint256.Int:
		if n == nil {
			return nil, fmt.Errorf("nil *uint256.Int")
		}
		return n, nil
	default:
		return nil, fmt.Errorf("value has type %T, want a uint or *uint256.Int", v)
	}
}

// fitsInByteLength reports whether v's bit length fits within byteLength
// bytes (i.e. v <= 2^(8*byteLength)-1).
func fitsInByteLength(v *uint256.Int, byteLength int) bool {
	if byteLength >= 32 {
		return true
	}
	return v.BitLen() <= byteLength*8
}
