package ssz

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Kind tags the closed set of SSZ type variants. Dispatch on Kind is
// a closed switch everywhere in this package rather than open
// polymorphism; each switch has a default branch for a Kind it does
// not handle.
type Kind uint8

const (
	KindBool Kind = iota
	KindUint
	KindByteVector
	KindByteList
	KindVector
	KindList
	KindContainer
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindUint:
		return "Uint"
	case KindByteVector:
		return "ByteVector"
	case KindByteList:
		return "ByteList"
	case KindVector:
		return "Vector"
	case KindList:
		return "List"
	case KindContainer:
		return "Container"
	case KindUnion:
		return "Union"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MaxUnionVariants is the maximum number of variant types in a union (0-255).
const MaxUnionVariants = 256

// DefaultListMaxLength is the bound applied to List/ByteList types built
// from shorthand syntax that carries no explicit maxLength (see the
// "Unbounded ByteList/List shorthand" resolution in SPEC_FULL.md). It is
// the largest length a 4-byte offset table can address.
const DefaultListMaxLength = uint64(1)<<32 - 1

// supportedUintByteLengths is the closed set of widths spec.md §3 allows
// for Uint: 1, 2, 4, 8, 16, 32 bytes (8..256 bits).
var supportedUintByteLengths = map[int]bool{1: true, 2: true, 4: true, 8: true, 16: true, 32: true}

// Field is one (name, type) entry of a Container, in declaration order.
type Field struct {
	Name string
	Type *Type
}

// Type is the fully-qualified, normalized type descriptor. Its Kind
// determines which of the remaining fields are meaningful; callers
// should go through the New* constructors or ParseType rather than
// building a Type literal, since those enforce the invariants
// (non-duplicate field names, positive lengths, supported uint widths)
// that the rest of the package assumes hold.
type Type struct {
	Kind Kind

	// Uint
	ByteLength int          // 1, 2, 4, 8, 16, or 32
	UseNumber  bool         // see SPEC_FULL.md's Infinity-sentinel resolution
	UintOffset *uint256.Int // additive bias, nil means 0

	// ByteVector, Vector
	Length int

	// ByteList, List
	MaxLength uint64

	// Vector, List
	Elem *Type

	// Container
	Name   string
	Fields []Field

	// Union
	Variants []*Type
}

// NewBool returns the Bool type descriptor.
func NewBool() *Type { return &Type{Kind: KindBool} }

// NewUint returns a Uint{byteLength} type descriptor with the given
// options. offset may be nil for the default of 0.
func NewUint(byteLength int, useNumber bool, offset *uint256.Int) (*Type, error) {
	if !supportedUintByteLengths[byteLength] {
		return nil, badType("", "unsupported uint byte length %d", byteLength)
	}
	return &Type{Kind: KindUint, ByteLength: byteLength, UseNumber: useNumber, UintOffset: offset}, nil
}

// NewByteVector returns a ByteVector{length} type descriptor.
func NewByteVector(length int) (*Type, error) {
	if length <= 0 {
		return nil, badType("", "byte vector length must be positive, got %d", length)
	}
	return &Type{Kind: KindByteVector, Length: length}, nil
}

// NewByteList returns a ByteList{maxLength} type descriptor.
func NewByteList(maxLength uint64) (*Type, error) {
	return &Type{Kind: KindByteList, MaxLength: maxLength}, nil
}

// NewVector returns a Vector{elem, length} type descriptor. length must
// be positive.
func NewVector(elem *Type, length int) (*Type, error) {
	if elem == nil {
		return nil, badType("", "vector element type is nil")
	}
	if length <= 0 {
		return nil, badType("", "vector length must be positive, got %d", length)
	}
	return &Type{Kind: KindVector, Elem: elem, Length: length}, nil
}

// NewList returns a List{elem, maxLength} type descriptor.
func NewList(elem *Type, maxLength uint64) (*Type, error) {
	if elem == nil {
		return nil, badType("", "list element type is nil")
	}
	return &Type{Kind: KindList, Elem: elem, MaxLength: maxLength}, nil
}

// NewContainer returns a Container type descriptor with the given name
// and ordered fields. Field names must be unique.
func NewContainer(name string, fields []Field) (*Type, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Type == nil {
			return nil, badType(name, "field %q has nil type", f.Name)
		}
		if seen[f.Name] {
			return nil, badType(name, "duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return &Type{Kind: KindContainer, Name: name, Fields: cp}, nil
}

// NewUnion returns a Union type descriptor over the given ordered
// variants. There must be between 1 and MaxUnionVariants entries;
// selector i (0-based) addresses variants[i].
func NewUnion(variants []*Type) (*Type, error) {
	if len(variants) == 0 {
		return nil, badType("", "union must have at least one variant")
	}
	if len(variants) > MaxUnionVariants {
		return nil, badType("", "union has %d variants, max is %d", len(variants), MaxUnionVariants)
	}
	for i, v := range variants {
		if v == nil {
			return nil, badType("", "union variant %d is nil", i)
		}
	}
	cp := make([]*Type, len(variants))
	copy(cp, variants)
	return &Type{Kind: KindUnion, Variants: cp}, nil
}

// IsVariableSize reports whether t's serialized length depends on the
// value rather than the type alone. This is the predicate from
// spec.md §3's type table.
func IsVariableSize(t *Type) bool {
	switch t.Kind {
	case KindBool, KindUint, KindByteVector:
		return false
	case KindByteList, KindList, KindUnion:
		return true
	case KindVector:
		return IsVariableSize(t.Elem)
	case KindContainer:
		for _, f := range t.Fields {
			if IsVariableSize(f.Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// ParseType normalizes a shorthand type description into a *Type.
// Accepted shapes:
//
//   - string: "bool"; "uintN" for N in {8,16,32,64,128,256}; "bytesN"
//     for a ByteVector of N bytes; "bytes" for a ByteList bounded by
//     DefaultListMaxLength (see SPEC_FULL.md).
//   - []any of length 1, [elem]: List<elem, DefaultListMaxLength>.
//   - []any of length 2, [elem, length]: Vector<elem, length>.
//   - *ContainerShorthand: a named, ordered sequence of fields.
//
// Elements nested inside a composite shorthand may themselves be any
// of the above shapes, or an already-normalized *Type.
func ParseType(shorthand any) (*Type, error) {
	return parseTypeAt("", shorthand)
}

// ContainerShorthand is the container shape ParseType accepts: a name
// plus an ordered list of (fieldName, fieldType) pairs, each fieldType
// itself a shorthand shape.
type ContainerShorthand struct {
	Name   string
	Fields []FieldShorthand
}

// FieldShorthand is one entry of a ContainerShorthand.
type FieldShorthand struct {
	Name string
	Type any
}

func parseTypeAt(path string, shorthand any) (*Type, error) {
	switch v := shorthand.(type) {
	case *Type:
		return v, nil
	case string:
		return parseStringShorthand(path, v)
	case []any:
		return parseCompositeShorthand(path, v)
	case *ContainerShorthand:
		return parseContainerShorthand(path, v)
	default:
		return nil, badType(path, "unrecognized shorthand of type %T", shorthand)
	}
}

func parseStringShorthand(path, s string) (*Type, error) {
	switch s {
	case "bool":
		return NewBool(), nil
	case "bytes":
		t, _ := NewByteList(DefaultListMaxLength)
		return t, nil
	}
	if n, ok := parseUintWidth(s); ok {
		t, err := NewUint(n/8, false, nil)
		if err != nil {
			return nil, withPath(err, path)
		}
		return t, nil
	}
	if n, ok := parseBytesNWidth(s); ok {
		t, err := NewByteVector(n)
		if err != nil {
			return nil, withPath(err, path)
		}
		return t, nil
	}
	return nil, badType(path, "unknown shorthand string %q", s)
}

// parseUintWidth parses "uintN" for supported bit widths.
func parseUintWidth(s string) (int, bool) {
	const prefix = "uint"
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return 0, false
	}
	n, ok := atoiStrict(s[len(prefix):])
	if !ok {
		return 0, false
	}
	switch n {
	case 8, 16, 32, 64, 128, 256:
		return n, true
	default:
		return 0, false
	}
}

// parseBytesNWidth parses "bytesN" for N > 0.
func parseBytesNWidth(s string) (int, bool) {
	const prefix = "bytes"
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return 0, false
	}
	n, ok := atoiStrict(s[len(prefix):])
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// atoiStrict parses a non-negative decimal integer with no sign, no
// leading/trailing junk, and no empty string.
func atoiStrict(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func parseCompositeShorthand(path string, seq []any) (*Type, error) {
	switch len(seq) {
	case 1:
		elem, err := parseTypeAt(joinPath(path, "elem"), seq[0])
		if err != nil {
			return nil, err
		}
		t, _ := NewList(elem, DefaultListMaxLength)
		return t, nil
	case 2:
		elem, err := parseTypeAt(joinPath(path, "elem"), seq[0])
		if err != nil {
			return nil, err
		}
		length, ok := seq[1].(int)
		if !ok {
			return nil, badType(path, "vector length must be an int, got %T", seq[1])
		}
		t, err := NewVector(elem, length)
		if err != nil {
			return nil, withPath(err, path)
		}
		return t, nil
	default:
		return nil, badType(path, "composite shorthand must have 1 or 2 elements, got %d", len(seq))
	}
}

func parseContainerShorthand(path string, c *ContainerShorthand) (*Type, error) {
	fields := make([]Field, len(c.Fields))
	for i, f := range c.Fields {
		ft, err := parseTypeAt(joinPath(path, f.Name), f.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = Field{Name: f.Name, Type: ft}
	}
	t, err := NewContainer(c.Name, fields)
	if err != nil {
		return nil, withPath(err, path)
	}
	return t, nil
}
