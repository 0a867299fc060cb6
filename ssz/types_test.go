package ssz

import "testing"

func TestParseTypePrimitives(t *testing.T) {
	cases := []struct {
		shorthand string
		wantKind  Kind
	}{
		{"bool", KindBool},
		{"uint8", KindUint},
		{"uint16", KindUint},
		{"uint32", KindUint},
		{"uint64", KindUint},
		{"uint128", KindUint},
		{"uint256", KindUint},
		{"bytes4", KindByteVector},
		{"bytes32", KindByteVector},
		{"bytes", KindByteList},
	}
	for _, c := range cases {
		ty, err := ParseType(c.shorthand)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", c.shorthand, err)
		}
		if ty.Kind != c.wantKind {
			t.Errorf("ParseType(%q).Kind = %s, want %s", c.shorthand, ty.Kind, c.wantKind)
		}
	}
}

func TestParseTypeUintByteLengths(t *testing.T) {
	cases := map[string]int{"uint8": 1, "uint16": 2, "uint32": 4, "uint64": 8, "uint128": 16, "uint256": 32}
	for s, want := range cases {
		ty, err := ParseType(s)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", s, err)
		}
		if ty.ByteLength != want {
			t.Errorf("ParseType(%q).ByteLength = %d, want %d", s, ty.ByteLength, want)
		}
	}
}

func TestParseTypeBadShorthand(t *testing.T) {
	cases := []any{"uint7", "uint", "foo", "bytes0", 42, nil}
	for _, c := range cases {
		if _, err := ParseType(c); err == nil {
			t.Errorf("ParseType(%v): want error, got nil", c)
		} else if _, ok := err.(*BadTypeError); !ok {
			t.Errorf("ParseType(%v): err = %T, want *BadTypeError", c, err)
		}
	}
}

func TestParseTypeCompositeVectorAndList(t *testing.T) {
	list, err := ParseType([]any{"uint32"})
	if err != nil {
		t.Fatalf("ParseType(list shorthand): %v", err)
	}
	if list.Kind != KindList || list.Elem.Kind != KindUint {
		t.Fatalf("list shorthand produced %+v", list)
	}

	vec, err := ParseType([]any{"uint32", 6})
	if err != nil {
		t.Fatalf("ParseType(vector shorthand): %v", err)
	}
	if vec.Kind != KindVector || vec.Length != 6 {
		t.Fatalf("vector shorthand produced %+v", vec)
	}
}

func TestParseTypeContainerShorthandDuplicateField(t *testing.T) {
	_, err := ParseType(&ContainerShorthand{
		Name: "Bad",
		Fields: []FieldShorthand{
			{Name: "a", Type: "uint8"},
			{Name: "a", Type: "uint8"},
		},
	})
	if err == nil {
		t.Fatal("want error for duplicate field name")
	}
}

func TestParseTypeContainerShorthandNested(t *testing.T) {
	ty, err := ParseType(&ContainerShorthand{
		Name: "Example",
		Fields: []FieldShorthand{
			{Name: "a", Type: "uint16"},
			{Name: "b", Type: "bool"},
			{Name: "c", Type: "bytes3"},
		},
	})
	if err != nil {
		t.Fatalf("ParseType: %v", err)
	}
	if ty.Kind != KindContainer || len(ty.Fields) != 3 {
		t.Fatalf("container shorthand produced %+v", ty)
	}
}

func TestNewVectorRejectsNonPositiveLength(t *testing.T) {
	if _, err := NewVector(NewBool(), 0); err == nil {
		t.Fatal("want error for zero-length vector")
	}
	if _, err := NewVector(NewBool(), -1); err == nil {
		t.Fatal("want error for negative-length vector")
	}
}

func TestIsVariableSize(t *testing.T) {
	u32, _ := NewUint(4, false, nil)
	bv, _ := NewByteVector(4)
	bl, _ := NewByteList(10)
	fixedVec, _ := NewVector(u32, 3)
	varVec, _ := NewVector(bl, 3)
	list, _ := NewList(u32, 10)
	fixedContainer, _ := NewContainer("F", []Field{{Name: "a", Type: u32}})
	varContainer, _ := NewContainer("V", []Field{{Name: "a", Type: list}})
	union, _ := NewUnion([]*Type{u32, bl})

	cases := []struct {
		t    *Type
		want bool
	}{
		{NewBool(), false},
		{u32, false},
		{bv, false},
		{bl, true},
		{fixedVec, false},
		{varVec, true},
		{list, true},
		{fixedContainer, false},
		{varContainer, true},
		{union, true},
	}
	for _, c := range cases {
		if got := IsVariableSize(c.t); got != c.want {
			t.Errorf("IsVariableSize(%s) = %v, want %v", c.t.Kind, got, c.want)
		}
	}
}
