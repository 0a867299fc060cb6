package ssz

import (
	"reflect"
	"testing"

	"github.com/holiman/uint256"
)

func TestRoundTripBool(t *testing.T) {
	for _, v := range []bool{true, false} {
		data, err := Serialize(v, NewBool())
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		got, err := Deserialize(data, NewBool())
		if err != nil {
			t.Fatalf("Deserialize: %v", err)
		}
		if got != v {
			t.Errorf("round trip %v -> %v", v, got)
		}
	}
}

func TestRoundTripUint32(t *testing.T) {
	u32Val, err := NewUint(4, false, nil)
	u32 := mustType(t, u32Val, err)
	for _, v := range []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF} {
		data, err := Serialize(v, u32)
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		got, err := Deserialize(data, u32)
		if err != nil {
			t.Fatalf("Deserialize: %v", err)
		}
		if got.(uint64) != uint64(v) {
			t.Errorf("round trip %d -> %v", v, got)
		}
	}
}

func TestRoundTripUint256(t *testing.T) {
	u256Val, err := NewUint(32, false, nil)
	u256 := mustType(t, u256Val, err)
	v, err := ParseUint256Hex("0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatalf("ParseUint256Hex: %v", err)
	}
	data, err := Serialize(v, u256)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(data, u256)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !v.Eq(got.(*uint256.Int)) {
		t.Errorf("round trip %s -> %s", v.Hex(), got.(*uint256.Int).Hex())
	}
}

func TestRoundTripNestedList(t *testing.T) {
	u32Val, err := NewUint(4, false, nil)
	u32 := mustType(t, u32Val, err)
	innerVal, err := NewList(u32, 1024)
	inner := mustType(t, innerVal, err)
	outerVal, err := NewList(inner, 1024)
	outer := mustType(t, outerVal, err)

	v := []any{
		[]any{uint32(1)},
		[]any{uint32(2), uint32(3)},
	}
	data, err := Serialize(v, outer)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(data, outer)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gotList := got.([]any)
	if len(gotList) != 2 {
		t.Fatalf("got %d elements, want 2", len(gotList))
	}
	if !reflect.DeepEqual(gotList[0].([]any)[0], uint64(1)) {
		t.Errorf("element 0 = %v", gotList[0])
	}
	inner1 := gotList[1].([]any)
	if inner1[0].(uint64) != 2 || inner1[1].(uint64) != 3 {
		t.Errorf("element 1 = %v", inner1)
	}
}

func TestRoundTripContainerWithVariableField(t *testing.T) {
	u16Val, err := NewUint(2, false, nil)
	u16 := mustType(t, u16Val, err)
	u32Val, err := NewUint(4, false, nil)
	u32 := mustType(t, u32Val, err)
	listVal, err := NewList(u32, 1024)
	list := mustType(t, listVal, err)
	containerVal, err := NewContainer("Example", []Field{
		{Name: "x", Type: u16},
		{Name: "y", Type: list},
	})
	container := mustType(t, containerVal, err)
	v := map[string]any{
		"x": uint16(0x0102),
		"y": []any{uint32(9), uint32(10)},
	}
	data, err := Serialize(v, container)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(data, container)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gotMap := got.(map[string]any)
	if gotMap["x"].(uint64) != 0x0102 {
		t.Errorf("x = %v", gotMap["x"])
	}
	y := gotMap["y"].([]any)
	if y[0].(uint64) != 9 || y[1].(uint64) != 10 {
		t.Errorf("y = %v", y)
	}
}

func TestRoundTripUnion(t *testing.T) {
	u32Val, err := NewUint(4, false, nil)
	u32 := mustType(t, u32Val, err)
	blVal, err := NewByteList(16)
	bl := mustType(t, blVal, err)
	unionVal, err := NewUnion([]*Type{u32, bl})
	union := mustType(t, unionVal, err)

	v := UnionValue{Selector: 0, Value: uint32(7)}
	data, err := Serialize(v, union)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(data, union)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gotUnion := got.(UnionValue)
	if gotUnion.Selector != 0 || gotUnion.Value.(uint64) != 7 {
		t.Errorf("round trip mismatch: %+v", gotUnion)
	}
}

// --- Decoder contract: spec.md §4.5 ---

func TestDecodeRejectsNonMonotonicOffsets(t *testing.T) {
	blVal, err := NewByteList(1024)
	bl := mustType(t, blVal, err)
	listVal, err := NewList(bl, 1024)
	list := mustType(t, listVal, err)

	// Two offsets, second one smaller than the first: invalid.
	data := append([]byte{}, littleEndianOffset(8)...)
	data = append(data, littleEndianOffset(4)...)
	if _, err := Deserialize(data, list); err == nil {
		t.Fatal("want error for non-monotonic offsets")
	}
}

func TestDecodeRejectsWrongFirstOffset(t *testing.T) {
	blVal, err := NewByteList(1024)
	bl := mustType(t, blVal, err)
	listVal, err := NewList(bl, 1024)
	list := mustType(t, listVal, err)

	// Single element but first offset claims 8 instead of expected 4.
	data := append([]byte{}, littleEndianOffset(8)...)
	data = append(data, []byte{0xAA}...)
	if _, err := Deserialize(data, list); err == nil {
		t.Fatal("want error for first offset mismatch")
	}
}

func TestDecodeRejectsOffsetPastBuffer(t *testing.T) {
	blVal, err := NewByteList(1024)
	bl := mustType(t, blVal, err)
	listVal, err := NewList(bl, 1024)
	list := mustType(t, listVal, err)

	data := append([]byte{}, littleEndianOffset(8)...)
	data = append(data, littleEndianOffset(1000)...)
	if _, err := Deserialize(data, list); err == nil {
		t.Fatal("want error for offset past buffer end")
	}
}

func littleEndianOffset(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
