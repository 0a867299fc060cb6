package ssz

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// Deserialize decodes data into a Go value under t, following the
// decoder contract of spec.md §4.5: it recovers variable-size element
// counts from offset tables, rejects non-monotonic or out-of-bounds
// offsets, and checks that the first offset in any offset table equals
// the expected fixed-region length. It is the inverse of Serialize:
// for any (v, t) with v valid under t, Deserialize(Serialize(v, t), t)
// reproduces v (property 2 of spec.md §8).
func Deserialize(data []byte, t *Type) (any, error) {
	if !IsVariableSize(t) {
		fs, err := FixedSize(t)
		if err != nil {
			return nil, err
		}
		if len(data) != fs {
			return nil, fmt.Errorf("ssz: decode %s: expected %d bytes, got %d", t.Kind, fs, len(data))
		}
	}
	switch t.Kind {
	case KindBool:
		return decodeBool(data)
	case KindUint:
		return decodeUint(data, t)
	case KindByteVector, KindByteList:
		return decodeBytes(data, t)
	case KindVector:
		return decodeVector(data, t)
	case KindList:
		return decodeList(data, t)
	case KindContainer:
		return decodeContainer(data, t)
	case KindUnion:
		return decodeUnion(data, t)
	default:
		return nil, fmt.Errorf("ssz: decode: unhandled type kind %s", t.Kind)
	}
}

func decodeBool(data []byte) (any, error) {
	switch data[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return nil, ErrInvalidBool
	}
}

func decodeUint(data []byte, t *Type) (any, error) {
	allOnes := true
	for _, b := range data {
		if b != 0xFF {
			allOnes = false
			break
		}
	}
	if allOnes && t.ByteLength > 6 && t.UseNumber {
		return Infinity, nil
	}

	var be [32]byte
	for i := 0; i < len(data); i++ {
		be[32-1-i] = data[i]
	}
	n := new(uint256.Int).SetBytes32(be[:])
	if t.UintOffset != nil {
		n = new(uint256.Int).Sub(n, t.UintOffset)
	}
	if t.ByteLength <= 8 {
		return n.Uint64(), nil
	}
	return n, nil
}

func decodeBytes(data []byte, t *Type) (any, error) {
	if t.Kind == KindByteList && uint64(len(data)) > t.MaxLength {
		return nil, fmt.Errorf("ssz: decode ByteList: length %d exceeds max %d", len(data), t.MaxLength)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func decodeVector(data []byte, t *Type) (any, error) {
	if !IsVariableSize(t.Elem) {
		elemSize, err := FixedSize(t.Elem)
		if err != nil {
			return nil, err
		}
		elems := make([]any, t.Length)
		for i := 0; i < t.Length; i++ {
			v, err := Deserialize(data[i*elemSize:(i+1)*elemSize], t.Elem)
			if err != nil {
				return nil, fmt.Errorf("ssz: decode Vector: element %d: %w", i, err)
			}
			elems[i] = v
		}
		return elems, nil
	}
	return decodeVariableArray(data, t.Elem, t.Length)
}

func decodeList(data []byte, t *Type) (any, error) {
	if !IsVariableSize(t.Elem) {
		elemSize, err := FixedSize(t.Elem)
		if err != nil {
			return nil, err
		}
		if elemSize == 0 {
			if len(data) != 0 {
				return nil, fmt.Errorf("ssz: decode List: zero-size element type with non-empty buffer")
			}
			return []any{}, nil
		}
		if len(data)%elemSize != 0 {
			return nil, fmt.Errorf("ssz: decode List: buffer length %d not a multiple of element size %d", len(data), elemSize)
		}
		count := len(data) / elemSize
		if uint64(count) > t.MaxLength {
			return nil, fmt.Errorf("ssz: decode List: %d elements exceeds max %d", count, t.MaxLength)
		}
		elems := make([]any, count)
		for i := 0; i < count; i++ {
			v, err := Deserialize(data[i*elemSize:(i+1)*elemSize], t.Elem)
			if err != nil {
				return nil, fmt.Errorf("ssz: decode List: element %d: %w", i, err)
			}
			elems[i] = v
		}
		return elems, nil
	}
	elems, err := decodeVariableArray(data, t.Elem, -1)
	if err != nil {
		return nil, err
	}
	if uint64(len(elems)) > t.MaxLength {
		return nil, fmt.Errorf("ssz: decode List: %d elements exceeds max %d", len(elems), t.MaxLength)
	}
	return elems, nil
}

// decodeVariableArray decodes the offset-table layout shared by
// Vector/List of variable-size elements. fixedCount >= 0 means the
// element count is known ahead of time (Vector); -1 means it must be
// recovered from the first offset (List), per spec.md §4.5.
func decodeVariableArray(data []byte, elemType *Type, fixedCount int) ([]any, error) {
	if len(data) == 0 {
		if fixedCount > 0 {
			return nil, fmt.Errorf("ssz: decode: empty buffer for %d-element vector", fixedCount)
		}
		return []any{}, nil
	}
	if len(data) < BytesPerLengthOffset {
		return nil, fmt.Errorf("ssz: decode: buffer of length %d too short for an offset table", len(data))
	}
	firstOffset := int(readOffset(data, 0))

	count := fixedCount
	if count < 0 {
		if firstOffset%BytesPerLengthOffset != 0 {
			return nil, fmt.Errorf("ssz: decode: first offset %d is not a multiple of %d", firstOffset, BytesPerLengthOffset)
		}
		count = firstOffset / BytesPerLengthOffset
		if count == 0 {
			return nil, fmt.Errorf("%w: first offset 0 in a non-empty buffer", ErrOffset)
		}
	}
	fixedLen := count * BytesPerLengthOffset
	if len(data) < fixedLen {
		return nil, fmt.Errorf("ssz: decode: buffer of length %d too short for %d offsets", len(data), count)
	}
	if firstOffset != fixedLen {
		return nil, fmt.Errorf("%w: first offset %d != expected fixed-region length %d", ErrOffset, firstOffset, fixedLen)
	}

	offsets := make([]int, count)
	offsets[0] = firstOffset
	for i := 1; i < count; i++ {
		o := int(readOffset(data, i*BytesPerLengthOffset))
		if o < offsets[i-1] {
			return nil, fmt.Errorf("%w: offset %d (%d) is less than offset %d (%d)", ErrOffset, i, o, i-1, offsets[i-1])
		}
		offsets[i] = o
	}

	elems := make([]any, count)
	for i := 0; i < count; i++ {
		start := offsets[i]
		end := len(data)
		if i+1 < count {
			end = offsets[i+1]
		}
		if start > end || end > len(data) {
			return nil, fmt.Errorf("%w: element %d range [%d,%d) out of bounds for buffer of length %d", ErrOffset, i, start, end, len(data))
		}
		v, err := Deserialize(data[start:end], elemType)
		if err != nil {
			return nil, fmt.Errorf("ssz: decode: element %d: %w", i, err)
		}
		elems[i] = v
	}
	return elems, nil
}

func decodeContainer(data []byte, t *Type) (any, error) {
	type variableField struct {
		name   string
		offset int
	}
	fields := make(map[string]any, len(t.Fields))
	var variable []variableField

	fixedIdx := 0
	for _, f := range t.Fields {
		if !IsVariableSize(f.Type) {
			fs, err := FixedSize(f.Type)
			if err != nil {
				return nil, err
			}
			if fixedIdx+fs > len(data) {
				return nil, fmt.Errorf("ssz: decode %s: field %q exceeds buffer of length %d", t.Name, f.Name, len(data))
			}
			v, err := Deserialize(data[fixedIdx:fixedIdx+fs], f.Type)
			if err != nil {
				return nil, fmt.Errorf("ssz: decode %s: field %q: %w", t.Name, f.Name, err)
			}
			fields[f.Name] = v
			fixedIdx += fs
			continue
		}
		if fixedIdx+BytesPerLengthOffset > len(data) {
			return nil, fmt.Errorf("ssz: decode %s: offset slot for field %q exceeds buffer of length %d", t.Name, f.Name, len(data))
		}
		variable = append(variable, variableField{name: f.Name, offset: int(readOffset(data, fixedIdx))})
		fixedIdx += BytesPerLengthOffset
	}

	fixedLen := fixedIdx
	if len(variable) > 0 && variable[0].offset != fixedLen {
		return nil, fmt.Errorf("%w: first variable field offset %d != expected fixed-region length %d", ErrOffset, variable[0].offset, fixedLen)
	}
	for i := 1; i < len(variable); i++ {
		if variable[i].offset < variable[i-1].offset {
			return nil, fmt.Errorf("%w: field %q offset %d is less than field %q offset %d", ErrOffset, variable[i].name, variable[i].offset, variable[i-1].name, variable[i-1].offset)
		}
	}

	typeOf := make(map[string]*Type, len(t.Fields))
	for _, f := range t.Fields {
		typeOf[f.Name] = f.Type
	}
	for i, vf := range variable {
		start := vf.offset
		end := len(data)
		if i+1 < len(variable) {
			end = variable[i+1].offset
		}
		if start > end || end > len(data) {
			return nil, fmt.Errorf("%w: field %q range [%d,%d) out of bounds for buffer of length %d", ErrOffset, vf.name, start, end, len(data))
		}
		v, err := Deserialize(data[start:end], typeOf[vf.name])
		if err != nil {
			return nil, fmt.Errorf("ssz: decode %s: field %q: %w", t.Name, vf.name, err)
		}
		fields[vf.name] = v
	}
	return fields, nil
}

func decodeUnion(data []byte, t *Type) (any, error) {
	if len(data) < 1 {
		return nil, ErrUnionDataTooShort
	}
	selector := data[0]
	if int(selector) >= len(t.Variants) {
		return nil, fmt.Errorf("%w: selector %d, %d variants", ErrUnionSelectorUnknown, selector, len(t.Variants))
	}
	v, err := Deserialize(data[1:], t.Variants[selector])
	if err != nil {
		return nil, fmt.Errorf("ssz: decode Union: variant %d: %w", selector, err)
	}
	return UnionValue{Selector: selector, Value: v}, nil
}

func readOffset(data []byte, pos int) uint32 {
	return binary.LittleEndian.Uint32(data[pos : pos+4])
}
