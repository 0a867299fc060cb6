package ssz

import "github.com/holiman/uint256"

// Serialize encodes v under t into a freshly allocated, exactly-sized
// byte buffer (spec.md §4.4). It validates v first (via Validate) so
// that the internal buffer-length check below is a pure assertion that
// should never trip on a valid (v, t) pair — if it does, that is a bug
// in Size or the dispatcher below, not a caller error, and is reported
// as a *BufferOverrunError rather than silently returning a truncated
// or over-long buffer.
func Serialize(v any, t *Type) ([]byte, error) {
	if err := Validate(v, t); err != nil {
		return nil, err
	}
	n, err := Size(v, t)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	end, err := writeAt(out, 0, v, t, "")
	if err != nil {
		return nil, err
	}
	if end != n {
		return nil, bufferOverrun("", "wrote %d bytes, expected %d", end, n)
	}
	return out, nil
}

// writeAt writes v (already known-valid under t) into out[start:] and
// returns the index just past the last byte written.
func writeAt(out []byte, start int, v any, t *Type, path string) (int, error) {
	switch t.Kind {
	case KindBool:
		return writeBool(out, start, v)
	case KindUint:
		return writeUint(out, start, v, t)
	case KindByteVector:
		return writeBytes(out, start, v.([]byte))
	case KindByteList:
		return writeBytes(out, start, v.([]byte))
	case KindVector, KindList:
		return writeArray(out, start, v, t, path)
	case KindContainer:
		return writeContainer(out, start, v, t, path)
	case KindUnion:
		return writeUnion(out, start, v, t, path)
	default:
		return 0, bufferOverrun(path, "unhandled type kind %s", t.Kind)
	}
}

func writeBool(out []byte, start int, v any) (int, error) {
	if start >= len(out) {
		return 0, bufferOverrun("", "bool write at %d exceeds buffer of length %d", start, len(out))
	}
	if v.(bool) {
		out[start] = 1
	} else {
		out[start] = 0
	}
	return start + 1, nil
}

func writeUint(out []byte, start int, v any, t *Type) (int, error) {
	end := start + t.ByteLength
	if end > len(out) {
		return 0, bufferOverrun("", "uint%d write at %d exceeds buffer of length %d", t.ByteLength*8, start, len(out))
	}
	if _, ok := v.(infinitySentinel); ok {
		for i := start; i < end; i++ {
			out[i] = 0xFF
		}
		return end, nil
	}
	n, err := uintValueToBig(v)
	if err != nil {
		return 0, bufferOverrun("", "%s", err)
	}
	if t.UintOffset != nil {
		n = new(uint256.Int).Add(n, t.UintOffset)
	}
	be := n.Bytes32()
	for i := 0; i < t.ByteLength; i++ {
		out[start+i] = be[32-1-i]
	}
	return end, nil
}

func writeBytes(out []byte, start int, data []byte) (int, error) {
	end := start + len(data)
	if end > len(out) {
		return 0, bufferOverrun("", "byte write at %d of length %d exceeds buffer of length %d", start, len(data), len(out))
	}
	copy(out[start:end], data)
	return end, nil
}

func writeArray(out []byte, start int, v any, t *Type, path string) (int, error) {
	elems, err := asSlice(v)
	if err != nil {
		return 0, bufferOverrun(path, "%s", err)
	}
	if !IsVariableSize(t.Elem) {
		cur := start
		for i, e := range elems {
			next, err := writeAt(out, cur, e, t.Elem, joinPathIndex(path, i))
			if err != nil {
				return 0, err
			}
			cur = next
		}
		return cur, nil
	}
	return writeOffsetTable(out, start, elems, t.Elem, path)
}

// writeOffsetTable implements the variable-size-element array layout of
// spec.md §4.4: a fixed region of n little-endian 4-byte offsets
// (relative to start) followed by the element bodies in order.
func writeOffsetTable(out []byte, start int, elems []any, elemType *Type, path string) (int, error) {
	n := len(elems)
	fixedLen := n * BytesPerLengthOffset
	if start+fixedLen > len(out) {
		return 0, bufferOverrun(path, "offset table at %d of length %d exceeds buffer of length %d", start, fixedLen, len(out))
	}
	cur := start + fixedLen
	for i, e := range elems {
		offsetSlot := start + i*BytesPerLengthOffset
		writeOffset(out, offsetSlot, cur-start)
		next, err := writeAt(out, cur, e, elemType, joinPathIndex(path, i))
		if err != nil {
			return 0, err
		}
		cur = next
	}
	return cur, nil
}

func writeOffset(out []byte, at int, offset int) {
	out[at] = byte(offset)
	out[at+1] = byte(offset >> 8)
	out[at+2] = byte(offset >> 16)
	out[at+3] = byte(offset >> 24)
}

func writeContainer(out []byte, start int, v any, t *Type, path string) (int, error) {
	fields, err := asFieldMap(v)
	if err != nil {
		return 0, bufferOverrun(path, "%s", err)
	}
	fixedLen := 0
	for _, f := range t.Fields {
		if IsVariableSize(f.Type) {
			fixedLen += BytesPerLengthOffset
			continue
		}
		fs, err := FixedSize(f.Type)
		if err != nil {
			return 0, err
		}
		fixedLen += fs
	}
	fixedIdx := start
	cur := start + fixedLen
	for _, f := range t.Fields {
		fv := fields[f.Name]
		fieldPath := joinPath(path, f.Name)
		if !IsVariableSize(f.Type) {
			next, err := writeAt(out, fixedIdx, fv, f.Type, fieldPath)
			if err != nil {
				return 0, err
			}
			fixedIdx = next
			continue
		}
		curBefore := cur
		next, err := writeAt(out, cur, fv, f.Type, fieldPath)
		if err != nil {
			return 0, err
		}
		cur = next
		if fixedIdx+BytesPerLengthOffset > len(out) {
			return 0, bufferOverrun(fieldPath, "offset slot at %d exceeds buffer of length %d", fixedIdx, len(out))
		}
		writeOffset(out, fixedIdx, curBefore-start)
		fixedIdx += BytesPerLengthOffset
	}
	return cur, nil
}

func writeUnion(out []byte, start int, v any, t *Type, path string) (int, error) {
	uv := v.(UnionValue)
	if start >= len(out) {
		return 0, bufferOverrun(path, "union selector write at %d exceeds buffer of length %d", start, len(out))
	}
	out[start] = uv.Selector
	return writeAt(out, start+1, uv.Value, t.Variants[uv.Selector], joinPath(path, "value"))
}
