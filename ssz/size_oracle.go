package ssz

import "fmt"

// FixedSize returns the fixed serialized length of t. It is defined only
// when !IsVariableSize(t); callers that call it on a variable-size type
// get an error rather than a meaningless number (spec.md §4.2).
func FixedSize(t *Type) (int, error) {
	switch t.Kind {
	case KindBool:
		return 1, nil
	case KindUint:
		return t.ByteLength, nil
	case KindByteVector:
		return t.Length, nil
	case KindVector:
		elemSize, err := FixedSize(t.Elem)
		if err != nil {
			return 0, err
		}
		return t.Length * elemSize, nil
	case KindContainer:
		total := 0
		for _, f := range t.Fields {
			fs, err := FixedSize(f.Type)
			if err != nil {
				return 0, fmt.Errorf("ssz: FixedSize: field %q: %w", f.Name, err)
			}
			total += fs
		}
		return total, nil
	default:
		return 0, fmt.Errorf("ssz: FixedSize: %s is variable-size", t.Kind)
	}
}

// Size returns the serialized length of v under t. Unlike FixedSize it
// is total: defined for every (value, type) pair that Validate accepts.
// Size does not itself validate v; callers that have not already called
// Validate may get a nonsensical result (or panic on a malformed v)
// rather than an error, since Size is on the hot path of Serialize and
// is not meant to re-walk invariants that Validate already checked.
func Size(v any, t *Type) (int, error) {
	if !IsVariableSize(t) {
		return FixedSize(t)
	}
	switch t.Kind {
	case KindByteList:
		b, ok := v.([]byte)
		if !ok {
			return 0, fmt.Errorf("ssz: Size: ByteList value has type %T, want []byte", v)
		}
		return len(b), nil
	case KindList:
		return sizeOfList(v, t)
	case KindContainer:
		return sizeOfContainer(v, t)
	case KindUnion:
		return sizeOfUnion(v, t)
	default:
		return 0, fmt.Errorf("ssz: Size: unhandled variable-size kind %s", t.Kind)
	}
}

func sizeOfList(v any, t *Type) (int, error) {
	elems, err := asSlice(v)
	if err != nil {
		return 0, fmt.Errorf("ssz: Size: %w", err)
	}
	if !IsVariableSize(t.Elem) {
		elemSize, err := FixedSize(t.Elem)
		if err != nil {
			return 0, err
		}
		return len(elems) * elemSize, nil
	}
	total := len(elems) * BytesPerLengthOffset
	for i, e := range elems {
		s, err := Size(e, t.Elem)
		if err != nil {
			return 0, fmt.Errorf("ssz: Size: element %d: %w", i, err)
		}
		total += s
	}
	return total, nil
}

func sizeOfContainer(v any, t *Type) (int, error) {
	fields, err := asFieldMap(v)
	if err != nil {
		return 0, fmt.Errorf("ssz: Size: %w", err)
	}
	total := 0
	for _, f := range t.Fields {
		fv := fields[f.Name]
		if !IsVariableSize(f.Type) {
			fs, err := FixedSize(f.Type)
			if err != nil {
				return 0, err
			}
			total += fs
			continue
		}
		fs, err := Size(fv, f.Type)
		if err != nil {
			return 0, fmt.Errorf("ssz: Size: field %q: %w", f.Name, err)
		}
		total += BytesPerLengthOffset + fs
	}
	return total, nil
}

func sizeOfUnion(v any, t *Type) (int, error) {
	uv, ok := v.(UnionValue)
	if !ok {
		return 0, fmt.Errorf("ssz: Size: Union value has type %T, want UnionValue", v)
	}
	if int(uv.Selector) >= len(t.Variants) {
		return 0, fmt.Errorf("ssz: Size: union selector %d out of range (%d variants)", uv.Selector, len(t.Variants))
	}
	s, err := Size(uv.Value, t.Variants[uv.Selector])
	if err != nil {
		return 0, err
	}
	return 1 + s, nil
}

// asSlice adapts the accepted Go representations of a Vector/List value
// ([]any, or [][]byte) to a uniform []any; any other slice type is
// rejected. The generic descriptor model only needs []any; typed
// callers normalize on their own side before calling into this package.
func asSlice(v any) ([]any, error) {
	switch s := v.(type) {
	case []any:
		return s, nil
	case [][]byte:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value has type %T, want []any", v)
	}
}

// asFieldMap adapts the accepted Go representation of a Container value
// (map[string]any) to itself, erroring otherwise.
func asFieldMap(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("value has type %T, want map[string]any", v)
	}
	return m, nil
}
