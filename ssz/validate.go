package ssz

import "strconv"

// Validate asserts that v conforms to t, recursing into composite
// types and reporting the first violation found with a dotted
// field/index path trail (spec.md §4.3). It is a pure check: it never
// mutates v or t, and Serialize always calls it before writing output
// so the serializer's own internal consistency check can be treated as
// an assertion that should never fail once Validate has passed.
func Validate(v any, t *Type) error {
	return validateAt("", v, t)
}

func validateAt(path string, v any, t *Type) error {
	switch t.Kind {
	case KindBool:
		if _, ok := v.(bool); !ok {
			return invalidValue(path, "expected bool, got %T", v)
		}
		return nil
	case KindUint:
		return validateUint(path, v, t)
	case KindByteVector:
		return validateByteVector(path, v, t)
	case KindByteList:
		return validateByteList(path, v, t)
	case KindVector:
		return validateVector(path, v, t)
	case KindList:
		return validateList(path, v, t)
	case KindContainer:
		return validateContainer(path, v, t)
	case KindUnion:
		return validateUnion(path, v, t)
	default:
		return invalidValue(path, "unhandled type kind %s", t.Kind)
	}
}

func validateUint(path string, v any, t *Type) error {
	if _, ok := v.(infinitySentinel); ok {
		if t.ByteLength > 6 && t.UseNumber {
			return nil
		}
		return invalidValue(path, "+Infinity is only valid for byteLength>6 with useNumber=true (got byteLength=%d, useNumber=%v)", t.ByteLength, t.UseNumber)
	}
	n, err := uintValueToBig(v)
	if err != nil {
		return invalidValue(path, "%s", err)
	}
	if !fitsInByteLength(n, t.ByteLength) {
		return invalidValue(path, "value %s exceeds uint%d range", n.Dec(), t.ByteLength*8)
	}
	return nil
}

func validateByteVector(path string, v any, t *Type) error {
	b, ok := v.([]byte)
	if !ok {
		return invalidValue(path, "expected []byte, got %T", v)
	}
	if len(b) != t.Length {
		return invalidValue(path, "expected %d bytes, got %d", t.Length, len(b))
	}
	return nil
}

func validateByteList(path string, v any, t *Type) error {
	b, ok := v.([]byte)
	if !ok {
		return invalidValue(path, "expected []byte, got %T", v)
	}
	if uint64(len(b)) > t.MaxLength {
		return invalidValue(path, "byte list of length %d exceeds max %d", len(b), t.MaxLength)
	}
	return nil
}

func validateVector(path string, v any, t *Type) error {
	elems, err := asSlice(v)
	if err != nil {
		return invalidValue(path, "%s", err)
	}
	if len(elems) != t.Length {
		return invalidValue(path, "expected %d elements, got %d", t.Length, len(elems))
	}
	for i, e := range elems {
		if err := validateAt(joinPathIndex(path, i), e, t.Elem); err != nil {
			return err
		}
	}
	return nil
}

func validateList(path string, v any, t *Type) error {
	elems, err := asSlice(v)
	if err != nil {
		return invalidValue(path, "%s", err)
	}
	if uint64(len(elems)) > t.MaxLength {
		return invalidValue(path, "list of length %d exceeds max %d", len(elems), t.MaxLength)
	}
	for i, e := range elems {
		if err := validateAt(joinPathIndex(path, i), e, t.Elem); err != nil {
			return err
		}
	}
	return nil
}

func validateContainer(path string, v any, t *Type) error {
	fields, err := asFieldMap(v)
	if err != nil {
		return invalidValue(path, "%s", err)
	}
	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		declared[f.Name] = true
		fv, present := fields[f.Name]
		if !present {
			return invalidValue(path, "missing field %q", f.Name)
		}
		if err := validateAt(joinPath(path, f.Name), fv, f.Type); err != nil {
			return err
		}
	}
	for name := range fields {
		if !declared[name] {
			return invalidValue(path, "unexpected field %q", name)
		}
	}
	return nil
}

func validateUnion(path string, v any, t *Type) error {
	uv, ok := v.(UnionValue)
	if !ok {
		return invalidValue(path, "expected UnionValue, got %T", v)
	}
	if int(uv.Selector) >= len(t.Variants) {
		return invalidValue(path, "selector %d out of range (%d variants)", uv.Selector, len(t.Variants))
	}
	return validateAt(joinPath(path, "value"), uv.Value, t.Variants[uv.Selector])
}

func joinPathIndex(path string, i int) string {
	return joinPath(path, strconv.Itoa(i))
}
