package ssz

import (
	"errors"
	"fmt"
)

// Union codec errors.
var (
	ErrUnionSelectorUnknown = errors.New("ssz: unknown union selector")
	ErrUnionDataTooShort    = errors.New("ssz: union data too short for selector")
)

// BadTypeError reports a malformed type descriptor: an unknown shorthand,
// an unsupported uint width, a duplicate container field name, or a
// non-positive vector length.
type BadTypeError struct {
	Path   string
	Reason string
}

func (e *BadTypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("ssz: bad type: %s", e.Reason)
	}
	return fmt.Sprintf("ssz: bad type at %s: %s", e.Path, e.Reason)
}

func badType(path, reason string, args ...any) *BadTypeError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &BadTypeError{Path: path, Reason: reason}
}

// InvalidValueError reports a value that does not conform to its type
// descriptor: wrong length, out-of-range uint, missing field, negative
// integer, and so on. Path is the dotted field/index trail to the
// offending value.
type InvalidValueError struct {
	Path   string
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("ssz: invalid value: %s", e.Reason)
	}
	return fmt.Sprintf("ssz: invalid value at %s: %s", e.Path, e.Reason)
}

func invalidValue(path, reason string, args ...any) *InvalidValueError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &InvalidValueError{Path: path, Reason: reason}
}

// BufferOverrunError reports an internal consistency failure: a write
// would exceed (or fell short of) the buffer length computed by the
// Size Oracle. This indicates a bug in the serializer or size oracle,
// not a caller error — it should never occur once a value has passed
// Validate.
type BufferOverrunError struct {
	Path   string
	Reason string
}

func (e *BufferOverrunError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("ssz: buffer overrun: %s", e.Reason)
	}
	return fmt.Sprintf("ssz: buffer overrun at %s: %s", e.Path, e.Reason)
}

func bufferOverrun(path, reason string, args ...any) *BufferOverrunError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &BufferOverrunError{Path: path, Reason: reason}
}

// joinPath appends a field name or index segment to a dotted path trail.
func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}

// withPath fills in Path on a *BadTypeError that was constructed without
// one, so constructors like NewUint can be called both standalone (no
// path available) and from ParseType (where a path is available).
func withPath(err error, path string) error {
	if bt, ok := err.(*BadTypeError); ok && bt.Path == "" {
		bt.Path = path
	}
	return err
}
