package document

import (
	"errors"
	"fmt"
)

// ErrorKind is the category of a decode failure.
type ErrorKind int

const (
	_ ErrorKind = iota

	MissingField       // missing field
	TypeMismatch       // type mismatch
	UnknownVariant     // unknown variant
	MalformedStructure // malformed structure
)

// Sentinels for errors.Is. They match any DecodeError of the same kind.
var (
	ErrMissingField       = &DecodeError{Kind: MissingField}
	ErrTypeMismatch       = &DecodeError{Kind: TypeMismatch}
	ErrUnknownVariant     = &DecodeError{Kind: UnknownVariant}
	ErrMalformedStructure = &DecodeError{Kind: MalformedStructure}
)

// DecodeError describes why a value could not be decoded and where.
type DecodeError struct {
	Kind ErrorKind
	// Path of the offending field.
	Path Path
	// Expected and Actual are set for TypeMismatch.
	Expected Kind
	Actual   Kind
	// Value is the rejected discriminator for UnknownVariant.
	Value string
	// Reason is set for MalformedStructure.
	Reason string
}

// Missing returns a MissingField error.
func Missing(path Path) *DecodeError {
	return &DecodeError{Kind: MissingField, Path: path}
}

// Mismatch returns a TypeMismatch error for the value found at path.
func Mismatch(path Path, expected Kind, found any) *DecodeError {
	return &DecodeError{Kind: TypeMismatch, Path: path, Expected: expected, Actual: KindOf(found)}
}

// Unknown returns an UnknownVariant error.
func Unknown(path Path, value string) *DecodeError {
	return &DecodeError{Kind: UnknownVariant, Path: path, Value: value}
}

// Malformed returns a MalformedStructure error.
func Malformed(path Path, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: MalformedStructure, Path: path, Reason: fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("missing field %s", e.Path)
	case TypeMismatch:
		return fmt.Sprintf("type mismatch at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
	case UnknownVariant:
		return fmt.Sprintf("unknown variant at %s: %q", e.Path, e.Value)
	case MalformedStructure:
		return fmt.Sprintf("malformed structure at %s: %s", e.Path, e.Reason)
	default:
		return fmt.Sprintf("%s at %s", e.Kind, e.Path)
	}
}

// Is matches sentinels by kind.
func (e *DecodeError) Is(target error) bool {
	var t *DecodeError
	if !errors.As(target, &t) {
		return false
	}

	return t.Path == Root && t.Kind == e.Kind
}

// AsDecodeError unwraps err into a *DecodeError.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}

	return nil, false
}
