package model

import (
	"errors"
	"fmt"
)

// ValidationError is returned when an Element or a collection cannot be
// constructed. No partial value is ever returned alongside it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	// ErrMissingType is returned when a descriptor has no usable type.
	ErrMissingType = &ValidationError{Message: "Element requires a type."}

	// ErrDuplicateKey is returned when a list already holds a different
	// element with the same identity key.
	ErrDuplicateKey = errors.New("element list: duplicate element key")
	// ErrUnsupportedSource is returned for list sources that are neither
	// descriptors nor elements.
	ErrUnsupportedSource = errors.New("element list: unsupported source")
)

func unexpectedValuesError(kind Kind) error {
	return &ValidationError{Message: fmt.Sprintf("Element type %q does not accept values.", kind)}
}
