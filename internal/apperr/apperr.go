// Package apperr holds the outcome classes every operation can end in.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound means the addressed or referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness or reference constraint rejected the write.
	ErrConflict = errors.New("conflict")
	// ErrIntegrity means stored rows point at rows that are gone.
	ErrIntegrity = errors.New("integrity fault")
	// ErrUnavailable means the store could not serve the request.
	ErrUnavailable = errors.New("store unavailable")
)

// ValidationError carries every violated field of an inbound payload.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns nil when no field was rejected.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type Class int

const (
	ClassInternal Class = iota
	ClassValidation
	ClassNotFound
	ClassConflict
	ClassIntegrity
	ClassUnavailable
)

func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassNotFound:
		return "not_found"
	case ClassConflict:
		return "conflict"
	case ClassIntegrity:
		return "integrity"
	case ClassUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Classify maps an operation error to its outcome class.
func Classify(err error) Class {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ClassValidation
	case errors.Is(err, ErrIntegrity):
		return ClassIntegrity
	case errors.Is(err, ErrNotFound):
		return ClassNotFound
	case errors.Is(err, ErrConflict):
		return ClassConflict
	case errors.Is(err, ErrUnavailable):
		return ClassUnavailable
	default:
		return ClassInternal
	}
}
