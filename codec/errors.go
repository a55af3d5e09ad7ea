package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors. Formats wrap them, so test with errors.Is.
var (
	// ErrMalformed reports input that does not decode.
	ErrMalformed = errors.New("malformed encoding")
	// ErrConstraint reports a value outside its declared constraint.
	ErrConstraint = errors.New("constraint violation")
	// ErrUnknownVariant reports a CHOICE, open type or ENUMERATED index
	// with no variant in a type that is not extensible.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrNoVariant reports writing a CHOICE or open type that holds
	// nothing.
	ErrNoVariant = errors.New("no variant")
)

// Error is a failed read or write.
type Error struct {
	Format string // "uper", "tlv"
	Op     string // e.g. "read integer"
	Pos    uint64 // bit position for uper, byte offset for tlv
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %d: %v", e.Format, e.Op, e.Pos, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Malformed returns an ErrMalformed wrapped with detail.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// ConstraintViolation returns an ErrConstraint wrapped with detail.
func ConstraintViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConstraint, fmt.Sprintf(format, args...))
}
