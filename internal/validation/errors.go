package validation

import (
	"errors"
	"strings"
)

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrTooLong           = errors.New("too long")
	ErrTooShort          = errors.New("too short")
	ErrNotANumber        = errors.New("not a number")
	ErrOutOfRange        = errors.New("out of range")
	ErrInvalidCharacters = errors.New("invalid characters")
)

type Field string

const (
	FieldURL            Field = "originalUrl"
	FieldValidityPeriod Field = "validityPeriod"
	FieldShortcode      Field = "preferredShortcode"
)

// Error is a field-scoped validation failure. Message is meant for display
// next to the offending field; Kind is one of the sentinel errors above.
type Error struct {
	Field   Field
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

type DraftError struct {
	Errors []*Error
}

func (e *DraftError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

func (e *DraftError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}

// Field returns the error recorded for f, or nil.
func (e *DraftError) Field(f Field) *Error {
	for _, fe := range e.Errors {
		if fe.Field == f {
			return fe
		}
	}
	return nil
}

type IndexedError struct {
	Index int
	Err   *DraftError
}

type BatchValidationError struct {
	Errors []IndexedError
}

func (e *BatchValidationError) Error() string {
	return "batch validation failed"
}

// Count returns the number of field errors across the batch.
func (e *BatchValidationError) Count() int {
	n := 0
	for _, ie := range e.Errors {
		n += len(ie.Err.Errors)
	}
	return n
}
