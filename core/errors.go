package core

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Error kinds. Check them with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNotFound     = errors.New("not found")
	ErrInvalidMark  = errors.New("enter valid marks (0-100)")
	ErrReference    = errors.New("unknown reference")
	ErrNoData       = errors.New("no data")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError groups the FieldErrors of a rejected input under one of the error kinds above.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if len(err.Fields) == 0 {
		if err.Err == nil {
			return ""
		}
		return err.Err.Error()
	}

	msgs := make([]string, 0, len(err.Fields))
	for _, fErr := range err.Fields {
		msgs = append(msgs, fErr.Field+": "+fErr.Error)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func (err ValidationError) Unwrap() error {
	return err.Err
}

// FieldMap returns the field errors keyed by field name.
func (err ValidationError) FieldMap() map[string]string {
	flds := make(map[string]string, len(err.Fields))
	for _, fErr := range err.Fields {
		flds[fErr.Field] = fErr.Error
	}
	return flds
}
