package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Input is the raw text that failed to parse or validate, if any.
	Input string `json:"input,omitempty"`
	Err   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrConnection ErrorCode = iota + 1000
	ErrParse
	ErrValidation
)

// integrityViolationClass is the SQLSTATE class for constraint violations.
const integrityViolationClass = "23"

// NewConnection reports that every connection attempt failed. err is the
// failure of the last attempt.
func NewConnection(attempts int, err error) *AppError {
	return &AppError{
		Code:    ErrConnection,
		Message: fmt.Sprintf("could not connect to database after %d attempt(s)", attempts),
		Err:     err,
	}
}

// NewParse reports text that could not be parsed as kind.
func NewParse(kind, input string, err error) *AppError {
	return &AppError{
		Code:    ErrParse,
		Message: fmt.Sprintf("invalid %s: %q", kind, input),
		Input:   input,
		Err:     err,
	}
}

// NewParseFormats reports text that matched none of the accepted formats.
func NewParseFormats(kind, input string, formats []string) *AppError {
	return &AppError{
		Code:    ErrParse,
		Message: fmt.Sprintf("invalid %s: %q, expected one of [%s]", kind, input, strings.Join(formats, ", ")),
		Input:   input,
	}
}

func NewValidation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

// Validation reports a violated rule with no underlying error.
func Validation(message string) *AppError {
	return NewValidation(message, nil)
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if ae, ok := err.(*AppError); ok && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

func IsConnection(err error) bool {
	return HasCode(err, ErrConnection)
}

func IsParse(err error) bool {
	return HasCode(err, ErrParse)
}

func IsValidation(err error) bool {
	return HasCode(err, ErrValidation)
}

// IsStoreConstraint reports whether the store rejected an operation because
// of an integrity constraint (foreign key, not null, unique, check).
func IsStoreConstraint(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code.Class()) == integrityViolationClass
}

// ConstraintName returns the name of the violated constraint, or "" when err
// is not a store constraint error.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code.Class()) == integrityViolationClass {
		return pqErr.Constraint
	}
	return ""
}
