package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/quotedesk/internal/entity"
)

const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodePersistenceFailed = "PERSISTENCE_FAILED"
	CodeIdentityFailed    = "IDENTITY_FAILED"
	CodeStorageFailed     = "STORAGE_FAILED"
	CodeConfiguration     = "CONFIGURATION_ERROR"
	CodeDeliveryFailed    = "DELIVERY_FAILED"
)

// DomainError is a caller mistake: bad input, unknown id, missing rights.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is a failure of a collaborator (database, identity
// provider, blob store, email transport).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode returns the code carried by err, or PERSISTENCE_FAILED for
// anything unclassified.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return CodePersistenceFailed
}

func validationFailed(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return &DomainError{
		Code:    CodeValidationFailed,
		Message: "validation failed: " + strings.Join(parts, ", "),
		Fields:  errs,
	}
}

func invalidField(field, msg string) *DomainError {
	return validationFailed([]ValidationError{{Field: field, Message: msg}})
}

func notFound(what, id string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", what, id)}
}

func forbidden(msg string) *DomainError {
	return &DomainError{Code: CodeForbidden, Message: msg}
}

// storeError classifies a repository error. Sentinel not-found and
// duplicate errors become domain errors, everything else is a persistence failure.
func storeError(op string, err error) error {
	switch {
	case entity.IsNotFound(err):
		return &DomainError{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, entity.ErrDuplicate):
		return &DomainError{Code: CodeConflict, Message: err.Error()}
	case IsDomainError(err) || IsTechnicalError(err):
		return err
	}
	return &TechnicalError{Code: CodePersistenceFailed, Message: op, Err: err}
}
