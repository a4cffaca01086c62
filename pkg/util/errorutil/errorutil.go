package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by DomainError.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeDuplicate        = "DUPLICATE"
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
//
// Messages holds the per-field list returned to clients for validation and
// duplicate failures; Message is the single summary used otherwise.
type DomainError struct {
	Code       string
	Message    string
	Messages   []string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, messages []string) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Messages: messages}
}

func NewValidationError(messages []string) error {
	return NewDomainError(CodeValidationFailed, "validation failed", http.StatusBadRequest, messages)
}

// NewDuplicateError reports conflicts with already stored records. It maps to
// 400 rather than 409 because clients treat it like any other form error.
func NewDuplicateError(messages []string) error {
	return NewDomainError(CodeDuplicate, "duplicate record", http.StatusBadRequest, messages)
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, []string{message})
}

func NewNotFound(message string) error {
	return NewDomainError(CodeNotFound, message, http.StatusNotFound, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "Erro interno do servidor",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch {
		case fiberErr.Code == http.StatusNotFound:
			return NewDomainError(CodeNotFound, fiberErr.Message, fiberErr.Code, nil)
		case fiberErr.Code < http.StatusInternalServerError:
			return NewDomainError(CodeBadRequest, fiberErr.Message, fiberErr.Code, []string{fiberErr.Message})
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "Erro interno do servidor",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsNotFound reports whether err maps to a 404.
func IsNotFound(err error) bool {
	de := ToDomainError(err)
	return de != nil && de.HTTPStatus == http.StatusNotFound
}
